// Package refprice keeps the current reference gold price (KRW per don of
// pure gold) used to value jewelry at today's market.
package refprice

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"jewelry-pos/internal/catalog"
)

// Quote sources
const (
	SourceDefault = "default"
	SourceManual  = "manual"
	SourceFeed    = "feed"
)

type Quote struct {
	PerDon    int64     `json:"per_don"`
	Source    string    `json:"source"`
	UpdatedAt time.Time `json:"updated_at"`
	Stale     bool      `json:"stale"`
}

// Holder is safe for concurrent use.
type Holder struct {
	mu        sync.RWMutex
	perDon    int64
	source    string
	updatedAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// New starts the holder at the configured fallback price. A zero ttl
// never marks quotes stale.
func New(fallbackPerDon int64, ttl time.Duration) *Holder {
	return &Holder{
		perDon:    fallbackPerDon,
		source:    SourceDefault,
		updatedAt: time.Now(),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Set replaces the current price.
func (h *Holder) Set(perDon int64, source string) (Quote, error) {
	if perDon <= 0 {
		return Quote{}, errors.New("reference price must be positive")
	}
	if source == "" {
		source = SourceManual
	}
	h.mu.Lock()
	h.perDon = perDon
	h.source = source
	h.updatedAt = h.now()
	h.mu.Unlock()

	zap.L().Info("gold reference price updated", zap.Int64("per_don", perDon), zap.String("source", source))
	return h.Current(), nil
}

func (h *Holder) Current() Quote {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Quote{
		PerDon:    h.perDon,
		Source:    h.source,
		UpdatedAt: h.updatedAt,
		Stale:     h.ttl > 0 && h.now().Sub(h.updatedAt) > h.ttl,
	}
}

// PerGram is the applied per-gram price for purity at the current quote.
func (h *Holder) PerGram(purity string) int64 {
	return catalog.AppliedPricePerGram(h.Current().PerDon, purity)
}
