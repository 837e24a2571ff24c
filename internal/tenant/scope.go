// Package tenant scopes queries to the shop of the authenticated actor.
package tenant

import "gorm.io/gorm"

// Scope is the row filter derived from the caller's identity. All is set
// for super users, who see every shop.
type Scope struct {
	ShopID uint
	All    bool
}

func Shop(id uint) Scope { return Scope{ShopID: id} }

func Everything() Scope { return Scope{All: true} }

// Apply adds the shop filter on column to db.
func (s Scope) Apply(db *gorm.DB, column string) *gorm.DB {
	if s.All {
		return db
	}
	return db.Where(column+" = ?", s.ShopID)
}
