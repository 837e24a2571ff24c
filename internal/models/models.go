package models

import (
	"time"
)

// Roles
const (
	RoleSuperUser = "SuperUser"
	RoleBiz       = "Biz"
	RoleGeneral   = "General"
)

// Order statuses. Cancelled is terminal.
const (
	OrderCompleted = "Completed"
	OrderCancelled = "Cancelled"
)

// User - a shop account. The shop a product belongs to is its owner's ID.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"` // Never return this in JSON
	Role         string    `gorm:"size:20;default:Biz" json:"role"`
	ShopName     string    `gorm:"size:100" json:"shop_name"`
	ShopCode     string    `gorm:"size:10" json:"shop_code"`
	CreatedAt    time.Time `json:"created_at"`
}

// Product - the inventory row; the category detail lives in its own table.
type Product struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Code           string    `gorm:"uniqueIndex;size:50" json:"code"`
	ShopID         uint      `gorm:"index" json:"shop_id"`
	Category       string    `gorm:"size:50;not null;index" json:"category"`
	SubCategory    string    `gorm:"size:50" json:"sub_category"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	ImageRep       string    `gorm:"size:500" json:"image_rep"`
	ImageTop       string    `gorm:"size:500" json:"image_top"`
	ImageFront     string    `gorm:"size:500" json:"image_front"`
	ImageSide      string    `gorm:"size:500" json:"image_side"`
	FactoryName    string    `gorm:"size:100" json:"factory_name"`
	FactoryContact string    `gorm:"size:100" json:"factory_contact"`
	ProductionTime string    `gorm:"size:100" json:"production_time"`
	TotalPrice     int64     `json:"total_price"`
	StockQuantity  int       `gorm:"not null;default:0" json:"stock_quantity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Jewelry    *JewelryDetail    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"jewelry,omitempty"`
	Diamond    *DiamondDetail    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"diamond,omitempty"`
	ColorStone *ColorStoneDetail `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"color_stone,omitempty"`
	Watch      *WatchDetail      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"watch,omitempty"`
	Etc        *EtcDetail        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"etc,omitempty"`
	Stones     []ProductStone    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"stones,omitempty"`
}

// JewelryDetail - Jewelry and Gold. Inputs plus the amounts computed at save time.
type JewelryDetail struct {
	ProductID        uint    `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	GoldWeight       float64 `json:"gold_weight"`
	GoldPurity       string  `gorm:"size:20" json:"gold_purity"`
	GoldPriceApplied int64   `json:"gold_price_applied"` // per gram, truncated to 100
	LaborCost        int64   `json:"labor_cost"`
	MarginPct        float64 `json:"margin_pct"`
	DiscountPct      float64 `json:"discount_pct"`
	VATPct           float64 `json:"vat_pct"`
	FeePct           float64 `json:"fee_pct"`
	MaterialCost     int64   `json:"material_cost"`
	ProductCost      int64   `json:"product_cost"`
	SellingPrice     int64   `json:"selling_price"`
	VATAmount        int64   `json:"vat_amount"`
	FeeAmount        int64   `json:"fee_amount"`
	FinalPrice       int64   `json:"final_price"`
}

func (JewelryDetail) TableName() string { return "product_jewelry" }

type DiamondDetail struct {
	ProductID    uint    `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	StoneType    string  `gorm:"size:50" json:"stone_type"`
	Certificate  string  `gorm:"size:50" json:"certificate"`
	Shape        string  `gorm:"size:50" json:"shape"`
	Weight       float64 `json:"weight"`
	Color        string  `gorm:"size:20" json:"color"`
	Clarity      string  `gorm:"size:20" json:"clarity"`
	Cut          string  `gorm:"size:20" json:"cut"`
	Polish       string  `gorm:"size:20" json:"polish"`
	Symmetry     string  `gorm:"size:20" json:"symmetry"`
	Fluorescence string  `gorm:"size:50" json:"fluorescence"`
	PurchaseCost int64   `json:"purchase_cost"`
	MarginPct    float64 `json:"margin_pct"`
	VATPct       float64 `json:"vat_pct"`
	SellingPrice int64   `json:"selling_price"`
	VATAmount    int64   `json:"vat_amount"`
	FinalPrice   int64   `json:"final_price"`
}

func (DiamondDetail) TableName() string { return "product_diamonds" }

type ColorStoneDetail struct {
	ProductID    uint    `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	StoneType    string  `gorm:"size:50" json:"stone_type"`
	CertAgency   string  `gorm:"size:50" json:"cert_agency"`
	Shape        string  `gorm:"size:50" json:"shape"`
	Weight       float64 `json:"weight"`
	Color        string  `gorm:"size:50" json:"color"`
	Tone         string  `gorm:"size:50" json:"tone"`
	Saturation   string  `gorm:"size:50" json:"saturation"`
	Clarity      string  `gorm:"size:50" json:"clarity"`
	Origin       string  `gorm:"size:100" json:"origin"`
	Comment      string  `gorm:"size:500" json:"comment"`
	PurchaseCost int64   `json:"purchase_cost"`
	MarginPct    float64 `json:"margin_pct"`
	VATPct       float64 `json:"vat_pct"`
	TaxRate      float64 `json:"tax_rate"`
	MarginAmount int64   `json:"margin_amount"`
	VATAmount    int64   `json:"vat_amount"`
	TaxAmount    int64   `json:"tax_amount"`
	FinalPrice   int64   `json:"final_price"`
}

func (ColorStoneDetail) TableName() string { return "product_color_stones" }

type WatchDetail struct {
	ProductID    uint    `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Brand        string  `gorm:"size:100" json:"brand"`
	ModelNumber  string  `gorm:"size:100" json:"model_number"`
	Year         string  `gorm:"size:50" json:"year"`
	Size         string  `gorm:"size:50" json:"size"`
	Material     string  `gorm:"size:50" json:"material"`
	Color        string  `gorm:"size:50" json:"color"`
	Movement     string  `gorm:"size:50" json:"movement"`
	Band         string  `gorm:"size:50" json:"band"`
	HasCert      bool    `json:"has_cert"`
	HasCase      bool    `json:"has_case"`
	Status       string  `gorm:"size:50" json:"status"`
	PurchaseCost int64   `json:"purchase_cost"`
	MarginPct    float64 `json:"margin_pct"`
	VATPct       float64 `json:"vat_pct"`
	TaxPct       float64 `json:"tax_pct"`
	MarginAmount int64   `json:"margin_amount"`
	VATAmount    int64   `json:"vat_amount"`
	TaxAmount    int64   `json:"tax_amount"`
	FinalPrice   int64   `json:"final_price"`
}

func (WatchDetail) TableName() string { return "product_watches" }

type EtcDetail struct {
	ProductID    uint    `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Comments     string  `gorm:"size:500" json:"comments"`
	Material     string  `gorm:"size:100" json:"material"`
	Size         string  `gorm:"size:100" json:"size"`
	PurchaseCost int64   `json:"purchase_cost"`
	MarginPct    float64 `json:"margin_pct"`
	VATPct       float64 `json:"vat_pct"`
	TaxPct       float64 `json:"tax_pct"`
	MarginAmount int64   `json:"margin_amount"`
	VATAmount    int64   `json:"vat_amount"`
	TaxAmount    int64   `json:"tax_amount"`
	FinalPrice   int64   `json:"final_price"`
}

func (EtcDetail) TableName() string { return "product_etc" }

// ProductStone - one Main/Sub stone line. Position keeps the entry order.
type ProductStone struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	Position  int    `json:"position"`
	StoneType string `gorm:"size:20" json:"stone_type"` // "Main" or "Sub"
	Name      string `gorm:"size:100" json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// Order - the sale header
type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	ShopID       uint        `gorm:"index" json:"shop_id"`
	UserID       uint        `json:"user_id"` // Who processed it
	CustomerName string      `gorm:"size:100" json:"customer_name"`
	TotalAmount  int64       `json:"total_amount"`
	Status       string      `gorm:"size:20;index" json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	CancelledAt  *time.Time  `json:"cancelled_at,omitempty"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem - one sold line. Name and price are captured at sale time;
// ProductID is cleared if the product is later deleted.
type OrderItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderID     uint   `gorm:"index" json:"order_id"`
	ProductID   *uint  `gorm:"index" json:"product_id"`
	ProductName string `gorm:"size:255" json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Subtotal    int64  `json:"subtotal"`
}

// StockMovement - audit trail of every stock change.
type StockMovement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index" json:"product_id"`
	OrderID   *uint     `gorm:"index" json:"order_id,omitempty"`
	Delta     int       `json:"delta"` // positive = in, negative = out
	Reason    string    `gorm:"size:20" json:"reason"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Stock movement reasons
const (
	MoveSale   = "sale"
	MoveCancel = "cancel"
	MoveAdjust = "adjust"
	MoveInit   = "initial"
)

// CategorySetting - a user-editable sub-category under a main category.
type CategorySetting struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	MainCategory string `gorm:"size:50;not null;uniqueIndex:idx_category_sub" json:"main_category"`
	Name         string `gorm:"size:100;not null;uniqueIndex:idx_category_sub" json:"name"`
}
