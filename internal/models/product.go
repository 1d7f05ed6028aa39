package models

import "time"

// Marketplace listing types.
const (
	ProductTypeBuy    = "buy"
	ProductTypeSell   = "sell"
	ProductTypeBarter = "barter"
)

// Product represents a marketplace listing: something a farmer sells, wants to
// buy, or offers in exchange.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string    `json:"title" validate:"required,min=3,max=100"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Price       float64   `json:"price" validate:"gte=0"`
	Type        string    `json:"type" gorm:"index;type:varchar(16)" validate:"required,oneof=buy sell barter"`
	Category    string    `json:"category" gorm:"index;type:varchar(32)" validate:"required,oneof=grains vegetables fruits seeds fertilizer machinery tools"`
	Location    string    `json:"location" validate:"omitempty,max=100"`
	Seller      string    `json:"seller" validate:"required,max=100"`
	Phone       string    `json:"phone" validate:"omitempty,max=20"`
	Image       string    `json:"image,omitempty"`
	Rating      float64   `json:"rating" validate:"gte=0,lte=5"`
	Quantity    string    `json:"quantity" validate:"omitempty,max=50"`
	Quality     string    `json:"quality" validate:"omitempty,max=50"`
	OwnerID     string    `json:"owner_id,omitempty" gorm:"type:varchar(36)"`
	Position    int       `json:"-" gorm:"index"` // Insertion order within the catalog
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SearchText returns the fields matched by a catalog search.
func (p Product) SearchText() (string, string) { return p.Title, p.Description }

// Kind returns the listing type.
func (p Product) Kind() string { return p.Type }

// Group returns the listing category.
func (p Product) Group() string { return p.Category }
