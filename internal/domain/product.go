// Package domain contains the core business entities for the retail catalog.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sales velocity classifications.
const (
	VelocitySlow   = "slow"
	VelocityMedium = "medium"
	VelocityFast   = "fast"
)

// Product lifecycle statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// DefaultVelocity and DefaultStatus are applied when a product is created or
// imported without an explicit value.
const (
	DefaultVelocity = VelocityMedium
	DefaultStatus   = StatusActive
)

// Product is the catalog aggregate root.
type Product struct {
	ID          uuid.UUID `json:"id"`
	SKU         string    `json:"sku"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Cost        float64   `json:"cost"`
	Stock       int       `json:"stock"`
	Velocity    string    `json:"velocity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Attribute is a free-form name/value pair attached to a product. Duplicate
// names are allowed; each submission creates a new row.
type Attribute struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductListItem is the flattened projection returned by list and search
// queries: the product row plus aggregated media paths.
type ProductListItem struct {
	Product
	ImagePaths []string `json:"images"`
	VideoPaths []string `json:"videos"`
}

// ProductDetail is the full projection for a single product, including its
// attributes and media records.
type ProductDetail struct {
	Product
	Attributes []Attribute    `json:"attributes"`
	Images     []ProductImage `json:"images"`
	Videos     []ProductVideo `json:"videos"`
}

// ValidVelocity reports whether v is a recognized velocity classification.
func ValidVelocity(v string) bool {
	switch v {
	case VelocitySlow, VelocityMedium, VelocityFast:
		return true
	}
	return false
}

// ValidStatus reports whether s is a recognized product status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	}
	return false
}

// NormalizeVelocity returns v if valid, otherwise the default.
func NormalizeVelocity(v string) string {
	if ValidVelocity(v) {
		return v
	}
	return DefaultVelocity
}

// NormalizeStatus returns s if valid, otherwise the default.
func NormalizeStatus(s string) string {
	if ValidStatus(s) {
		return s
	}
	return DefaultStatus
}
