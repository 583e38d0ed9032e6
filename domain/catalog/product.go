/*
Package catalog - read-side product and shop models.

The catalog is maintained elsewhere (shop-owner tooling); this service reads
it to validate carts and orders and to snapshot names/prices/fees. The only
writes flowing back are the rating aggregates recomputed by the stats worker
when reviews land.
*/
package catalog

import (
	"time"

	"foody/domain/shared"
)

// Product catalog entry.
// Fields are private; the repository rebuilds instances via ReconstructionDTO.
type Product struct {
	id          string
	shopID      string
	name        string
	image       string
	price       shared.Money
	available   bool
	deleted     bool
	ratingAvg   float64
	ratingCount int
	soldCount   int
	updatedAt   time.Time
}

// ProductReconstructionDTO rebuilds a Product from storage.
// Repository-layer use only.
type ProductReconstructionDTO struct {
	ID          string
	ShopID      string
	Name        string
	Image       string
	Price       shared.Money
	Available   bool
	Deleted     bool
	RatingAvg   float64
	RatingCount int
	SoldCount   int
	UpdatedAt   time.Time
}

// RebuildProduct reconstructs a Product from a DTO.
func RebuildProduct(dto ProductReconstructionDTO) *Product {
	return &Product{
		id:          dto.ID,
		shopID:      dto.ShopID,
		name:        dto.Name,
		image:       dto.Image,
		price:       dto.Price,
		available:   dto.Available,
		deleted:     dto.Deleted,
		ratingAvg:   dto.RatingAvg,
		ratingCount: dto.RatingCount,
		soldCount:   dto.SoldCount,
		updatedAt:   dto.UpdatedAt,
	}
}

// IsOrderable reports whether the product may be added to a cart or ordered:
// available and not soft-deleted.
func (p *Product) IsOrderable() bool {
	return p.available && !p.deleted
}

func (p *Product) ID() string           { return p.id }
func (p *Product) ShopID() string       { return p.shopID }
func (p *Product) Name() string         { return p.name }
func (p *Product) Image() string        { return p.image }
func (p *Product) Price() shared.Money  { return p.price }
func (p *Product) Available() bool      { return p.available }
func (p *Product) Deleted() bool        { return p.deleted }
func (p *Product) RatingAvg() float64   { return p.ratingAvg }
func (p *Product) RatingCount() int     { return p.ratingCount }
func (p *Product) SoldCount() int       { return p.soldCount }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
