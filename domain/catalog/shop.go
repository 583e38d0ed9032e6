package catalog

import (
	"time"

	"foody/domain/shared"
)

// ShopStatus administrative status, distinct from the owner-toggled open flag.
type ShopStatus string

const (
	ShopStatusOpen      ShopStatus = "OPEN"
	ShopStatusClosed    ShopStatus = "CLOSED"
	ShopStatusSuspended ShopStatus = "SUSPENDED"
)

// Shop catalog entry.
type Shop struct {
	id              string
	ownerID         string
	name            string
	open            bool
	status          ShopStatus
	shipFeePerOrder shared.Money
	ratingAvg       float64
	ratingCount     int
	deliveredCount  int
	updatedAt       time.Time
}

// ShopReconstructionDTO rebuilds a Shop from storage.
// Repository-layer use only.
type ShopReconstructionDTO struct {
	ID              string
	OwnerID         string
	Name            string
	Open            bool
	Status          ShopStatus
	ShipFeePerOrder shared.Money
	RatingAvg       float64
	RatingCount     int
	DeliveredCount  int
	UpdatedAt       time.Time
}

// RebuildShop reconstructs a Shop from a DTO.
func RebuildShop(dto ShopReconstructionDTO) *Shop {
	return &Shop{
		id:              dto.ID,
		ownerID:         dto.OwnerID,
		name:            dto.Name,
		open:            dto.Open,
		status:          dto.Status,
		shipFeePerOrder: dto.ShipFeePerOrder,
		ratingAvg:       dto.RatingAvg,
		ratingCount:     dto.RatingCount,
		deliveredCount:  dto.DeliveredCount,
		updatedAt:       dto.UpdatedAt,
	}
}

// IsOpen reports whether the shop currently accepts orders:
// the owner's open flag AND administrative status OPEN.
func (s *Shop) IsOpen() bool {
	return s.open && s.status == ShopStatusOpen
}

// IsOwnedBy reports whether the given user owns this shop.
func (s *Shop) IsOwnedBy(userID string) bool {
	return s.ownerID == userID
}

func (s *Shop) ID() string                    { return s.id }
func (s *Shop) OwnerID() string               { return s.ownerID }
func (s *Shop) Name() string                  { return s.name }
func (s *Shop) Open() bool                    { return s.open }
func (s *Shop) Status() ShopStatus            { return s.status }
func (s *Shop) ShipFeePerOrder() shared.Money { return s.shipFeePerOrder }
func (s *Shop) RatingAvg() float64            { return s.ratingAvg }
func (s *Shop) RatingCount() int              { return s.ratingCount }
func (s *Shop) DeliveredCount() int           { return s.deliveredCount }
func (s *Shop) UpdatedAt() time.Time          { return s.updatedAt }
