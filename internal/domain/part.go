package domain

import (
	"context"
	"time"
)

// Part is a spare part tracked in the inventory.
//
// Quantity is the current stock level; ReorderLevel is the threshold at or
// below which the part counts as low stock. Both default to zero and are
// never negative.
type Part struct {
	BaseModel
	Name         string    `gorm:"size:200;not null" json:"name"`
	PartNumber   string    `gorm:"size:100;index" json:"part_number"`
	Description  string    `gorm:"size:1000" json:"description"`
	Price        float64   `gorm:"not null;default:0" json:"price"`
	Quantity     int       `gorm:"not null;default:0" json:"quantity"`
	ReorderLevel int       `gorm:"not null;default:0" json:"reorder_level"`
	SupplierID   *uint     `gorm:"index" json:"supplier_id"`
	Supplier     *Supplier `gorm:"foreignKey:SupplierID" json:"-"`
}

// PartUsage records a single stock consumption event.
type PartUsage struct {
	BaseModel
	PartID    uint      `gorm:"index;not null" json:"part_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Reference string    `gorm:"size:200" json:"reference"`
	UsedAt    time.Time `gorm:"not null" json:"used_at"`
}

// UsageRecord is the aggregated consumption of one part across all its
// usage events. It is derived, not persisted.
type UsageRecord struct {
	PartID     uint      `json:"part_id"`
	Name       string    `json:"name"`
	PartNumber string    `json:"part_number"`
	TotalUsed  int       `json:"total_used"`
	LastUsedAt time.Time `json:"last_used_at"`
}

// PartInput carries the fields accepted when creating a part.
type PartInput struct {
	Name         string
	PartNumber   string
	Description  string
	Price        float64
	Quantity     int
	ReorderLevel int
	SupplierID   *uint
}

// PartPatch carries a partial update; nil fields keep their current value.
type PartPatch struct {
	Name         *string
	PartNumber   *string
	Description  *string
	Price        *float64
	Quantity     *int
	ReorderLevel *int
	SupplierID   *uint
}

// PartRepository defines the data access interface for parts.
type PartRepository interface {
	Create(ctx context.Context, part *Part) error
	GetByID(ctx context.Context, id uint) (*Part, error)
	List(ctx context.Context, q ListQuery) (*PageResult[Part], error)
	ListAll(ctx context.Context, search string) ([]Part, error)
	ListLowStock(ctx context.Context, q ListQuery) (*PageResult[Part], error)
	Update(ctx context.Context, part *Part) error
	Delete(ctx context.Context, id uint) error
	Usage(ctx context.Context) ([]UsageRecord, error)
	RecordUsage(ctx context.Context, partID uint, quantity int, reference string, usedAt time.Time) (*Part, error)
}

// PartService defines the business logic interface for parts.
type PartService interface {
	CreatePart(ctx context.Context, in PartInput) (*Part, error)
	GetPart(ctx context.Context, id uint) (*Part, error)
	ListParts(ctx context.Context, q ListQuery) (*PageResult[Part], error)
	AllParts(ctx context.Context, search string) ([]Part, error)
	LowStockParts(ctx context.Context, q ListQuery) (*PageResult[Part], error)
	UpdatePart(ctx context.Context, id uint, patch PartPatch) (*Part, error)
	DeletePart(ctx context.Context, id uint) error
	PartsUsage(ctx context.Context) ([]UsageRecord, error)
	UsePart(ctx context.Context, id uint, quantity int, reference string) (*Part, error)
}
