package domain

import "context"

// Supplier is a vendor that parts can be sourced from. Only the name is
// required; contact details are optional. Suppliers carry no lifecycle
// status; any "Active" label shown next to a supplier is a display
// constant owned by the view layer.
type Supplier struct {
	BaseModel
	Name          string `gorm:"size:200;not null" json:"name"`
	ContactPerson string `gorm:"size:200" json:"contact_person"`
	Email         string `gorm:"size:255" json:"email"`
	Phone         string `gorm:"size:50" json:"phone"`
	Address       string `gorm:"size:500" json:"address"`
}

// SupplierInput carries the fields accepted when creating a supplier.
type SupplierInput struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
}

// SupplierPatch carries a partial update; nil fields keep their current value.
type SupplierPatch struct {
	Name          *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
}

// SupplierRepository defines the data access interface for suppliers.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *Supplier) error
	GetByID(ctx context.Context, id uint) (*Supplier, error)
	List(ctx context.Context, q ListQuery) (*PageResult[Supplier], error)
	ListAll(ctx context.Context) ([]Supplier, error)
	Update(ctx context.Context, supplier *Supplier) error
	// Delete removes the supplier and detaches it from any parts that
	// reference it, in a single transaction.
	Delete(ctx context.Context, id uint) error
}

// SupplierService defines the business logic interface for suppliers.
type SupplierService interface {
	CreateSupplier(ctx context.Context, in SupplierInput) (*Supplier, error)
	GetSupplier(ctx context.Context, id uint) (*Supplier, error)
	ListSuppliers(ctx context.Context, q ListQuery) (*PageResult[Supplier], error)
	AllSuppliers(ctx context.Context) ([]Supplier, error)
	UpdateSupplier(ctx context.Context, id uint, patch SupplierPatch) (*Supplier, error)
	DeleteSupplier(ctx context.Context, id uint) error
}
