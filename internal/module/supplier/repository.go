package supplier

import (
	"context"
	"errors"
	"strings"

	"github.com/simp-lee/partstore/internal/domain"
	"github.com/simp-lee/partstore/internal/pkg"
	"gorm.io/gorm"
)

// supplierRepository implements domain.SupplierRepository using GORM.
type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new SupplierRepository backed by the given GORM database.
func NewSupplierRepository(db *gorm.DB) domain.SupplierRepository {
	return &supplierRepository{db: db}
}

// Create inserts a new supplier into the database.
func (r *supplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	if err := r.db.WithContext(ctx).Create(supplier).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// GetByID retrieves a supplier by its primary key.
func (r *supplierRepository) GetByID(ctx context.Context, id uint) (*domain.Supplier, error) {
	var supplier domain.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &supplier, nil
}

// List returns a paginated list of suppliers.
func (r *supplierRepository) List(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.Supplier], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Supplier{})

	if err := base.Count(&total).Error; err != nil {
		return nil, mapError(err)
	}

	var suppliers []domain.Supplier
	if err := base.Scopes(pkg.Paginate(q)).
		Order("id DESC").
		Find(&suppliers).Error; err != nil {
		return nil, mapError(err)
	}

	return pkg.NewPageResult(suppliers, total, q), nil
}

// ListAll returns all suppliers, for legacy callers that predate pagination.
func (r *supplierRepository) ListAll(ctx context.Context) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&suppliers).Error; err != nil {
		return nil, mapError(err)
	}
	return suppliers, nil
}

// Update saves changes to an existing supplier.
func (r *supplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	if err := r.db.WithContext(ctx).Save(supplier).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// Delete removes a supplier and detaches it from any parts that reference it,
// in a single transaction.
func (r *supplierRepository) Delete(ctx context.Context, id uint) error {
	return pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Part{}).
			Where("supplier_id = ?", id).
			Update("supplier_id", nil).Error; err != nil {
			return mapError(err)
		}

		result := tx.Delete(&domain.Supplier{}, id)
		if result.Error != nil {
			return mapError(result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message, for dialectors that don't translate driver-level errors to
// gorm.ErrDuplicatedKey.
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
