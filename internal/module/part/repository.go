package part

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/simp-lee/partstore/internal/domain"
	"github.com/simp-lee/partstore/internal/pkg"
	"gorm.io/gorm"
)

// Columns matched by the search term in List queries.
var searchColumns = []string{"name", "part_number", "description"}

// partRepository implements domain.PartRepository using GORM.
type partRepository struct {
	db *gorm.DB
}

// NewPartRepository creates a new PartRepository backed by the given GORM database.
func NewPartRepository(db *gorm.DB) domain.PartRepository {
	return &partRepository{db: db}
}

// Create inserts a new part into the database.
func (r *partRepository) Create(ctx context.Context, part *domain.Part) error {
	if err := r.db.WithContext(ctx).Create(part).Error; err != nil {
		return mapError(err)
	}
	return r.loadSupplier(ctx, part)
}

// GetByID retrieves a part by its primary key, with its supplier preloaded.
func (r *partRepository) GetByID(ctx context.Context, id uint) (*domain.Part, error) {
	var part domain.Part
	if err := r.db.WithContext(ctx).Preload("Supplier").First(&part, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &part, nil
}

// List returns a paginated list of parts matching the search term.
func (r *partRepository) List(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.Part], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Part{}).
		Scopes(pkg.Search(q.Search, searchColumns...))

	if err := base.Count(&total).Error; err != nil {
		return nil, mapError(err)
	}

	var parts []domain.Part
	if err := base.Preload("Supplier").
		Scopes(pkg.Paginate(q)).
		Order("id DESC").
		Find(&parts).Error; err != nil {
		return nil, mapError(err)
	}

	return pkg.NewPageResult(parts, total, q), nil
}

// ListAll returns the full collection matching the search term, for legacy
// callers that predate pagination.
func (r *partRepository) ListAll(ctx context.Context, search string) ([]domain.Part, error) {
	var parts []domain.Part
	if err := r.db.WithContext(ctx).
		Scopes(pkg.Search(search, searchColumns...)).
		Preload("Supplier").
		Order("id DESC").
		Find(&parts).Error; err != nil {
		return nil, mapError(err)
	}
	return parts, nil
}

// ListLowStock returns the paginated set of parts at or below their reorder level.
func (r *partRepository) ListLowStock(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.Part], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Part{}).
		Where("quantity <= reorder_level")

	if err := base.Count(&total).Error; err != nil {
		return nil, mapError(err)
	}

	var parts []domain.Part
	if err := base.Preload("Supplier").
		Scopes(pkg.Paginate(q)).
		Order("id DESC").
		Find(&parts).Error; err != nil {
		return nil, mapError(err)
	}

	return pkg.NewPageResult(parts, total, q), nil
}

// Update saves changes to an existing part.
func (r *partRepository) Update(ctx context.Context, part *domain.Part) error {
	if err := r.db.WithContext(ctx).Save(part).Error; err != nil {
		return mapError(err)
	}
	return r.loadSupplier(ctx, part)
}

// Delete removes a part by ID.
func (r *partRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Part{}, id)
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Usage aggregates all consumption events per part, most used first.
func (r *partRepository) Usage(ctx context.Context) ([]domain.UsageRecord, error) {
	type usageRow struct {
		PartID     uint
		Name       string
		PartNumber string
		Quantity   int
		UsedAt     time.Time
	}

	var rows []usageRow
	err := r.db.WithContext(ctx).
		Model(&domain.PartUsage{}).
		Select("part_usages.part_id, parts.name, parts.part_number, part_usages.quantity, part_usages.used_at").
		Joins("JOIN parts ON parts.id = part_usages.part_id").
		Scan(&rows).Error
	if err != nil {
		return nil, mapError(err)
	}

	byPart := make(map[uint]*domain.UsageRecord, len(rows))
	order := make([]uint, 0, len(rows))
	for _, row := range rows {
		rec, ok := byPart[row.PartID]
		if !ok {
			rec = &domain.UsageRecord{
				PartID:     row.PartID,
				Name:       row.Name,
				PartNumber: row.PartNumber,
			}
			byPart[row.PartID] = rec
			order = append(order, row.PartID)
		}
		rec.TotalUsed += row.Quantity
		if row.UsedAt.After(rec.LastUsedAt) {
			rec.LastUsedAt = row.UsedAt
		}
	}

	records := make([]domain.UsageRecord, 0, len(order))
	for _, id := range order {
		records = append(records, *byPart[id])
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TotalUsed > records[j].TotalUsed
	})
	return records, nil
}

// RecordUsage decrements the part's stock and appends a usage event in one
// transaction. Stock never drops below zero.
func (r *partRepository) RecordUsage(ctx context.Context, partID uint, quantity int, reference string, usedAt time.Time) (*domain.Part, error) {
	var part domain.Part

	err := pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&part, partID).Error; err != nil {
			return mapError(err)
		}

		if part.Quantity < quantity {
			return domain.NewAppError(domain.CodeValidation, "insufficient stock", nil)
		}

		part.Quantity -= quantity
		if err := tx.Save(&part).Error; err != nil {
			return mapError(err)
		}

		usage := domain.PartUsage{
			PartID:    partID,
			Quantity:  quantity,
			Reference: reference,
			UsedAt:    usedAt,
		}
		if err := tx.Create(&usage).Error; err != nil {
			return mapError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.loadSupplier(ctx, &part); err != nil {
		return nil, err
	}
	return &part, nil
}

// loadSupplier populates the denormalized supplier association after a write.
func (r *partRepository) loadSupplier(ctx context.Context, part *domain.Part) error {
	if part.SupplierID == nil {
		part.Supplier = nil
		return nil
	}
	var supplier domain.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, *part.SupplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			part.Supplier = nil
			return nil
		}
		return mapError(err)
	}
	part.Supplier = &supplier
	return nil
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
// error message. This is needed because not all GORM dialectors translate
// driver-level errors to gorm.ErrDuplicatedKey (e.g. the pure-Go SQLite driver).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
