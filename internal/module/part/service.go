package part

import (
	"context"
	"strings"
	"time"

	"github.com/simp-lee/partstore/internal/domain"
)

// partService implements domain.PartService.
type partService struct {
	repo      domain.PartRepository
	suppliers domain.SupplierRepository
}

// NewPartService creates a new PartService with the given repositories.
// The supplier repository is used to verify supplier references on writes.
func NewPartService(repo domain.PartRepository, suppliers domain.SupplierRepository) domain.PartService {
	return &partService{repo: repo, suppliers: suppliers}
}

// CreatePart validates input, builds a Part, and persists it via the repository.
func (s *partService) CreatePart(ctx context.Context, in domain.PartInput) (*domain.Part, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.PartNumber = strings.TrimSpace(in.PartNumber)

	if err := s.validateInput(ctx, in.Name, in.Price, in.Quantity, in.ReorderLevel, in.SupplierID); err != nil {
		return nil, err
	}

	part := &domain.Part{
		Name:         in.Name,
		PartNumber:   in.PartNumber,
		Description:  in.Description,
		Price:        in.Price,
		Quantity:     in.Quantity,
		ReorderLevel: in.ReorderLevel,
		SupplierID:   in.SupplierID,
	}

	if err := s.repo.Create(ctx, part); err != nil {
		return nil, err
	}

	return part, nil
}

// GetPart retrieves a part by ID.
func (s *partService) GetPart(ctx context.Context, id uint) (*domain.Part, error) {
	return s.repo.GetByID(ctx, id)
}

// ListParts returns a paginated list of parts.
func (s *partService) ListParts(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.Part], error) {
	return s.repo.List(ctx, q)
}

// AllParts returns the full matching collection, unpaginated.
func (s *partService) AllParts(ctx context.Context, search string) ([]domain.Part, error) {
	return s.repo.ListAll(ctx, search)
}

// LowStockParts returns the paginated set of parts at or below their reorder level.
func (s *partService) LowStockParts(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.Part], error) {
	return s.repo.ListLowStock(ctx, q)
}

// UpdatePart loads the existing part, applies the patch, and persists it.
func (s *partService) UpdatePart(ctx context.Context, id uint, patch domain.PartPatch) (*domain.Part, error) {
	part, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		part.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.PartNumber != nil {
		part.PartNumber = strings.TrimSpace(*patch.PartNumber)
	}
	if patch.Description != nil {
		part.Description = *patch.Description
	}
	if patch.Price != nil {
		part.Price = *patch.Price
	}
	if patch.Quantity != nil {
		part.Quantity = *patch.Quantity
	}
	if patch.ReorderLevel != nil {
		part.ReorderLevel = *patch.ReorderLevel
	}
	if patch.SupplierID != nil {
		part.SupplierID = patch.SupplierID
	}

	if err := s.validateInput(ctx, part.Name, part.Price, part.Quantity, part.ReorderLevel, part.SupplierID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, part); err != nil {
		return nil, err
	}

	return part, nil
}

// DeletePart removes a part by ID.
func (s *partService) DeletePart(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// PartsUsage returns the aggregated consumption records for all parts.
func (s *partService) PartsUsage(ctx context.Context) ([]domain.UsageRecord, error) {
	return s.repo.Usage(ctx)
}

// UsePart consumes stock of a part and records the usage event.
func (s *partService) UsePart(ctx context.Context, id uint, quantity int, reference string) (*domain.Part, error) {
	if quantity <= 0 {
		return nil, domain.NewAppError(domain.CodeValidation, "quantity must be positive", nil)
	}
	return s.repo.RecordUsage(ctx, id, quantity, strings.TrimSpace(reference), time.Now().UTC())
}

// validateInput checks the invariants shared by create and update.
func (s *partService) validateInput(ctx context.Context, name string, price float64, quantity, reorderLevel int, supplierID *uint) error {
	if name == "" {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if price < 0 {
		return domain.NewAppError(domain.CodeValidation, "price must not be negative", nil)
	}
	if quantity < 0 {
		return domain.NewAppError(domain.CodeValidation, "quantity must not be negative", nil)
	}
	if reorderLevel < 0 {
		return domain.NewAppError(domain.CodeValidation, "reorder level must not be negative", nil)
	}
	if supplierID != nil {
		if _, err := s.suppliers.GetByID(ctx, *supplierID); err != nil {
			if domain.IsNotFound(err) {
				return domain.NewAppError(domain.CodeValidation, "supplier does not exist", nil)
			}
			return err
		}
	}
	return nil
}
