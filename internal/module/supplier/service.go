package supplier

import (
	"context"
	"net/mail"
	"strings"

	"github.com/simp-lee/partstore/internal/domain"
)

// supplierService implements domain.SupplierService.
type supplierService struct {
	repo domain.SupplierRepository
}

// NewSupplierService creates a new SupplierService with the given repository.
func NewSupplierService(repo domain.SupplierRepository) domain.SupplierService {
	return &supplierService{repo: repo}
}

// CreateSupplier validates input, builds a Supplier, and persists it.
func (s *supplierService) CreateSupplier(ctx context.Context, in domain.SupplierInput) (*domain.Supplier, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if err := validateSupplier(in.Name, in.Email); err != nil {
		return nil, err
	}

	supplier := &domain.Supplier{
		Name:          in.Name,
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		Email:         in.Email,
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
	}

	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// GetSupplier retrieves a supplier by ID.
func (s *supplierService) GetSupplier(ctx context.Context, id uint) (*domain.Supplier, error) {
	return s.repo.GetByID(ctx, id)
}

// ListSuppliers returns a paginated list of suppliers.
func (s *supplierService) ListSuppliers(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.Supplier], error) {
	return s.repo.List(ctx, q)
}

// AllSuppliers returns the full collection, unpaginated.
func (s *supplierService) AllSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.repo.ListAll(ctx)
}

// UpdateSupplier loads the existing supplier, applies the patch, and persists it.
func (s *supplierService) UpdateSupplier(ctx context.Context, id uint, patch domain.SupplierPatch) (*domain.Supplier, error) {
	supplier, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		supplier.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.ContactPerson != nil {
		supplier.ContactPerson = strings.TrimSpace(*patch.ContactPerson)
	}
	if patch.Email != nil {
		supplier.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Phone != nil {
		supplier.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Address != nil {
		supplier.Address = strings.TrimSpace(*patch.Address)
	}

	if err := validateSupplier(supplier.Name, supplier.Email); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// DeleteSupplier removes a supplier by ID, detaching it from its parts.
func (s *supplierService) DeleteSupplier(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// validateSupplier checks that the name is present and the email, when set,
// is well formed.
func validateSupplier(name, email string) error {
	if name == "" {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return domain.NewAppError(domain.CodeValidation, "email must be a valid email address", nil)
		}
	}
	return nil
}
