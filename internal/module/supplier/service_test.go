package supplier

import (
	"context"
	"testing"

	"github.com/simp-lee/partstore/internal/domain"
)

// mockSupplierRepo implements domain.SupplierRepository with overridable functions.
type mockSupplierRepo struct {
	createFn  func(ctx context.Context, supplier *domain.Supplier) error
	getByIDFn func(ctx context.Context, id uint) (*domain.Supplier, error)
	listFn    func(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.Supplier], error)
	listAllFn func(ctx context.Context) ([]domain.Supplier, error)
	updateFn  func(ctx context.Context, supplier *domain.Supplier) error
	deleteFn  func(ctx context.Context, id uint) error
}

func (m *mockSupplierRepo) Create(ctx context.Context, supplier *domain.Supplier) error {
	return m.createFn(ctx, supplier)
}
func (m *mockSupplierRepo) GetByID(ctx context.Context, id uint) (*domain.Supplier, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockSupplierRepo) List(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.Supplier], error) {
	return m.listFn(ctx, q)
}
func (m *mockSupplierRepo) ListAll(ctx context.Context) ([]domain.Supplier, error) {
	return m.listAllFn(ctx)
}
func (m *mockSupplierRepo) Update(ctx context.Context, supplier *domain.Supplier) error {
	return m.updateFn(ctx, supplier)
}
func (m *mockSupplierRepo) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

func TestCreateSupplier(t *testing.T) {
	var created *domain.Supplier
	repo := &mockSupplierRepo{
		createFn: func(ctx context.Context, supplier *domain.Supplier) error {
			supplier.ID = 1
			created = supplier
			return nil
		},
	}
	svc := NewSupplierService(repo)

	supplier, err := svc.CreateSupplier(context.Background(), domain.SupplierInput{
		Name:          "  Auto Parts Co.  ",
		ContactPerson: " Jane Doe ",
		Email:         " jane@autoparts.example ",
	})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}

	if supplier.Name != "Auto Parts Co." || supplier.ContactPerson != "Jane Doe" {
		t.Errorf("expected trimmed fields, got %+v", supplier)
	}
	if created == nil || created.ID != 1 {
		t.Errorf("expected supplier passed to repository, got %+v", created)
	}
}

func TestCreateSupplier_Validation(t *testing.T) {
	repo := &mockSupplierRepo{
		createFn: func(ctx context.Context, supplier *domain.Supplier) error {
			t.Error("repository called despite validation failure")
			return nil
		},
	}
	svc := NewSupplierService(repo)

	tests := []struct {
		name string
		in   domain.SupplierInput
	}{
		{"empty name", domain.SupplierInput{Name: "  "}},
		{"malformed email", domain.SupplierInput{Name: "Auto Parts Co.", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSupplier(context.Background(), tt.in)
			if !domain.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateSupplier_EmptyEmailAllowed(t *testing.T) {
	repo := &mockSupplierRepo{
		createFn: func(ctx context.Context, supplier *domain.Supplier) error { return nil },
	}
	svc := NewSupplierService(repo)

	if _, err := svc.CreateSupplier(context.Background(), domain.SupplierInput{Name: "Auto Parts Co."}); err != nil {
		t.Errorf("CreateSupplier without email: %v", err)
	}
}

func TestUpdateSupplier(t *testing.T) {
	stored := &domain.Supplier{
		BaseModel:     domain.BaseModel{ID: 1},
		Name:          "Auto Parts Co.",
		ContactPerson: "Jane Doe",
	}
	repo := &mockSupplierRepo{
		getByIDFn: func(ctx context.Context, id uint) (*domain.Supplier, error) {
			copied := *stored
			return &copied, nil
		},
		updateFn: func(ctx context.Context, supplier *domain.Supplier) error {
			stored = supplier
			return nil
		},
	}
	svc := NewSupplierService(repo)

	phone := " 555-0100 "
	supplier, err := svc.UpdateSupplier(context.Background(), 1, domain.SupplierPatch{Phone: &phone})
	if err != nil {
		t.Fatalf("UpdateSupplier: %v", err)
	}

	if supplier.Phone != "555-0100" {
		t.Errorf("expected trimmed phone, got %q", supplier.Phone)
	}
	if supplier.Name != "Auto Parts Co." || supplier.ContactPerson != "Jane Doe" {
		t.Errorf("unpatched fields changed: %+v", supplier)
	}
}

func TestUpdateSupplier_NotFound(t *testing.T) {
	repo := &mockSupplierRepo{
		getByIDFn: func(ctx context.Context, id uint) (*domain.Supplier, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := NewSupplierService(repo)

	name := "New Name"
	_, err := svc.UpdateSupplier(context.Background(), 99, domain.SupplierPatch{Name: &name})
	if !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateSupplier_InvalidPatch(t *testing.T) {
	repo := &mockSupplierRepo{
		getByIDFn: func(ctx context.Context, id uint) (*domain.Supplier, error) {
			return &domain.Supplier{BaseModel: domain.BaseModel{ID: 1}, Name: "Auto Parts Co."}, nil
		},
		updateFn: func(ctx context.Context, supplier *domain.Supplier) error {
			t.Error("repository called despite validation failure")
			return nil
		},
	}
	svc := NewSupplierService(repo)

	bad := "not-an-email"
	_, err := svc.UpdateSupplier(context.Background(), 1, domain.SupplierPatch{Email: &bad})
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestDeleteSupplier(t *testing.T) {
	var deleted uint
	repo := &mockSupplierRepo{
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = id
			return nil
		},
	}
	svc := NewSupplierService(repo)

	if err := svc.DeleteSupplier(context.Background(), 5); err != nil {
		t.Fatalf("DeleteSupplier: %v", err)
	}
	if deleted != 5 {
		t.Errorf("expected delete of id 5, got %d", deleted)
	}
}
