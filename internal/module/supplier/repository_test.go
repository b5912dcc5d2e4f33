package supplier

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/simp-lee/partstore/internal/domain"
)

// setupTestDB creates an in-memory SQLite database with the inventory tables.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Supplier{}, &domain.Part{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSupplierRepository(db)
	ctx := context.Background()

	supplier := &domain.Supplier{
		Name:          "Auto Parts Co.",
		ContactPerson: "Jane Doe",
		Email:         "jane@autoparts.example",
	}
	if err := repo.Create(ctx, supplier); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if supplier.ID == 0 {
		t.Fatal("expected non-zero ID after Create")
	}

	got, err := repo.GetByID(ctx, supplier.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Auto Parts Co." || got.ContactPerson != "Jane Doe" {
		t.Errorf("got %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSupplierRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	if !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestList_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSupplierRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Auto Parts Co.", "Gasket World", "Bolt Barn", "Hose House"} {
		if err := repo.Create(ctx, &domain.Supplier{Name: name}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	res, err := repo.List(ctx, domain.ListQuery{Page: 2, Limit: 3})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.TotalItems != 4 || res.TotalPages != 2 {
		t.Errorf("expected total 4 over 2 pages, got %d/%d", res.TotalItems, res.TotalPages)
	}
	if len(res.Items) != 1 {
		t.Errorf("expected 1 item on page 2, got %d", len(res.Items))
	}
	// id DESC: the first-created supplier lands on the last page.
	if res.Items[0].Name != "Auto Parts Co." {
		t.Errorf("expected Auto Parts Co. on the last page, got %q", res.Items[0].Name)
	}
}

func TestListAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSupplierRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Auto Parts Co.", "Gasket World"} {
		if err := repo.Create(ctx, &domain.Supplier{Name: name}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 suppliers, got %d", len(all))
	}
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSupplierRepository(db)
	ctx := context.Background()

	supplier := &domain.Supplier{Name: "Auto Parts Co."}
	if err := repo.Create(ctx, supplier); err != nil {
		t.Fatalf("Create: %v", err)
	}

	supplier.Phone = "555-0100"
	if err := repo.Update(ctx, supplier); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, supplier.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Phone != "555-0100" {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestDelete_DetachesParts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSupplierRepository(db)
	ctx := context.Background()

	supplier := &domain.Supplier{Name: "Auto Parts Co."}
	if err := repo.Create(ctx, supplier); err != nil {
		t.Fatalf("Create: %v", err)
	}
	part := domain.Part{Name: "Engine Oil", SupplierID: &supplier.ID}
	if err := db.Create(&part).Error; err != nil {
		t.Fatalf("seed part: %v", err)
	}

	if err := repo.Delete(ctx, supplier.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := repo.GetByID(ctx, supplier.ID); !domain.IsNotFound(err) {
		t.Errorf("expected supplier gone, got %v", err)
	}

	// The part survives with its supplier reference cleared.
	var got domain.Part
	if err := db.First(&got, part.ID).Error; err != nil {
		t.Fatalf("load part: %v", err)
	}
	if got.SupplierID != nil {
		t.Errorf("expected supplier reference cleared, got %v", *got.SupplierID)
	}
}

func TestDelete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSupplierRepository(db)

	if err := repo.Delete(context.Background(), 999); !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
