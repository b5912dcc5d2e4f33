package supplier

import "github.com/simp-lee/partstore/internal/domain"

// CreateSupplierRequest represents the input for creating a new supplier.
type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	ContactPerson string `json:"contact_person" binding:"omitempty,max=200"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone" binding:"omitempty,max=50"`
	Address       string `json:"address" binding:"omitempty,max=500"`
}

// UpdateSupplierRequest represents a partial update; absent fields keep
// their current values.
type UpdateSupplierRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=200"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Address       *string `json:"address" binding:"omitempty,max=500"`
}

// SupplierResponse is the wire representation of a supplier.
type SupplierResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

func toSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
	}
}

func toSupplierResponses(suppliers []domain.Supplier) []SupplierResponse {
	out := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, toSupplierResponse(&suppliers[i]))
	}
	return out
}
