package part

import "github.com/simp-lee/partstore/internal/domain"

// CreatePartRequest represents the input for creating a new part.
// Field names follow the wire convention (snake_case).
type CreatePartRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=200"`
	PartNumber   string  `json:"part_number" binding:"omitempty,max=100"`
	Description  string  `json:"description" binding:"omitempty,max=1000"`
	Price        float64 `json:"price" binding:"omitempty,gte=0"`
	Quantity     int     `json:"quantity" binding:"omitempty,gte=0"`
	ReorderLevel int     `json:"reorder_level" binding:"omitempty,gte=0"`
	SupplierID   *uint   `json:"supplier_id"`
}

// UpdatePartRequest represents a partial update; absent fields keep their
// current values.
type UpdatePartRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1,max=200"`
	PartNumber   *string  `json:"part_number" binding:"omitempty,max=100"`
	Description  *string  `json:"description" binding:"omitempty,max=1000"`
	Price        *float64 `json:"price" binding:"omitempty,gte=0"`
	Quantity     *int     `json:"quantity" binding:"omitempty,gte=0"`
	ReorderLevel *int     `json:"reorder_level" binding:"omitempty,gte=0"`
	SupplierID   *uint    `json:"supplier_id"`
}

// UsePartRequest represents a stock consumption event.
type UsePartRequest struct {
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Reference string `json:"reference" binding:"omitempty,max=200"`
}

// PartResponse is the wire representation of a part. Supplier carries the
// denormalized supplier name and is omitted when the part has none.
type PartResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	PartNumber   string  `json:"part_number"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	ReorderLevel int     `json:"reorder_level"`
	SupplierID   *uint   `json:"supplier_id"`
	Supplier     string  `json:"supplier,omitempty"`
}

func toPartResponse(p *domain.Part) PartResponse {
	resp := PartResponse{
		ID:           p.ID,
		Name:         p.Name,
		PartNumber:   p.PartNumber,
		Description:  p.Description,
		Price:        p.Price,
		Quantity:     p.Quantity,
		ReorderLevel: p.ReorderLevel,
		SupplierID:   p.SupplierID,
	}
	if p.Supplier != nil {
		resp.Supplier = p.Supplier.Name
	}
	return resp
}

func toPartResponses(parts []domain.Part) []PartResponse {
	out := make([]PartResponse, 0, len(parts))
	for i := range parts {
		out = append(out, toPartResponse(&parts[i]))
	}
	return out
}
