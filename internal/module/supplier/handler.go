package supplier

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/partstore/internal/domain"
	"github.com/simp-lee/partstore/internal/pkg"
)

// SupplierHandler handles REST API requests for the supplier resource.
type SupplierHandler struct {
	svc domain.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler with the given service.
func NewSupplierHandler(svc domain.SupplierService) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

// Create handles POST /parts/supplier.
func (h *SupplierHandler) Create(c *gin.Context) {
	var req CreateSupplierRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	supplier, err := h.svc.CreateSupplier(c.Request.Context(), domain.SupplierInput{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, toSupplierResponse(supplier))
}

// List handles GET /parts/suppliers.
//
// Requests without pagination parameters get the legacy bare-array shape;
// everything else gets the {"suppliers": [...], "pagination": {...}} envelope.
func (h *SupplierHandler) List(c *gin.Context) {
	q := pkg.ParseListQuery(c)

	if q.Legacy {
		suppliers, err := h.svc.AllSuppliers(c.Request.Context())
		if err != nil {
			pkg.Error(c, err)
			return
		}
		pkg.Success(c, toSupplierResponses(suppliers))
		return
	}

	result, err := h.svc.ListSuppliers(c.Request.Context(), q)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, "suppliers", toSupplierResponses(result.Items), pkg.PageInfo(result))
}

// Update handles PUT /parts/supplier/:id.
func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req UpdateSupplierRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	supplier, err := h.svc.UpdateSupplier(c.Request.Context(), id, domain.SupplierPatch{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, toSupplierResponse(supplier))
}

// Delete handles DELETE /parts/supplier/:id.
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.DeleteSupplier(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Message(c, "Supplier deleted successfully")
}

// parseID extracts and parses the :id path parameter.
func parseID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
