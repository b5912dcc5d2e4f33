package part

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/partstore/internal/domain"
	"github.com/simp-lee/partstore/internal/pkg"
)

// PartHandler handles REST API requests for the part resource.
type PartHandler struct {
	svc domain.PartService
}

// NewPartHandler creates a new PartHandler with the given service.
func NewPartHandler(svc domain.PartService) *PartHandler {
	return &PartHandler{svc: svc}
}

// Create handles POST /parts.
func (h *PartHandler) Create(c *gin.Context) {
	var req CreatePartRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	part, err := h.svc.CreatePart(c.Request.Context(), domain.PartInput{
		Name:         req.Name,
		PartNumber:   req.PartNumber,
		Description:  req.Description,
		Price:        req.Price,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		SupplierID:   req.SupplierID,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, toPartResponse(part))
}

// Get handles GET /parts/:id.
func (h *PartHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	part, err := h.svc.GetPart(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, toPartResponse(part))
}

// List handles GET /parts.
//
// Requests without pagination parameters get the legacy bare-array shape;
// everything else gets the {"parts": [...], "pagination": {...}} envelope.
func (h *PartHandler) List(c *gin.Context) {
	q := pkg.ParseListQuery(c)

	if q.Legacy {
		parts, err := h.svc.AllParts(c.Request.Context(), q.Search)
		if err != nil {
			pkg.Error(c, err)
			return
		}
		pkg.Success(c, toPartResponses(parts))
		return
	}

	result, err := h.svc.ListParts(c.Request.Context(), q)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, "parts", toPartResponses(result.Items), pkg.PageInfo(result))
}

// LowStock handles GET /parts/low-stock.
func (h *PartHandler) LowStock(c *gin.Context) {
	q := pkg.ParseListQuery(c)

	result, err := h.svc.LowStockParts(c.Request.Context(), q)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, "parts", toPartResponses(result.Items), pkg.PageInfo(result))
}

// Usage handles GET /parts/usage.
func (h *PartHandler) Usage(c *gin.Context) {
	records, err := h.svc.PartsUsage(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, records)
}

// Update handles PUT /parts/:id.
func (h *PartHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req UpdatePartRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	part, err := h.svc.UpdatePart(c.Request.Context(), id, domain.PartPatch{
		Name:         req.Name,
		PartNumber:   req.PartNumber,
		Description:  req.Description,
		Price:        req.Price,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		SupplierID:   req.SupplierID,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, toPartResponse(part))
}

// Delete handles DELETE /parts/:id.
func (h *PartHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.DeletePart(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Message(c, "Part deleted successfully")
}

// Use handles POST /parts/:id/usage.
func (h *PartHandler) Use(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req UsePartRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	part, err := h.svc.UsePart(c.Request.Context(), id, req.Quantity, req.Reference)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, toPartResponse(part))
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
