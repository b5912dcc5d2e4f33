package supplier

import "github.com/gin-gonic/gin"

// SupplierModule implements the app.Module interface for the supplier domain.
//
// Supplier routes live under the /parts prefix for historical reasons: the
// singular /parts/supplier for mutations and the plural /parts/suppliers for
// listing.
type SupplierModule struct {
	handler *SupplierHandler
}

// NewModule creates a new SupplierModule with the given handler.
// Panics if h is nil.
func NewModule(h *SupplierHandler) *SupplierModule {
	if h == nil {
		panic("supplier.NewModule: handler must not be nil")
	}
	return &SupplierModule{handler: h}
}

// RegisterRoutes registers supplier API routes.
func (m *SupplierModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/parts/supplier", m.handler.Create)
	api.GET("/parts/suppliers", m.handler.List)
	api.PUT("/parts/supplier/:id", m.handler.Update)
	api.DELETE("/parts/supplier/:id", m.handler.Delete)
}
