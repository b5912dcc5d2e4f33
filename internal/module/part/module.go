package part

import "github.com/gin-gonic/gin"

// PartModule implements the app.Module interface for the part domain.
type PartModule struct {
	handler *PartHandler
}

// NewModule creates a new PartModule with the given handler.
// Panics if h is nil.
func NewModule(h *PartHandler) *PartModule {
	if h == nil {
		panic("part.NewModule: handler must not be nil")
	}
	return &PartModule{handler: h}
}

// RegisterRoutes registers part API routes.
//
// The static /parts/low-stock and /parts/usage routes coexist with the
// /parts/:id parameter route; gin gives static segments priority.
func (m *PartModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/parts", m.handler.Create)
	api.GET("/parts", m.handler.List)
	api.GET("/parts/low-stock", m.handler.LowStock)
	api.GET("/parts/usage", m.handler.Usage)
	api.GET("/parts/:id", m.handler.Get)
	api.PUT("/parts/:id", m.handler.Update)
	api.DELETE("/parts/:id", m.handler.Delete)
	api.POST("/parts/:id/usage", m.handler.Use)
}
