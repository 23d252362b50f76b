package router

import (
	"github.com/gin-gonic/gin"

	"github.com/tms/backend/internal/interfaces/http/handler"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes under the versioned API group
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DispatchRoutes wires the load endpoints
type DispatchRoutes struct {
	Loads *handler.LoadHandler
}

// RegisterRoutes implements RouteRegistrar
func (d DispatchRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	loads := rg.Group("/dispatch/loads")
	{
		loads.POST("", d.Loads.Create)
		loads.GET("", d.Loads.List)
		loads.GET("/summary", d.Loads.StatusSummary)
		loads.GET("/number/:load_number", d.Loads.GetByLoadNumber)
		loads.GET("/:id", d.Loads.GetByID)
		loads.PUT("/:id", d.Loads.Update)
		loads.POST("/:id/evaluate", d.Loads.EvaluateUpdate)
		loads.PATCH("/:id/status", d.Loads.ChangeStatus)
		loads.DELETE("/:id", d.Loads.Delete)
	}
}

// FleetRoutes wires the driver and dispatcher endpoints
type FleetRoutes struct {
	Drivers     *handler.DriverHandler
	Dispatchers *handler.DispatcherHandler
}

// RegisterRoutes implements RouteRegistrar
func (f FleetRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	drivers := rg.Group("/fleet/drivers")
	{
		drivers.POST("", f.Drivers.Create)
		drivers.GET("", f.Drivers.List)
		drivers.GET("/active", f.Drivers.ListActive)
		drivers.GET("/:id", f.Drivers.GetByID)
		drivers.PUT("/:id", f.Drivers.Update)
		drivers.PATCH("/:id/truck", f.Drivers.AssignTruck)
		drivers.PATCH("/:id/deactivate", f.Drivers.Deactivate)
		drivers.PATCH("/:id/activate", f.Drivers.Activate)
	}

	dispatchers := rg.Group("/fleet/dispatchers")
	{
		dispatchers.POST("", f.Dispatchers.Create)
		dispatchers.GET("", f.Dispatchers.List)
		dispatchers.GET("/:id", f.Dispatchers.GetByID)
		dispatchers.PUT("/:id", f.Dispatchers.Update)
		dispatchers.DELETE("/:id", f.Dispatchers.Delete)
	}
}

// PartnerRoutes wires the broker and factoring company endpoints
type PartnerRoutes struct {
	Brokers            *handler.BrokerHandler
	FactoringCompanies *handler.FactoringCompanyHandler
}

// RegisterRoutes implements RouteRegistrar
func (p PartnerRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	brokers := rg.Group("/partner/brokers")
	{
		brokers.POST("", p.Brokers.Create)
		brokers.GET("", p.Brokers.List)
		brokers.GET("/:id", p.Brokers.GetByID)
		brokers.PUT("/:id", p.Brokers.Update)
		brokers.PATCH("/:id/deactivate", p.Brokers.Deactivate)
	}

	companies := rg.Group("/partner/factoring-companies")
	{
		companies.POST("", p.FactoringCompanies.Create)
		companies.GET("", p.FactoringCompanies.List)
		companies.GET("/:id", p.FactoringCompanies.GetByID)
		companies.PUT("/:id", p.FactoringCompanies.Update)
		companies.PATCH("/:id/default", p.FactoringCompanies.SetDefault)
	}
}

// AuditRoutes wires the read-only audit trail endpoints
type AuditRoutes struct {
	Audit *handler.AuditHandler
}

// RegisterRoutes implements RouteRegistrar
func (a AuditRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	audit := rg.Group("/audit")
	{
		audit.GET("/entries", a.Audit.List)
		audit.GET("/loads/:id", a.Audit.ListForLoad)
	}
}

// SystemRoutes wires the ping, info and outbox operator endpoints
type SystemRoutes struct {
	System *handler.SystemHandler
	Outbox *handler.OutboxHandler
}

// RegisterRoutes implements RouteRegistrar
func (s SystemRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/ping", s.System.Ping)
		system.GET("/info", s.System.GetSystemInfo)
	}

	if s.Outbox != nil {
		outbox := rg.Group("/system/outbox")
		{
			outbox.GET("/stats", s.Outbox.GetStats)
			outbox.GET("/dead-letters", s.Outbox.ListDeadLetters)
			outbox.POST("/dead-letters/retry", s.Outbox.RetryAll)
			outbox.GET("/entries/:id", s.Outbox.GetEntry)
			outbox.POST("/entries/:id/retry", s.Outbox.RetryEntry)
		}
	}
}
