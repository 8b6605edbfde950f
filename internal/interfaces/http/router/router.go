package router

import (
	"net/http"
	"path"
	"sort"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar registers routes on the versioned API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouteInfo describes one registered route
type RouteInfo struct {
	Method string
	Path   string
	Admin  bool
}

// Router owns the /api/<version> group and the domain groups mounted on it
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
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
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use adds middleware that runs for every API route but not for routes
// mounted directly on the engine (health, metrics, swagger)
func (r *Router) Use(middleware ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// BasePath returns the versioned API prefix
func (r *Router) BasePath() string {
	return "/api/" + r.apiVersion
}

// Setup mounts every registrar on the API group
func (r *Router) Setup() *gin.RouterGroup {
	api := r.engine.Group(r.BasePath())
	if len(r.middleware) > 0 {
		api.Use(r.middleware...)
	}
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
	return api
}

// Routes lists the routes of every registered DomainGroup, sorted by path
func (r *Router) Routes() []RouteInfo {
	var out []RouteInfo
	for _, registrar := range r.registrars {
		if dg, ok := registrar.(*DomainGroup); ok {
			out = append(out, dg.Routes(r.BasePath())...)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].Method < out[j].Method
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// DomainGroup collects the routes of one domain under a shared prefix.
// Routes added through the Admin* methods are guarded by the group's admin
// middleware.
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	admin      []gin.HandlerFunc
	routes     []routeDefinition
	subgroups  []*DomainGroup
}

type routeDefinition struct {
	method   string
	path     string
	admin    bool
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// WithAdminGuard sets the middleware placed in front of admin routes.
// Subgroups created afterwards inherit it.
func (dg *DomainGroup) WithAdminGuard(guard ...gin.HandlerFunc) *DomainGroup {
	dg.admin = guard
	return dg
}

// Handle registers a route for any method
func (dg *DomainGroup) Handle(method, relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: relativePath, handlers: handlers})
	return dg
}

// HandleAdmin registers a route only admins may call
func (dg *DomainGroup) HandleAdmin(method, relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: relativePath, admin: true, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodGet, relativePath, handlers...)
}

// POST registers a POST route
func (dg *DomainGroup) POST(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPost, relativePath, handlers...)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPut, relativePath, handlers...)
}

// PATCH registers a PATCH route
func (dg *DomainGroup) PATCH(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPatch, relativePath, handlers...)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodDelete, relativePath, handlers...)
}

// AdminGET registers an admin-only GET route
func (dg *DomainGroup) AdminGET(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.HandleAdmin(http.MethodGet, relativePath, handlers...)
}

// AdminPOST registers an admin-only POST route
func (dg *DomainGroup) AdminPOST(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.HandleAdmin(http.MethodPost, relativePath, handlers...)
}

// AdminPUT registers an admin-only PUT route
func (dg *DomainGroup) AdminPUT(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.HandleAdmin(http.MethodPut, relativePath, handlers...)
}

// Group creates a sub-group within this domain
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	sub := NewDomainGroup(name, prefix)
	sub.admin = dg.admin
	dg.subgroups = append(dg.subgroups, sub)
	return sub
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, route := range dg.routes {
		handlers := route.handlers
		if route.admin {
			handlers = append(append([]gin.HandlerFunc{}, dg.admin...), handlers...)
		}
		group.Handle(route.method, route.path, handlers...)
	}
	for _, sub := range dg.subgroups {
		sub.RegisterRoutes(group)
	}
}

// Routes lists this group's routes and its subgroups' under base
func (dg *DomainGroup) Routes(base string) []RouteInfo {
	prefix := path.Join(base, dg.prefix)
	out := make([]RouteInfo, 0, len(dg.routes))
	for _, route := range dg.routes {
		p := prefix
		if route.path != "" && route.path != "/" {
			p = path.Join(prefix, route.path)
		}
		out = append(out, RouteInfo{Method: route.method, Path: p, Admin: route.admin})
	}
	for _, sub := range dg.subgroups {
		out = append(out, sub.Routes(prefix)...)
	}
	return out
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}
