package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/zmfmock/server/api/handler"
)

type Handlers struct {
	Resource *apiHandler.ResourceHandler
	Admin    *apiHandler.AdminHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Resource endpoints (XML, authenticated)
	r.GET("/zmfrest/ResultCache/{token}", authMiddleware(handlers.Resource.ResultCache))
	r.GET("/zmfrest/ResultCache/{token}/{index}", authMiddleware(handlers.Resource.ResultCache))
	r.GET("/zmfrest/ResultCache/{token}/{index}/{count}", authMiddleware(handlers.Resource.ResultCache))
	r.GET("/zmfrest/{resource}", authMiddleware(handlers.Resource.List))

	// Admin introspection (JSON, mock-admin surface)
	r.GET("/admin/sessions", handlers.Admin.ListSessions)
	r.GET("/admin/tokens", handlers.Admin.ListTokens)
	r.GET("/admin/cache", handlers.Admin.ListCacheKeys)
	r.GET("/admin/resultsets", handlers.Admin.ListResultSets)
	r.DELETE("/admin/cache", handlers.Admin.ClearCache)
	r.DELETE("/admin/resultsets", handlers.Admin.ClearResultSets)
	r.DELETE("/admin/resultsets/{token}", handlers.Admin.DeleteResultSet)
	r.DELETE("/admin/sessions", handlers.Admin.ClearSessions)
	r.DELETE("/admin/tokens", handlers.Admin.ClearTokens)

	return r
}
