package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"catalog_backend/internal/app/di"
	authmw "catalog_backend/internal/feature/auth/transport/middleware"
	"catalog_backend/internal/platform/http/handler"
	"catalog_backend/internal/platform/http/middleware"
)

// Options configures the router.
type Options struct {
	// Debug appends error details to 500 responses.
	Debug bool
	// CORSOrigins lists allowed origins; "*" or empty allows all.
	CORSOrigins []string
	// DB is pinged by /healthz when set.
	DB handler.Pinger
}

// NewRouter builds the gin engine with every route of the API.
func NewRouter(c *di.Container, opts Options) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// ErrorRenderer must wrap Recovery so that panics are rendered like any other error.
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		cors.New(corsConfig(opts.CORSOrigins)),
		middleware.ErrorRenderer(opts.Debug),
		middleware.Recovery(),
	)
	r.NoRoute(middleware.NoRoute)
	r.NoMethod(middleware.NoMethod)

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health(opts.DB))
	r.HEAD("/healthz", handler.Health(opts.DB))

	v1 := r.Group("/v1")
	v1.GET("/ping/", handler.Ping(nil))
	// ログイン（トークン発行）
	v1.POST("/auth/", c.AuthHandler.Login)

	// 認証必須のルート
	// → X-Auth-Token ヘッダーに有効なトークンが必要になる
	auth := v1.Group("/")
	auth.Use(authmw.TokenRequired(c.Gate))
	{
		products := auth.Group("/products")
		products.GET("/", c.ProductHandler.List)
		products.GET("/:id", c.ProductHandler.Get)
		products.POST("/", c.ProductHandler.Create)
		products.PATCH("/:id", c.ProductHandler.Update)
		products.DELETE("/:id", c.ProductHandler.Delete)

		users := auth.Group("/users")
		users.GET("/", c.UserHandler.List)
		users.GET("/:id", c.UserHandler.Get)
		users.POST("/", c.UserHandler.Create)
		users.PATCH("/:id", c.UserHandler.Update)
		users.POST("/:id", c.UserHandler.Update)
		users.DELETE("/:id", c.UserHandler.Delete)

		logs := auth.Group("/logs")
		logs.GET("/", c.LogHandler.List)
		logs.GET("/types/", c.LogHandler.Types)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	cfg.AllowHeaders = append(cfg.AllowHeaders, authmw.HeaderAuthToken, middleware.HeaderRequestID)
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID}
	cfg.MaxAge = 12 * time.Hour

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
