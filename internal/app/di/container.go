// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	auditadapters "catalog_backend/internal/feature/audit/adapters"
	audithandler "catalog_backend/internal/feature/audit/transport/handler"
	auditusecase "catalog_backend/internal/feature/audit/usecase"
	authhandler "catalog_backend/internal/feature/auth/transport/handler"
	authusecase "catalog_backend/internal/feature/auth/usecase"
	productadapters "catalog_backend/internal/feature/products/adapters"
	producthandler "catalog_backend/internal/feature/products/transport/handler"
	productusecase "catalog_backend/internal/feature/products/usecase"
	useradapters "catalog_backend/internal/feature/users/adapters"
	userhandler "catalog_backend/internal/feature/users/transport/handler"
	userusecase "catalog_backend/internal/feature/users/usecase"
)

// Options tunes the container. The zero value is production behaviour.
type Options struct {
	// TokenCacheTTL bounds Redis token lookups; ignored without Redis.
	TokenCacheTTL time.Duration
	// BcryptCost overrides bcrypt.DefaultCost when non-zero.
	BcryptCost int
	// Now overrides the token clock.
	Now func() time.Time
}

// Container holds every wired component of the application.
type Container struct {
	Audit    *auditusecase.AuditUsecase
	Tokens   *authusecase.TokenManager
	Gate     *authusecase.Gate
	Auth     *authusecase.AuthUsecase
	Users    *userusecase.UserUsecase
	Products *productusecase.ProductUsecase

	AuthHandler    *authhandler.AuthHandler
	UserHandler    *userhandler.UserHandler
	ProductHandler *producthandler.ProductHandler
	LogHandler     *audithandler.LogHandler
}

// NewContainer wires repositories, usecases and handlers. rdb may be nil.
func NewContainer(db *gorm.DB, rdb *redis.Client, opts Options) *Container {
	// Repository
	userRepo := useradapters.NewUserRepository(db)
	productRepo := productadapters.NewProductRepository(db)
	logRepo := auditadapters.NewLogRepository(db)
	tokenRepo := NewTokenRepository(rdb, db, opts.TokenCacheTTL)

	// Usecase
	audit := auditusecase.NewAuditUsecase(logRepo, userRepo)
	hasher := authusecase.NewBcryptHasher(opts.BcryptCost)
	tokens := authusecase.NewTokenManager(tokenRepo, userRepo)
	if opts.Now != nil {
		tokens = tokens.WithClock(opts.Now)
	}

	c := &Container{
		Audit:    audit,
		Tokens:   tokens,
		Gate:     authusecase.NewGate(tokens, audit),
		Auth:     authusecase.NewAuthUsecase(userRepo, hasher, tokens, audit),
		Users:    userusecase.NewUserUsecase(userRepo, hasher, audit),
		Products: productusecase.NewProductUsecase(productRepo, audit),
	}

	// Handler
	c.AuthHandler = authhandler.NewAuthHandler(c.Auth)
	c.UserHandler = userhandler.NewUserHandler(c.Users)
	c.ProductHandler = producthandler.NewProductHandler(c.Products)
	c.LogHandler = audithandler.NewLogHandler(c.Audit)
	return c
}
