// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/go-petr/funds-transfer/internal/accountdelivery"
	"github.com/go-petr/funds-transfer/internal/accountrepo"
	"github.com/go-petr/funds-transfer/internal/accountservice"
	"github.com/go-petr/funds-transfer/internal/customerdelivery"
	"github.com/go-petr/funds-transfer/internal/customerrepo"
	"github.com/go-petr/funds-transfer/internal/customerservice"
	"github.com/go-petr/funds-transfer/internal/domain"
	"github.com/go-petr/funds-transfer/internal/middleware"
	"github.com/go-petr/funds-transfer/internal/statusdelivery"
	"github.com/go-petr/funds-transfer/internal/transactionrepo"
	"github.com/go-petr/funds-transfer/internal/transferdelivery"
	"github.com/go-petr/funds-transfer/internal/transferevents"
	"github.com/go-petr/funds-transfer/internal/transferrepo"
	"github.com/go-petr/funds-transfer/internal/transferservice"
	"github.com/go-petr/funds-transfer/pkg/configpkg"
	"github.com/go-petr/funds-transfer/pkg/currencypkg"
	"github.com/go-petr/funds-transfer/pkg/redispkg"
)

const accountRefCachePrefix = "account-ref"

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
//
// rdb is optional. Without it account lookups are not cached and transfers are not published.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config, rdb *redis.Client) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	customerRepo := customerrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn, config.LockTimeout)

	var (
		cache    accountservice.Cache
		notifier transferservice.Notifier
	)

	if rdb != nil {
		cache = redispkg.NewViewCache[domain.AccountRef](rdb, accountRefCachePrefix, config.AccountCacheTTL)
		notifier = transferevents.NewPublisher(rdb, config.TransferStream, transferevents.DefaultBreakerSettings)
	}

	accountService := accountservice.New(accountRepo, transactionRepo, cache)
	customerService := customerservice.New(customerRepo, accountService)
	transferService := transferservice.New(transferRepo, accountService, notifier)

	accountHandler := accountdelivery.NewHandler(accountService)
	customerHandler := customerdelivery.NewHandler(customerService)
	transferHandler := transferdelivery.NewHandler(transferService)
	statusHandler := statusdelivery.NewHandler(conn)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("currency", currencypkg.ValidCurrency)
		if err != nil {
			return nil, errors.New("cannot register currency validator")
		}
	}

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))

	engine.GET("/status", statusHandler.Get)

	engine.GET("/accounts/:id", accountHandler.Get)
	engine.GET("/accounts/:id/transactions", accountHandler.ListTransactions)
	engine.POST("/accounts/:id/transfer", transferHandler.Create)

	engine.GET("/customers/:id", customerHandler.Get)
	engine.GET("/customers/:id/accounts", customerHandler.ListAccounts)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
