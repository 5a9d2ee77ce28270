package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/upasthit/upasthit-api/internal/pkg/cache"
	"github.com/upasthit/upasthit-api/internal/pkg/clock"
	"github.com/upasthit/upasthit-api/internal/pkg/config"
	"github.com/upasthit/upasthit-api/internal/pkg/goroutine"
	"github.com/upasthit/upasthit-api/internal/pkg/hash"
	"github.com/upasthit/upasthit-api/internal/pkg/idempotency"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"github.com/upasthit/upasthit-api/internal/pkg/jwt"
	"github.com/upasthit/upasthit-api/internal/pkg/mail"
	"github.com/upasthit/upasthit-api/internal/pkg/messaging"
	"github.com/upasthit/upasthit-api/internal/pkg/otp"
	"github.com/upasthit/upasthit-api/internal/pkg/router"
	"github.com/upasthit/upasthit-api/internal/pkg/storage"
	"github.com/upasthit/upasthit-api/internal/pkg/uid"
	"github.com/upasthit/upasthit-api/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	otpHash   hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	cache     cache.Cache
	idemp     idempotency.Idempotency
	mail      mail.Mail
	messaging messaging.Messaging
	storage   storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
