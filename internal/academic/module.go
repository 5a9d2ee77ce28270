package academic

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/upasthit/upasthit-api/internal/academic/inbound"
	"github.com/upasthit/upasthit-api/internal/academic/outbound/db"
	"github.com/upasthit/upasthit-api/internal/academic/usecase"
	"github.com/upasthit/upasthit-api/internal/pkg/cache"
	"github.com/upasthit/upasthit-api/internal/pkg/clock"
	"github.com/upasthit/upasthit-api/internal/pkg/config"
	"github.com/upasthit/upasthit-api/internal/pkg/goroutine"
	"github.com/upasthit/upasthit-api/internal/pkg/hash"
	"github.com/upasthit/upasthit-api/internal/pkg/idempotency"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"github.com/upasthit/upasthit-api/internal/pkg/router"
	"github.com/upasthit/upasthit-api/internal/pkg/storage"
	"github.com/upasthit/upasthit-api/internal/pkg/uid"
	"github.com/upasthit/upasthit-api/internal/pkg/validator"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Cache       cache.Cache                `validate:"required"`
	Storage     storage.Storage            `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Bcrypt      hash.Hash                  `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:      repoDB,
		Cache:       dep.Cache,
		Storage:     dep.Storage,
		Idempotency: dep.Idempotency,
		Goroutine:   dep.Goroutine,
		Validator:   dep.Validator,
		Config:      dep.Config,
		Bcrypt:      dep.Bcrypt,
		UID:         dep.UID,
		Clock:       dep.Clock,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
