package chatbot

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/upasthit/upasthit-api/internal/chatbot/inbound"
	"github.com/upasthit/upasthit-api/internal/chatbot/outbound/cache"
	"github.com/upasthit/upasthit-api/internal/chatbot/outbound/db"
	"github.com/upasthit/upasthit-api/internal/chatbot/outbound/rag"
	"github.com/upasthit/upasthit-api/internal/chatbot/usecase"
	"github.com/upasthit/upasthit-api/internal/pkg/clock"
	"github.com/upasthit/upasthit-api/internal/pkg/config"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"github.com/upasthit/upasthit-api/internal/pkg/router"
	"github.com/upasthit/upasthit-api/internal/pkg/uid"
	"github.com/upasthit/upasthit-api/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	CacheConn  *redis.Client              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoCache := cache.NewCache(dep.CacheConn, dep.Instrument)
	repoAnswering := rag.NewClient(
		dep.Config.GetString("modules.chatbot.rag_base_url"),
		dep.Config.GetString("modules.chatbot.rag_api_key"),
		dep.Instrument,
	)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoCache:     repoCache,
		RepoAnswering: repoAnswering,
		Validator:     dep.Validator,
		Config:        dep.Config,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
