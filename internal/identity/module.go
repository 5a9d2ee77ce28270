package identity

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/upasthit/upasthit-api/internal/identity/inbound"
	"github.com/upasthit/upasthit-api/internal/identity/outbound/db"
	"github.com/upasthit/upasthit-api/internal/identity/outbound/mq"
	"github.com/upasthit/upasthit-api/internal/identity/usecase"
	"github.com/upasthit/upasthit-api/internal/pkg/clock"
	"github.com/upasthit/upasthit-api/internal/pkg/config"
	"github.com/upasthit/upasthit-api/internal/pkg/hash"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"github.com/upasthit/upasthit-api/internal/pkg/jwt"
	"github.com/upasthit/upasthit-api/internal/pkg/messaging"
	"github.com/upasthit/upasthit-api/internal/pkg/otp"
	"github.com/upasthit/upasthit-api/internal/pkg/router"
	"github.com/upasthit/upasthit-api/internal/pkg/uid"
	"github.com/upasthit/upasthit-api/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	OtpHash    hash.Hash                  `validate:"required"`
	Otp        otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Bcrypt:        dep.Bcrypt,
		OtpHash:       dep.OtpHash,
		Otp:           dep.Otp,
		UID:           dep.UID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
