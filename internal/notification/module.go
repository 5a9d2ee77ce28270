package notification

import (
	"context"

	"github.com/upasthit/upasthit-api/internal/notification/inbound"
	"github.com/upasthit/upasthit-api/internal/notification/usecase"
	"github.com/upasthit/upasthit-api/internal/pkg/config"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"github.com/upasthit/upasthit-api/internal/pkg/mail"
	"github.com/upasthit/upasthit-api/internal/pkg/messaging"
	"github.com/upasthit/upasthit-api/internal/pkg/validator"
)

type Dependency struct {
	Messaging  messaging.Messaging        `validate:"required"`
	Mailer     mail.Mail                  `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

// New validates the wiring and returns a runner that consumes until ctx ends.
func New(dep Dependency) (func(ctx context.Context) error, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	uc := usecase.New(usecase.Dependency{
		Mailer:     dep.Mailer,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Instrument: dep.Instrument,
	})

	return func(ctx context.Context) error {
		return inbound.RegisterMQEndpoint(ctx, dep.Messaging, uc)
	}, nil
}
