package app

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/upasthit/upasthit-api/internal/academic"
	"github.com/upasthit/upasthit-api/internal/chatbot"
	"github.com/upasthit/upasthit-api/internal/identity"
	"github.com/upasthit/upasthit-api/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.identity.enabled") {
		if err := identity.New(identity.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Bcrypt:     a.bcrypt,
			OtpHash:    a.otpHash,
			Otp:        a.otp,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.academic.enabled") {
		if err := academic.New(academic.Dependency{
			DBConn:      a.dbConn,
			Cache:       a.cache,
			Storage:     a.storage,
			Idempotency: a.idemp,
			Goroutine:   a.goroutine,
			Router:      a.router,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Bcrypt:      a.bcrypt,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module academic", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.chatbot.enabled") {
		if err := chatbot.New(chatbot.Dependency{
			DBConn:     a.dbConn,
			CacheConn:  a.cacheConn,
			Router:     a.router,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module chatbot", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		run, err := notification.New(notification.Dependency{
			Messaging:  a.messaging,
			Mailer:     a.mail,
			Config:     a.config,
			Instrument: a.ins,
			Validator:  a.validator,
		})
		if err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}

		a.goroutine.Go(a.ctx, func(ctx context.Context) error {
			if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			return nil
		})
	}
}
