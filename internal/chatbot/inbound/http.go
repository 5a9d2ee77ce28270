package inbound

import (
	"context"

	"github.com/upasthit/upasthit-api/internal/chatbot/usecase"
	"github.com/upasthit/upasthit-api/internal/pkg/router"
)

type uc interface {
	Ask(ctx context.Context, in usecase.AskInput) (*usecase.AskOutput, error)
	Stats(ctx context.Context) (*usecase.StatsOutput, error)
	History(ctx context.Context, in usecase.HistoryInput) (*usecase.HistoryOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// need authenticated (student)
	r.POST("/api/v1/chatbot/ask", end.Ask)
	r.GET("/api/v1/chatbot/stats", end.Stats)
	r.GET("/api/v1/chatbot/history", end.History)
}
