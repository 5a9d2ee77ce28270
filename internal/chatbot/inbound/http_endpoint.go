package inbound

import (
	"github.com/upasthit/upasthit-api/internal/chatbot/usecase"
	"github.com/upasthit/upasthit-api/internal/pkg/router"
)

// HTTPEndpoint exposes the ask gateway and its usage views.
type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Ask(r *router.Request) (any, error) {
	var req AskRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Ask(r.Context(), usecase.AskInput{Question: req.Question})
	if err != nil {
		return nil, err
	}

	if resp.Denied != nil {
		return AskDeniedResponse{
			Reason:         resp.Denied.Reason.String(),
			WaitSeconds:    resp.Denied.WaitSeconds,
			RemainingToday: resp.Denied.RemainingToday,
			DailyLimit:     resp.DailyLimit,
		}, nil
	}

	return AskResponse{
		Answer:         resp.Answer,
		RemainingToday: resp.RemainingToday,
		DailyLimit:     resp.DailyLimit,
	}, nil
}

func (h *HTTPEndpoint) Stats(r *router.Request) (any, error) {
	resp, err := h.uc.Stats(r.Context())
	if err != nil {
		return nil, err
	}

	return StatsResponse{
		TodayCount:      resp.TodayCount,
		TotalCount:      resp.TotalCount,
		RemainingToday:  resp.RemainingToday,
		DailyLimit:      resp.DailyLimit,
		CanAskNow:       resp.CanAskNow,
		WaitSeconds:     resp.WaitSeconds,
		RecentQuestions: resp.RecentQuestions,
	}, nil
}

func (h *HTTPEndpoint) History(r *router.Request) (any, error) {
	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}
	offset, err := r.GetQueryInt32("offset")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.History(r.Context(), usecase.HistoryInput{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	items := make([]HistoryItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, HistoryItem{
			Question:   item.Question,
			Answer:     item.Answer,
			TokensUsed: item.TokensUsed,
			AskedAt:    item.CreatedAt,
		})
	}

	return HistoryResponse{Items: items, Total: resp.Total}, nil
}
