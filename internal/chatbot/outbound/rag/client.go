package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/upasthit/upasthit-api/internal/chatbot/usecase"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
)

// Client talks to the retrieval-augmented answering service. The caller
// bounds each request with a context deadline; the client itself carries no
// timeout so admission control stays in one place.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	ins        instrument.Instrumentation
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer     string `json:"answer"`
	TokensUsed int32  `json:"tokens_used"`
}

func NewClient(baseURL, apiKey string, ins instrument.Instrumentation) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		ins:        ins,
	}
}

func (c *Client) Ask(ctx context.Context, question string) (*usecase.Answer, error) {
	ctx, span := c.ins.Tracer("chatbot.outbound.rag").Start(ctx, "Ask")
	defer span.End()

	body, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/ask", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		err = fmt.Errorf("answering service returned status %d", resp.StatusCode)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var out askResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &usecase.Answer{Text: out.Answer, TokensUsed: out.TokensUsed}, nil
}
