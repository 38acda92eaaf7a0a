package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cleberrangel/edge-relay-api/internal/logger"
	"github.com/cleberrangel/edge-relay-api/internal/metrics"
)

const (
	// ResendAPIURL é o endpoint de envio da API do Resend
	ResendAPIURL = "https://api.resend.com/emails"

	providerResend = "resend"
)

// Email é o payload aceito pelo Resend
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// SendResult contém o id devolvido pelo Resend (pode vir vazio)
type SendResult struct {
	ID string `json:"id"`
}

// ResendClient envia e-mails transacionais
type ResendClient struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewResendClient cria um novo cliente; apiURL vazio usa o endpoint oficial
func NewResendClient(apiKey, apiURL string) *ResendClient {
	if apiURL == "" {
		apiURL = ResendAPIURL
	}
	return &ResendClient{
		apiKey:     apiKey,
		apiURL:     apiURL,
		httpClient: newHTTPClient(),
	}
}

// Send envia o e-mail. Resposta não-2xx retorna *ProviderError com o corpo
// decodificado; falha de rede retorna o erro encapsulado.
func (c *ResendClient) Send(ctx context.Context, email Email) (*SendResult, error) {
	payload, err := json.Marshal(email)
	if err != nil {
		return nil, fmt.Errorf("serializar e-mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("criar request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamCall(providerResend, metrics.OutcomeFailure, time.Since(start))
		return nil, fmt.Errorf("executar request: %w", err)
	}
	defer resp.Body.Close()

	// Lê o corpo uma única vez: pode ser JSON ou texto puro em caso de erro
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		metrics.RecordUpstreamCall(providerResend, metrics.OutcomeFailure, time.Since(start))
		return nil, fmt.Errorf("ler resposta: %w", err)
	}
	body := decodeBody(raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordUpstreamCall(providerResend, metrics.OutcomeFailure, time.Since(start))
		logger.Get(ctx).Error().
			Int("status", resp.StatusCode).
			Interface("body", body).
			Msg("Resend retornou erro")
		return nil, &ProviderError{Provider: providerResend, Status: resp.StatusCode, Body: body}
	}

	metrics.RecordUpstreamCall(providerResend, metrics.OutcomeSuccess, time.Since(start))

	result := &SendResult{}
	if id, ok := body["id"].(string); ok {
		result.ID = id
	}
	return result, nil
}

// decodeBody interpreta o corpo como objeto JSON, senão devolve {"raw": texto}
func decodeBody(raw []byte) map[string]any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return map[string]any{"raw": string(raw)}
	}
	return body
}
