package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cleberrangel/edge-relay-api/internal/logger"
	"github.com/cleberrangel/edge-relay-api/internal/metrics"
)

const (
	// TurnstileVerifyURL é o endpoint siteverify da Cloudflare
	TurnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

	providerTurnstile = "turnstile"
)

// VerifyResult é a resposta do siteverify
type VerifyResult struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes,omitempty"`
	Hostname   string   `json:"hostname,omitempty"`
	Action     string   `json:"action,omitempty"`
}

// TurnstileClient valida tokens de verificação humana
type TurnstileClient struct {
	secret     string
	verifyURL  string
	httpClient *http.Client
}

// NewTurnstileClient cria um novo cliente; verifyURL vazio usa o endpoint oficial
func NewTurnstileClient(secret, verifyURL string) *TurnstileClient {
	if verifyURL == "" {
		verifyURL = TurnstileVerifyURL
	}
	return &TurnstileClient{
		secret:     secret,
		verifyURL:  verifyURL,
		httpClient: newHTTPClient(),
	}
}

// Verify envia token, segredo e IP do cliente para o siteverify.
// Token ou segredo vazio retorna Success=false sem chamada de rede.
// Um erro só é retornado para falha de rede; corpo ilegível conta como Success=false.
func (c *TurnstileClient) Verify(ctx context.Context, token, remoteIP string) (*VerifyResult, error) {
	if token == "" {
		return &VerifyResult{Success: false, ErrorCodes: []string{"missing-input-response"}}, nil
	}
	if c.secret == "" {
		return &VerifyResult{Success: false, ErrorCodes: []string{"missing-input-secret"}}, nil
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("criar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamCall(providerTurnstile, metrics.OutcomeFailure, time.Since(start))
		return nil, fmt.Errorf("executar request: %w", err)
	}
	defer resp.Body.Close()

	// O siteverify responde 200 mesmo para token inválido; qualquer corpo
	// que não seja JSON vira Success=false.
	var result VerifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Get(ctx).Warn().
			Int("status", resp.StatusCode).
			Err(err).
			Msg("Resposta do Turnstile ilegível")
		result = VerifyResult{Success: false}
	}

	outcome := metrics.OutcomeSuccess
	if !result.Success {
		outcome = metrics.OutcomeFailure
	}
	metrics.RecordUpstreamCall(providerTurnstile, outcome, time.Since(start))

	logger.Get(ctx).Debug().
		Bool("success", result.Success).
		Strs("error_codes", result.ErrorCodes).
		Dur("latency", time.Since(start)).
		Msg("Turnstile verificado")

	return &result, nil
}
