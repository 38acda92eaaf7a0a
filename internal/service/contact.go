package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cleberrangel/edge-relay-api/internal/client"
	"github.com/cleberrangel/edge-relay-api/internal/logger"
	"github.com/cleberrangel/edge-relay-api/internal/metrics"
	"github.com/cleberrangel/edge-relay-api/internal/model"
	"github.com/cleberrangel/edge-relay-api/internal/sanitize"
	"github.com/google/uuid"
)

// Mensagens de validação do formulário de contato
const (
	MsgNameRequired   = "Name is required."
	MsgEmailInvalid   = "Valid email is required."
	MsgMessageShort   = "Message is too short."
	MsgTokenMissing   = "Missing verification token."
	MsgNotConfigured  = "Server not configured."
	MsgEmailNotConfig = "Email service not configured"
	MsgVerifyUnavail  = "Verification service unavailable."
	MsgSendFailed     = "Failed to send email."
	MsgRelaySucceeded = "Message received successfully."
)

const (
	minNameLength    = 2
	minMessageLength = 10
)

// verificationProvider é o label de métricas do provedor de verificação
const verificationProvider = "turnstile"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateContactPayload valida o corpo JSON já decodificado.
// Campos ausentes ou que não sejam string contam como vazios.
func ValidateContactPayload(body any) (model.ContactPayload, error) {
	fields, _ := body.(map[string]any)

	token := stringField(fields, "verificationToken")
	if token == "" {
		token = stringField(fields, "turnstileToken")
	}

	p := model.ContactPayload{
		Name:              stringField(fields, "name"),
		Email:             stringField(fields, "email"),
		Message:           stringField(fields, "message"),
		VerificationToken: token,
	}

	if utf8.RuneCountInString(p.Name) < minNameLength {
		return model.ContactPayload{}, model.NewClientInput(MsgNameRequired)
	}
	if !emailPattern.MatchString(p.Email) {
		return model.ContactPayload{}, model.NewClientInput(MsgEmailInvalid)
	}
	if utf8.RuneCountInString(p.Message) < minMessageLength {
		return model.ContactPayload{}, model.NewClientInput(MsgMessageShort)
	}
	if p.VerificationToken == "" {
		return model.ContactPayload{}, model.NewClientInput(MsgTokenMissing)
	}

	return p, nil
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return strings.TrimSpace(s)
}

// Verifier valida tokens de verificação humana
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (*client.VerifyResult, error)
}

// Mailer envia e-mails transacionais
type Mailer interface {
	Send(ctx context.Context, email client.Email) (*client.SendResult, error)
}

// ContactConfig reúne segredos e endereços do relay
type ContactConfig struct {
	VerificationSecret string
	EmailAPIKey        string
	ToEmail            string
	FromEmail          string
	Dev                bool
}

// RelayResult é o resultado de um relay bem-sucedido
type RelayResult struct {
	RelayID string
}

// ContactService verifica o token e repassa a mensagem por e-mail
type ContactService struct {
	cfg      ContactConfig
	verifier Verifier
	mailer   Mailer
}

// NewContactService cria um novo serviço de contato
func NewContactService(cfg ContactConfig, verifier Verifier, mailer Mailer) *ContactService {
	return &ContactService{
		cfg:      cfg,
		verifier: verifier,
		mailer:   mailer,
	}
}

// relay carrega o estado entre as etapas do pipeline
type relay struct {
	payload  model.ContactPayload
	remoteIP string
	relayID  string
}

type relayStep struct {
	name string
	run  func(ctx context.Context, r *relay) error
}

// Relay executa as etapas em ordem e para na primeira falha:
// segredo configurado → verificação → e-mail configurado → envio.
func (s *ContactService) Relay(ctx context.Context, payload model.ContactPayload, remoteIP string) (*RelayResult, error) {
	start := time.Now()
	r := &relay{payload: payload, remoteIP: remoteIP}

	steps := []relayStep{
		{"require_verification_secret", s.requireVerificationSecret},
		{"verify", s.verify},
		{"require_email_config", s.requireEmailConfig},
		{"send", s.send},
	}

	for _, step := range steps {
		if err := step.run(ctx, r); err != nil {
			logEvent := logger.Get(ctx).Warn()
			if model.IsKind(err, model.KindServerConfig) || model.IsKind(err, model.KindUpstreamCall) {
				logEvent = logger.Get(ctx).Error()
			}
			logEvent.
				Str("step", step.name).
				Err(err).
				Msg("Relay interrompido")
			metrics.IncContactRelay(metrics.OutcomeFailure)
			return nil, err
		}
	}

	metrics.IncContactRelay(metrics.OutcomeSuccess)
	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionContactRelay,
		Resource:   "contact",
		ResourceID: r.relayID,
		ClientIP:   remoteIP,
		Success:    true,
		Duration:   time.Since(start).Milliseconds(),
	})

	return &RelayResult{RelayID: r.relayID}, nil
}

func (s *ContactService) requireVerificationSecret(ctx context.Context, _ *relay) error {
	if s.cfg.VerificationSecret == "" {
		logger.Get(ctx).Error().Msg("TURNSTILE_SECRET_KEY não configurado")
		return model.NewServerConfig(MsgNotConfigured)
	}
	return nil
}

func (s *ContactService) verify(ctx context.Context, r *relay) error {
	// Em dev a verificação é pulada para facilitar testes locais
	if s.cfg.Dev {
		logger.Get(ctx).Warn().Msg("Modo dev: verificação Turnstile ignorada")
		metrics.RecordUpstreamCall(verificationProvider, metrics.OutcomeSkipped, 0)
		logger.AuditContact(ctx, logger.AuditActionVerificationSkip, "", r.remoteIP, true, "")
		return nil
	}

	res, err := s.verifier.Verify(ctx, r.payload.VerificationToken, r.remoteIP)
	if err != nil {
		return model.NewUpstreamCall(MsgVerifyUnavail, map[string]any{"reason": err.Error()}, fmt.Errorf("verificar token: %w", err))
	}
	if res == nil || !res.Success {
		var codes []string
		if res != nil {
			codes = res.ErrorCodes
		}
		logger.Get(ctx).Warn().Strs("error_codes", codes).Msg("Verificação Turnstile falhou")
		logger.AuditContact(ctx, logger.AuditActionVerificationFailed, "", r.remoteIP, false, strings.Join(codes, ","))
		return model.NewVerificationFailed()
	}
	return nil
}

func (s *ContactService) requireEmailConfig(ctx context.Context, _ *relay) error {
	if s.cfg.EmailAPIKey == "" || s.cfg.ToEmail == "" {
		logger.Get(ctx).Error().
			Bool("api_key_set", s.cfg.EmailAPIKey != "").
			Bool("to_email_set", s.cfg.ToEmail != "").
			Msg("Serviço de e-mail não configurado")
		return model.NewServerConfig(MsgEmailNotConfig)
	}
	return nil
}

func (s *ContactService) send(ctx context.Context, r *relay) error {
	res, err := s.mailer.Send(ctx, BuildEmail(s.cfg, r.payload))
	if err != nil {
		logger.AuditContact(ctx, logger.AuditActionEmailSendFailed, "", r.remoteIP, false, err.Error())

		var provErr *client.ProviderError
		if errors.As(err, &provErr) {
			debug := map[string]any{"status": provErr.Status, "provider": provErr.Body}
			return model.NewUpstreamCall(MsgSendFailed, debug, err)
		}
		return model.NewUpstreamCall(MsgSendFailed, map[string]any{"reason": err.Error()}, err)
	}

	if res == nil || res.ID == "" {
		// O Resend normalmente devolve {"id": "..."}; sem id geramos um local
		r.relayID = uuid.New().String()
		logger.Get(ctx).Warn().Str("relay_id", r.relayID).Msg("Resposta do Resend sem id")
		return nil
	}

	r.relayID = res.ID
	return nil
}

// BuildEmail monta o e-mail repassado ao destinatário configurado
func BuildEmail(cfg ContactConfig, p model.ContactPayload) client.Email {
	text := strings.Join([]string{
		"Name: " + sanitize.Line(p.Name),
		"Email: " + p.Email,
		"",
		"Message:",
		sanitize.Body(p.Message),
	}, "\n")

	return client.Email{
		From:    cfg.FromEmail,
		To:      []string{cfg.ToEmail},
		ReplyTo: sanitize.Line(p.Email),
		Subject: "New contact form message from " + sanitize.HeaderValue(p.Name),
		Text:    text,
	}
}
