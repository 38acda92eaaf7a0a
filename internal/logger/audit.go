package logger

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// AuditAction represents the type of action being audited
type AuditAction string

const (
	// Contact relay
	AuditActionContactRelay       AuditAction = "CONTACT_RELAY"
	AuditActionContactRejected    AuditAction = "CONTACT_REJECTED"
	AuditActionVerificationFailed AuditAction = "VERIFICATION_FAILED"
	AuditActionVerificationSkip   AuditAction = "VERIFICATION_SKIPPED"
	AuditActionEmailSendFailed    AuditAction = "EMAIL_SEND_FAILED"

	// Estimator
	AuditActionEstimate AuditAction = "ESTIMATE"

	// Origin gate
	AuditActionOriginDenied AuditAction = "ORIGIN_DENIED"
)

// AuditEvent represents an audit log entry
type AuditEvent struct {
	Action     AuditAction
	Resource   string
	ResourceID string
	Details    map[string]interface{}
	ClientIP   string
	Origin     string
	RequestID  string
	Success    bool
	Error      string
	Duration   int64 // Duration in milliseconds
}

// auditLogger is a specialized logger for audit events
var auditLogger = zerolog.New(io.Discard)

// InitAudit initializes the audit logger
func InitAudit() {
	auditLogger = globalLogger.With().Str("log_type", "audit").Logger()
}

// Audit logs an audit event
func Audit(ctx context.Context, event AuditEvent) {
	if event.RequestID == "" {
		event.RequestID = GetRequestID(ctx)
	}
	if event.Origin == "" {
		event.Origin = GetOrigin(ctx)
	}

	logEvent := auditLogger.Info()
	if !event.Success {
		logEvent = auditLogger.Warn()
	}

	logEvent.
		Str("action", string(event.Action)).
		Str("resource", event.Resource).
		Str("request_id", event.RequestID).
		Bool("success", event.Success).
		Time("timestamp", time.Now().UTC())

	if event.ResourceID != "" {
		logEvent.Str("resource_id", event.ResourceID)
	}

	if event.ClientIP != "" {
		logEvent.Str("client_ip", event.ClientIP)
	}

	if event.Origin != "" {
		logEvent.Str("origin", event.Origin)
	}

	if event.Error != "" {
		logEvent.Str("error", event.Error)
	}

	if event.Duration > 0 {
		logEvent.Int64("duration_ms", event.Duration)
	}

	if len(event.Details) > 0 {
		logEvent.Interface("details", event.Details)
	}

	logEvent.Msg("Audit event")
}

// AuditContact logs the outcome of a contact relay attempt
func AuditContact(ctx context.Context, action AuditAction, relayID, clientIP string, success bool, errMsg string) {
	Audit(ctx, AuditEvent{
		Action:     action,
		Resource:   "contact",
		ResourceID: relayID,
		ClientIP:   clientIP,
		Success:    success,
		Error:      errMsg,
	})
}

// AuditEstimate logs an estimator verdict
func AuditEstimate(ctx context.Context, verdict string, estimated, available int) {
	Audit(ctx, AuditEvent{
		Action:   AuditActionEstimate,
		Resource: "estimator",
		Success:  true,
		Details: map[string]interface{}{
			"verdict":           verdict,
			"estimated_minutes": estimated,
			"available_minutes": available,
		},
	})
}
