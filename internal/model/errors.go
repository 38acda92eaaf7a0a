package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifica os erros terminais de uma requisição
type ErrorKind string

const (
	KindClientInput        ErrorKind = "CLIENT_INPUT"        // 400
	KindForbiddenOrigin    ErrorKind = "FORBIDDEN_ORIGIN"    // 403
	KindVerificationFailed ErrorKind = "VERIFICATION_FAILED" // 403
	KindServerConfig       ErrorKind = "SERVER_CONFIG"       // 500
	KindUpstreamCall       ErrorKind = "UPSTREAM_CALL"       // 500
)

// APIError é o erro tipado devolvido pelos serviços e traduzido pelos handlers
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	// Debug só é exposto ao cliente em modo dev
	Debug map[string]any
	// Issues detalha falhas de schema por campo
	Issues *Issues
	Err    error
}

// Error implementa a interface error
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap expõe a causa original
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewClientInput cria um erro 400 (JSON malformado ou campo inválido)
func NewClientInput(msg string) *APIError {
	return &APIError{
		Kind:    KindClientInput,
		Status:  http.StatusBadRequest,
		Message: msg,
	}
}

// NewInvalidPayload cria um erro 400 com os problemas de schema encontrados
func NewInvalidPayload(issues *Issues) *APIError {
	return &APIError{
		Kind:    KindClientInput,
		Status:  http.StatusBadRequest,
		Message: "Invalid request payload",
		Issues:  issues,
	}
}

// NewForbiddenOrigin cria um erro 403 para origens fora da allow-list
func NewForbiddenOrigin() *APIError {
	return &APIError{
		Kind:    KindForbiddenOrigin,
		Status:  http.StatusForbidden,
		Message: "Forbidden origin",
	}
}

// NewVerificationFailed cria um erro 403 para token de verificação rejeitado
func NewVerificationFailed() *APIError {
	return &APIError{
		Kind:    KindVerificationFailed,
		Status:  http.StatusForbidden,
		Message: "Verification failed",
	}
}

// NewServerConfig cria um erro 500 para segredo ou credencial ausente
func NewServerConfig(msg string) *APIError {
	return &APIError{
		Kind:    KindServerConfig,
		Status:  http.StatusInternalServerError,
		Message: msg,
	}
}

// NewUpstreamCall cria um erro 500 para falha de rede ou resposta de erro de um provedor
func NewUpstreamCall(msg string, debug map[string]any, err error) *APIError {
	return &APIError{
		Kind:    KindUpstreamCall,
		Status:  http.StatusInternalServerError,
		Message: msg,
		Debug:   debug,
		Err:     err,
	}
}

// AsAPIError extrai um *APIError da cadeia de erros
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind verifica se o erro é um APIError do tipo informado
func IsKind(err error, kind ErrorKind) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == kind
}
