// Package client contém os clientes HTTP dos provedores externos
// (verificação humana e envio de e-mail).
package client

import (
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout timeout padrão para chamadas aos provedores
const DefaultTimeout = 10 * time.Second

// maxErrorBody limita quanto do corpo de erro é guardado para debug
const maxErrorBody = 64 * 1024

// ProviderError indica resposta não-2xx de um provedor
type ProviderError struct {
	Provider string
	Status   int
	// Body é o corpo decodificado (JSON) ou {"raw": texto}
	Body map[string]any
}

// Error implementa a interface error
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s retornou status %d", e.Provider, e.Status)
}

// newHTTPClient cria o http.Client compartilhado pelos provedores
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}
}
