package service

import "strings"

// devLocalhostPrefix é aceito apenas em modo dev
const devLocalhostPrefix = "http://localhost:"

// OriginGate decide se uma origem de navegador pode chamar a API.
// A allow-list é copiada na criação e nunca alterada depois.
type OriginGate struct {
	allowed map[string]struct{}
	dev     bool
}

// NewOriginGate cria o gate a partir da allow-list estática
func NewOriginGate(origins []string, dev bool) *OriginGate {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			allowed[o] = struct{}{}
		}
	}
	return &OriginGate{allowed: allowed, dev: dev}
}

// Allowed retorna true se a origem está na allow-list, ou se é
// http://localhost:<porta> em modo dev. Origem vazia nunca é aceita.
func (g *OriginGate) Allowed(origin string) bool {
	if origin == "" {
		return false
	}
	if _, ok := g.allowed[origin]; ok {
		return true
	}
	return g.dev && strings.HasPrefix(origin, devLocalhostPrefix)
}
