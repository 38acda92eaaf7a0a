// Package estimator implementa o estimador "dá para terminar hoje?":
// interpretação de horários, resolução de prazo, estimativa de esforço e veredito.
package estimator

import (
	"time"

	"github.com/cleberrangel/edge-relay-api/internal/model"
)

// Options configura o Service; campos zero usam os padrões
type Options struct {
	Picker   Picker
	Now      func() time.Time
	Location *time.Location
}

// Service executa o pipeline completo do estimador
type Service struct {
	verdicts *VerdictEngine
	now      func() time.Time
	loc      *time.Location
}

// NewService cria um novo serviço de estimativa
func NewService(opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Service{
		verdicts: NewVerdictEngine(opts.Picker),
		now:      opts.Now,
		loc:      opts.Location,
	}
}

// CurrentMinute resolve "agora": currentTime se interpretável, senão o relógio do servidor
func (s *Service) CurrentMinute(req model.EstimatorRequest) int {
	if req.CurrentTime != nil {
		if m, ok := ParseTimeToMinutes(*req.CurrentTime, s.loc); ok {
			return m
		}
	}
	return MinuteOfDay(s.now(), s.loc)
}

// Evaluate calcula a resposta para uma requisição já validada
func (s *Service) Evaluate(req model.EstimatorRequest) model.EstimatorResponse {
	now := s.CurrentMinute(req)
	available := AvailableMinutes(ResolveDeadline(req, now, s.loc), now)

	est := Estimate(req, now)
	decision := s.verdicts.Decide(est.Minutes, available)

	return model.EstimatorResponse{
		Verdict:          decision.Verdict,
		Confidence:       decision.Confidence,
		EstimatedMinutes: est.Minutes,
		AvailableMinutes: available,
		Reasoning:        est.Reasoning,
		Suggestion:       decision.Suggestion,
	}
}
