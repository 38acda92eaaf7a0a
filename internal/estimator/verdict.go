package estimator

import (
	"math/big"
	"math/rand/v2"

	"github.com/cleberrangel/edge-relay-api/internal/model"
)

// Limites de razão tempo disponível / tempo estimado
const (
	veryLikelyRatio = 1.25
	riskyRatio      = 0.85
	unlikelyRatio   = 0.5
)

const (
	minConfidence = 0.1
	maxConfidence = 0.95
)

// Picker escolhe um índice em [0, n). Injetável para testes determinísticos.
type Picker func(n int) int

// DefaultPicker usa o gerador global de math/rand/v2
func DefaultPicker(n int) int {
	return rand.IntN(n)
}

var suggestions = map[model.Verdict][]string{
	model.VerdictVeryLikely: {
		"Ship the core, then stop. Don’t polish yourself into regret.",
		"Set a 25-minute timer and sprint the ugliest part first.",
		"If it’s working, don’t touch it. Seriously.",
	},
	model.VerdictRisky: {
		"Cut scope by ~30% and you might land this.",
		"Finish the “must-have” part. Leave the “nice-to-have” for tomorrow.",
		"Timebox: 60–90 minutes. If progress stalls, bail or simplify.",
	},
	model.VerdictUnlikely: {
		"Pick one deliverable: outline, prototype, or core feature — not all three.",
		"Do a “minimum pass” tonight and schedule a finish tomorrow.",
		"If you keep pushing, you’ll probably redo it anyway.",
	},
	model.VerdictGoToBed: {
		"This is a tomorrow problem wearing a tonight disguise. Sleep.",
		"Stop now and future-you will send you a thank-you note.",
		"Save, write a 3-line plan for tomorrow, then shut it down.",
	},
}

// Suggestions devolve a lista fixa de sugestões de um veredito
func Suggestions(v model.Verdict) []string {
	return suggestions[v]
}

// Decision é o resultado do VerdictEngine
type Decision struct {
	Verdict    model.Verdict
	Ratio      float64
	Confidence float64
	Suggestion string
}

// VerdictEngine compara esforço estimado com o tempo disponível
type VerdictEngine struct {
	pick Picker
}

// NewVerdictEngine cria o engine; pick nil usa DefaultPicker
func NewVerdictEngine(pick Picker) *VerdictEngine {
	if pick == nil {
		pick = DefaultPicker
	}
	return &VerdictEngine{pick: pick}
}

// Decide produz veredito, confiança (2 casas) e sugestão
func (e *VerdictEngine) Decide(estimatedMinutes, availableMinutes int) Decision {
	ratio := Ratio(estimatedMinutes, availableMinutes)
	verdict := Classify(ratio)

	return Decision{
		Verdict:    verdict,
		Ratio:      ratio,
		Confidence: Confidence(ratio),
		Suggestion: e.suggest(verdict),
	}
}

func (e *VerdictEngine) suggest(v model.Verdict) string {
	options := suggestions[v]
	if len(options) == 0 {
		return ""
	}
	idx := e.pick(len(options))
	if idx < 0 || idx >= len(options) {
		idx = 0
	}
	return options[idx]
}

// Ratio é available / max(1, estimated); > 1 indica folga
func Ratio(estimatedMinutes, availableMinutes int) float64 {
	return float64(availableMinutes) / float64(max(1, estimatedMinutes))
}

// Classify mapeia a razão para um veredito
func Classify(ratio float64) model.Verdict {
	switch {
	case ratio >= veryLikelyRatio:
		return model.VerdictVeryLikely
	case ratio >= riskyRatio:
		return model.VerdictRisky
	case ratio >= unlikelyRatio:
		return model.VerdictUnlikely
	default:
		return model.VerdictGoToBed
	}
}

// Confidence não é científica: 0.25 + ratio*0.55 limitado a [0.1, 0.95], arredondado para 2 casas
func Confidence(ratio float64) float64 {
	c := clamp(0.25+ratio*0.55, minConfidence, maxConfidence)
	return roundHalfUp2(c)
}

// roundHalfUp2 arredonda x >= 0 para 2 casas a partir do valor binário exato
// de x (0.62499999... vira 0.62), com empate exato arredondado para cima.
func roundHalfUp2(x float64) float64 {
	scaled := new(big.Float).SetPrec(256).SetFloat64(x)
	scaled.Mul(scaled, big.NewFloat(100))
	scaled.Add(scaled, big.NewFloat(0.5))
	cents, _ := scaled.Int(nil)
	return float64(cents.Int64()) / 100
}
