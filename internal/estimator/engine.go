package estimator

import (
	"math"

	"github.com/cleberrangel/edge-relay-api/internal/model"
)

// LateThreshold é 22:30; depois disso a estimativa recebe penalidade
const LateThreshold = 22*60 + 30

const (
	lateWindowMinutes = 180
	maxLatePenalty    = 0.35
)

// Tempo base em minutos para uma tarefa "small"
var baseMinutes = map[model.TaskType]float64{
	model.TaskWriting:  75,
	model.TaskCoding:   90,
	model.TaskDesign:   80,
	model.TaskAdmin:    45,
	model.TaskStudying: 70,
	model.TaskCreative: 85,
	model.TaskUnsure:   95,
}

var sizeFactor = map[model.TaskSize]float64{
	model.SizeTiny:   0.5,
	model.SizeSmall:  1.0,
	model.SizeMedium: 2.0,
	model.SizeLarge:  3.5,
}

// Menor = mais rápido
var proficiencyFactor = map[model.Proficiency]float64{
	model.ProficiencyNew:         1.8,
	model.ProficiencySome:        1.25,
	model.ProficiencyComfortable: 1.0,
	model.ProficiencyExpert:      0.85,
}

// Pouca energia = mais lento e mais retrabalho
var energyFactor = map[model.Energy]float64{
	model.EnergyDead:     1.9,
	model.EnergyMeh:      1.35,
	model.EnergyDecent:   1.05,
	model.EnergyLockedIn: 0.9,
}

const (
	reasonLargeScope   = "Large scope tends to explode late at night."
	reasonMediumScope  = "Medium scope: usually where optimism goes to die."
	reasonSmallScope   = `Scope is manageable (Assuming you don't add "Just one more thing").`
	reasonNewTerritory = "New territory adds friction and googling tax."
	reasonExpert       = "High proficiency cuts the guesswork."
	reasonLowEnergy    = "Low energy increases errors and redo time."
	reasonLockedIn     = "Locked in: You can ride the momentum."
	reasonLateNight    = "Late-night penalty applied (focus drops, mistakes rise)."
)

// LateMultiplier devolve o fator de penalidade noturna para o minuto atual (1.0 a 1.35)
func LateMultiplier(now int) float64 {
	lateness := math.Max(0, float64(now-LateThreshold))
	return 1 + clamp(lateness/lateWindowMinutes, 0, maxLatePenalty)
}

// overheadMinutes cobre setup e troca de contexto
func overheadMinutes(t model.TaskType) float64 {
	if t == model.TaskCoding {
		return 15
	}
	return 10
}

// Estimate calcula a estimativa de esforço para uma requisição já validada
func Estimate(req model.EstimatorRequest, now int) model.EstimationResult {
	lateMult := LateMultiplier(now)

	minutes := baseMinutes[req.TaskType] *
		sizeFactor[req.TaskSize] *
		proficiencyFactor[req.Proficiency] *
		energyFactor[req.Energy] *
		lateMult

	return model.EstimationResult{
		Minutes:        int(math.Round(minutes + overheadMinutes(req.TaskType))),
		Reasoning:      reasoning(req, now),
		LateMultiplier: lateMult,
	}
}

func reasoning(req model.EstimatorRequest, now int) []string {
	var notes []string

	switch req.TaskSize {
	case model.SizeLarge:
		notes = append(notes, reasonLargeScope)
	case model.SizeMedium:
		notes = append(notes, reasonMediumScope)
	default:
		notes = append(notes, reasonSmallScope)
	}

	switch req.Proficiency {
	case model.ProficiencyNew:
		notes = append(notes, reasonNewTerritory)
	case model.ProficiencyExpert:
		notes = append(notes, reasonExpert)
	}

	switch req.Energy {
	case model.EnergyDead:
		notes = append(notes, reasonLowEnergy)
	case model.EnergyLockedIn:
		notes = append(notes, reasonLockedIn)
	}

	if now >= LateThreshold {
		notes = append(notes, reasonLateNight)
	}

	return notes
}

func clamp(n, min, max float64) float64 {
	return math.Max(min, math.Min(max, n))
}
