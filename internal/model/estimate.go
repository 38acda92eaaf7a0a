package model

import "slices"

// Enum é implementado pelos tipos enumerados do estimador; a tag de
// validação "enum" usa Valid e as mensagens de erro usam Options.
type Enum interface {
	Valid() bool
	Options() []string
}

func optionStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// TaskType é o tipo de tarefa informado no estimador
type TaskType string

const (
	TaskWriting  TaskType = "writing"
	TaskCoding   TaskType = "coding"
	TaskDesign   TaskType = "design"
	TaskAdmin    TaskType = "admin"
	TaskStudying TaskType = "studying"
	TaskCreative TaskType = "creative"
	TaskUnsure   TaskType = "unsure"
)

// TaskTypes lista os valores aceitos, na ordem do formulário
var TaskTypes = []TaskType{TaskWriting, TaskCoding, TaskDesign, TaskAdmin, TaskStudying, TaskCreative, TaskUnsure}

// Valid verifica se o valor pertence ao enum
func (t TaskType) Valid() bool { return slices.Contains(TaskTypes, t) }

func (TaskType) Options() []string { return optionStrings(TaskTypes) }

// TaskSize é o tamanho percebido da tarefa
type TaskSize string

const (
	SizeTiny   TaskSize = "tiny"
	SizeSmall  TaskSize = "small"
	SizeMedium TaskSize = "medium"
	SizeLarge  TaskSize = "large"
)

// TaskSizes em ordem crescente
var TaskSizes = []TaskSize{SizeTiny, SizeSmall, SizeMedium, SizeLarge}

func (s TaskSize) Valid() bool { return slices.Contains(TaskSizes, s) }

func (TaskSize) Options() []string { return optionStrings(TaskSizes) }

// Proficiency é a familiaridade com o tipo de tarefa
type Proficiency string

const (
	ProficiencyNew         Proficiency = "new"
	ProficiencySome        Proficiency = "some"
	ProficiencyComfortable Proficiency = "comfortable"
	ProficiencyExpert      Proficiency = "expert"
)

var Proficiencies = []Proficiency{ProficiencyNew, ProficiencySome, ProficiencyComfortable, ProficiencyExpert}

func (p Proficiency) Valid() bool { return slices.Contains(Proficiencies, p) }

func (Proficiency) Options() []string { return optionStrings(Proficiencies) }

// Energy é o nível de energia declarado
type Energy string

const (
	EnergyDead     Energy = "dead"
	EnergyMeh      Energy = "meh"
	EnergyDecent   Energy = "decent"
	EnergyLockedIn Energy = "locked_in"
)

var Energies = []Energy{EnergyDead, EnergyMeh, EnergyDecent, EnergyLockedIn}

func (e Energy) Valid() bool { return slices.Contains(Energies, e) }

func (Energy) Options() []string { return optionStrings(Energies) }

// Deadline é a categoria de prazo
type Deadline string

const (
	DeadlineTonight  Deadline = "tonight"
	DeadlineTomorrow Deadline = "tomorrow"
	DeadlineCustom   Deadline = "custom"
)

var Deadlines = []Deadline{DeadlineTonight, DeadlineTomorrow, DeadlineCustom}

func (d Deadline) Valid() bool { return slices.Contains(Deadlines, d) }

func (Deadline) Options() []string { return optionStrings(Deadlines) }

// Verdict é o veredito final do estimador
type Verdict string

const (
	VerdictVeryLikely Verdict = "very_likely"
	VerdictRisky      Verdict = "risky"
	VerdictUnlikely   Verdict = "unlikely"
	VerdictGoToBed    Verdict = "go_to_bed"
)

// EstimatorRequest representa o payload de /v1/estimator/tonight
type EstimatorRequest struct {
	TaskType    TaskType    `json:"taskType" binding:"required,enum"`
	TaskSize    TaskSize    `json:"taskSize" binding:"required,enum"`
	Proficiency Proficiency `json:"proficiency" binding:"required,enum"`
	Energy      Energy      `json:"energy" binding:"required,enum"`

	// "21:45" ou ISO 8601; ausente = agora no relógio do servidor
	CurrentTime *string `json:"currentTime,omitempty"`

	Deadline     Deadline `json:"deadline" binding:"required,enum"`
	DeadlineTime *string  `json:"deadlineTime,omitempty"` // obrigatório quando deadline == custom
}

// EstimationResult contém a estimativa de esforço calculada
type EstimationResult struct {
	Minutes        int
	Reasoning      []string
	LateMultiplier float64
}

// EstimatorResponse é o corpo de sucesso do estimador
type EstimatorResponse struct {
	Verdict          Verdict  `json:"verdict"`
	Confidence       float64  `json:"confidence"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
	AvailableMinutes int      `json:"availableMinutes"`
	Reasoning        []string `json:"reasoning"`
	Suggestion       string   `json:"suggestion"`
}
