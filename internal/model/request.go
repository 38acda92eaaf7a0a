package model

// ContactPayload contém os campos já normalizados do formulário de contato
type ContactPayload struct {
	Name              string
	Email             string
	Message           string
	VerificationToken string
}

// ContactResponse é o envelope de resposta de /v1/contact/send
type ContactResponse struct {
	OK      bool           `json:"ok"`
	Message string         `json:"message,omitempty"`
	RelayID string         `json:"relayId,omitempty"`
	Error   string         `json:"error,omitempty"`
	Debug   map[string]any `json:"debug,omitempty"`
}

// ErrorResponse representa uma resposta de erro sem o campo ok
type ErrorResponse struct {
	Error  string  `json:"error"`
	Issues *Issues `json:"issues,omitempty"`
}

// Issues agrupa problemas de validação por campo
type Issues struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

// NewIssues cria um Issues vazio pronto para uso
func NewIssues() *Issues {
	return &Issues{
		FormErrors:  []string{},
		FieldErrors: make(map[string][]string),
	}
}

// AddField registra uma mensagem para um campo
func (i *Issues) AddField(field, msg string) {
	i.FieldErrors[field] = append(i.FieldErrors[field], msg)
}

// AddForm registra uma mensagem que não pertence a um campo específico
func (i *Issues) AddForm(msg string) {
	i.FormErrors = append(i.FormErrors, msg)
}

// HealthResponse é a resposta de /v1/health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
