package estimator

import (
	"time"

	"github.com/cleberrangel/edge-relay-api/internal/model"
)

// ResolveDeadline calcula o minuto-alvo do prazo.
//
// "tonight" é sempre 23:59. "tomorrow" é agora + 24h, não amanhã às 23:59.
// "custom" usa deadlineTime; se não for possível interpretá-lo cai para 23:59,
// e um horário anterior a now é tratado como do dia seguinte.
// O valor pode passar de 1439 quando o prazo cai no dia seguinte.
func ResolveDeadline(req model.EstimatorRequest, now int, loc *time.Location) int {
	switch req.Deadline {
	case model.DeadlineCustom:
		var raw string
		if req.DeadlineTime != nil {
			raw = *req.DeadlineTime
		}
		dl, ok := ParseTimeToMinutes(raw, loc)
		if !ok {
			return EndOfDay
		}
		if dl < now {
			return dl + MinutesPerDay
		}
		return dl
	case model.DeadlineTomorrow:
		return now + MinutesPerDay
	default:
		return EndOfDay
	}
}

// AvailableMinutes devolve o tempo restante até o prazo, nunca negativo
func AvailableMinutes(target, now int) int {
	if target < now {
		return 0
	}
	return target - now
}
