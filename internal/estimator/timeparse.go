package estimator

import (
	"regexp"
	"strconv"
	"time"
)

const (
	// MinutesPerDay é usado para empurrar prazos para o dia seguinte
	MinutesPerDay = 24 * 60
	// EndOfDay corresponde a 23:59
	EndOfDay = 23*60 + 59
)

// dateTimeLayouts são tentados em ordem antes do formato HH:MM.
// Layouts sem offset são interpretados no fuso do servidor.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// dateOnlyLayout segue a convenção ISO: data sem hora é meia-noite UTC
const dateOnlyLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// ParseTimeToMinutes converte um horário em minutos desde a meia-noite.
// Retorna false quando o valor está vazio ou em formato desconhecido.
func ParseTimeToMinutes(value string, loc *time.Location) (int, bool) {
	if value == "" {
		return 0, false
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return minuteOfDay(t.In(loc)), true
		}
	}

	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return minuteOfDay(t.In(loc)), true
	}

	m := clockPattern.FindStringSubmatch(value)
	if m == nil {
		return 0, false
	}
	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return hh*60 + mm, true
}

// MinuteOfDay devolve os minutos desde a meia-noite de t no fuso informado
func MinuteOfDay(t time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	return minuteOfDay(t.In(loc))
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
