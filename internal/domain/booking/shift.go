package booking

import (
	"strings"

	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
)

// ===============================
// Shift
// ===============================

type Shift string

const (
	ShiftMorning Shift = "Morning"
	ShiftNight   Shift = "Night"
)

// Shifts na ordem em que aparecem no calendário.
var Shifts = []Shift{ShiftMorning, ShiftNight}

var shiftAliases = map[string]Shift{
	"morning": ShiftMorning,
	"manhã":   ShiftMorning,
	"manha":   ShiftMorning,
	"night":   ShiftNight,
	"noite":   ShiftNight,
}

// ParseShift aceita o valor canônico e os rótulos legados em português.
func ParseShift(s string) (Shift, error) {
	if sh, ok := shiftAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return sh, nil
	}
	return "", httperr.ErrBusiness(httperr.CodeInvalidShift)
}

func (s Shift) Label() string {
	if s == ShiftNight {
		return "Noite"
	}
	return "Manhã"
}
