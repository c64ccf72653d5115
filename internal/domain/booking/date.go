package booking

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
)

const DateLayout = "2006-01-02"

// ParseDate lê uma data ISO e a normaliza para meia-noite UTC, que é como
// toda data de escala é gravada e comparada.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, httperr.ErrBusiness(httperr.CodeInvalidDate)
	}
	return t, nil
}

// Day normaliza um instante qualquer para a data civil no fuso informado.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthRange devolve [primeiro dia do mês, primeiro dia do mês seguinte).
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// NextMonth devolve ano/mês seguintes ao de now.
func NextMonth(now time.Time) (int, time.Month) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return first.Year(), first.Month()
}
