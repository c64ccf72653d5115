package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// MonthLabel: "junho / 2024".
func MonthLabel(year int, m time.Month) string {
	return fmt.Sprintf("%s / %d", MonthName(m), year)
}

// MonthValue: "2024-06".
func MonthValue(year int, m time.Month) string {
	return fmt.Sprintf("%d-%02d", year, int(m))
}

// ParseMonthYear lê "YYYY-MM"; valores vazios ou inválidos caem no mês de now.
func ParseMonthYear(s string, now time.Time) (int, time.Month) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) == 2 {
		y, errY := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		if errY == nil && errM == nil && y > 0 && m >= 1 && m <= 12 {
			return y, time.Month(m)
		}
	}
	return now.Year(), now.Month()
}

type MonthOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// MonthOptions lista doze meses começando dois meses antes de now.
func MonthOptions(now time.Time) []MonthOption {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -2, 0)

	out := make([]MonthOption, 0, 12)
	for i := 0; i < 12; i++ {
		d := start.AddDate(0, i, 0)
		name := MonthName(d.Month())
		out = append(out, MonthOption{
			Value: MonthValue(d.Year(), d.Month()),
			Label: fmt.Sprintf("%s%s %d", strings.ToUpper(name[:1]), name[1:], d.Year()),
		})
	}
	return out
}
