package dto

import (
	"time"

	domain "github.com/BruksfildServices01/escala-voluntarios/internal/domain/booking"
	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
)

type BookingDTO struct {
	ID          uint   `json:"id"`
	VolunteerID uint   `json:"volunteer_id"`
	AreaID      uint   `json:"area_id"`
	Date        string `json:"date"`
	Shift       string `json:"shift"`
	ShiftLabel  string `json:"shift_label"`
}

func FromBooking(b *models.Booking) BookingDTO {
	return BookingDTO{
		ID:          b.ID,
		VolunteerID: b.VolunteerID,
		AreaID:      b.AreaID,
		Date:        b.DateISO(),
		Shift:       b.Shift,
		ShiftLabel:  domain.Shift(b.Shift).Label(),
	}
}

type SundayDTO struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

func FromSundays(days []time.Time) []SundayDTO {
	out := make([]SundayDTO, 0, len(days))
	for _, d := range days {
		out = append(out, SundayDTO{
			Date:  d.Format(domain.DateLayout),
			Label: d.Format("02/01/2006"),
		})
	}
	return out
}
