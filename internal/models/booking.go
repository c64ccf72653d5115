package models

import (
	"encoding/json"
	"time"
)

// Booking is one volunteer serving one area on a date and shift.
// (voluntario_id, data, turno) is unique across all areas.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	VolunteerID uint      `gorm:"column:voluntario_id;not null;uniqueIndex:idx_escala_voluntario_turno,priority:1" json:"volunteer_id"`
	Volunteer   Volunteer `gorm:"foreignKey:VolunteerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AreaID uint `gorm:"column:area_id;not null;index:idx_escala_area_turno,priority:1" json:"area_id"`
	Area   Area `gorm:"foreignKey:AreaID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date  Day    `gorm:"column:data;type:date;not null;uniqueIndex:idx_escala_voluntario_turno,priority:2;index:idx_escala_area_turno,priority:2" json:"-"`
	Shift string `gorm:"column:turno;size:20;not null;uniqueIndex:idx_escala_voluntario_turno,priority:3;index:idx_escala_area_turno,priority:3" json:"shift"`

	CreatedAt time.Time `json:"created_at"`
}

func (Booking) TableName() string {
	return "escalas"
}

// DateISO devolve a data no formato YYYY-MM-DD.
func (b Booking) DateISO() string {
	return b.Date.String()
}

func (b Booking) MarshalJSON() ([]byte, error) {
	type alias Booking
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias(b), b.DateISO()})
}
