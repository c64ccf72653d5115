package models

import "time"

// Área de serviço com capacidade por turno
type Area struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"column:nome;size:100;not null" json:"name"`
	MaxPeople int    `gorm:"column:max_pessoas;not null" json:"max_people"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Area) TableName() string {
	return "areas"
}
