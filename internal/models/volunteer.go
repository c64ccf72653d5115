package models

import "time"

type Volunteer struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"column:nome;size:100;not null" json:"name"`
	Phone         string `gorm:"column:telefone;size:20;uniqueIndex;not null" json:"phone"`
	IsResponsible bool   `gorm:"column:responsavel;not null;default:false" json:"is_responsible"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Volunteer) TableName() string {
	return "voluntarios"
}

// VolunteerArea habilita um voluntário a servir numa área.
type VolunteerArea struct {
	VolunteerID uint      `gorm:"column:voluntario_id;primaryKey;autoIncrement:false" json:"volunteer_id"`
	Volunteer   Volunteer `gorm:"foreignKey:VolunteerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AreaID uint `gorm:"column:area_id;primaryKey;autoIncrement:false" json:"area_id"`
	Area   Area `gorm:"foreignKey:AreaID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (VolunteerArea) TableName() string {
	return "voluntario_areas"
}
