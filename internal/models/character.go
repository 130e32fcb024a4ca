package models

import (
	"gorm.io/datatypes"
)

type Character struct {
	BaseModel

	ProjectID   uint   `gorm:"not null;index;uniqueIndex:idx_characters_project_name"`
	Name        string `gorm:"not null;index;uniqueIndex:idx_characters_project_name"`
	Description string
	PositionX   *float64
	PositionY   *float64
	BgColor     string
	BorderColor string
	TextColor   string
	IconColor   string
	Metadata    datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Project  Project        `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Outgoing []Relationship `gorm:"foreignKey:SourceCharacterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Incoming []Relationship `gorm:"foreignKey:TargetCharacterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
