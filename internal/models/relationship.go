package models

import (
	"time"

	"gorm.io/datatypes"
)

// Relationship is a directed labeled edge between two characters of the
// same project. Direction matters: A->B and B->A are distinct edges.
type Relationship struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	ProjectID          uint  `gorm:"not null;index;uniqueIndex:idx_relationships_edge"`
	SourceCharacterID  uint  `gorm:"not null;index;uniqueIndex:idx_relationships_edge;check:chk_no_self_relationship,source_character_id <> target_character_id"`
	TargetCharacterID  uint  `gorm:"not null;index;uniqueIndex:idx_relationships_edge"`
	RelationshipTypeID *uint `gorm:"index"`
	Label              string
	Metadata           datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Project          Project           `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	SourceCharacter  Character         `gorm:"foreignKey:SourceCharacterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	TargetCharacter  Character         `gorm:"foreignKey:TargetCharacterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	RelationshipType *RelationshipType `gorm:"foreignKey:RelationshipTypeID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
