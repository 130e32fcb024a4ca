package stores

import (
	"errors"
	"strings"

	"github.com/lorecanvas/lorecanvas/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Position struct {
	X float64
	Y float64
}

type Colors struct {
	Bg     string
	Border string
	Text   string
	Icon   string
}

type CharacterInput struct {
	Name        string
	Description string
	Position    *Position
	Colors      Colors
	Metadata    datatypes.JSON
}

// CharacterUpdate applies only the fields that are non-nil; everything else
// is left untouched.
type CharacterUpdate struct {
	Name        *string
	Description *string
	Position    *Position
	Colors      *Colors
	Metadata    datatypes.JSON
}

func ListCharacters(conn *gorm.DB, projectID uint) ([]models.Character, error) {
	var characters []models.Character

	if err := conn.Where("project_id = ?", projectID).Order("id").Find(&characters).Error; err != nil {
		return nil, err
	}

	return characters, nil
}

// CreateCharacter inserts a node. The (project_id, name) uniqueness decision
// is left to the composite unique index so that concurrent creates cannot
// both succeed.
func CreateCharacter(conn *gorm.DB, projectID uint, input CharacterInput) (*models.Character, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrCharacterNameRequired
	}

	character := models.Character{
		ProjectID:   projectID,
		Name:        input.Name,
		Description: input.Description,
		BgColor:     input.Colors.Bg,
		BorderColor: input.Colors.Border,
		TextColor:   input.Colors.Text,
		IconColor:   input.Colors.Icon,
		Metadata:    input.Metadata,
	}

	if input.Position != nil {
		character.PositionX = &input.Position.X
		character.PositionY = &input.Position.Y
	}

	if err := conn.Create(&character).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCharacterName
		}
		return nil, err
	}

	return &character, nil
}

func GetCharacter(conn *gorm.DB, projectID, characterID uint) (*models.Character, error) {
	var character models.Character

	if err := conn.Where("id = ? AND project_id = ?", characterID, projectID).First(&character).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}

	return &character, nil
}

// GetCharacterWithRelationships also returns the outgoing and incoming edge
// lists, each hydrated with the peer character so responses can carry names.
func GetCharacterWithRelationships(conn *gorm.DB, projectID, characterID uint) (*models.Character, []models.Relationship, []models.Relationship, error) {
	character, err := GetCharacter(conn, projectID, characterID)

	if err != nil {
		return nil, nil, nil, err
	}

	var outgoing []models.Relationship

	err = conn.Where("source_character_id = ?", character.ID).
		Preload("SourceCharacter").
		Preload("TargetCharacter").
		Order("id").
		Find(&outgoing).Error

	if err != nil {
		return nil, nil, nil, err
	}

	var incoming []models.Relationship

	err = conn.Where("target_character_id = ?", character.ID).
		Preload("SourceCharacter").
		Preload("TargetCharacter").
		Order("id").
		Find(&incoming).Error

	if err != nil {
		return nil, nil, nil, err
	}

	return character, outgoing, incoming, nil
}

func UpdateCharacter(conn *gorm.DB, projectID, characterID uint, update CharacterUpdate) (*models.Character, error) {
	var character *models.Character

	err := conn.Transaction(func(tx *gorm.DB) error {
		var err error

		character, err = GetCharacter(tx, projectID, characterID)

		if err != nil {
			return err
		}

		if update.Name != nil {
			if strings.TrimSpace(*update.Name) == "" {
				return ErrCharacterNameRequired
			}
			character.Name = *update.Name
		}

		if update.Description != nil {
			character.Description = *update.Description
		}

		if update.Position != nil {
			character.PositionX = &update.Position.X
			character.PositionY = &update.Position.Y
		}

		if update.Colors != nil {
			character.BgColor = update.Colors.Bg
			character.BorderColor = update.Colors.Border
			character.TextColor = update.Colors.Text
			character.IconColor = update.Colors.Icon
		}

		if update.Metadata != nil {
			character.Metadata = update.Metadata
		}

		if err := tx.Save(character).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateCharacterName
			}
			return err
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return character, nil
}

// DeleteCharacter removes the node and, in the same transaction, every edge
// that references it as source or target. A node gone with its edges left
// dangling is never observable.
func DeleteCharacter(conn *gorm.DB, projectID, characterID uint) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		character, err := GetCharacter(tx, projectID, characterID)

		if err != nil {
			return err
		}

		err = tx.Where("source_character_id = ? OR target_character_id = ?", character.ID, character.ID).
			Delete(&models.Relationship{}).Error

		if err != nil {
			return err
		}

		return tx.Delete(character).Error
	})
}
