package stores

import (
	"errors"

	"github.com/lorecanvas/lorecanvas/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RelationshipInput struct {
	SourceCharacterID  uint
	TargetCharacterID  uint
	Label              string
	RelationshipTypeID *uint
	Metadata           datatypes.JSON
}

// RelationshipUpdate covers the mutable fields only. Endpoints are immutable
// after creation; moving an edge means delete and recreate.
type RelationshipUpdate struct {
	Label              *string
	RelationshipTypeID *uint
	ClearType          bool
	Metadata           datatypes.JSON
}

func ListRelationships(conn *gorm.DB, projectID uint) ([]models.Relationship, error) {
	var relationships []models.Relationship

	err := conn.Where("project_id = ?", projectID).
		Preload("SourceCharacter").
		Preload("TargetCharacter").
		Order("id").
		Find(&relationships).Error

	if err != nil {
		return nil, err
	}

	return relationships, nil
}

// CreateRelationship inserts a directed edge after resolving both endpoints
// inside the project. Endpoint checks and the insert share one transaction;
// the ordered (project, source, target) uniqueness decision is left to the
// composite unique index so racing creates resolve to exactly one winner.
func CreateRelationship(conn *gorm.DB, projectID uint, input RelationshipInput) (*models.Relationship, error) {
	if input.SourceCharacterID == input.TargetCharacterID {
		return nil, ErrSelfRelationship
	}

	var relationship models.Relationship

	err := conn.Transaction(func(tx *gorm.DB) error {
		var count int64

		err := tx.Model(&models.Character{}).
			Where("project_id = ? AND id IN ?", projectID, []uint{input.SourceCharacterID, input.TargetCharacterID}).
			Count(&count).Error

		if err != nil {
			return err
		}

		if count != 2 {
			return ErrCharacterNotFound
		}

		if input.RelationshipTypeID != nil {
			var typeCount int64

			err := tx.Model(&models.RelationshipType{}).
				Where("id = ?", *input.RelationshipTypeID).
				Count(&typeCount).Error

			if err != nil {
				return err
			}

			if typeCount == 0 {
				return ErrRelationshipTypeNotFound
			}
		}

		relationship = models.Relationship{
			ProjectID:          projectID,
			SourceCharacterID:  input.SourceCharacterID,
			TargetCharacterID:  input.TargetCharacterID,
			Label:              input.Label,
			RelationshipTypeID: input.RelationshipTypeID,
			Metadata:           input.Metadata,
		}

		if err := tx.Create(&relationship).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateRelationship
			}
			return err
		}

		return tx.Preload("SourceCharacter").Preload("TargetCharacter").First(&relationship, relationship.ID).Error
	})

	if err != nil {
		return nil, err
	}

	return &relationship, nil
}

func GetRelationship(conn *gorm.DB, projectID, relationshipID uint) (*models.Relationship, error) {
	var relationship models.Relationship

	err := conn.Where("id = ? AND project_id = ?", relationshipID, projectID).
		Preload("SourceCharacter").
		Preload("TargetCharacter").
		First(&relationship).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRelationshipNotFound
		}
		return nil, err
	}

	return &relationship, nil
}

func UpdateRelationship(conn *gorm.DB, projectID, relationshipID uint, update RelationshipUpdate) (*models.Relationship, error) {
	var relationship *models.Relationship

	err := conn.Transaction(func(tx *gorm.DB) error {
		var err error

		relationship, err = GetRelationship(tx, projectID, relationshipID)

		if err != nil {
			return err
		}

		updates := make(map[string]interface{})

		if update.Label != nil {
			updates["label"] = *update.Label
		}

		if update.ClearType {
			updates["relationship_type_id"] = nil
		} else if update.RelationshipTypeID != nil {
			var typeCount int64

			err := tx.Model(&models.RelationshipType{}).
				Where("id = ?", *update.RelationshipTypeID).
				Count(&typeCount).Error

			if err != nil {
				return err
			}

			if typeCount == 0 {
				return ErrRelationshipTypeNotFound
			}

			updates["relationship_type_id"] = *update.RelationshipTypeID
		}

		if update.Metadata != nil {
			updates["metadata"] = update.Metadata
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(relationship).Updates(updates).Error; err != nil {
			return err
		}

		relationship, err = GetRelationship(tx, projectID, relationshipID)
		return err
	})

	if err != nil {
		return nil, err
	}

	return relationship, nil
}

func DeleteRelationship(conn *gorm.DB, projectID, relationshipID uint) error {
	result := conn.Where("id = ? AND project_id = ?", relationshipID, projectID).Delete(&models.Relationship{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrRelationshipNotFound
	}

	return nil
}
