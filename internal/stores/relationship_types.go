package stores

import (
	"errors"
	"strings"

	"github.com/lorecanvas/lorecanvas/internal/models"
	"gorm.io/gorm"
)

func ListRelationshipTypes(conn *gorm.DB) ([]models.RelationshipType, error) {
	var types []models.RelationshipType

	if err := conn.Order("id").Find(&types).Error; err != nil {
		return nil, err
	}

	return types, nil
}

func CreateRelationshipType(conn *gorm.DB, name, description, color string) (*models.RelationshipType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrRelationshipTypeRequired
	}

	relationshipType := models.RelationshipType{
		Name:        name,
		Description: description,
		Color:       color,
	}

	if err := conn.Create(&relationshipType).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRelationshipType
		}
		return nil, err
	}

	return &relationshipType, nil
}

func GetRelationshipType(conn *gorm.DB, typeID uint) (*models.RelationshipType, error) {
	var relationshipType models.RelationshipType

	if err := conn.First(&relationshipType, typeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRelationshipTypeNotFound
		}
		return nil, err
	}

	return &relationshipType, nil
}

func UpdateRelationshipType(conn *gorm.DB, typeID uint, name, description, color string) (*models.RelationshipType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrRelationshipTypeRequired
	}

	relationshipType, err := GetRelationshipType(conn, typeID)

	if err != nil {
		return nil, err
	}

	relationshipType.Name = name
	relationshipType.Description = description
	relationshipType.Color = color

	if err := conn.Save(relationshipType).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRelationshipType
		}
		return nil, err
	}

	return relationshipType, nil
}

// DeleteRelationshipType clears the reference on affected relationships
// instead of deleting them; the type is a classification, not an owner.
func DeleteRelationshipType(conn *gorm.DB, typeID uint) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		relationshipType, err := GetRelationshipType(tx, typeID)

		if err != nil {
			return err
		}

		err = tx.Model(&models.Relationship{}).
			Where("relationship_type_id = ?", relationshipType.ID).
			Update("relationship_type_id", nil).Error

		if err != nil {
			return err
		}

		return tx.Delete(relationshipType).Error
	})
}
