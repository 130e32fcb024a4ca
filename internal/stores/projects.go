package stores

import (
	"errors"
	"strings"

	"github.com/lorecanvas/lorecanvas/internal/models"
	"gorm.io/gorm"
)

func ListProjects(conn *gorm.DB, userID uint) ([]models.Project, error) {
	var projects []models.Project

	if err := conn.Where("owner_id = ?", userID).Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

func CreateProject(conn *gorm.DB, userID uint, name, description string) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrProjectNameRequired
	}

	project := models.Project{
		Name:        name,
		Description: description,
		OwnerID:     userID,
	}

	if err := conn.Create(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// GetProject resolves a project only for its owner. Absent and not-owned
// collapse into the same ErrProjectNotFound so that project ids cannot be
// probed by other tenants.
func GetProject(conn *gorm.DB, userID, projectID uint) (*models.Project, error) {
	var project models.Project

	if err := conn.Where("id = ? AND owner_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	return &project, nil
}

func UpdateProject(conn *gorm.DB, userID, projectID uint, name, description string) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrProjectNameRequired
	}

	project, err := GetProject(conn, userID, projectID)

	if err != nil {
		return nil, err
	}

	project.Name = name
	project.Description = description

	if err := conn.Save(project).Error; err != nil {
		return nil, err
	}

	return project, nil
}

// DeleteProject removes the project and everything it owns. The cascade is
// an explicit transactional step: edges first, then nodes, then the project,
// so a partially emptied project is never observable.
func DeleteProject(conn *gorm.DB, userID, projectID uint) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		project, err := GetProject(tx, userID, projectID)

		if err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Relationship{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Character{}).Error; err != nil {
			return err
		}

		return tx.Delete(project).Error
	})
}
