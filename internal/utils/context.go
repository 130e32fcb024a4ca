package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/lorecanvas/lorecanvas/internal/middleware"
	"github.com/lorecanvas/lorecanvas/internal/models"
	"github.com/lorecanvas/lorecanvas/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

// GetCurrentProject returns the project resolved by the ProjectAccess
// middleware. Handlers must not load projects any other way.
func GetCurrentProject(ctx *gin.Context) (models.Project, error) {
	project, exists := ctx.Get(types.ContextProjectKey)

	if !exists {
		return models.Project{}, fmt.Errorf("Project not resolved")
	}

	resolvedProject, ok := project.(models.Project)

	if !ok {
		return models.Project{}, fmt.Errorf("Invalid project type in context")
	}

	return resolvedProject, nil
}
