package middleware

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lorecanvas/lorecanvas/db"
	"github.com/lorecanvas/lorecanvas/internal/stores"
	"github.com/lorecanvas/lorecanvas/internal/types"
)

// ProjectAccess guards every project-scoped route. It resolves :project_id
// and verifies ownership before any handler runs; handlers read the project
// from the context, so no project-scoped operation can skip the check.
//
// Absent and not-owned both answer 404. Non-owners can never learn whether
// a project id exists.
func ProjectAccess() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		projectID, err := strconv.ParseUint(ctx.Param("project_id"), 10, 32)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid Project ID"})
			return
		}

		userValue, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
			return
		}

		user, ok := userValue.(AuthenticatedUser)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
			return
		}

		project, err := stores.GetProject(db.DB, user.ID, uint(projectID))

		if err != nil {
			if errors.Is(err, stores.ErrProjectNotFound) {
				ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Project not found"})
			} else {
				log.Printf("Failed to resolve project %d: %v", projectID, err)
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			}
			return
		}

		ctx.Set(types.ContextProjectKey, *project)
		ctx.Next()
	}
}
