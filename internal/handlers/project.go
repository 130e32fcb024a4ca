package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lorecanvas/lorecanvas/db"
	"github.com/lorecanvas/lorecanvas/internal/stores"
	"github.com/lorecanvas/lorecanvas/internal/utils"
)

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Project name is required"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	project, err := stores.CreateProject(db.DB, userID, body.Name, body.Description)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newProjectResponse(*project))
}

func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	projects, err := stores.ListProjects(db.DB, userID)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, newProjectResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}

	ctx.JSON(http.StatusOK, newProjectResponse(project))
}

func UpdateProject(ctx *gin.Context) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Project name is required"})
		return
	}

	updated, err := stores.UpdateProject(db.DB, project.OwnerID, project.ID, body.Name, body.Description)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newProjectResponse(*updated))
}

func DeleteProject(ctx *gin.Context) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}

	if err := stores.DeleteProject(db.DB, project.OwnerID, project.ID); err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
