package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lorecanvas/lorecanvas/db"
	"github.com/lorecanvas/lorecanvas/internal/stores"
	"github.com/lorecanvas/lorecanvas/internal/utils"
)

type RelationshipTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func ListRelationshipTypes(ctx *gin.Context) {
	relationshipTypes, err := stores.ListRelationshipTypes(db.DB)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	response := make([]RelationshipTypeResponse, 0, len(relationshipTypes))

	for _, relationshipType := range relationshipTypes {
		response = append(response, newRelationshipTypeResponse(relationshipType))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateRelationshipType(ctx *gin.Context) {
	var req RelationshipTypeRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Relationship type name is required"})
		return
	}

	relationshipType, err := stores.CreateRelationshipType(db.DB, req.Name, req.Description, req.Color)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newRelationshipTypeResponse(*relationshipType))
}

func UpdateRelationshipType(ctx *gin.Context) {
	typeID, err := utils.GetRelationshipTypeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var req RelationshipTypeRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Relationship type name is required"})
		return
	}

	relationshipType, err := stores.UpdateRelationshipType(db.DB, typeID, req.Name, req.Description, req.Color)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newRelationshipTypeResponse(*relationshipType))
}

func DeleteRelationshipType(ctx *gin.Context) {
	typeID, err := utils.GetRelationshipTypeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := stores.DeleteRelationshipType(db.DB, typeID); err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Relationship type deleted successfully"})
}
