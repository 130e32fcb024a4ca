package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lorecanvas/lorecanvas/db"
	"github.com/lorecanvas/lorecanvas/internal/stores"
	"github.com/lorecanvas/lorecanvas/internal/utils"
)

type CreateRelationshipRequest struct {
	SourceCharacterID  uint                   `json:"source_character_id" binding:"required"`
	TargetCharacterID  uint                   `json:"target_character_id" binding:"required"`
	Label              string                 `json:"label"`
	RelationshipTypeID *uint                  `json:"relationship_type_id"`
	Metadata           map[string]interface{} `json:"metadata"`
}

// Endpoints are immutable; only label, type and metadata can change.
// Sending relationship_type_id as 0 clears the classification.
type UpdateRelationshipRequest struct {
	Label              *string                `json:"label"`
	RelationshipTypeID *uint                  `json:"relationship_type_id"`
	Metadata           map[string]interface{} `json:"metadata"`
}

func ListRelationships(ctx *gin.Context) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}

	relationships, err := stores.ListRelationships(db.DB, project.ID)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newRelationshipListResponse(relationships))
}

func CreateRelationship(ctx *gin.Context) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}

	var req CreateRelationshipRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Source and target character IDs are required"})
		return
	}

	metadata, err := encodeMetadata(req.Metadata)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid metadata format"})
		return
	}

	input := stores.RelationshipInput{
		SourceCharacterID:  req.SourceCharacterID,
		TargetCharacterID:  req.TargetCharacterID,
		Label:              req.Label,
		RelationshipTypeID: req.RelationshipTypeID,
		Metadata:           metadata,
	}

	relationship, err := stores.CreateRelationship(db.DB, project.ID, input)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newRelationshipResponse(*relationship))
}

func UpdateRelationship(ctx *gin.Context) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}

	relationshipID, err := utils.GetRelationshipID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var req UpdateRelationshipRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	metadata, err := encodeMetadata(req.Metadata)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid metadata format"})
		return
	}

	update := stores.RelationshipUpdate{
		Label:    req.Label,
		Metadata: metadata,
	}

	if req.RelationshipTypeID != nil {
		if *req.RelationshipTypeID == 0 {
			update.ClearType = true
		} else {
			update.RelationshipTypeID = req.RelationshipTypeID
		}
	}

	relationship, err := stores.UpdateRelationship(db.DB, project.ID, relationshipID, update)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newRelationshipResponse(*relationship))
}

func DeleteRelationship(ctx *gin.Context) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}

	relationshipID, err := utils.GetRelationshipID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := stores.DeleteRelationship(db.DB, project.ID, relationshipID); err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Relationship deleted successfully"})
}
