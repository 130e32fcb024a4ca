package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lorecanvas/lorecanvas/db"
	"github.com/lorecanvas/lorecanvas/internal/stores"
	"github.com/lorecanvas/lorecanvas/internal/utils"
)

type PositionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ColorsRequest struct {
	Bg     string `json:"bg"`
	Border string `json:"border"`
	Text   string `json:"text"`
	Icon   string `json:"icon"`
}

type CreateCharacterRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Position    *PositionRequest       `json:"position"`
	Colors      *ColorsRequest         `json:"colors"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// Pointer fields so that an omitted field is distinguishable from a zero
// value; only what the request carries is applied.
type UpdateCharacterRequest struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Position    *PositionRequest       `json:"position"`
	Colors      *ColorsRequest         `json:"colors"`
	Metadata    map[string]interface{} `json:"metadata"`
}

func ListCharacters(ctx *gin.Context) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}

	characters, err := stores.ListCharacters(db.DB, project.ID)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	response := make([]CharacterResponse, 0, len(characters))

	for _, character := range characters {
		response = append(response, newCharacterResponse(character))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateCharacter(ctx *gin.Context) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}

	var req CreateCharacterRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Character name is required"})
		return
	}

	metadata, err := encodeMetadata(req.Metadata)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid metadata format"})
		return
	}

	input := stores.CharacterInput{
		Name:        req.Name,
		Description: req.Description,
		Metadata:    metadata,
	}

	if req.Position != nil {
		input.Position = &stores.Position{X: req.Position.X, Y: req.Position.Y}
	}

	if req.Colors != nil {
		input.Colors = stores.Colors{
			Bg:     req.Colors.Bg,
			Border: req.Colors.Border,
			Text:   req.Colors.Text,
			Icon:   req.Colors.Icon,
		}
	}

	character, err := stores.CreateCharacter(db.DB, project.ID, input)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newCharacterResponse(*character))
}

func GetCharacter(ctx *gin.Context) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}

	characterID, err := utils.GetCharacterID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if ctx.Query("include_relationships") == "true" {
		character, outgoing, incoming, err := stores.GetCharacterWithRelationships(db.DB, project.ID, characterID)

		if err != nil {
			respondStoreError(ctx, err)
			return
		}

		response := newCharacterResponse(*character)
		response.Relationships = &CharacterEdgesResponse{
			Outgoing: newRelationshipListResponse(outgoing),
			Incoming: newRelationshipListResponse(incoming),
		}

		ctx.JSON(http.StatusOK, response)
		return
	}

	character, err := stores.GetCharacter(db.DB, project.ID, characterID)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newCharacterResponse(*character))
}

func UpdateCharacter(ctx *gin.Context) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}

	characterID, err := utils.GetCharacterID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var req UpdateCharacterRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	metadata, err := encodeMetadata(req.Metadata)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid metadata format"})
		return
	}

	update := stores.CharacterUpdate{
		Name:        req.Name,
		Description: req.Description,
		Metadata:    metadata,
	}

	if req.Position != nil {
		update.Position = &stores.Position{X: req.Position.X, Y: req.Position.Y}
	}

	if req.Colors != nil {
		update.Colors = &stores.Colors{
			Bg:     req.Colors.Bg,
			Border: req.Colors.Border,
			Text:   req.Colors.Text,
			Icon:   req.Colors.Icon,
		}
	}

	character, err := stores.UpdateCharacter(db.DB, project.ID, characterID, update)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newCharacterResponse(*character))
}

func DeleteCharacter(ctx *gin.Context) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
		return
	}

	characterID, err := utils.GetCharacterID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := stores.DeleteCharacter(db.DB, project.ID, characterID); err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Character deleted successfully"})
}
