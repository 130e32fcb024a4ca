package handlers

import (
	"encoding/json"
	"time"

	"github.com/lorecanvas/lorecanvas/internal/models"
	"gorm.io/datatypes"
)

type ProjectResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PositionResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ColorsResponse struct {
	Bg     string `json:"bg"`
	Border string `json:"border"`
	Text   string `json:"text"`
	Icon   string `json:"icon"`
}

type CharacterResponse struct {
	ID            uint                    `json:"id"`
	ProjectID     uint                    `json:"project_id"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description"`
	Position      *PositionResponse       `json:"position"`
	Colors        ColorsResponse          `json:"colors"`
	Metadata      map[string]interface{}  `json:"metadata"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
	Relationships *CharacterEdgesResponse `json:"relationships,omitempty"`
}

type CharacterEdgesResponse struct {
	Outgoing []RelationshipResponse `json:"outgoing"`
	Incoming []RelationshipResponse `json:"incoming"`
}

type RelationshipResponse struct {
	ID                  uint                   `json:"id"`
	ProjectID           uint                   `json:"project_id"`
	SourceCharacterID   uint                   `json:"source_character_id"`
	TargetCharacterID   uint                   `json:"target_character_id"`
	SourceCharacterName string                 `json:"source_character_name"`
	TargetCharacterName string                 `json:"target_character_name"`
	Label               string                 `json:"label"`
	RelationshipTypeID  *uint                  `json:"relationship_type_id"`
	Metadata            map[string]interface{} `json:"metadata"`
	CreatedAt           time.Time              `json:"created_at"`
}

type RelationshipTypeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func newProjectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		UserID:      project.OwnerID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func newCharacterResponse(character models.Character) CharacterResponse {
	response := CharacterResponse{
		ID:          character.ID,
		ProjectID:   character.ProjectID,
		Name:        character.Name,
		Description: character.Description,
		Colors: ColorsResponse{
			Bg:     character.BgColor,
			Border: character.BorderColor,
			Text:   character.TextColor,
			Icon:   character.IconColor,
		},
		Metadata:  decodeMetadata(character.Metadata),
		CreatedAt: character.CreatedAt,
		UpdatedAt: character.UpdatedAt,
	}

	if character.PositionX != nil && character.PositionY != nil {
		response.Position = &PositionResponse{
			X: *character.PositionX,
			Y: *character.PositionY,
		}
	}

	return response
}

// Endpoint names are recomputed from the hydrated characters on every read;
// they are never stored on the edge.
func newRelationshipResponse(relationship models.Relationship) RelationshipResponse {
	return RelationshipResponse{
		ID:                  relationship.ID,
		ProjectID:           relationship.ProjectID,
		SourceCharacterID:   relationship.SourceCharacterID,
		TargetCharacterID:   relationship.TargetCharacterID,
		SourceCharacterName: relationship.SourceCharacter.Name,
		TargetCharacterName: relationship.TargetCharacter.Name,
		Label:               relationship.Label,
		RelationshipTypeID:  relationship.RelationshipTypeID,
		Metadata:            decodeMetadata(relationship.Metadata),
		CreatedAt:           relationship.CreatedAt,
	}
}

func newRelationshipListResponse(relationships []models.Relationship) []RelationshipResponse {
	response := make([]RelationshipResponse, 0, len(relationships))

	for _, relationship := range relationships {
		response = append(response, newRelationshipResponse(relationship))
	}

	return response
}

func newRelationshipTypeResponse(relationshipType models.RelationshipType) RelationshipTypeResponse {
	return RelationshipTypeResponse{
		ID:          relationshipType.ID,
		Name:        relationshipType.Name,
		Description: relationshipType.Description,
		Color:       relationshipType.Color,
	}
}

// Metadata is an opaque pass-through blob; it is returned exactly as stored
// and an absent blob reads as an empty object.
func decodeMetadata(raw datatypes.JSON) map[string]interface{} {
	metadata := make(map[string]interface{})

	if len(raw) == 0 {
		return metadata
	}

	if err := json.Unmarshal(raw, &metadata); err != nil {
		return make(map[string]interface{})
	}

	return metadata
}

func encodeMetadata(metadata map[string]interface{}) (datatypes.JSON, error) {
	if metadata == nil {
		return nil, nil
	}

	raw, err := json.Marshal(metadata)

	if err != nil {
		return nil, err
	}

	return datatypes.JSON(raw), nil
}
