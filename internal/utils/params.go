package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetProjectID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "project_id", "Project")
}

func GetCharacterID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "character_id", "Character")
}

func GetRelationshipID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "relationship_id", "Relationship")
}

func GetRelationshipTypeID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "type_id", "Relationship type")
}

func paramID(ctx *gin.Context, name, label string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errors.New(label + " ID not found")
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + label + " ID")
	}

	return uint(id), nil
}
