package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lorecanvas/lorecanvas/internal/stores"
)

// respondStoreError maps store sentinels onto the {message} envelope.
// Anything unrecognized is an internal failure: logged in full, reported
// without detail.
func respondStoreError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, stores.ErrPasswordTooShort),
		errors.Is(err, stores.ErrProjectNameRequired),
		errors.Is(err, stores.ErrCharacterNameRequired),
		errors.Is(err, stores.ErrRelationshipTypeRequired),
		errors.Is(err, stores.ErrSelfRelationship):
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

	case errors.Is(err, stores.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})

	case errors.Is(err, stores.ErrUserNotFound),
		errors.Is(err, stores.ErrProjectNotFound),
		errors.Is(err, stores.ErrCharacterNotFound),
		errors.Is(err, stores.ErrRelationshipNotFound),
		errors.Is(err, stores.ErrRelationshipTypeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"message": err.Error()})

	case errors.Is(err, stores.ErrDuplicateEmail),
		errors.Is(err, stores.ErrDuplicateCharacterName),
		errors.Is(err, stores.ErrDuplicateRelationship),
		errors.Is(err, stores.ErrDuplicateRelationshipType):
		ctx.JSON(http.StatusConflict, gin.H{"message": err.Error()})

	default:
		log.Printf("Unhandled store error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
