package stores

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")

	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectNameRequired = errors.New("project name is required")

	ErrCharacterNotFound      = errors.New("character not found")
	ErrCharacterNameRequired  = errors.New("character name is required")
	ErrDuplicateCharacterName = errors.New("a character with this name already exists in the project")

	ErrRelationshipNotFound  = errors.New("relationship not found")
	ErrSelfRelationship      = errors.New("a character cannot have a relationship with itself")
	ErrDuplicateRelationship = errors.New("a relationship between these characters already exists")

	ErrRelationshipTypeNotFound  = errors.New("relationship type not found")
	ErrRelationshipTypeRequired  = errors.New("relationship type name is required")
	ErrDuplicateRelationshipType = errors.New("a relationship type with this name already exists")
)
