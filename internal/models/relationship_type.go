package models

// RelationshipType is an optional reusable classification for edges. It is
// not tied to a project and is never cascaded by project or character
// deletion; deleting a type clears the reference on affected relationships.
type RelationshipType struct {
	BaseModel

	Name        string `gorm:"uniqueIndex;not null"`
	Description string
	Color       string
}
