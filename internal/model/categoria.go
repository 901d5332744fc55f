package model

import "github.com/google/uuid"

// Categoria classifies catalog products. Nombre and Slug are both unique.
type Categoria struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`
	Slug   string    `gorm:"uniqueIndex;not null"`
}

// TableName overrides GORM's default pluralization for Spanish names.
func (Categoria) TableName() string { return "categorias" }
