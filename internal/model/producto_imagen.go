package model

import "github.com/google/uuid"

// ProductoImagen is a catalog image, ordered by Posicion.
type ProductoImagen struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL        string    `gorm:"not null"`
	Posicion   int       `gorm:"not null;default:0"`
}

// TableName overrides GORM's default pluralization for Spanish names.
func (ProductoImagen) TableName() string { return "producto_imagenes" }
