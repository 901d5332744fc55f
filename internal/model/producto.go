package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog product. Slug is the public URL-safe identifier used
// by the storefront; it is unique across the catalog.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Slug        string    `gorm:"uniqueIndex;not null"`
	Descripcion string
	CategoriaID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Destacado   bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time

	Categoria *Categoria       `gorm:"foreignKey:CategoriaID"`
	Imagenes  []ProductoImagen `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Producto) TableName() string { return "productos" }
