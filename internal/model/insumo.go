package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Insumo is a raw-material supply tracked by staff. Cantidad never goes
// negative — every mutation is a conditional atomic update.
type Insumo struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre   string          `gorm:"index;not null"`
	Tipo     string          `gorm:"index"`
	Cantidad decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Unidad   *string
	Marca    string `gorm:"index"`
	Color    string
}

// TableName overrides GORM's default pluralization for Spanish names.
func (Insumo) TableName() string { return "insumos" }
