package model

import (
	"time"

	"github.com/google/uuid"
)

// PedidoImagen is a reference image attached to a pedido at submission time.
// Rows are immutable once created.
type PedidoImagen struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID  uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"not null"`
	Posicion  int       `gorm:"not null;default:0"`
	CreatedAt time.Time
}

// TableName overrides GORM's default pluralization for Spanish names.
func (PedidoImagen) TableName() string { return "pedido_imagenes" }
