package dto

import "github.com/google/uuid"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CrearCategoriaRequest struct {
	Nombre string `json:"name" validate:"required,min=2,max=100"`
	Slug   string `json:"slug" validate:"omitempty,max=120"`
}

type ActualizarCategoriaRequest struct {
	Nombre *string `json:"name" validate:"omitempty,min=2,max=100"`
	Slug   *string `json:"slug" validate:"omitempty,max=120"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CategoriaResponse struct {
	ID     uuid.UUID `json:"id"`
	Nombre string    `json:"name"`
	Slug   string    `json:"slug"`
}
