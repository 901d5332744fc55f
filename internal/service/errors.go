package service

import "errors"

// Sentinel errors the handler layer maps onto HTTP status codes.
var (
	// ErrNoEncontrado covers any lookup miss (order, product, supply, token).
	ErrNoEncontrado = errors.New("recurso no encontrado")

	// ErrConflictoStock signals a stock adjustment that would leave a
	// negative quantity. The supply row is left unchanged.
	ErrConflictoStock = errors.New("stock insuficiente para el ajuste")

	// ErrCategoriaEnUso blocks deleting a category that still has products.
	ErrCategoriaEnUso = errors.New("la categoria tiene productos asociados")
)
