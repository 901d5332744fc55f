package service

import (
	"time"

	"tiendaonline/internal/filtro"
)

const formatoDisplay = "02/01/2006"

// diasEntre counts whole calendar days between t and ahora in ahora's
// location. Same-day yields 0; t after ahora also yields 0.
func diasEntre(t, ahora time.Time) int {
	inicio := filtro.InicioDelDia(t.In(ahora.Location()))
	hoy := filtro.InicioDelDia(ahora)
	if inicio.After(hoy) {
		return 0
	}
	dias := 0
	for d := inicio; d.Before(hoy); d = d.AddDate(0, 0, 1) {
		dias++
	}
	return dias
}

// diasHasta counts whole calendar days from ahora's day to t's day. Negative
// when t already passed.
func diasHasta(t, ahora time.Time) int {
	objetivo := filtro.InicioDelDia(t.In(ahora.Location()))
	hoy := filtro.InicioDelDia(ahora)
	if objetivo.Before(hoy) {
		return -diasEntre(t, ahora)
	}
	dias := 0
	for d := hoy; d.Before(objetivo); d = d.AddDate(0, 0, 1) {
		dias++
	}
	return dias
}
