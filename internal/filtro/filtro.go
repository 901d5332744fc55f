// Package filtro turns the raw query-parameter bag of the order listing into
// a single normalized filter: a set of equality/substring predicates plus one
// mutually-consistent inclusive date range, resolved against an explicit
// reference clock. Resolution is pure: no ambient time, no I/O.
package filtro

import (
	"fmt"
	"strings"
	"time"

	"tiendaonline/internal/model"

	"github.com/google/uuid"
)

const formatoFecha = "2006-01-02"

// Parametros is bound from the query string of GET /v1/pedidos.
// Booleans arrive as strings ("true", "1", "yes", "on") and are coerced
// before any rule runs.
type Parametros struct {
	Estado        string `form:"status"`
	Plataforma    string `form:"platform"`
	EstadoPago    string `form:"payment_status"`
	NombreCliente string `form:"customer_name"`
	ProductoRef   string `form:"product_ref"`
	DateFrom      string `form:"date_from"`
	DateTo        string `form:"date_to"`
	LastDays      int    `form:"last_days"`
	ThisMonth     string `form:"this_month"`
	TodayOnly     string `form:"today_only"`
	Page          int    `form:"page,default=1"`
	Limit         int    `form:"limit,default=50"`
}

// ErrorValidacion names the offending parameter. The order listing endpoint
// degrades to an unfiltered listing on this error; every other caller
// surfaces it as a 422.
type ErrorValidacion struct {
	Campo   string
	Mensaje string
}

func (e *ErrorValidacion) Error() string { return e.Campo + ": " + e.Mensaje }

// Resuelto is the normalized filter: predicates plus a single resolved
// [Desde, Hasta] range (both inclusive, reference timezone). The formatted
// echoes exist for display/diagnostics only, never for computation.
type Resuelto struct {
	Estados       []string
	Plataforma    string
	EstadoPago    string
	NombreCliente string
	ProductoID    *uuid.UUID
	Desde         *time.Time
	Hasta         *time.Time

	DateFromFormatted string // dd/mm/yyyy
	DateToFormatted   string // dd/mm/yyyy
	AplicadoEn        time.Time

	Page  int
	Limit int
}

// Resolver applies the resolution rules in order. `ahora` is the reference
// clock, already in the reference timezone.
func Resolver(p Parametros, ahora time.Time) (*Resuelto, error) {
	loc := ahora.Location()

	// Boolean-like strings are coerced before rule evaluation.
	thisMonth := esVerdadero(p.ThisMonth)
	todayOnly := esVerdadero(p.TodayOnly)

	var desde, hasta *time.Time

	if p.DateFrom != "" {
		t, err := time.ParseInLocation(formatoFecha, p.DateFrom, loc)
		if err != nil {
			return nil, &ErrorValidacion{Campo: "date_from", Mensaje: "formato de fecha inválido (YYYY-MM-DD)"}
		}
		desde = &t
	}
	if p.DateTo != "" {
		t, err := time.ParseInLocation(formatoFecha, p.DateTo, loc)
		if err != nil {
			return nil, &ErrorValidacion{Campo: "date_to", Mensaje: "formato de fecha inválido (YYYY-MM-DD)"}
		}
		hasta = &t
	}

	if desde != nil && hasta != nil && desde.After(*hasta) {
		return nil, &ErrorValidacion{Campo: "date_from", Mensaje: "la fecha desde no puede ser mayor que la fecha hasta"}
	}

	// Los atajos de ventana son mutuamente excluyentes.
	activos := 0
	nombres := make([]string, 0, 3)
	if p.LastDays != 0 {
		activos++
		nombres = append(nombres, "last_days")
	}
	if thisMonth {
		activos++
		nombres = append(nombres, "this_month")
	}
	if todayOnly {
		activos++
		nombres = append(nombres, "today_only")
	}
	if activos > 1 {
		return nil, &ErrorValidacion{
			Campo:   "filters",
			Mensaje: "filtros incompatibles: " + strings.Join(nombres, ", "),
		}
	}

	hoy := InicioDelDia(ahora)

	switch {
	case p.LastDays != 0:
		if p.LastDays < 1 || p.LastDays > 365 {
			return nil, &ErrorValidacion{Campo: "last_days", Mensaje: "debe estar entre 1 y 365"}
		}
		calculado := hoy.AddDate(0, 0, -p.LastDays)
		// An explicit date_from only wins when it is more restrictive (later).
		if desde == nil || desde.Before(calculado) {
			desde = &calculado
		}
		// last_days always extends to "now" — any explicit upper bound is dropped.
		hasta = nil

	case thisMonth:
		primero := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, loc)
		ultimo := primero.AddDate(0, 1, 0).AddDate(0, 0, -1)
		desde, hasta = &primero, &ultimo

	case todayOnly:
		d := hoy
		desde, hasta = &d, &d
	}

	r := &Resuelto{
		Plataforma:    strings.TrimSpace(p.Plataforma),
		EstadoPago:    strings.TrimSpace(p.EstadoPago),
		NombreCliente: strings.TrimSpace(p.NombreCliente),
		AplicadoEn:    ahora,
		Page:          p.Page,
		Limit:         p.Limit,
	}

	if p.Estado != "" {
		for _, token := range strings.Split(p.Estado, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			if !model.EstadoPedidoValido(token) {
				return nil, &ErrorValidacion{Campo: "status", Mensaje: fmt.Sprintf("estado %q no válido", token)}
			}
			r.Estados = append(r.Estados, token)
		}
	}

	if p.ProductoRef != "" {
		id, err := uuid.Parse(p.ProductoRef)
		if err != nil {
			return nil, &ErrorValidacion{Campo: "product_ref", Mensaje: "identificador de producto inválido"}
		}
		r.ProductoID = &id
	}

	if desde != nil {
		d := InicioDelDia(*desde)
		r.Desde = &d
		r.DateFromFormatted = d.Format("02/01/2006")
	}
	if hasta != nil {
		h := FinDelDia(*hasta)
		r.Hasta = &h
		r.DateToFormatted = hasta.Format("02/01/2006")
	}

	return r, nil
}

// ── Cláusulas ─────────────────────────────────────────────────────────────────

// Op identifies the comparison a clause performs.
type Op int

const (
	OpEn       Op = iota // value IN (list)
	OpIgual              // equality
	OpContiene           // case-insensitive substring
	OpDesde              // column >= value
	OpHasta              // column <= value
)

// Clausula is one typed predicate. The repository combines the ordered list
// with logical AND; no dynamic expression trees.
type Clausula struct {
	Campo string
	Op    Op
	Valor interface{}
}

// Clausulas builds the predicate list deterministically from the resolved
// filter. Order is fixed: estados, plataforma, estado de pago, cliente,
// producto, rango de fechas.
func (r *Resuelto) Clausulas() []Clausula {
	var cl []Clausula
	if len(r.Estados) > 0 {
		cl = append(cl, Clausula{Campo: "estado", Op: OpEn, Valor: r.Estados})
	}
	if r.Plataforma != "" {
		cl = append(cl, Clausula{Campo: "plataforma", Op: OpIgual, Valor: r.Plataforma})
	}
	if r.EstadoPago != "" {
		cl = append(cl, Clausula{Campo: "estado_pago", Op: OpIgual, Valor: r.EstadoPago})
	}
	if r.NombreCliente != "" {
		cl = append(cl, Clausula{Campo: "nombre_cliente", Op: OpContiene, Valor: r.NombreCliente})
	}
	if r.ProductoID != nil {
		cl = append(cl, Clausula{Campo: "producto_id", Op: OpIgual, Valor: *r.ProductoID})
	}
	if r.Desde != nil {
		cl = append(cl, Clausula{Campo: "created_at", Op: OpDesde, Valor: *r.Desde})
	}
	if r.Hasta != nil {
		cl = append(cl, Clausula{Campo: "created_at", Op: OpHasta, Valor: *r.Hasta})
	}
	return cl
}

// RangoCreacion builds range-only clauses for an explicit [desde, hasta]
// window, both inclusive.
func RangoCreacion(desde, hasta time.Time) []Clausula {
	return []Clausula{
		{Campo: "created_at", Op: OpDesde, Valor: desde},
		{Campo: "created_at", Op: OpHasta, Valor: hasta},
	}
}

// InicioDelDia returns midnight of t's calendar day, keeping its location.
func InicioDelDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FinDelDia returns the last representable instant of t's calendar day.
func FinDelDia(t time.Time) time.Time {
	return InicioDelDia(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// esVerdadero coerces the boolean-like strings the storefront accepts.
func esVerdadero(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
