package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido.
const (
	EstadoSolicitado = "solicitado"
	EstadoAprobado   = "aprobado"
	EstadoEnProceso  = "en_proceso"
	EstadoRealizada  = "realizada"
	EstadoEntregada  = "entregada"
	EstadoFinalizada = "finalizada"
	EstadoCancelada  = "cancelada"
)

// EstadosPedido lists every valid order status, in lifecycle order.
var EstadosPedido = []string{
	EstadoSolicitado, EstadoAprobado, EstadoEnProceso, EstadoRealizada,
	EstadoEntregada, EstadoFinalizada, EstadoCancelada,
}

// Plataformas por las que puede entrar un pedido.
const (
	PlataformaFacebook   = "facebook"
	PlataformaInstagram  = "instagram"
	PlataformaWhatsapp   = "whatsapp"
	PlataformaPresencial = "presencial"
	PlataformaWeb        = "web"
	PlataformaOtro       = "otro"
)

var Plataformas = []string{
	PlataformaFacebook, PlataformaInstagram, PlataformaWhatsapp,
	PlataformaPresencial, PlataformaWeb, PlataformaOtro,
}

// Estados de pago.
const (
	PagoPendiente = "pendiente"
	PagoParcial   = "parcial"
	PagoPagado    = "pagado"
)

var EstadosPago = []string{PagoPendiente, PagoParcial, PagoPagado}

func EstadoPedidoValido(s string) bool { return contiene(EstadosPedido, s) }
func PlataformaValida(s string) bool   { return contiene(Plataformas, s) }
func EstadoPagoValido(s string) bool   { return contiene(EstadosPago, s) }

func contiene(valores []string, s string) bool {
	for _, v := range valores {
		if v == s {
			return true
		}
	}
	return false
}

// Pedido is a customer's custom-product request tracked through a status
// lifecycle. CreatedAt is set once at submission and never modified. Token is
// the public tracking identifier: random, unique, and independent of ID.
// ProductoID is nullable — a product removed from the catalog leaves its
// historical pedidos with a NULL reference.
type Pedido struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Token         uuid.UUID        `gorm:"type:uuid;uniqueIndex;not null"`
	NombreCliente string           `gorm:"index;not null"`
	Email         string
	Telefono      string
	ProductoID    *uuid.UUID `gorm:"type:uuid;index"`
	Descripcion   string
	Plataforma    string           `gorm:"not null;default:'web';index"`
	FechaPedida   *time.Time       `gorm:"type:date"`
	Estado        string           `gorm:"not null;default:'solicitado';index"`
	EstadoPago    string           `gorm:"not null;default:'pendiente'"`
	PrecioTotal   *decimal.Decimal `gorm:"type:decimal(10,2)"`
	CreatedAt     time.Time        `gorm:"index"`

	Producto *Producto      `gorm:"foreignKey:ProductoID;constraint:OnDelete:SET NULL"`
	Imagenes []PedidoImagen `gorm:"foreignKey:PedidoID"`
}

// TableName overrides GORM's default pluralization for Spanish names.
func (Pedido) TableName() string { return "pedidos" }
