package infra

import (
	"fmt"
	"net/smtp"

	"tiendaonline/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for the outgoing tracking emails.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendSeguimiento sends the order-received confirmation with the tracking link.
func (m *Mailer) SendSeguimiento(to, nombreCliente, trackingURL string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = "Recibimos tu pedido"
	e.Text = []byte(fmt.Sprintf(
		"Hola %s,\n\nRecibimos tu solicitud de pedido. Podés seguir su estado en:\n\n%s\n\n¡Gracias por tu compra!",
		nombreCliente, trackingURL,
	))

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
