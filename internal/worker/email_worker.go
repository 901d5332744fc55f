package worker

import (
	"context"
	"encoding/json"

	"tiendaonline/internal/infra"

	"github.com/rs/zerolog/log"
)

// SeguimientoJobPayload is the job envelope sent to QueueEmail.
type SeguimientoJobPayload struct {
	ToEmail       string `json:"to_email"`
	NombreCliente string `json:"nombre_cliente"`
	TrackingURL   string `json:"tracking_url"`
}

// EmailWorker processes tracking-email jobs from QueueEmail via SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends the order-received confirmation email.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload SeguimientoJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	if err := w.mailer.SendSeguimiento(payload.ToEmail, payload.NombreCliente, payload.TrackingURL); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: seguimiento sent successfully")
}
