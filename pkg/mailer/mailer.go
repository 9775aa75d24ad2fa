package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"activity-booking/pkg/utils"

	"go.uber.org/zap"
)

// Confirmation is what the customer receives once the payment is confirmed.
type Confirmation struct {
	ReservationID string
	Name          string
	Email         string
	Activity      string
	Date          string
	TimeSlot      string
	PartySize     int
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	addr string
	auth smtp.Auth
	from string
	send sendFunc
	log  *zap.Logger
}

func New(config utils.EmailConfig, log *zap.Logger) *Mailer {
	var auth smtp.Auth
	if config.User != "" {
		auth = smtp.PlainAuth("", config.User, config.Password, config.Host)
	}

	return &Mailer{
		addr: net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
		auth: auth,
		from: config.From,
		send: smtp.SendMail,
		log:  log.With(zap.String("component", "mailer")),
	}
}

// SendConfirmation delivers the confirmation email. net/smtp has no context
// support, so ctx only bounds how long the caller waits for the send.
func (m *Mailer) SendConfirmation(ctx context.Context, c Confirmation) error {
	msg, err := buildConfirmationMessage(m.from, c)
	if err != nil {
		return fmt.Errorf("build confirmation for %s: %w", c.ReservationID, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- m.send(m.addr, m.auth, m.from, []string{c.Email}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			m.log.Error("Failed to send confirmation email",
				zap.Error(err),
				zap.String("reservation_id", c.ReservationID),
			)
			return fmt.Errorf("send confirmation for %s: %w", c.ReservationID, err)
		}
	case <-ctx.Done():
		return fmt.Errorf("send confirmation for %s: %w", c.ReservationID, ctx.Err())
	}

	m.log.Info("Confirmation email sent",
		zap.String("reservation_id", c.ReservationID),
		zap.String("email", c.Email),
	)
	return nil
}
