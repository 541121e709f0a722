// ABOUTME: SMTP digest delivery over STARTTLS with app-password auth
// ABOUTME: Missing credentials degrade to a skipped send, not an error

package smtp

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	coreerrors "newsdigest/core/errors"
	"newsdigest/core/interfaces"
	"newsdigest/pkg/config"
)

// Sender delivers rendered digests over SMTP. It implements
// interfaces.DigestDeliverer.
type Sender struct {
	cfg    config.EmailConfig
	logger interfaces.Logger

	// send is swapped in tests to avoid a live SMTP dial.
	send func(ctx context.Context, cfg config.EmailConfig, msg *mail.Msg) error
}

var _ interfaces.DigestDeliverer = (*Sender)(nil)

// NewSender creates an SMTP sender from delivery configuration.
func NewSender(cfg config.EmailConfig, logger interfaces.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send:   dialAndSend,
	}
}

// Deliver sends the digest as a multipart message with an HTML body and a
// plain-text alternative. When credentials are not configured it skips the
// send and returns (false, nil): a preview-only setup is valid, not broken.
func (s *Sender) Deliver(ctx context.Context, subject, htmlBody, textBody string) (bool, error) {
	if !s.cfg.Configured() {
		s.logWarn("Email not configured, skipping send", map[string]interface{}{
			"required": "GMAIL_USER, GMAIL_APP_PASSWORD, EMAIL_RECIPIENT",
		})
		return false, nil
	}

	msg := mail.NewMsg()
	if err := msg.From(s.cfg.User); err != nil {
		return false, &coreerrors.DeliveryError{Recipient: s.cfg.Recipient, Message: fmt.Sprintf("invalid sender address: %v", err)}
	}
	if err := msg.To(s.cfg.Recipient); err != nil {
		return false, &coreerrors.DeliveryError{Recipient: s.cfg.Recipient, Message: fmt.Sprintf("invalid recipient address: %v", err)}
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, textBody)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	if err := s.send(ctx, s.cfg, msg); err != nil {
		return false, &coreerrors.DeliveryError{Recipient: s.cfg.Recipient, Message: err.Error()}
	}

	s.logInfo("Digest emailed", map[string]interface{}{"recipient": s.cfg.Recipient})
	return true, nil
}

// dialAndSend performs the actual SMTP exchange with mandatory STARTTLS.
func dialAndSend(ctx context.Context, cfg config.EmailConfig, msg *mail.Msg) error {
	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	return client.DialAndSendWithContext(ctx, msg)
}

func (s *Sender) logInfo(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, fields)
	}
}

func (s *Sender) logWarn(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, fields)
	}
}
