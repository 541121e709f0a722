package smtp

import (
	"context"
	"errors"
	"testing"

	"github.com/wneessen/go-mail"

	coreerrors "newsdigest/core/errors"
	"newsdigest/pkg/config"
)

func configuredEmail() config.EmailConfig {
	return config.EmailConfig{
		SMTPHost:  "smtp.gmail.com",
		SMTPPort:  587,
		User:      "digest@example.com",
		Password:  "app-password",
		Recipient: "reader@example.com",
	}
}

func TestDeliver_MissingCredentialsSkipsSend(t *testing.T) {
	sender := NewSender(config.EmailConfig{SMTPHost: "smtp.gmail.com", SMTPPort: 587}, nil)
	dialed := false
	sender.send = func(ctx context.Context, cfg config.EmailConfig, msg *mail.Msg) error {
		dialed = true
		return nil
	}

	sent, err := sender.Deliver(context.Background(), "subject", "<p>html</p>", "text")

	if err != nil {
		t.Fatalf("Deliver() error = %v, want nil for unconfigured email", err)
	}
	if sent {
		t.Error("sent = true, want false")
	}
	if dialed {
		t.Error("no SMTP dial should happen without credentials")
	}
}

func TestDeliver_Success(t *testing.T) {
	sender := NewSender(configuredEmail(), nil)
	var gotMsg *mail.Msg
	sender.send = func(ctx context.Context, cfg config.EmailConfig, msg *mail.Msg) error {
		gotMsg = msg
		return nil
	}

	sent, err := sender.Deliver(context.Background(), "Daily News Digest", "<p>html</p>", "text")

	if err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if !sent {
		t.Error("sent = false, want true")
	}
	if gotMsg == nil {
		t.Fatal("message never reached the transport")
	}
	if got := gotMsg.GetGenHeader(mail.HeaderSubject); len(got) == 0 || got[0] != "Daily News Digest" {
		t.Errorf("subject = %v", got)
	}
}

func TestDeliver_TransportFailure(t *testing.T) {
	sender := NewSender(configuredEmail(), nil)
	sender.send = func(ctx context.Context, cfg config.EmailConfig, msg *mail.Msg) error {
		return errors.New("535 authentication failed")
	}

	sent, err := sender.Deliver(context.Background(), "subject", "<p>html</p>", "text")

	if sent {
		t.Error("sent = true, want false on transport failure")
	}
	if !coreerrors.IsDelivery(err) {
		t.Errorf("error = %v, want DeliveryError", err)
	}
}

func TestDeliver_InvalidRecipient(t *testing.T) {
	cfg := configuredEmail()
	cfg.Recipient = "not an address"
	sender := NewSender(cfg, nil)

	sent, err := sender.Deliver(context.Background(), "subject", "<p>html</p>", "text")

	if sent || !coreerrors.IsDelivery(err) {
		t.Errorf("got (%v, %v), want (false, DeliveryError)", sent, err)
	}
}
