// Package mail sends review notifications through an SMTP relay.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"ContentPipeline/internal/config"
	"ContentPipeline/internal/ports"
)

// SMTPNotifier implements ports.Notifier over implicit-TLS SMTP.
type SMTPNotifier struct {
	addr     string // host:port
	user     string
	password string
	receiver string
}

var _ ports.Notifier = (*SMTPNotifier)(nil)

// NewSMTPNotifier wires relay address and credentials.
func NewSMTPNotifier(cfg config.MailConfig) *SMTPNotifier {
	return &SMTPNotifier{
		addr:     cfg.SMTPAddr,
		user:     cfg.User,
		password: cfg.Password,
		receiver: cfg.Receiver,
	}
}

// NotifyDraft sends one plain-text email pointing at the review ticket.
func (n *SMTPNotifier) NotifyDraft(ctx context.Context, topic, reviewURL string) error {
	if n.user == "" || n.password == "" || n.receiver == "" {
		return fmt.Errorf("mail notifier misconfigured")
	}

	subject := fmt.Sprintf("Review: %s", topic)
	body := fmt.Sprintf("New Draft Ready: %s\n\nReview here: %s\n", topic, reviewURL)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.user)
	fmt.Fprintf(&msg, "To: %s\r\n", n.receiver)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))

	return n.send(ctx, msg.String())
}

// send speaks SMTP over an implicit-TLS connection (relay port 465).
func (n *SMTPNotifier) send(ctx context.Context, msg string) error {
	host, _, err := net.SplitHostPort(n.addr)
	if err != nil {
		return fmt.Errorf("smtp address %q: %w", n.addr, err)
	}

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: host}}
	conn, err := dialer.DialContext(ctx, "tcp", n.addr)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", n.user, n.password, host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(n.user); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(n.receiver); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}

	return client.Quit()
}
