package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/inventopredict/backend-go/internal/config"
)

// SMTPNotifier delivers mail over SMTPS (implicit TLS). The dial timeout
// bounds the whole connection attempt so a hung server cannot stall a tick.
type SMTPNotifier struct {
	host    string
	port    string
	user    string
	pass    string
	from    string
	timeout time.Duration
}

func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	from := cfg.From
	if from == "" {
		from = cfg.User
	}

	return &SMTPNotifier{
		host:    cfg.Host,
		port:    cfg.Port,
		user:    cfg.User,
		pass:    cfg.Password,
		from:    from,
		timeout: timeout,
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	addr := net.JoinHostPort(n.host, n.port)

	dialer := &net.Dialer{Timeout: n.timeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: n.host})
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}

	// Enforce an overall deadline covering the SMTP conversation.
	deadline := time.Now().Add(n.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, n.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if n.user != "" {
		auth := smtp.PlainAuth("", n.user, n.pass, n.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(n.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(recipient); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		n.from, recipient, subject, body)
	if _, err := w.Write([]byte(msg)); err != nil {
		w.Close()
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}

	return client.Quit()
}
