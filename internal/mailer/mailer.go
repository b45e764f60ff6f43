// Package mailer delivers plain-text notifications, such as contact form
// submissions, over SMTP.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNoHost          = errors.New("mailer: SMTP host is not configured")
	ErrMissingPassword = errors.New("mailer: SMTP username set without a password")
	ErrNoRecipient     = errors.New("mailer: no recipient configured")
	ErrInsecureAuth    = errors.New("mailer: SMTP auth requires TLS unless the host is local")
)

const (
	TLSNone     = "none"
	TLSStartTLS = "starttls"
	TLSImplicit = "tls"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	TLS      string
	From     string
	To       string
}

type Message struct {
	Subject string
	ReplyTo string
	Body    string
}

type Mailer struct {
	cfg    Config
	logger *log.Logger
	now    func() time.Time
	dial   func(ctx context.Context, addr string) (net.Conn, error)
}

func New(cfg Config, logger *log.Logger) *Mailer {
	if logger == nil {
		logger = log.StandardLogger()
	}
	m := &Mailer{cfg: cfg, logger: logger, now: time.Now}
	m.dial = m.dialDefault
	return m
}

// Enabled reports whether an SMTP host is set.
func (m *Mailer) Enabled() bool {
	return strings.TrimSpace(m.cfg.Host) != ""
}

func (m *Mailer) validate() error {
	if !m.Enabled() {
		return ErrNoHost
	}
	if m.cfg.Username != "" && m.cfg.Password == "" {
		return ErrMissingPassword
	}
	if m.cfg.Username != "" && m.mode() == TLSNone && !isLocalHost(m.cfg.Host) {
		return ErrInsecureAuth
	}
	if len(m.recipients()) == 0 {
		return ErrNoRecipient
	}
	return nil
}

// isLocalHost matches the hosts net/smtp will send PLAIN credentials to
// without TLS.
func isLocalHost(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

func (m *Mailer) recipients() []string {
	var out []string
	for _, r := range strings.Split(sanitize(m.cfg.To), ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// Send delivers msg to the configured recipients. Configuration errors are
// returned before any network I/O.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if err := m.validate(); err != nil {
		return err
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.port()))
	conn, err := m.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("mailer: dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("mailer: handshake: %w", err)
	}
	defer c.Close()

	if m.mode() == TLSStartTLS {
		if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return fmt.Errorf("mailer: starttls: %w", err)
		}
	}
	if m.cfg.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)); err != nil {
			return fmt.Errorf("mailer: auth: %w", err)
		}
	}

	from := m.envelopeFrom()
	if err := c.Mail(from); err != nil {
		return fmt.Errorf("mailer: MAIL FROM: %w", err)
	}
	for _, rcpt := range m.recipients() {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("mailer: RCPT TO %s: %w", rcpt, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("mailer: DATA: %w", err)
	}
	if _, err := w.Write(m.Build(msg)); err != nil {
		_ = w.Close()
		return fmt.Errorf("mailer: write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("mailer: finish body: %w", err)
	}
	if err := c.Quit(); err != nil {
		m.logger.WithError(err).Debug("mailer.quit.failed")
	}

	m.logger.WithFields(log.Fields{"to": strings.Join(m.recipients(), ","), "subject": sanitize(msg.Subject)}).Info("mailer.sent")
	return nil
}

// Build renders msg as an RFC 5322 message with CRLF line endings. Header
// values are stripped of CR and LF.
func (m *Mailer) Build(msg Message) []byte {
	var b bytes.Buffer
	header := func(k, v string) {
		if v != "" {
			fmt.Fprintf(&b, "%s: %s\r\n", k, v)
		}
	}
	header("From", sanitize(m.cfg.From))
	header("To", strings.Join(m.recipients(), ", "))
	header("Reply-To", sanitize(msg.ReplyTo))
	header("Subject", sanitize(msg.Subject))
	header("Date", m.now().UTC().Format(time.RFC1123Z))
	header("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), m.messageDomain()))
	header("MIME-Version", "1.0")
	header("Content-Type", "text/plain; charset=utf-8")
	header("Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")

	body := strings.ReplaceAll(msg.Body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\r\n")
	}
	return b.Bytes()
}

func (m *Mailer) envelopeFrom() string {
	if a, err := mail.ParseAddress(sanitize(m.cfg.From)); err == nil {
		return a.Address
	}
	return sanitize(m.cfg.From)
}

func (m *Mailer) messageDomain() string {
	from := m.envelopeFrom()
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		return from[i+1:]
	}
	return m.cfg.Host
}

func (m *Mailer) mode() string {
	switch strings.ToLower(m.cfg.TLS) {
	case TLSNone:
		return TLSNone
	case TLSImplicit:
		return TLSImplicit
	default:
		return TLSStartTLS
	}
}

func (m *Mailer) port() int {
	if m.cfg.Port > 0 {
		return m.cfg.Port
	}
	if m.mode() == TLSImplicit {
		return 465
	}
	return 587
}

func (m *Mailer) dialDefault(ctx context.Context, addr string) (net.Conn, error) {
	d := &net.Dialer{Timeout: 10 * time.Second}
	if m.mode() == TLSImplicit {
		td := &tls.Dialer{NetDialer: d, Config: &tls.Config{ServerName: m.cfg.Host}}
		return td.DialContext(ctx, "tcp", addr)
	}
	return d.DialContext(ctx, "tcp", addr)
}

func sanitize(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", "", "\n", "").Replace(s))
}
