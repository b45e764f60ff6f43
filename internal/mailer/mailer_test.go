package mailer

import (
	"context"
	"errors"
	"net"
	"net/textproto"
	"regexp"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
)

func quietLogger() *log.Logger {
	l := log.New()
	l.SetLevel(log.PanicLevel)
	return l
}

func TestSendValidatesBeforeDialing(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"no host", Config{To: "a@example.com"}, ErrNoHost},
		{"username without password", Config{Host: "smtp.example.com", Username: "u", To: "a@example.com"}, ErrMissingPassword},
		{"no recipient", Config{Host: "smtp.example.com", To: " , "}, ErrNoRecipient},
		{"auth without tls", Config{Host: "smtp.example.com", Username: "u", Password: "p", TLS: TLSNone, To: "a@example.com"}, ErrInsecureAuth},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(tc.cfg, quietLogger())
			m.dial = func(context.Context, string) (net.Conn, error) {
				t.Fatal("dial should not be called")
				return nil, nil
			}
			if err := m.Send(context.Background(), Message{Subject: "x"}); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestBuildStripsHeaderInjection(t *testing.T) {
	m := New(Config{From: "Site <noreply@meridian.foundation>", To: "team@meridian.foundation"}, quietLogger())
	m.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	raw := string(m.Build(Message{
		Subject: "Hello\r\nBcc: victim@example.com",
		ReplyTo: "ada@example.com\n",
		Body:    "line one\nline two",
	}))

	if strings.Contains(raw, "\r\nBcc:") {
		t.Fatalf("header injection not stripped:\n%s", raw)
	}
	for _, want := range []string{
		"From: Site <noreply@meridian.foundation>\r\n",
		"To: team@meridian.foundation\r\n",
		"Reply-To: ada@example.com\r\n",
		"Subject: HelloBcc: victim@example.com\r\n",
		"Date: Fri, 02 Jan 2026 03:04:05 +0000\r\n",
		"Content-Type: text/plain; charset=utf-8\r\n",
		"\r\n\r\nline one\r\nline two\r\n",
	} {
		if !strings.Contains(raw, want) {
			t.Fatalf("expected %q in message:\n%s", want, raw)
		}
	}
	re := regexp.MustCompile(`Message-ID: <[0-9a-f-]{36}@meridian\.foundation>\r\n`)
	if !re.MatchString(raw) {
		t.Fatalf("unexpected Message-ID:\n%s", raw)
	}
}

func TestBuildMessageIDsAreUnique(t *testing.T) {
	m := New(Config{From: "noreply@meridian.foundation", To: "a@b.c"}, quietLogger())
	re := regexp.MustCompile(`Message-ID: (<[^>]+>)`)
	a := re.FindStringSubmatch(string(m.Build(Message{})))
	b := re.FindStringSubmatch(string(m.Build(Message{})))
	if a == nil || b == nil || a[1] == b[1] {
		t.Fatalf("expected distinct message ids, got %v and %v", a, b)
	}
}

type captured struct {
	from  string
	rcpts []string
	data  string
}

func fakeSMTP(t *testing.T) (string, <-chan captured) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	out := make(chan captured, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		tp := textproto.NewConn(conn)
		var got captured
		_ = tp.PrintfLine("220 fake ESMTP")
		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}
			cmd := strings.ToUpper(line)
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				_ = tp.PrintfLine("250 fake")
			case strings.HasPrefix(cmd, "MAIL FROM:"):
				got.from = line[len("MAIL FROM:"):]
				_ = tp.PrintfLine("250 ok")
			case strings.HasPrefix(cmd, "RCPT TO:"):
				got.rcpts = append(got.rcpts, line[len("RCPT TO:"):])
				_ = tp.PrintfLine("250 ok")
			case cmd == "DATA":
				_ = tp.PrintfLine("354 go ahead")
				data, err := tp.ReadDotBytes()
				if err != nil {
					return
				}
				got.data = string(data)
				_ = tp.PrintfLine("250 queued")
			case cmd == "QUIT":
				_ = tp.PrintfLine("221 bye")
				out <- got
				return
			default:
				_ = tp.PrintfLine("502 unsupported")
			}
		}
	}()
	return ln.Addr().String(), out
}

func TestSendDeliversOverPlainSMTP(t *testing.T) {
	addr, out := fakeSMTP(t)
	host, _, _ := net.SplitHostPort(addr)

	m := New(Config{
		Host: host,
		TLS:  TLSNone,
		From: "Site <noreply@meridian.foundation>",
		To:   "team@meridian.foundation, ops@meridian.foundation",
	}, quietLogger())
	m.dial = func(ctx context.Context, _ string) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(ctx, "tcp", addr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.Send(ctx, Message{Subject: "Contact", Body: "hi there"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	select {
	case got := <-out:
		if got.from != "<noreply@meridian.foundation>" {
			t.Fatalf("unexpected envelope from %q", got.from)
		}
		if len(got.rcpts) != 2 {
			t.Fatalf("expected 2 recipients, got %v", got.rcpts)
		}
		if !strings.Contains(got.data, "Subject: Contact") || !strings.Contains(got.data, "hi there") {
			t.Fatalf("unexpected data:\n%s", got.data)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("fake server did not receive a message")
	}
}
