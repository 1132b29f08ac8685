package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/textproto"
	"strconv"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/formgate/formgate/internal/logging"
)

// MailerConfig carries the SMTP transport settings, fixed for the lifetime
// of the service
type MailerConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	Encryption string // starttls, tls or none
	FromName   string
}

// MailerService dispatches composed messages over SMTP
type MailerService struct {
	config MailerConfig

	// transport is swapped out in tests
	transport func(from, to string, raw []byte) error
}

// NewMailerService creates a new mailer service
func NewMailerService(config MailerConfig) *MailerService {
	s := &MailerService{config: config}
	s.transport = s.smtpSend
	return s
}

// Dispatch sends the composed messages in order. A failure on the first
// message (the operator notification) is terminal. Failures on any
// following message (the acknowledgment) are logged and swallowed; the
// operator already has the submission at that point.
func (s *MailerService) Dispatch(messages []ComposedMessage) error {
	logger := logging.GetGlobalLogger()

	for i, msg := range messages {
		raw, err := s.buildMessage(&msg)
		if err == nil {
			err = s.transport(s.config.Username, msg.RecipientAddress, raw)
		}
		if err == nil {
			continue
		}

		if i == 0 {
			return fmt.Errorf("%w: %v", ErrDispatch, err)
		}
		logger.Warn("Acknowledgment to %s not sent: %v", msg.RecipientAddress, err)
	}

	return nil
}

// buildMessage assembles a multipart/alternative MIME message with the
// plain-text and HTML bodies
func (s *MailerService) buildMessage(msg *ComposedMessage) ([]byte, error) {
	var buf bytes.Buffer

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	textPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(textPart, msg.TextBody)

	htmlPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(htmlPart, msg.HTMLBody)

	if err := writer.Close(); err != nil {
		return nil, err
	}

	encode := mime.QEncoding.Encode
	fmt.Fprintf(&buf, "From: %s <%s>\r\n", encode("utf-8", s.config.FromName), s.config.Username)
	fmt.Fprintf(&buf, "To: %s <%s>\r\n", encode("utf-8", msg.RecipientName), msg.RecipientAddress)
	fmt.Fprintf(&buf, "Reply-To: %s <%s>\r\n", encode("utf-8", msg.ReplyToName), msg.ReplyToAddress)
	fmt.Fprintf(&buf, "Subject: %s\r\n", encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n", writer.Boundary())
	fmt.Fprintf(&buf, "\r\n")
	buf.Write(body.Bytes())

	return buf.Bytes(), nil
}

// smtpSend performs a single SMTP transaction. No retries: a failed send is
// reported, not repeated, to keep caller-facing latency bounded.
func (s *MailerService) smtpSend(from, to string, raw []byte) error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	tlsConfig := &tls.Config{ServerName: s.config.Host}

	var client *smtp.Client
	var err error
	switch s.config.Encryption {
	case "tls":
		client, err = smtp.DialTLS(addr, tlsConfig)
	case "starttls":
		client, err = smtp.DialStartTLS(addr, tlsConfig)
	default:
		client, err = smtp.Dial(addr)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer client.Close()

	// Bound the transaction so a slow relay cannot hang the request
	client.CommandTimeout = 10 * time.Second
	client.SubmissionTimeout = 30 * time.Second

	if err := client.Auth(sasl.NewPlainClient("", s.config.Username, s.config.Password)); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}

	if err := client.SendMail(from, []string{to}, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return client.Quit()
}
