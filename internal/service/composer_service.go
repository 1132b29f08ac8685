package service

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/formgate/formgate/internal/api/dto/v1/contact"
)

//go:embed templates/contact_email.html.tmpl
var templateFS embed.FS

var contactTemplate = template.Must(template.ParseFS(templateFS, "templates/contact_email.html.tmpl"))

// ComposedMessage is a fully rendered mail ready for dispatch
type ComposedMessage struct {
	RecipientAddress string
	RecipientName    string
	ReplyToAddress   string
	ReplyToName      string
	Subject          string
	HTMLBody         string
	TextBody         string
}

// ComposerConfig carries the operator-side addressing and subject lines
type ComposerConfig struct {
	AdminEmail       string
	AdminName        string
	DefaultSubject   string
	SubjectPrefix    string
	AutoreplyEnabled bool
	AutoreplySubject string
}

// ComposerService renders submissions into one or two mails: the operator
// notification and, when enabled, an acknowledgment back to the submitter.
type ComposerService struct {
	config ComposerConfig
}

// NewComposerService creates a new composer service
func NewComposerService(config ComposerConfig) *ComposerService {
	return &ComposerService{config: config}
}

// templateData is the typed parameter object handed to the HTML template.
// Message is pre-escaped HTML because submitted newlines become <br> tags.
type templateData struct {
	Subject string
	Date    string
	Name    string
	Email   string
	Message template.HTML
	IP      string
}

// Compose renders the operator notification and, if configured, the
// submitter acknowledgment. The notification always comes first.
func (s *ComposerService) Compose(sub *contact.Submission) ([]ComposedMessage, error) {
	subject := sub.Subject
	if subject == "" {
		subject = s.config.DefaultSubject
	}
	if s.config.SubjectPrefix != "" {
		subject = s.config.SubjectPrefix + " " + subject
	}

	notification, err := s.render(subject, sub)
	if err != nil {
		return nil, err
	}

	messages := []ComposedMessage{{
		RecipientAddress: s.config.AdminEmail,
		RecipientName:    s.config.AdminName,
		ReplyToAddress:   sub.Email,
		ReplyToName:      sub.Name,
		Subject:          subject,
		HTMLBody:         notification,
		TextBody:         StripTags(notification),
	}}

	if s.config.AutoreplyEnabled {
		acknowledgment, err := s.render(s.config.AutoreplySubject, sub)
		if err != nil {
			return nil, err
		}
		messages = append(messages, ComposedMessage{
			RecipientAddress: sub.Email,
			RecipientName:    sub.Name,
			ReplyToAddress:   s.config.AdminEmail,
			ReplyToName:      s.config.AdminName,
			Subject:          s.config.AutoreplySubject,
			HTMLBody:         acknowledgment,
			TextBody:         StripTags(acknowledgment),
		})
	}

	return messages, nil
}

func (s *ComposerService) render(subject string, sub *contact.Submission) (string, error) {
	// Escape the message here, then turn newlines into line breaks. The
	// remaining fields are plain strings escaped by html/template itself.
	escaped := template.HTMLEscapeString(sub.Message)
	withBreaks := strings.ReplaceAll(escaped, "\n", "<br>")

	data := templateData{
		Subject: subject,
		Date:    sub.ReceivedAt.Format(time.RFC1123),
		Name:    sub.Name,
		Email:   sub.Email,
		Message: template.HTML(withBreaks),
		IP:      sub.CallerIP,
	}

	var buf bytes.Buffer
	if err := contactTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render mail template: %w", err)
	}
	return buf.String(), nil
}

var (
	tagRegex       = regexp.MustCompile(`(?s)<[^>]*>`)
	blankLineRegex = regexp.MustCompile(`\n{3,}`)
)

// StripTags derives a plain-text body from an HTML body for mail clients
// that reject HTML
func StripTags(htmlBody string) string {
	text := strings.ReplaceAll(htmlBody, "<br>", "\n")
	text = tagRegex.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	// Collapse the whitespace the markup leaves behind
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankLineRegex.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
