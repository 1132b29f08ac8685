package service

import (
	"strings"
	"testing"
	"time"

	"github.com/formgate/formgate/internal/api/dto/v1/contact"

	"github.com/stretchr/testify/require"
)

func testSubmission() *contact.Submission {
	return &contact.Submission{
		Name:       "Ada",
		Email:      "ada@example.com",
		Message:    "Hello\nWorld",
		CallerIP:   "203.0.113.7",
		ReceivedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func testComposerConfig() ComposerConfig {
	return ComposerConfig{
		AdminEmail:     "operator@example.com",
		AdminName:      "Operator",
		DefaultSubject: "New message!",
	}
}

func TestComposeNotification(t *testing.T) {
	composer := NewComposerService(testComposerConfig())

	messages, err := composer.Compose(testSubmission())
	require.NoError(t, err)
	require.Len(t, messages, 1)

	msg := messages[0]
	require.Equal(t, "operator@example.com", msg.RecipientAddress)
	require.Equal(t, "ada@example.com", msg.ReplyToAddress)
	require.Equal(t, "Ada", msg.ReplyToName)
	require.Equal(t, "New message!", msg.Subject)

	// The submitted newline survives as a line break
	require.Contains(t, msg.HTMLBody, "Hello<br>World")
	require.Contains(t, msg.HTMLBody, "ada@example.com")
	require.Contains(t, msg.HTMLBody, "203.0.113.7")

	// ...and the text body keeps both lines
	require.Contains(t, msg.TextBody, "Hello\nWorld")
}

func TestComposeEscapesMarkup(t *testing.T) {
	composer := NewComposerService(testComposerConfig())

	sub := testSubmission()
	sub.Name = "Ada <script>"
	sub.Message = "See <b>this</b>\n& that"

	messages, err := composer.Compose(sub)
	require.NoError(t, err)

	html := messages[0].HTMLBody
	require.NotContains(t, html, "<script>")
	require.NotContains(t, html, "<b>this</b>")
	require.Contains(t, html, "&lt;b&gt;this&lt;/b&gt;")
	require.Contains(t, html, "&amp; that")

	// The derived text body unescapes back to the submitted content
	require.Contains(t, messages[0].TextBody, "See <b>this</b>")
}

func TestComposeSubjectHandling(t *testing.T) {
	cfg := testComposerConfig()
	cfg.SubjectPrefix = "[SITE]"
	composer := NewComposerService(cfg)

	sub := testSubmission()
	sub.Subject = "Question about pricing"

	messages, err := composer.Compose(sub)
	require.NoError(t, err)
	require.Equal(t, "[SITE] Question about pricing", messages[0].Subject)

	// Empty subject falls back to the configured default
	sub.Subject = ""
	messages, err = composer.Compose(sub)
	require.NoError(t, err)
	require.Equal(t, "[SITE] New message!", messages[0].Subject)
}

func TestComposeWithAutoreply(t *testing.T) {
	cfg := testComposerConfig()
	cfg.AutoreplyEnabled = true
	cfg.AutoreplySubject = "We received your message"
	composer := NewComposerService(cfg)

	messages, err := composer.Compose(testSubmission())
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// Notification first, acknowledgment second, with swapped addressing
	require.Equal(t, "operator@example.com", messages[0].RecipientAddress)
	require.Equal(t, "ada@example.com", messages[1].RecipientAddress)
	require.Equal(t, "operator@example.com", messages[1].ReplyToAddress)
	require.Equal(t, "We received your message", messages[1].Subject)
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"breaks become newlines", "a<br>b", "a\nb"},
		{"tags dropped", "<p>one</p> <span>two</span>", "one two"},
		{"entities unescaped", "a &amp; b", "a & b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripTags(tt.in)
			if !strings.Contains(got, tt.want) {
				t.Errorf("StripTags(%q) = %q, want it to contain %q", tt.in, got, tt.want)
			}
		})
	}
}
