package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/formgate/formgate/internal/api/dto/v1/contact"
	"github.com/formgate/formgate/internal/api/middleware"
	"github.com/formgate/formgate/internal/api/sanitization"
	"github.com/formgate/formgate/internal/api/validation"
	"github.com/formgate/formgate/internal/ratelimit"
	"github.com/formgate/formgate/internal/service"
	"github.com/formgate/formgate/internal/utils"

	"github.com/gin-gonic/gin"
)

// User-visible outcome messages. Deliberately non-technical; internal
// detail stays in the logs.
const (
	msgSuccess      = "Your message has been sent successfully."
	msgSendError    = "Sorry, an error occurred while sending your message."
	msgRateLimited  = "You have sent too many messages. Please try again later."
	msgRejected     = "Submission rejected."
	msgCaptchaError = "We could not verify that you are human."
	msgInvalidBody  = "Invalid form submission."
)

// Per-field validation messages, keyed by form field name
var fieldMessages = map[string]string{
	"name":    "Please enter your name.",
	"email":   "Please enter a valid email address.",
	"subject": "Subject is too long.",
	"message": "Please enter your message.",
	"token":   "Verification token missing. Please reload the page.",
}

// CaptchaVerifier verifies a submission token against the scoring API
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, callerIP string) (*service.CaptchaVerdict, error)
}

// DomainValidator checks that an email address has a resolvable domain
type DomainValidator interface {
	ValidateEmailDomain(ctx context.Context, email string) error
}

// MessageComposer renders a submission into one or two mails
type MessageComposer interface {
	Compose(sub *contact.Submission) ([]service.ComposedMessage, error)
}

// MessageDispatcher hands composed mails to the transport
type MessageDispatcher interface {
	Dispatch(messages []service.ComposedMessage) error
}

// ContactHandler runs the submission pipeline: session rate limiting,
// field validation, honeypot, domain check, captcha verification, then
// compose and dispatch. Each step either refines the submission or
// terminates the request with the single JSON outcome.
type ContactHandler struct {
	window    *ratelimit.SlidingWindow
	recaptcha CaptchaVerifier
	domains   DomainValidator
	composer  MessageComposer
	mailer    MessageDispatcher
}

// NewContactHandler creates a new contact handler
func NewContactHandler(
	window *ratelimit.SlidingWindow,
	recaptcha CaptchaVerifier,
	domains DomainValidator,
	composer MessageComposer,
	mailer MessageDispatcher,
) *ContactHandler {
	return &ContactHandler{
		window:    window,
		recaptcha: recaptcha,
		domains:   domains,
		composer:  composer,
		mailer:    mailer,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	now := time.Now()

	// Session window first: a full window means no parsing, no lookups.
	// An admitted attempt consumes its slot even if a later stage
	// rejects the submission.
	sessionID := c.GetString(middleware.ContextKeySession)
	if sessionID == "" {
		sessionID = utils.GetRealIP(c)
	}
	if !h.window.Admit(sessionID, now) {
		err := fmt.Errorf("%w: session %s", service.ErrRateLimited, sessionID)
		utils.HandleAPIError(c, err, http.StatusTooManyRequests, msgRateLimited)
		return
	}

	var req contact.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		field := validation.FirstFailedField(err)
		if field == "" {
			utils.HandleFailure(c, http.StatusBadRequest, msgInvalidBody)
			return
		}
		utils.HandleFieldFailure(c, http.StatusBadRequest, fieldMessages[field], field)
		return
	}

	// Honeypot: invisible to humans, filled by naive bots. The message
	// never says what tripped the rejection.
	if strings.TrimSpace(req.Website) != "" {
		err := fmt.Errorf("%w: honeypot filled from %s", service.ErrSpamDetected, utils.GetRealIP(c))
		utils.HandleAPIError(c, err, http.StatusBadRequest, msgRejected)
		return
	}

	sub := &contact.Submission{
		Name:       sanitization.SanitizeName(req.Name),
		Email:      sanitization.SanitizeEmail(req.Email),
		Subject:    sanitization.SanitizeString(req.Subject),
		Message:    sanitization.SanitizeString(req.Message),
		Honeypot:   req.Website,
		Token:      req.Token,
		CallerIP:   utils.GetRealIP(c),
		ReceivedAt: now,
	}

	if err := h.domains.ValidateEmailDomain(c.Request.Context(), sub.Email); err != nil {
		utils.HandleFieldFailure(c, http.StatusBadRequest, fieldMessages["email"], "email")
		return
	}

	if _, err := h.recaptcha.Verify(c.Request.Context(), sub.Token, sub.CallerIP); err != nil {
		status := http.StatusForbidden
		if errors.Is(err, service.ErrCaptchaRequest) ||
			errors.Is(err, service.ErrCaptchaHTTP) ||
			errors.Is(err, service.ErrCaptchaResponse) {
			status = http.StatusBadGateway
		}
		utils.HandleAPIError(c, err, status, msgCaptchaError)
		return
	}

	messages, err := h.composer.Compose(sub)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, msgSendError)
		return
	}

	if err := h.mailer.Dispatch(messages); err != nil {
		utils.HandleAPIError(c, err, http.StatusBadGateway, msgSendError)
		return
	}

	utils.HandleSuccess(c, msgSuccess)
}
