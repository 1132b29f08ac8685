package service

import "errors"

// Terminal pipeline failures. The first stage to fail wins; nothing is
// retried. The handler maps each of these to the single JSON outcome.
var (
	ErrBotSignature     = errors.New("bot signature rejected")
	ErrRateLimited      = errors.New("rate limit exceeded")
	ErrSpamDetected     = errors.New("spam detected")
	ErrDomainInvalid    = errors.New("email domain does not exist")
	ErrCaptchaRequest   = errors.New("captcha verification request failed")
	ErrCaptchaHTTP      = errors.New("captcha verification returned non-success status")
	ErrCaptchaResponse  = errors.New("captcha verification response malformed")
	ErrCaptchaRejected  = errors.New("captcha verification rejected the token")
	ErrCaptchaAction    = errors.New("captcha action mismatch")
	ErrCaptchaHostname  = errors.New("captcha hostname mismatch")
	ErrCaptchaLowScore  = errors.New("captcha score below minimum")
	ErrDispatch         = errors.New("failed to send message")
)
