package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const siteverifyURL = "https://www.google.com/recaptcha/api/siteverify"

// RecaptchaService verifies reCAPTCHA v3 tokens against Google's scoring API
type RecaptchaService struct {
	secretKey        string
	minScore         float64
	expectedAction   string
	expectedHostname string
	endpoint         string
	client           *http.Client
}

// NewRecaptchaService creates a new reCAPTCHA service. The expected action
// and hostname defend against token replay from unrelated forms or sites;
// configuration validation guarantees both are set in a real deployment.
func NewRecaptchaService(secretKey string, minScore float64, expectedAction, expectedHostname string) *RecaptchaService {
	return &RecaptchaService{
		secretKey:        secretKey,
		minScore:         minScore,
		expectedAction:   expectedAction,
		expectedHostname: expectedHostname,
		endpoint:         siteverifyURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CaptchaVerdict represents the response from Google's reCAPTCHA API
type CaptchaVerdict struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// Verify submits the token to the scoring API and validates the verdict.
// The checks run in a fixed order (transport, HTTP status, body, success
// flag, action, hostname, score); the first violated check determines the
// returned error. The verdict is returned alongside the error so callers
// can log the upstream detail.
func (s *RecaptchaService) Verify(ctx context.Context, token, callerIP string) (*CaptchaVerdict, error) {
	if s.secretKey == "" {
		return nil, fmt.Errorf("reCAPTCHA secret key not configured")
	}

	data := url.Values{}
	data.Set("secret", s.secretKey)
	data.Set("response", token)
	if callerIP != "" {
		data.Set("remoteip", callerIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptchaRequest, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptchaRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrCaptchaHTTP, resp.StatusCode)
	}

	var verdict CaptchaVerdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptchaResponse, err)
	}

	if !verdict.Success {
		return &verdict, fmt.Errorf("%w: %v", ErrCaptchaRejected, verdict.ErrorCodes)
	}

	if s.expectedAction != "" && verdict.Action != s.expectedAction {
		return &verdict, fmt.Errorf("%w: got %q, want %q", ErrCaptchaAction, verdict.Action, s.expectedAction)
	}

	// No expected hostname means nothing can match: fail closed rather
	// than accept a token minted for another site
	if verdict.Hostname != s.expectedHostname {
		return &verdict, fmt.Errorf("%w: got %q, want %q", ErrCaptchaHostname, verdict.Hostname, s.expectedHostname)
	}

	if verdict.Score < s.minScore {
		return &verdict, fmt.Errorf("%w: %.2f < %.2f", ErrCaptchaLowScore, verdict.Score, s.minScore)
	}

	return &verdict, nil
}
