package contact

import "time"

// ContactRequest represents a contact form submission as posted by the
// frontend. The "website" field is the honeypot: it is hidden from human
// visitors and must stay empty.
type ContactRequest struct {
	Name    string `form:"name" json:"name" binding:"required,name"`
	Email   string `form:"email" json:"email" binding:"required,email,max=255"`
	Subject string `form:"subject" json:"subject" binding:"omitempty,max=255"`
	Message string `form:"message" json:"message" binding:"required,min=2,max=4000"`
	Website string `form:"website" json:"website"`
	Token   string `form:"token" json:"token" binding:"required"`
}

// Submission is a validated, sanitized contact request together with the
// request metadata the pipeline and the mail templates need. It is created
// once per request and never mutated afterwards.
type Submission struct {
	Name       string
	Email      string
	Subject    string
	Message    string
	Honeypot   string
	Token      string
	CallerIP   string
	ReceivedAt time.Time
}
