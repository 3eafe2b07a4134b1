package models

import "time"

// Message is a secure message from the inbox. Body is only filled when the
// message itself has been fetched.
type Message struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body,omitempty"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Message subject codes accepted by the secure messaging service.
const (
	MessageGeneralEnquiry     = "A0021"
	MessagePensionsRetirement = "A0030"
	MessageCorporateActions   = "OCA"
)
