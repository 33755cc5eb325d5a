package entity

import "time"

// EnvelopeStatus is the lifecycle state of a sent envelope.
type EnvelopeStatus string

const (
	StatusDraft      EnvelopeStatus = "Draft"
	StatusSent       EnvelopeStatus = "Sent"
	StatusInProgress EnvelopeStatus = "In Progress"
	StatusCompleted  EnvelopeStatus = "Completed"
	StatusDeclined   EnvelopeStatus = "Declined"
	StatusExpired    EnvelopeStatus = "Expired"
)

// ReminderFrequencies are the allowed reminder intervals in days.
var ReminderFrequencies = []int{1, 2, 3, 5, 7}

// ValidReminderFrequency reports whether days is an allowed reminder
// interval.
func ValidReminderFrequency(days int) bool {
	for _, d := range ReminderFrequencies {
		if d == days {
			return true
		}
	}
	return false
}

type ReminderSettings struct {
	Enabled       bool `json:"enabled"`
	FrequencyDays int  `json:"frequency_days,omitempty"`
}

type ExpirySettings struct {
	Enabled bool `json:"enabled"`
	Days    int  `json:"days,omitempty"`
	// ExpiresOn is computed from the clock at actual send time, never
	// earlier.
	ExpiresOn time.Time `json:"expires_on,omitempty"`
}

const (
	MinExpiryDays = 1
	MaxExpiryDays = 365
)

// EnvelopeSnapshot is the fully assembled envelope captured at the
// moment of send. Once the send succeeds it is an immutable record.
type EnvelopeSnapshot struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Message    string           `json:"message,omitempty"`
	Documents  []DocumentMeta   `json:"documents"`
	Recipients []Recipient      `json:"recipients"`
	Fields     []SignatureField `json:"fields"`
	Reminder   ReminderSettings `json:"reminder"`
	Expiry     ExpirySettings   `json:"expiry"`
	Status     EnvelopeStatus   `json:"status"`
	Owner      string           `json:"owner"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// SharedWith lists the recipient emails, in roster order.
func (e *EnvelopeSnapshot) SharedWith() []string {
	emails := make([]string, len(e.Recipients))
	for i, r := range e.Recipients {
		emails[i] = r.Email
	}
	return emails
}

// SendReceipt is what the send transport returns on success.
type SendReceipt struct {
	ID     string         `json:"id"`
	Status EnvelopeStatus `json:"status"`
}
