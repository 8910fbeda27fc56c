package transaction

import (
	"time"

	"github.com/google/uuid"
)

// State is the position of a transaction in the interception state
// machine. Transitions only move forward; Delivered and Blocked are
// terminal.
type State string

const (
	StateReceived   State = "RECEIVED"
	StateGate1Eval  State = "GATE1_EVAL"
	StateForwarding State = "FORWARDING"
	StateGate2Eval  State = "GATE2_EVAL"
	StateDelivered  State = "DELIVERED"
	StateBlocked    State = "BLOCKED"
)

// Transaction is one intercepted request/response pair travelling
// through the gates. Content and ContentType are empty until the
// generative backend has responded.
type Transaction struct {
	ID          uuid.UUID
	UserID      string
	APIKey      string
	Prompt      string
	Content     []byte
	ContentType string
	State       State
	ReceivedAt  time.Time
}

func New(userID, apiKey, prompt string) *Transaction {
	return &Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		APIKey:     apiKey,
		Prompt:     prompt,
		State:      StateReceived,
		ReceivedAt: time.Now(),
	}
}

// HasVisualContent reports whether the backend response carries an
// image that the fingerprint gate must check.
func (t *Transaction) HasVisualContent() bool {
	return len(t.Content) > 0 && t.ContentType == "image"
}
