package wizard

import (
	"fmt"
	"time"

	"signpubliq/internal/domain/entity"
)

// Session is one envelope-creation wizard in progress: the staged
// document metadata, the recipient roster, the placement engine and
// the send settings. It survives step navigation by being persisted
// as a snapshot between requests; document content lives in the
// staging store, keyed by the session id.
type Session struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	Message   string                  `json:"message,omitempty"`
	Owner     string                  `json:"owner,omitempty"`
	Documents []entity.DocumentMeta   `json:"documents"`
	Roster    *Roster                 `json:"roster"`
	Placement *PlacementEngine        `json:"placement"`
	Reminder  entity.ReminderSettings `json:"reminder"`
	Expiry    entity.ExpirySettings   `json:"expiry"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func NewSession(id string, canvasWidth, canvasHeight float64) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Documents: []entity.DocumentMeta{},
		Roster:    NewRoster(),
		Placement: NewPlacementEngine(canvasWidth, canvasHeight),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddDocuments records freshly staged documents on the session.
func (s *Session) AddDocuments(metas []entity.DocumentMeta) {
	s.Documents = append(s.Documents, metas...)
}

// RemoveDocument drops a staged document reference and cascade-deletes
// the fields placed on it.
func (s *Session) RemoveDocument(index int) error {
	if index < 0 || index >= len(s.Documents) {
		return fmt.Errorf("%w: index %d", entity.ErrMissingDocument, index)
	}
	s.Documents = append(s.Documents[:index], s.Documents[index+1:]...)
	s.Placement.RemoveDocument(index)
	return nil
}

// RemoveRecipient drops a recipient and cascade-deletes the fields
// assigned to them.
func (s *Session) RemoveRecipient(id string) bool {
	if !s.Roster.Remove(id) {
		return false
	}
	s.Placement.RemoveRecipientFields(id)
	return true
}

// Navigation guard predicates. These gate forward progress at the
// delivery layer; the send coordinator re-checks its own prerequisites
// regardless of how the caller arrived.

func (s *Session) HasDocuments() bool {
	return len(s.Documents) > 0
}

func (s *Session) CanEnterRecipients() bool {
	return s.HasDocuments()
}

func (s *Session) CanEnterFields() bool {
	return s.HasDocuments() && s.Roster.IsComplete()
}

func (s *Session) CanEnterReview() bool {
	return len(s.Placement.Fields) > 0
}

// CanSend mirrors the coordinator's own gate: at least one staged
// document and one recipient. A placed field is deliberately not
// required here.
func (s *Session) CanSend() bool {
	return s.HasDocuments() && len(s.Roster.Recipients) > 0
}
