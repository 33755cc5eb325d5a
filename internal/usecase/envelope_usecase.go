package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"signpubliq/internal/domain/entity"
	"signpubliq/internal/domain/repository"
	"signpubliq/internal/wizard"
)

// defaultEnvelopeName is used when the user never named the envelope.
const defaultEnvelopeName = "New Document Envelope"

// DocumentReview is one staged document with the fields placed on it.
type DocumentReview struct {
	Document entity.DocumentMeta     `json:"document"`
	Fields   []entity.SignatureField `json:"fields"`
}

// RecipientReview is one roster entry with its field count and display
// color.
type RecipientReview struct {
	Recipient  entity.Recipient `json:"recipient"`
	FieldCount int              `json:"field_count"`
	Color      string           `json:"color"`
}

// ReviewSummary is everything the review step shows before sending.
type ReviewSummary struct {
	SessionID  string                  `json:"session_id"`
	Name       string                  `json:"name"`
	Message    string                  `json:"message,omitempty"`
	Documents  []DocumentReview        `json:"documents"`
	Recipients []RecipientReview       `json:"recipients"`
	Signers    int                     `json:"signers"`
	CC         int                     `json:"cc"`
	Viewers    int                     `json:"viewers"`
	FieldCount int                     `json:"field_count"`
	Reminder   entity.ReminderSettings `json:"reminder"`
	Expiry     entity.ExpirySettings   `json:"expiry"`
	CanSend    bool                    `json:"can_send"`
}

// EnvelopeUsecase is the review and send coordinator plus the manage
// listing over sent envelopes.
type EnvelopeUsecase interface {
	Review(ctx context.Context, sessionID string) (*ReviewSummary, error)
	Send(ctx context.Context, sessionID, writer string) (*entity.EnvelopeSnapshot, error)
	List(ctx context.Context, filter repository.EnvelopeFilter) ([]entity.EnvelopeSnapshot, error)
	StatusCounts(ctx context.Context) (map[entity.EnvelopeStatus]int, error)
}

type envelopeUsecase struct {
	sessions  repository.SessionRepository
	staging   repository.StagingStore
	envelopes repository.EnvelopeRepository
	transport repository.SendTransport
	logger    *zap.Logger

	// now is swappable so expiry deadlines are testable.
	now func() time.Time

	// inFlight guards against a duplicate send racing the first one for
	// the same session.
	inFlight sync.Map
}

func NewEnvelopeUsecase(
	sessions repository.SessionRepository,
	staging repository.StagingStore,
	envelopes repository.EnvelopeRepository,
	transport repository.SendTransport,
	logger *zap.Logger,
) EnvelopeUsecase {
	return &envelopeUsecase{
		sessions:  sessions,
		staging:   staging,
		envelopes: envelopes,
		transport: transport,
		logger:    logger,
		now:       time.Now,
	}
}

// Review assembles the read-only summary for the review step.
func (u *envelopeUsecase) Review(ctx context.Context, sessionID string) (*ReviewSummary, error) {
	s, err := u.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary := &ReviewSummary{
		SessionID:  s.ID,
		Name:       s.Name,
		Message:    s.Message,
		Documents:  make([]DocumentReview, len(s.Documents)),
		Recipients: make([]RecipientReview, len(s.Roster.Recipients)),
		Signers:    len(s.Roster.ByRole(entity.RoleSigner)),
		CC:         len(s.Roster.ByRole(entity.RoleCC)),
		Viewers:    len(s.Roster.ByRole(entity.RoleViewer)),
		FieldCount: len(s.Placement.Fields),
		Reminder:   s.Reminder,
		Expiry:     s.Expiry,
		CanSend:    s.CanSend(),
	}
	for i, doc := range s.Documents {
		summary.Documents[i] = DocumentReview{
			Document: doc,
			Fields:   s.Placement.FieldsForDocument(i),
		}
	}
	for i, rec := range s.Roster.Recipients {
		summary.Recipients[i] = RecipientReview{
			Recipient:  rec,
			FieldCount: s.Placement.FieldCountForRecipient(rec.ID),
			Color:      entity.ColorOf(i),
		}
	}
	return summary, nil
}

// Send assembles the envelope snapshot, hands it to the transport and,
// on success, records it and purges the wizard state. A transport
// failure leaves every staged document and the session intact so the
// user can retry.
func (u *envelopeUsecase) Send(ctx context.Context, sessionID, writer string) (*entity.EnvelopeSnapshot, error) {
	current, err := u.sessions.Writer(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session writer: %w", err)
	}
	if current != "" && current != writer {
		return nil, entity.ErrSessionLocked
	}

	if _, running := u.inFlight.LoadOrStore(sessionID, struct{}{}); running {
		return nil, entity.ErrSendInFlight
	}
	defer u.inFlight.Delete(sessionID)

	s, err := u.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.CanSend() {
		return nil, fmt.Errorf("%w: a document and at least one recipient are required", entity.ErrIncompleteEnvelope)
	}
	if s.Reminder.Enabled && !entity.ValidReminderFrequency(s.Reminder.FrequencyDays) {
		return nil, fmt.Errorf("%w: reminder frequency must be one of %v days", entity.ErrValidation, entity.ReminderFrequencies)
	}
	if s.Expiry.Enabled && (s.Expiry.Days < entity.MinExpiryDays || s.Expiry.Days > entity.MaxExpiryDays) {
		return nil, fmt.Errorf("%w: expiry must be between %d and %d days", entity.ErrValidation, entity.MinExpiryDays, entity.MaxExpiryDays)
	}

	snapshot := u.assemble(s)
	receipt, err := u.transport.SendEnvelope(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrSendFailed, err)
	}

	snapshot.Status = entity.StatusSent
	if receipt != nil {
		if receipt.ID != "" {
			snapshot.ID = receipt.ID
		}
		if receipt.Status != "" {
			snapshot.Status = receipt.Status
		}
	}
	snapshot.UpdatedAt = u.now().UTC()

	if err := u.envelopes.Insert(ctx, snapshot); err != nil {
		// The envelope is already on its way; losing the local record
		// must not fail the send.
		u.logger.Error("Failed to record sent envelope",
			zap.String("envelope_id", snapshot.ID), zap.Error(err))
	}

	u.purge(ctx, sessionID, writer)

	u.logger.Info("Envelope sent",
		zap.String("session_id", sessionID),
		zap.String("envelope_id", snapshot.ID),
		zap.Int("documents", len(snapshot.Documents)),
		zap.Int("recipients", len(snapshot.Recipients)),
		zap.Int("fields", len(snapshot.Fields)),
	)
	return snapshot, nil
}

func (u *envelopeUsecase) List(ctx context.Context, filter repository.EnvelopeFilter) ([]entity.EnvelopeSnapshot, error) {
	return u.envelopes.List(ctx, filter)
}

func (u *envelopeUsecase) StatusCounts(ctx context.Context) (map[entity.EnvelopeStatus]int, error) {
	return u.envelopes.CountByStatus(ctx)
}

// assemble captures the session into an immutable snapshot. The expiry
// deadline is computed from the clock here, at actual send time.
func (u *envelopeUsecase) assemble(s *wizard.Session) *entity.EnvelopeSnapshot {
	now := u.now().UTC()

	name := s.Name
	if name == "" {
		name = defaultEnvelopeName
	}

	expiry := entity.ExpirySettings{Enabled: s.Expiry.Enabled, Days: s.Expiry.Days}
	if expiry.Enabled {
		expiry.ExpiresOn = now.AddDate(0, 0, expiry.Days)
	}

	return &entity.EnvelopeSnapshot{
		ID:         "envelope-" + uuid.NewString(),
		Name:       name,
		Message:    s.Message,
		Documents:  append([]entity.DocumentMeta{}, s.Documents...),
		Recipients: append([]entity.Recipient{}, s.Roster.Recipients...),
		Fields:     append([]entity.SignatureField{}, s.Placement.Fields...),
		Reminder:   s.Reminder,
		Expiry:     expiry,
		Status:     entity.StatusDraft,
		Owner:      s.Owner,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// purge drops the wizard state after a successful send. Failures are
// logged only; the send already succeeded and a leftover session is
// harmless.
func (u *envelopeUsecase) purge(ctx context.Context, sessionID, writer string) {
	if err := u.staging.Clear(ctx, sessionID); err != nil {
		u.logger.Warn("Failed to clear staged documents after send",
			zap.String("session_id", sessionID), zap.Error(err))
	}
	if err := u.sessions.Delete(ctx, sessionID); err != nil {
		u.logger.Warn("Failed to delete session after send",
			zap.String("session_id", sessionID), zap.Error(err))
	}
	if err := u.sessions.Release(ctx, sessionID, writer); err != nil {
		u.logger.Warn("Failed to release writer claim after send",
			zap.String("session_id", sessionID), zap.Error(err))
	}
}
