package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"signpubliq/internal/config"
	"signpubliq/internal/domain/entity"
	"signpubliq/internal/domain/repository"
	"signpubliq/internal/wizard"
)

// GestureEvent is one raw interaction from the placement canvas. The
// delivery layer decodes it verbatim; the engine decides what it means
// in the current gesture state.
type GestureEvent struct {
	Action        string           `json:"action"`
	FieldType     entity.FieldType `json:"field_type,omitempty"`
	RecipientID   string           `json:"recipient_id,omitempty"`
	FieldID       string           `json:"field_id,omitempty"`
	DocumentIndex int              `json:"document_index"`
	Point         wizard.Point     `json:"point"`
}

// Gesture actions understood by ApplyGesture.
const (
	GestureSelectType      = "select_type"
	GestureSelectRecipient = "select_recipient"
	GestureCanvasClick     = "canvas_click"
	GestureFieldClick      = "field_click"
	GestureFieldPress      = "field_press"
	GesturePointerMove     = "pointer_move"
	GesturePointerRelease  = "pointer_release"
	GestureDeleteSelected  = "delete_selected"
)

// GestureResult reports the engine state after an event, plus the
// field a canvas click placed, if any.
type GestureResult struct {
	State  wizard.GestureState     `json:"state"`
	Placed *entity.SignatureField  `json:"placed,omitempty"`
	Fields []entity.SignatureField `json:"fields"`
}

// UploadResult pairs the staged metadata with per-file rejection
// reasons for the batch.
type UploadResult struct {
	Staged   []entity.DocumentMeta `json:"staged"`
	Rejected []string              `json:"rejected,omitempty"`
}

// SettingsUpdate carries the optional review-step settings. Nil fields
// are left untouched.
type SettingsUpdate struct {
	Name     *string                  `json:"name,omitempty"`
	Message  *string                  `json:"message,omitempty"`
	Owner    *string                  `json:"owner,omitempty"`
	Reminder *entity.ReminderSettings `json:"reminder,omitempty"`
	Expiry   *entity.ExpirySettings   `json:"expiry,omitempty"`
}

// SessionUsecase drives the envelope wizard: staging uploads, editing
// the roster, applying placement gestures and updating send settings.
// Every mutation requires the writer token handed out at creation.
type SessionUsecase interface {
	Create(ctx context.Context) (*wizard.Session, string, error)
	Get(ctx context.Context, id string) (*wizard.Session, error)
	Cancel(ctx context.Context, id, writer string) error

	UploadDocuments(ctx context.Context, id, writer string, files []entity.IncomingFile) (*UploadResult, error)
	RemoveDocument(ctx context.Context, id, writer string, index int) error

	AddRecipient(ctx context.Context, id, writer string) (*entity.Recipient, error)
	UpdateRecipient(ctx context.Context, id, writer, recipientID, field string, value any) error
	RemoveRecipient(ctx context.Context, id, writer, recipientID string) error

	ApplyGesture(ctx context.Context, id, writer string, ev GestureEvent) (*GestureResult, error)
	MoveField(ctx context.Context, id, writer, fieldID string, p wizard.Point) error
	DeleteField(ctx context.Context, id, writer, fieldID string) error

	UpdateSettings(ctx context.Context, id, writer string, set SettingsUpdate) (*wizard.Session, error)
}

type sessionUsecase struct {
	config   *config.Config
	sessions repository.SessionRepository
	staging  repository.StagingStore
	policy   wizard.UploadPolicy
	logger   *zap.Logger
}

func NewSessionUsecase(
	cfg *config.Config,
	sessions repository.SessionRepository,
	staging repository.StagingStore,
	logger *zap.Logger,
) SessionUsecase {
	policy := wizard.DefaultUploadPolicy()
	policy.MaxFileBytes = cfg.Wizard.MaxFileMB << 20
	policy.MaxEnvelopeBytes = cfg.Wizard.MaxEnvelopeMB << 20

	return &sessionUsecase{
		config:   cfg,
		sessions: sessions,
		staging:  staging,
		policy:   policy,
		logger:   logger,
	}
}

// Create starts a fresh wizard session and claims it for a new writer
// token. The token must accompany every subsequent mutation.
func (u *sessionUsecase) Create(ctx context.Context) (*wizard.Session, string, error) {
	s := wizard.NewSession("session-"+uuid.NewString(), u.config.Wizard.CanvasWidth, u.config.Wizard.CanvasHeight)
	writer := "writer-" + uuid.NewString()

	if err := u.sessions.Save(ctx, s); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}
	ok, err := u.sessions.Acquire(ctx, s.ID, writer)
	if err != nil {
		return nil, "", fmt.Errorf("failed to claim session: %w", err)
	}
	if !ok {
		return nil, "", entity.ErrSessionLocked
	}

	u.logger.Info("Wizard session created", zap.String("session_id", s.ID))
	return s, writer, nil
}

func (u *sessionUsecase) Get(ctx context.Context, id string) (*wizard.Session, error) {
	return u.sessions.Get(ctx, id)
}

// Cancel abandons the wizard: staged documents and the session
// snapshot are purged and the writer claim released.
func (u *sessionUsecase) Cancel(ctx context.Context, id, writer string) error {
	if err := u.checkWriter(ctx, id, writer); err != nil {
		return err
	}
	if _, err := u.sessions.Get(ctx, id); err != nil {
		return err
	}

	if err := u.staging.Clear(ctx, id); err != nil {
		u.logger.Warn("Failed to clear staged documents on cancel",
			zap.String("session_id", id), zap.Error(err))
	}
	if err := u.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if err := u.sessions.Release(ctx, id, writer); err != nil {
		u.logger.Warn("Failed to release writer claim",
			zap.String("session_id", id), zap.Error(err))
	}

	u.logger.Info("Wizard session cancelled", zap.String("session_id", id))
	return nil
}

// UploadDocuments validates the batch against the upload policy,
// stages the accepted files and records their metadata on the session.
// Rejected files are reported back without failing the batch; only an
// envelope-ceiling breach rejects everything.
func (u *sessionUsecase) UploadDocuments(ctx context.Context, id, writer string, files []entity.IncomingFile) (*UploadResult, error) {
	if err := u.checkWriter(ctx, id, writer); err != nil {
		return nil, err
	}
	s, err := u.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	staged, err := u.staging.UsedBytes(ctx, id)
	if err != nil {
		return nil, err
	}
	accepted, rejected, err := u.policy.Validate(files, staged)
	if err != nil {
		return nil, err
	}

	result := &UploadResult{Staged: []entity.DocumentMeta{}, Rejected: rejected}
	if len(accepted) > 0 {
		metas, err := u.staging.Save(ctx, id, accepted)
		if err != nil {
			return nil, err
		}
		for i := range metas {
			metas[i].ConvertToPDF = wizard.WillConvert(metas[i].Name)
		}
		s.AddDocuments(metas)
		if err := u.save(ctx, s); err != nil {
			return nil, err
		}
		result.Staged = metas
	}

	u.logger.Info("Documents uploaded",
		zap.String("session_id", id),
		zap.Int("accepted", len(result.Staged)),
		zap.Int("rejected", len(rejected)),
	)
	return result, nil
}

// RemoveDocument drops a staged document and cascade-deletes the
// fields placed on it.
func (u *sessionUsecase) RemoveDocument(ctx context.Context, id, writer string, index int) error {
	return u.mutate(ctx, id, writer, func(s *wizard.Session) error {
		if index < 0 || index >= len(s.Documents) {
			return fmt.Errorf("%w: index %d", entity.ErrMissingDocument, index)
		}
		docID := s.Documents[index].ID
		if err := u.staging.Remove(ctx, id, docID); err != nil {
			return err
		}
		return s.RemoveDocument(index)
	})
}

func (u *sessionUsecase) AddRecipient(ctx context.Context, id, writer string) (*entity.Recipient, error) {
	var added entity.Recipient
	err := u.mutate(ctx, id, writer, func(s *wizard.Session) error {
		added = s.Roster.Add()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

func (u *sessionUsecase) UpdateRecipient(ctx context.Context, id, writer, recipientID, field string, value any) error {
	return u.mutate(ctx, id, writer, func(s *wizard.Session) error {
		return s.Roster.Update(recipientID, field, value)
	})
}

// RemoveRecipient drops a roster entry and its placed fields. The last
// remaining recipient cannot be removed.
func (u *sessionUsecase) RemoveRecipient(ctx context.Context, id, writer, recipientID string) error {
	return u.mutate(ctx, id, writer, func(s *wizard.Session) error {
		if !s.Roster.CanRemove() {
			return fmt.Errorf("%w: cannot remove the last recipient", entity.ErrValidation)
		}
		if !s.RemoveRecipient(recipientID) {
			return fmt.Errorf("%w: unknown recipient %q", entity.ErrValidation, recipientID)
		}
		return nil
	})
}

// ApplyGesture feeds one canvas event through the placement engine and
// persists the resulting state.
func (u *sessionUsecase) ApplyGesture(ctx context.Context, id, writer string, ev GestureEvent) (*GestureResult, error) {
	var result GestureResult
	err := u.mutate(ctx, id, writer, func(s *wizard.Session) error {
		eng := s.Placement
		switch ev.Action {
		case GestureSelectType:
			if err := eng.SelectFieldType(ev.FieldType); err != nil {
				return fmt.Errorf("%w: unknown field type %q", entity.ErrValidation, ev.FieldType)
			}
		case GestureSelectRecipient:
			if _, ok := s.Roster.Get(ev.RecipientID); !ok {
				return fmt.Errorf("%w: unknown recipient %q", entity.ErrValidation, ev.RecipientID)
			}
			eng.SelectRecipient(ev.RecipientID)
		case GestureCanvasClick:
			placed, err := eng.ClickCanvas(ev.DocumentIndex, len(s.Documents), ev.Point)
			if err != nil {
				return err
			}
			result.Placed = placed
		case GestureFieldClick:
			if err := eng.ClickField(ev.FieldID); err != nil {
				return fmt.Errorf("%w: unknown field %q", entity.ErrValidation, ev.FieldID)
			}
		case GestureFieldPress:
			if err := eng.PressField(ev.FieldID, ev.Point); err != nil {
				return fmt.Errorf("%w: unknown field %q", entity.ErrValidation, ev.FieldID)
			}
		case GesturePointerMove:
			eng.MovePointer(ev.Point)
		case GesturePointerRelease:
			eng.ReleasePointer()
		case GestureDeleteSelected:
			eng.DeleteSelected()
		default:
			return fmt.Errorf("%w: unknown gesture action %q", entity.ErrValidation, ev.Action)
		}

		result.State = eng.State()
		result.Fields = eng.Fields
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (u *sessionUsecase) MoveField(ctx context.Context, id, writer, fieldID string, p wizard.Point) error {
	return u.mutate(ctx, id, writer, func(s *wizard.Session) error {
		s.Placement.MoveField(fieldID, p)
		return nil
	})
}

func (u *sessionUsecase) DeleteField(ctx context.Context, id, writer, fieldID string) error {
	return u.mutate(ctx, id, writer, func(s *wizard.Session) error {
		if !s.Placement.DeleteField(fieldID) {
			return fmt.Errorf("%w: unknown field %q", entity.ErrValidation, fieldID)
		}
		return nil
	})
}

// UpdateSettings applies the review-step settings. Reminder frequency
// and expiry window are validated here so a bad value never reaches
// the send coordinator.
func (u *sessionUsecase) UpdateSettings(ctx context.Context, id, writer string, set SettingsUpdate) (*wizard.Session, error) {
	var out *wizard.Session
	err := u.mutate(ctx, id, writer, func(s *wizard.Session) error {
		if set.Name != nil {
			s.Name = strings.TrimSpace(*set.Name)
		}
		if set.Message != nil {
			s.Message = *set.Message
		}
		if set.Owner != nil {
			s.Owner = *set.Owner
		}
		if set.Reminder != nil {
			if set.Reminder.Enabled && !entity.ValidReminderFrequency(set.Reminder.FrequencyDays) {
				return fmt.Errorf("%w: reminder frequency must be one of %v days", entity.ErrValidation, entity.ReminderFrequencies)
			}
			s.Reminder = *set.Reminder
		}
		if set.Expiry != nil {
			if set.Expiry.Enabled && (set.Expiry.Days < entity.MinExpiryDays || set.Expiry.Days > entity.MaxExpiryDays) {
				return fmt.Errorf("%w: expiry must be between %d and %d days", entity.ErrValidation, entity.MinExpiryDays, entity.MaxExpiryDays)
			}
			// The deadline is computed at send time, never here.
			s.Expiry = entity.ExpirySettings{Enabled: set.Expiry.Enabled, Days: set.Expiry.Days}
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// mutate runs fn against the loaded session under the writer check and
// persists the result.
func (u *sessionUsecase) mutate(ctx context.Context, id, writer string, fn func(*wizard.Session) error) error {
	if err := u.checkWriter(ctx, id, writer); err != nil {
		return err
	}
	s, err := u.sessions.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return u.save(ctx, s)
}

func (u *sessionUsecase) save(ctx context.Context, s *wizard.Session) error {
	s.UpdatedAt = time.Now().UTC()
	if err := u.sessions.Save(ctx, s); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// checkWriter rejects mutations from callers that do not hold the
// session's writer claim. An expired claim is re-acquired so a
// returning writer can continue.
func (u *sessionUsecase) checkWriter(ctx context.Context, id, writer string) error {
	current, err := u.sessions.Writer(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check session writer: %w", err)
	}
	if current == "" {
		if _, err := u.sessions.Acquire(ctx, id, writer); err != nil {
			return fmt.Errorf("failed to reclaim session: %w", err)
		}
		return nil
	}
	if current != writer {
		return entity.ErrSessionLocked
	}
	return nil
}
