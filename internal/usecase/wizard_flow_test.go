package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"signpubliq/internal/config"
	"signpubliq/internal/domain/entity"
	"signpubliq/internal/domain/repository"
	"signpubliq/internal/wizard"
)

// Full wizard walkthroughs: upload, recipients, placement, review and
// send, sharing one store stack between both usecases.
func newFlowFixture(t *testing.T) (*wizardFixture, *sendFixture) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Wizard.CanvasWidth = 850
	cfg.Wizard.CanvasHeight = 1100
	cfg.Wizard.MaxFileMB = 25
	cfg.Wizard.MaxEnvelopeMB = 100

	wf := &wizardFixture{
		sessions: newFakeSessions(),
		staging:  newFakeStaging(),
	}
	wf.usecase = NewSessionUsecase(cfg, wf.sessions, wf.staging, zap.NewNop())

	sf := &sendFixture{
		sessions:  wf.sessions,
		staging:   wf.staging,
		envelopes: &fakeEnvelopes{},
		transport: &fakeTransport{},
	}
	sf.usecase = NewEnvelopeUsecase(sf.sessions, sf.staging, sf.envelopes, sf.transport, zap.NewNop()).(*envelopeUsecase)
	return wf, sf
}

func TestHappyPathThroughTheWizard(t *testing.T) {
	ctx := context.Background()
	wf, sf := newFlowFixture(t)

	s, writer, err := wf.usecase.Create(ctx)
	require.NoError(t, err)

	// Step 1: upload.
	_, err = wf.usecase.UploadDocuments(ctx, s.ID, writer, []entity.IncomingFile{pdf("contract.pdf", 2048)})
	require.NoError(t, err)

	// Step 2: recipients.
	rid := s.Roster.Recipients[0].ID
	require.NoError(t, wf.usecase.UpdateRecipient(ctx, s.ID, writer, rid, "email", "ada@example.com"))
	require.NoError(t, wf.usecase.UpdateRecipient(ctx, s.ID, writer, rid, "first_name", "Ada"))
	require.NoError(t, wf.usecase.UpdateRecipient(ctx, s.ID, writer, rid, "last_name", "Lovelace"))

	// Step 3: place a signature field.
	_, err = wf.usecase.ApplyGesture(ctx, s.ID, writer, GestureEvent{Action: GestureSelectRecipient, RecipientID: rid})
	require.NoError(t, err)
	_, err = wf.usecase.ApplyGesture(ctx, s.ID, writer, GestureEvent{Action: GestureSelectType, FieldType: entity.FieldSignature})
	require.NoError(t, err)
	res, err := wf.usecase.ApplyGesture(ctx, s.ID, writer, GestureEvent{Action: GestureCanvasClick, Point: wizard.Point{X: 300, Y: 700}})
	require.NoError(t, err)
	require.NotNil(t, res.Placed)

	// Step 4: name it, review, send.
	name := "Employment Contract"
	_, err = wf.usecase.UpdateSettings(ctx, s.ID, writer, SettingsUpdate{Name: &name})
	require.NoError(t, err)

	summary, err := sf.usecase.Review(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, summary.CanSend)
	assert.Equal(t, 1, summary.FieldCount)

	snapshot, err := sf.usecase.Send(ctx, s.ID, writer)
	require.NoError(t, err)
	assert.Equal(t, "Employment Contract", snapshot.Name)
	assert.Equal(t, entity.StatusSent, snapshot.Status)
	require.Len(t, snapshot.Fields, 1)
	assert.Equal(t, rid, snapshot.Fields[0].RecipientID)

	// The wizard state is gone; the envelope is listed.
	_, err = wf.usecase.Get(ctx, s.ID)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
	listed, err := sf.usecase.List(ctx, repository.EnvelopeFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, snapshot.ID, listed[0].ID)
}

func TestFailedSendLeavesWizardResumable(t *testing.T) {
	ctx := context.Background()
	wf, sf := newFlowFixture(t)
	sf.transport.err = errBoom

	s, writer, err := wf.usecase.Create(ctx)
	require.NoError(t, err)
	_, err = wf.usecase.UploadDocuments(ctx, s.ID, writer, []entity.IncomingFile{pdf("contract.pdf", 2048)})
	require.NoError(t, err)

	_, err = sf.usecase.Send(ctx, s.ID, writer)
	assert.ErrorIs(t, err, entity.ErrSendFailed)

	// The session is still editable with the same writer token.
	_, err = wf.usecase.AddRecipient(ctx, s.ID, writer)
	require.NoError(t, err)

	sf.transport.err = nil
	snapshot, err := sf.usecase.Send(ctx, s.ID, writer)
	require.NoError(t, err)
	assert.Len(t, snapshot.Recipients, 2)
}
