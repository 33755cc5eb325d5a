package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"signpubliq/internal/domain/entity"
	"signpubliq/internal/domain/repository"
	"signpubliq/internal/wizard"
)

// fakeSessions round-trips snapshots through JSON so tests exercise
// the same serialization boundary the real store has.
type fakeSessions struct {
	mu      sync.Mutex
	data    map[string][]byte
	writers map[string]string

	saveErr   error
	getErr    error
	deleteErr error
	deleted   []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		data:    map[string][]byte{},
		writers: map[string]string{},
	}
}

func (f *fakeSessions) Save(_ context.Context, s *wizard.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[s.ID] = raw
	return nil
}

func (f *fakeSessions) Get(_ context.Context, id string) (*wizard.Session, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[id]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	var s wizard.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSessions) Acquire(_ context.Context, id, writer string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if current, held := f.writers[id]; held && current != writer {
		return false, nil
	}
	f.writers[id] = writer
	return true, nil
}

func (f *fakeSessions) Writer(_ context.Context, id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writers[id], nil
}

func (f *fakeSessions) Release(_ context.Context, id, writer string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writers[id] == writer {
		delete(f.writers, id)
	}
	return nil
}

type fakeStaging struct {
	mu    sync.Mutex
	docs  map[string][]entity.StoredDocument
	saves int

	saveErr  error
	clearErr error
	cleared  []string
	removed  []string
}

func newFakeStaging() *fakeStaging {
	return &fakeStaging{docs: map[string][]entity.StoredDocument{}}
}

func (f *fakeStaging) Save(_ context.Context, sessionID string, files []entity.IncomingFile) ([]entity.DocumentMeta, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	metas := make([]entity.DocumentMeta, len(files))
	for i, file := range files {
		meta := entity.DocumentMeta{
			ID:       "doc-" + uuid.NewString(),
			Name:     file.Name,
			MimeType: file.MimeType,
			Size:     int64(len(file.Content)),
		}
		metas[i] = meta
		f.docs[sessionID] = append(f.docs[sessionID], entity.StoredDocument{DocumentMeta: meta, Content: file.Content})
	}
	return metas, nil
}

func (f *fakeStaging) GetAll(_ context.Context, sessionID string) ([]entity.StoredDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.StoredDocument{}, f.docs[sessionID]...), nil
}

func (f *fakeStaging) Remove(_ context.Context, sessionID, documentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.docs[sessionID][:0]
	for _, d := range f.docs[sessionID] {
		if d.ID != documentID {
			kept = append(kept, d)
		}
	}
	f.docs[sessionID] = kept
	f.removed = append(f.removed, documentID)
	return nil
}

func (f *fakeStaging) Clear(_ context.Context, sessionID string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, sessionID)
	f.cleared = append(f.cleared, sessionID)
	return nil
}

func (f *fakeStaging) UsedBytes(_ context.Context, sessionID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, d := range f.docs[sessionID] {
		total += int64(len(d.Content))
	}
	return total, nil
}

type fakeEnvelopes struct {
	mu        sync.Mutex
	inserted  []entity.EnvelopeSnapshot
	insertErr error
}

func (f *fakeEnvelopes) Insert(_ context.Context, snapshot *entity.EnvelopeSnapshot) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, *snapshot)
	return nil
}

func (f *fakeEnvelopes) List(_ context.Context, filter repository.EnvelopeFilter) ([]entity.EnvelopeSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.EnvelopeSnapshot{}
	for _, e := range f.inserted {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEnvelopes) CountByStatus(_ context.Context) (map[entity.EnvelopeStatus]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[entity.EnvelopeStatus]int{}
	for _, e := range f.inserted {
		counts[e.Status]++
	}
	return counts, nil
}

type fakeTransport struct {
	mu       sync.Mutex
	calls    int
	received []entity.EnvelopeSnapshot

	receipt *entity.SendReceipt
	err     error

	// entered/proceed let a test hold the transport mid-send.
	entered chan struct{}
	proceed chan struct{}
}

func (f *fakeTransport) SendEnvelope(_ context.Context, snapshot *entity.EnvelopeSnapshot) (*entity.SendReceipt, error) {
	f.mu.Lock()
	f.calls++
	f.received = append(f.received, *snapshot)
	f.mu.Unlock()

	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.proceed
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.receipt != nil {
		return f.receipt, nil
	}
	return &entity.SendReceipt{ID: snapshot.ID, Status: entity.StatusSent}, nil
}

func (f *fakeTransport) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var errBoom = fmt.Errorf("backend unreachable")
