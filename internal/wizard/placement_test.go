package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signpubliq/internal/domain/entity"
)

func newEngine() *PlacementEngine {
	return NewPlacementEngine(850, 1100)
}

func place(t *testing.T, e *PlacementEngine, ft entity.FieldType, rid string, doc int, p Point) entity.SignatureField {
	t.Helper()
	f, err := e.PlaceField(ft, rid, doc, doc+1, p)
	require.NoError(t, err)
	return *f
}

func TestPlaceFieldDefaults(t *testing.T) {
	e := newEngine()

	f := place(t, e, entity.FieldSignature, "r1", 0, Point{X: 100, Y: 200})
	assert.Equal(t, 200.0, f.Width)
	assert.Equal(t, 60.0, f.Height)
	assert.Equal(t, "Signature", f.Label)
	assert.Equal(t, "r1", f.RecipientID)
	assert.Equal(t, 0, f.DocumentIndex)
	assert.NotEmpty(t, f.ID)

	initial := place(t, e, entity.FieldInitial, "r1", 0, Point{})
	assert.Equal(t, 80.0, initial.Width)
	assert.Equal(t, 60.0, initial.Height)

	text := place(t, e, entity.FieldCompany, "r1", 0, Point{})
	assert.Equal(t, 150.0, text.Width)
	assert.Equal(t, 40.0, text.Height)
}

func TestPlaceFieldPreconditions(t *testing.T) {
	e := newEngine()

	_, err := e.PlaceField(entity.FieldSignature, "", 0, 1, Point{})
	assert.ErrorIs(t, err, entity.ErrMissingRecipient)

	_, err = e.PlaceField("bogus", "r1", 0, 1, Point{})
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = e.PlaceField(entity.FieldSignature, "r1", 2, 2, Point{})
	assert.ErrorIs(t, err, entity.ErrMissingDocument)

	_, err = e.PlaceField(entity.FieldSignature, "r1", -1, 2, Point{})
	assert.ErrorIs(t, err, entity.ErrMissingDocument)

	// No field was ever appended on the error paths.
	assert.Empty(t, e.Fields)
}

func TestPlacementClampsToCanvas(t *testing.T) {
	e := newEngine()

	f := place(t, e, entity.FieldSignature, "r1", 0, Point{X: 10000, Y: -50})
	assert.Equal(t, 850.0-200.0, f.X)
	assert.Equal(t, 0.0, f.Y)
}

func TestMoveFieldStaysInBounds(t *testing.T) {
	e := newEngine()
	f := place(t, e, entity.FieldSignature, "r1", 0, Point{X: 100, Y: 100})

	moves := []Point{
		{X: -500, Y: -500},
		{X: 5000, Y: 100},
		{X: 400, Y: 9999},
		{X: 0, Y: 0},
		{X: 849, Y: 1099},
	}
	for _, p := range moves {
		e.MoveField(f.ID, p)
		got := e.Fields[0]
		assert.GreaterOrEqual(t, got.X, 0.0)
		assert.GreaterOrEqual(t, got.Y, 0.0)
		assert.LessOrEqual(t, got.X+got.Width, e.CanvasWidth)
		assert.LessOrEqual(t, got.Y+got.Height, e.CanvasHeight)
	}
}

func TestDragSequencePreservesOffset(t *testing.T) {
	e := newEngine()
	f := place(t, e, entity.FieldSignature, "r1", 0, Point{X: 100, Y: 100})

	// Grab the field 10,5 inside its top-left corner.
	require.NoError(t, e.PressField(f.ID, Point{X: 110, Y: 105}))
	assert.Equal(t, GestureDragging, e.State())

	e.MovePointer(Point{X: 310, Y: 405})
	assert.Equal(t, 300.0, e.Fields[0].X)
	assert.Equal(t, 400.0, e.Fields[0].Y)

	// A wild pointer clamps rather than escaping the canvas.
	e.MovePointer(Point{X: -1000, Y: 99999})
	assert.Equal(t, 0.0, e.Fields[0].X)
	assert.Equal(t, 1100.0-60.0, e.Fields[0].Y)

	e.ReleasePointer()
	assert.Equal(t, GestureSelected, e.State())
	assert.Equal(t, f.ID, e.SelectedID)
}

func TestGestureStateTransitions(t *testing.T) {
	e := newEngine()
	assert.Equal(t, GestureIdle, e.State())

	require.NoError(t, e.SelectFieldType(entity.FieldSignature))
	assert.Equal(t, GestureTypeArmed, e.State())

	// A canvas click with only a type armed is rejected and the type
	// stays armed.
	_, err := e.ClickCanvas(0, 1, Point{X: 50, Y: 50})
	assert.ErrorIs(t, err, entity.ErrMissingRecipient)
	assert.Equal(t, GestureTypeArmed, e.State())

	e.SelectRecipient("r1")
	assert.Equal(t, GestureReadyToPlace, e.State())

	placed, err := e.ClickCanvas(0, 1, Point{X: 50, Y: 50})
	require.NoError(t, err)
	require.NotNil(t, placed)

	// Placement consumes the type but keeps the recipient.
	assert.Empty(t, string(e.ArmedType))
	assert.Equal(t, "r1", e.ActiveRecipient)
	assert.Equal(t, GestureIdle, e.State())

	// Selecting another type goes straight to ready since the
	// recipient is still active.
	require.NoError(t, e.SelectFieldType(entity.FieldDateSigned))
	assert.Equal(t, GestureReadyToPlace, e.State())
}

func TestClickCanvasWithNothingArmed(t *testing.T) {
	e := newEngine()
	e.SelectRecipient("r1")

	placed, err := e.ClickCanvas(0, 1, Point{X: 50, Y: 50})
	assert.NoError(t, err)
	assert.Nil(t, placed)
	assert.Empty(t, e.Fields)
}

func TestSelectionIsExclusive(t *testing.T) {
	e := newEngine()
	a := place(t, e, entity.FieldSignature, "r1", 0, Point{X: 10, Y: 10})
	b := place(t, e, entity.FieldInitial, "r1", 0, Point{X: 300, Y: 10})

	require.NoError(t, e.ClickField(a.ID))
	assert.Equal(t, a.ID, e.SelectedID)

	require.NoError(t, e.ClickField(b.ID))
	assert.Equal(t, b.ID, e.SelectedID)

	assert.ErrorIs(t, e.ClickField("missing"), entity.ErrValidation)
}

func TestDeleteRemovesExactlyOneField(t *testing.T) {
	e := newEngine()
	a := place(t, e, entity.FieldSignature, "r1", 0, Point{X: 10, Y: 10})
	b := place(t, e, entity.FieldInitial, "r2", 0, Point{X: 300, Y: 10})
	c := place(t, e, entity.FieldCompany, "r1", 1, Point{X: 10, Y: 300})

	require.NoError(t, e.ClickField(b.ID))
	assert.True(t, e.DeleteSelected())
	assert.Empty(t, e.SelectedID)

	ids := []string{}
	for _, f := range e.Fields {
		ids = append(ids, f.ID)
	}
	assert.ElementsMatch(t, []string{a.ID, c.ID}, ids)

	// Nothing selected: no-op.
	assert.False(t, e.DeleteSelected())
	assert.Len(t, e.Fields, 2)

	assert.False(t, e.DeleteField("missing"))
	assert.True(t, e.DeleteField(a.ID))
	assert.Len(t, e.Fields, 1)
}

func TestFieldScopingByDocumentAndRecipient(t *testing.T) {
	e := newEngine()
	place(t, e, entity.FieldSignature, "r1", 0, Point{})
	place(t, e, entity.FieldInitial, "r2", 0, Point{})
	place(t, e, entity.FieldCompany, "r1", 1, Point{})
	place(t, e, entity.FieldDateSigned, "r1", 1, Point{})

	assert.Len(t, e.FieldsForDocument(0), 2)
	assert.Len(t, e.FieldsForDocument(1), 2)
	assert.Empty(t, e.FieldsForDocument(2))

	assert.Equal(t, 3, e.FieldCountForRecipient("r1"))
	assert.Equal(t, 1, e.FieldCountForRecipient("r2"))
	assert.Equal(t, 0, e.FieldCountForRecipient("r3"))
}

func TestRemoveDocumentCascadesAndShiftsIndexes(t *testing.T) {
	e := newEngine()
	place(t, e, entity.FieldSignature, "r1", 0, Point{})
	doomed := place(t, e, entity.FieldInitial, "r1", 1, Point{})
	place(t, e, entity.FieldCompany, "r1", 2, Point{})

	require.NoError(t, e.ClickField(doomed.ID))
	e.RemoveDocument(1)

	require.Len(t, e.Fields, 2)
	assert.Equal(t, 0, e.Fields[0].DocumentIndex)
	// The field on document 2 shifted down to index 1.
	assert.Equal(t, 1, e.Fields[1].DocumentIndex)
	assert.Equal(t, entity.FieldCompany, e.Fields[1].Type)
	assert.Empty(t, e.SelectedID)
}

func TestRemoveRecipientFieldsCascades(t *testing.T) {
	e := newEngine()
	place(t, e, entity.FieldSignature, "r1", 0, Point{})
	kept := place(t, e, entity.FieldInitial, "r2", 0, Point{})
	place(t, e, entity.FieldCompany, "r1", 0, Point{})
	e.SelectRecipient("r1")

	e.RemoveRecipientFields("r1")

	require.Len(t, e.Fields, 1)
	assert.Equal(t, kept.ID, e.Fields[0].ID)
	assert.Empty(t, e.ActiveRecipient)
}
