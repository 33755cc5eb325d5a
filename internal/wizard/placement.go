package wizard

import (
	"github.com/google/uuid"

	"signpubliq/internal/domain/entity"
)

// Point is a position in document-canvas pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GestureState is the placement gesture the engine is currently in.
// It is derived from the engine's fields rather than stored, so the
// engine can never be in an impossible combination.
type GestureState string

const (
	GestureIdle         GestureState = "idle"
	GestureTypeArmed    GestureState = "type_armed"
	GestureReadyToPlace GestureState = "ready_to_place"
	GestureDragging     GestureState = "dragging"
	GestureSelected     GestureState = "selected"
)

// PlacementEngine turns field-type selections, recipient selections
// and canvas events into a consistent list of signature fields, and
// supports direct manipulation with bounds enforcement.
//
// All fields are exported with json tags so a session snapshot can be
// persisted between wizard steps.
type PlacementEngine struct {
	CanvasWidth  float64                 `json:"canvas_width"`
	CanvasHeight float64                 `json:"canvas_height"`
	Fields       []entity.SignatureField `json:"fields"`

	// ArmedType is consumed by a successful placement. ActiveRecipient
	// persists across placements so a batch of fields can be placed
	// for the same signer.
	ArmedType       entity.FieldType `json:"armed_type,omitempty"`
	ActiveRecipient string           `json:"active_recipient,omitempty"`

	SelectedID string `json:"selected_id,omitempty"`
	DraggingID string `json:"dragging_id,omitempty"`
	DragOffset Point  `json:"drag_offset"`
}

func NewPlacementEngine(canvasWidth, canvasHeight float64) *PlacementEngine {
	return &PlacementEngine{
		CanvasWidth:  canvasWidth,
		CanvasHeight: canvasHeight,
		Fields:       []entity.SignatureField{},
	}
}

// State reports the current gesture state.
func (e *PlacementEngine) State() GestureState {
	switch {
	case e.DraggingID != "":
		return GestureDragging
	case e.SelectedID != "":
		return GestureSelected
	case e.ArmedType != "" && e.ActiveRecipient != "":
		return GestureReadyToPlace
	case e.ArmedType != "":
		return GestureTypeArmed
	default:
		return GestureIdle
	}
}

// SelectFieldType arms a field type for the next canvas click.
func (e *PlacementEngine) SelectFieldType(t entity.FieldType) error {
	if !t.Valid() {
		return entity.ErrValidation
	}
	e.ArmedType = t
	return nil
}

// SelectRecipient makes rid the owner of subsequently placed fields.
func (e *PlacementEngine) SelectRecipient(rid string) {
	e.ActiveRecipient = rid
}

// ClickCanvas commits a placement when a type and recipient are both
// selected. With only a type armed it rejects with ErrMissingRecipient
// and stays armed; with nothing armed it has no effect.
func (e *PlacementEngine) ClickCanvas(documentIndex, documentCount int, p Point) (*entity.SignatureField, error) {
	if e.DraggingID != "" || e.ArmedType == "" {
		return nil, nil
	}
	f, err := e.PlaceField(e.ArmedType, e.ActiveRecipient, documentIndex, documentCount, p)
	if err != nil {
		return nil, err
	}
	// Type selection is consumed; the recipient stays selected.
	e.ArmedType = ""
	return f, nil
}

// PlaceField creates a field of type t at p, owned by rid, on the
// staged document at documentIndex. The field list is unchanged on
// any error.
func (e *PlacementEngine) PlaceField(t entity.FieldType, rid string, documentIndex, documentCount int, p Point) (*entity.SignatureField, error) {
	if !t.Valid() {
		return nil, entity.ErrValidation
	}
	if rid == "" {
		return nil, entity.ErrMissingRecipient
	}
	if documentIndex < 0 || documentIndex >= documentCount {
		return nil, entity.ErrMissingDocument
	}

	w, h := t.DefaultSize()
	f := entity.SignatureField{
		ID:            "field-" + uuid.NewString(),
		Type:          t,
		Label:         t.Label(),
		X:             clamp(p.X, 0, e.CanvasWidth-w),
		Y:             clamp(p.Y, 0, e.CanvasHeight-h),
		Width:         w,
		Height:        h,
		DocumentIndex: documentIndex,
		RecipientID:   rid,
	}
	e.Fields = append(e.Fields, f)
	return &e.Fields[len(e.Fields)-1], nil
}

// MoveField repositions a field, clamped to the canvas. Out-of-range
// input clamps instead of erroring; that is the intended drag
// behavior, not an oversight.
func (e *PlacementEngine) MoveField(id string, p Point) {
	for i := range e.Fields {
		if e.Fields[i].ID == id {
			e.Fields[i].X = clamp(p.X, 0, e.CanvasWidth-e.Fields[i].Width)
			e.Fields[i].Y = clamp(p.Y, 0, e.CanvasHeight-e.Fields[i].Height)
			return
		}
	}
}

// PressField starts a drag on an existing field and selects it.
func (e *PlacementEngine) PressField(id string, pointer Point) error {
	f, ok := e.field(id)
	if !ok {
		return entity.ErrValidation
	}
	e.DraggingID = id
	e.SelectedID = id
	e.DragOffset = Point{X: pointer.X - f.X, Y: pointer.Y - f.Y}
	return nil
}

// MovePointer applies a drag-move. Each move clamps against the
// field's current geometry, in the order received.
func (e *PlacementEngine) MovePointer(pointer Point) {
	if e.DraggingID == "" {
		return
	}
	e.MoveField(e.DraggingID, Point{X: pointer.X - e.DragOffset.X, Y: pointer.Y - e.DragOffset.Y})
}

// ReleasePointer ends the drag gesture.
func (e *PlacementEngine) ReleasePointer() {
	e.DraggingID = ""
	e.DragOffset = Point{}
}

// ClickField selects a field; selecting a different field replaces
// the previous selection. At most one field is selected at a time.
func (e *PlacementEngine) ClickField(id string) error {
	if _, ok := e.field(id); !ok {
		return entity.ErrValidation
	}
	e.SelectedID = id
	return nil
}

// DeleteSelected removes the selected field, if any.
func (e *PlacementEngine) DeleteSelected() bool {
	if e.SelectedID == "" {
		return false
	}
	return e.DeleteField(e.SelectedID)
}

// DeleteField removes exactly the field with the given id, clearing
// selection and drag state if they referenced it.
func (e *PlacementEngine) DeleteField(id string) bool {
	for i := range e.Fields {
		if e.Fields[i].ID == id {
			e.Fields = append(e.Fields[:i], e.Fields[i+1:]...)
			if e.SelectedID == id {
				e.SelectedID = ""
			}
			if e.DraggingID == id {
				e.DraggingID = ""
				e.DragOffset = Point{}
			}
			return true
		}
	}
	return false
}

// FieldsForDocument returns the fields scoped to one staged document.
func (e *PlacementEngine) FieldsForDocument(documentIndex int) []entity.SignatureField {
	out := []entity.SignatureField{}
	for _, f := range e.Fields {
		if f.DocumentIndex == documentIndex {
			out = append(out, f)
		}
	}
	return out
}

// FieldCountForRecipient returns how many fields are assigned to rid.
func (e *PlacementEngine) FieldCountForRecipient(rid string) int {
	n := 0
	for _, f := range e.Fields {
		if f.RecipientID == rid {
			n++
		}
	}
	return n
}

// RemoveDocument cascade-deletes the fields placed on the document at
// documentIndex and shifts the indexes of later documents down.
func (e *PlacementEngine) RemoveDocument(documentIndex int) {
	kept := e.Fields[:0]
	for _, f := range e.Fields {
		if f.DocumentIndex == documentIndex {
			if e.SelectedID == f.ID {
				e.SelectedID = ""
			}
			if e.DraggingID == f.ID {
				e.DraggingID = ""
				e.DragOffset = Point{}
			}
			continue
		}
		if f.DocumentIndex > documentIndex {
			f.DocumentIndex--
		}
		kept = append(kept, f)
	}
	e.Fields = kept
}

// RemoveRecipientFields cascade-deletes the fields owned by rid and
// clears the active recipient if it was rid.
func (e *PlacementEngine) RemoveRecipientFields(rid string) {
	kept := e.Fields[:0]
	for _, f := range e.Fields {
		if f.RecipientID == rid {
			if e.SelectedID == f.ID {
				e.SelectedID = ""
			}
			if e.DraggingID == f.ID {
				e.DraggingID = ""
				e.DragOffset = Point{}
			}
			continue
		}
		kept = append(kept, f)
	}
	e.Fields = kept
	if e.ActiveRecipient == rid {
		e.ActiveRecipient = ""
	}
}

func (e *PlacementEngine) field(id string) (entity.SignatureField, bool) {
	for _, f := range e.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return entity.SignatureField{}, false
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
