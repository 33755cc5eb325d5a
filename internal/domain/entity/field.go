package entity

// FieldType identifies what a placed signature field collects.
type FieldType string

const (
	FieldSignature    FieldType = "signature"
	FieldInitial      FieldType = "initial"
	FieldStamp        FieldType = "stamp"
	FieldDateSigned   FieldType = "dateSigned"
	FieldFirstName    FieldType = "firstName"
	FieldLastName     FieldType = "lastName"
	FieldCompanyEmail FieldType = "companyEmail"
	FieldCompany      FieldType = "company"
)

var fieldLabels = map[FieldType]string{
	FieldSignature:    "Signature",
	FieldInitial:      "Initial",
	FieldStamp:        "Stamp",
	FieldDateSigned:   "Date Signed",
	FieldFirstName:    "First Name",
	FieldLastName:     "Last Name",
	FieldCompanyEmail: "Company Email",
	FieldCompany:      "Company",
}

// Label returns the display label derived from the field type.
func (t FieldType) Label() string {
	return fieldLabels[t]
}

// Valid reports whether t is a known field type.
func (t FieldType) Valid() bool {
	_, ok := fieldLabels[t]
	return ok
}

// DefaultSize returns the initial geometry for a freshly placed field.
func (t FieldType) DefaultSize() (width, height float64) {
	switch t {
	case FieldSignature:
		return 200, 60
	case FieldInitial:
		return 80, 60
	default:
		return 150, 40
	}
}

// SignatureField is a typed, positioned box on one staged document,
// owned by one recipient. Geometry is in document-canvas pixel space.
type SignatureField struct {
	ID            string    `json:"id"`
	Type          FieldType `json:"type"`
	Label         string    `json:"label"`
	X             float64   `json:"x"`
	Y             float64   `json:"y"`
	Width         float64   `json:"width"`
	Height        float64   `json:"height"`
	DocumentIndex int       `json:"document_index"`
	RecipientID   string    `json:"recipient_id"`
}

// RecipientPalette is the deterministic display-color cycle for
// recipients, assigned by roster index.
var RecipientPalette = []string{
	"#2d7bc9", "#8b5cf6", "#f97316", "#10b981", "#6366f1", "#06b6d4", "#14b8a6",
}

// ColorOf returns the display color for the recipient at roster
// index i. Purely cosmetic, but deterministic so review output is
// stable.
func ColorOf(i int) string {
	if i < 0 {
		i = -i
	}
	return RecipientPalette[i%len(RecipientPalette)]
}
