package entity

// DocumentMeta is what the wizard carries between steps. The binary
// content stays in the staging store, keyed by ID.
type DocumentMeta struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	// ConvertToPDF marks image uploads that the backend will convert
	// before signing.
	ConvertToPDF bool `json:"convert_to_pdf,omitempty"`
}

// StoredDocument is a staged document with its content loaded.
type StoredDocument struct {
	DocumentMeta
	Content []byte `json:"content"`
}

// IncomingFile is an upload as received from the client, before
// validation and staging.
type IncomingFile struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Content  []byte `json:"content"`
}
