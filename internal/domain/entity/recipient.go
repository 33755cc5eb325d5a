package entity

// RecipientRole determines what a recipient can do with the envelope.
type RecipientRole string

const (
	RoleSigner RecipientRole = "Signer"
	RoleCC     RecipientRole = "CC"
	RoleViewer RecipientRole = "Viewer"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r RecipientRole) bool {
	switch r {
	case RoleSigner, RoleCC, RoleViewer:
		return true
	}
	return false
}

type Recipient struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Designation  string        `json:"designation,omitempty"`
	Role         RecipientRole `json:"role"`
	SigningOrder int           `json:"signing_order"`
}

// Name returns the recipient's display name.
func (r Recipient) Name() string {
	if r.FirstName == "" {
		return r.LastName
	}
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}
