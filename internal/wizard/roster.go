package wizard

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"signpubliq/internal/domain/entity"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s.]+$`)

// ValidEmail checks the basic local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Roster is the ordered collection of envelope recipients.
type Roster struct {
	Recipients []entity.Recipient `json:"recipients"`
}

// NewRoster starts with a single blank Signer, the way the wizard's
// recipients step opens.
func NewRoster() *Roster {
	r := &Roster{Recipients: []entity.Recipient{}}
	r.Add()
	return r
}

// Add appends a new recipient with the next sequential signing order.
func (r *Roster) Add() entity.Recipient {
	rec := entity.Recipient{
		ID:           "recipient-" + uuid.NewString(),
		Role:         entity.RoleSigner,
		SigningOrder: len(r.Recipients) + 1,
	}
	r.Recipients = append(r.Recipients, rec)
	return rec
}

// CanRemove reports whether a removal would still leave at least one
// recipient. The roster itself stays permissive; the delivery layer
// gates on this, matching the wizard's hidden remove button.
func (r *Roster) CanRemove() bool {
	return len(r.Recipients) > 1
}

// Remove deletes the recipient with the given id.
func (r *Roster) Remove(id string) bool {
	for i := range r.Recipients {
		if r.Recipients[i].ID == id {
			r.Recipients = append(r.Recipients[:i], r.Recipients[i+1:]...)
			return true
		}
	}
	return false
}

// Update mutates a single attribute of a recipient in place. Field
// names follow the wire form: email, first_name, last_name,
// designation, role, signing_order.
func (r *Roster) Update(id, field string, value any) error {
	rec := r.byID(id)
	if rec == nil {
		return fmt.Errorf("%w: unknown recipient %q", entity.ErrValidation, id)
	}

	switch field {
	case "email":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: email must be a string", entity.ErrValidation)
		}
		rec.Email = s
	case "first_name":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: first_name must be a string", entity.ErrValidation)
		}
		rec.FirstName = s
	case "last_name":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: last_name must be a string", entity.ErrValidation)
		}
		rec.LastName = s
	case "designation":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: designation must be a string", entity.ErrValidation)
		}
		rec.Designation = s
	case "role":
		s, ok := value.(string)
		if !ok || !entity.ValidRole(entity.RecipientRole(s)) {
			return fmt.Errorf("%w: role must be one of Signer, CC, Viewer", entity.ErrValidation)
		}
		rec.Role = entity.RecipientRole(s)
	case "signing_order":
		n, ok := toInt(value)
		if !ok || n < 1 {
			return fmt.Errorf("%w: signing_order must be a positive integer", entity.ErrValidation)
		}
		rec.SigningOrder = n
	default:
		return fmt.Errorf("%w: unknown recipient field %q", entity.ErrValidation, field)
	}
	return nil
}

// IsComplete reports whether every recipient has a well-formed email,
// both name parts and a role.
func (r *Roster) IsComplete() bool {
	if len(r.Recipients) == 0 {
		return false
	}
	for _, rec := range r.Recipients {
		if !ValidEmail(rec.Email) || rec.FirstName == "" || rec.LastName == "" || !entity.ValidRole(rec.Role) {
			return false
		}
	}
	return true
}

// Get returns the recipient with the given id.
func (r *Roster) Get(id string) (entity.Recipient, bool) {
	if rec := r.byID(id); rec != nil {
		return *rec, true
	}
	return entity.Recipient{}, false
}

// IndexOf returns the roster position of id, or -1. Drives the
// deterministic display-color assignment.
func (r *Roster) IndexOf(id string) int {
	for i := range r.Recipients {
		if r.Recipients[i].ID == id {
			return i
		}
	}
	return -1
}

// ByRole filters the roster, preserving order.
func (r *Roster) ByRole(role entity.RecipientRole) []entity.Recipient {
	out := []entity.Recipient{}
	for _, rec := range r.Recipients {
		if rec.Role == role {
			out = append(out, rec)
		}
	}
	return out
}

func (r *Roster) byID(id string) *entity.Recipient {
	for i := range r.Recipients {
		if r.Recipients[i].ID == id {
			return &r.Recipients[i]
		}
	}
	return nil
}

// toInt accepts the numeric types JSON decoding produces.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
