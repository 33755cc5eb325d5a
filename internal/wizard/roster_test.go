package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signpubliq/internal/domain/entity"
)

func fill(t *testing.T, r *Roster, id, email string) {
	t.Helper()
	require.NoError(t, r.Update(id, "email", email))
	require.NoError(t, r.Update(id, "first_name", "Ada"))
	require.NoError(t, r.Update(id, "last_name", "Lovelace"))
}

func TestNewRosterStartsWithOneBlankSigner(t *testing.T) {
	r := NewRoster()

	require.Len(t, r.Recipients, 1)
	rec := r.Recipients[0]
	assert.Equal(t, entity.RoleSigner, rec.Role)
	assert.Equal(t, 1, rec.SigningOrder)
	assert.Empty(t, rec.Email)
	assert.False(t, r.IsComplete())
	assert.False(t, r.CanRemove())
}

func TestAddAssignsSequentialSigningOrder(t *testing.T) {
	r := NewRoster()
	second := r.Add()
	third := r.Add()

	assert.Equal(t, 2, second.SigningOrder)
	assert.Equal(t, 3, third.SigningOrder)
	assert.True(t, r.CanRemove())
}

func TestUpdateFields(t *testing.T) {
	r := NewRoster()
	id := r.Recipients[0].ID

	require.NoError(t, r.Update(id, "email", "ada@example.com"))
	require.NoError(t, r.Update(id, "designation", "CTO"))
	require.NoError(t, r.Update(id, "role", "Viewer"))
	require.NoError(t, r.Update(id, "signing_order", float64(4)))

	rec, ok := r.Get(id)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", rec.Email)
	assert.Equal(t, "CTO", rec.Designation)
	assert.Equal(t, entity.RoleViewer, rec.Role)
	assert.Equal(t, 4, rec.SigningOrder)
}

func TestUpdateRejectsBadInput(t *testing.T) {
	r := NewRoster()
	id := r.Recipients[0].ID

	assert.ErrorIs(t, r.Update("missing", "email", "x@y.z"), entity.ErrValidation)
	assert.ErrorIs(t, r.Update(id, "role", "Admin"), entity.ErrValidation)
	assert.ErrorIs(t, r.Update(id, "signing_order", 0), entity.ErrValidation)
	assert.ErrorIs(t, r.Update(id, "signing_order", "first"), entity.ErrValidation)
	assert.ErrorIs(t, r.Update(id, "email", 42), entity.ErrValidation)
	assert.ErrorIs(t, r.Update(id, "nickname", "ada"), entity.ErrValidation)
}

func TestIsCompleteRequiresEveryRecipient(t *testing.T) {
	r := NewRoster()
	first := r.Recipients[0].ID
	fill(t, r, first, "ada@example.com")
	assert.True(t, r.IsComplete())

	// A second, blank recipient breaks completeness again.
	second := r.Add()
	assert.False(t, r.IsComplete())

	fill(t, r, second.ID, "not-an-email")
	assert.False(t, r.IsComplete())

	require.NoError(t, r.Update(second.ID, "email", "grace@example.com"))
	assert.True(t, r.IsComplete())
}

func TestValidEmail(t *testing.T) {
	cases := map[string]bool{
		"ada@example.com":     true,
		"a.b+c@sub.domain.io": true,
		"":                    false,
		"ada":                 false,
		"ada@":                false,
		"@example.com":        false,
		"ada@example.":        false,
		"ada @example.com":    false,
	}
	for input, want := range cases {
		assert.Equal(t, want, ValidEmail(input), "email %q", input)
	}
}

func TestRemoveAndIndexOf(t *testing.T) {
	r := NewRoster()
	first := r.Recipients[0].ID
	second := r.Add()

	assert.Equal(t, 0, r.IndexOf(first))
	assert.Equal(t, 1, r.IndexOf(second.ID))
	assert.Equal(t, -1, r.IndexOf("missing"))

	assert.True(t, r.Remove(first))
	assert.False(t, r.Remove(first))
	assert.Equal(t, 0, r.IndexOf(second.ID))
}

func TestByRole(t *testing.T) {
	r := NewRoster()
	second := r.Add()
	third := r.Add()
	require.NoError(t, r.Update(second.ID, "role", "CC"))
	require.NoError(t, r.Update(third.ID, "role", "Viewer"))

	assert.Len(t, r.ByRole(entity.RoleSigner), 1)
	assert.Len(t, r.ByRole(entity.RoleCC), 1)
	assert.Len(t, r.ByRole(entity.RoleViewer), 1)
}
