package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrganisation_SelectedAdministrator(t *testing.T) {
	t.Run("no administrators", func(t *testing.T) {
		org := &Organisation{}
		_, ok := org.SelectedAdministrator()
		assert.False(t, ok)
	})

	t.Run("none selected", func(t *testing.T) {
		org := &Organisation{Administrators: []Administrator{
			{Name: "A", Email: "a@example.org"},
			{Name: "B", Email: "b@example.org"},
		}}
		_, ok := org.SelectedAdministrator()
		assert.False(t, ok)
	})

	t.Run("single selected", func(t *testing.T) {
		org := &Organisation{Administrators: []Administrator{
			{Name: "A", Email: "a@example.org"},
			{Name: "B", Email: "b@example.org", IsSelected: true},
		}}
		admin, ok := org.SelectedAdministrator()
		assert.True(t, ok)
		assert.Equal(t, "b@example.org", admin.Email)
	})

	t.Run("multiple selected normalizes first wins", func(t *testing.T) {
		org := &Organisation{Administrators: []Administrator{
			{Name: "A", Email: "a@example.org", IsSelected: true},
			{Name: "B", Email: "b@example.org", IsSelected: true},
		}}
		admin, ok := org.SelectedAdministrator()
		assert.True(t, ok)
		assert.Equal(t, "a@example.org", admin.Email)
	})
}
