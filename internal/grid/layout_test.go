package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactsearch/internal/domain"
)

func TestDefaultLayoutFields(t *testing.T) {
	l := DefaultLayout()
	assert.Equal(t, []string{
		domain.FieldName, domain.FieldEmail, domain.FieldMobilePhone,
		domain.FieldBillingCity, domain.FieldBillingState,
	}, l.FieldNames())

	names := []string{}
	for _, a := range l.Actions() {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{ActionView, ActionEdit, ActionDelete}, names)
}

func TestLayoutIsImmutable(t *testing.T) {
	cols := []Column{{Label: "Name", FieldName: domain.FieldName}}
	l := NewLayout(cols, nil)
	cols[0].Label = "mutated"

	got := l.Columns()
	got[0].FieldName = "mutated"

	require.Len(t, l.Columns(), 1)
	assert.Equal(t, "Name", l.Columns()[0].Label)
	assert.Equal(t, domain.FieldName, l.Columns()[0].FieldName)
}

func TestActionForKey(t *testing.T) {
	l := DefaultLayout()
	a, ok := l.ActionForKey("d")
	require.True(t, ok)
	assert.Equal(t, ActionDelete, a.Name)

	_, ok = l.ActionForKey("z")
	assert.False(t, ok)
}
