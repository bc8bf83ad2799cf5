package inventory

import (
	"errors"
	"testing"

	"github.com/hackinpovo/inventory/internal/client/models"
	"github.com/hackinpovo/inventory/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRegistry_ValidateNew(t *testing.T) {
	r := NewTagRegistry(models.Tag{ID: "1", Name: "cable"}, models.Tag{ID: "2", Name: " Tools "})

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"case-insensitive duplicate", "Cable", true},
		{"trimmed duplicate", "  CABLE ", true},
		{"duplicate of padded name", "tools", true},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"new name", "Screws", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.ValidateNew(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrValidation))

			var ve *common.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.NotEmpty(t, ve.Detail())
		})
	}
}

func TestTagRegistry_AddRemoveFind(t *testing.T) {
	r := NewTagRegistry()
	r1 := r.Add(models.Tag{ID: "1", Name: "a"})
	r2 := r1.Add(models.Tag{ID: "2", Name: "b"})

	assert.Equal(t, 0, r.Len())
	assert.Equal(t, []models.Tag{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}, r2.All())

	got, ok := r2.Find("2")
	require.True(t, ok)
	assert.Equal(t, "b", got.Name)

	r3 := r2.Remove("1").Remove("missing")
	assert.Equal(t, []models.Tag{{ID: "2", Name: "b"}}, r3.All())
	_, ok = r3.Find("1")
	assert.False(t, ok)
	assert.Equal(t, 2, r2.Len())
}

func TestTagRegistry_AllIsACopy(t *testing.T) {
	r := NewTagRegistry(models.Tag{ID: "1", Name: "a"})
	all := r.All()
	all[0].Name = "changed"

	got, _ := r.Find("1")
	assert.Equal(t, "a", got.Name)
}
