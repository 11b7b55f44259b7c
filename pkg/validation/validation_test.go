package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type form struct {
	Name     string `json:"name" validate:"notblank"`
	Password string `json:"password" validate:"min=6"`
	Group    int    `json:"group_number" validate:"min=1"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(form{Name: "x", Password: "secret", Group: 1}))

	err := Struct(form{Name: "  ", Password: "abc", Group: 0})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "name is required")
		assert.Contains(t, err.Error(), "password must be at least 6")
		assert.Contains(t, err.Error(), "group_number must be at least 1")
	}
}
