package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_test(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("TEST_DATABASE_NAME", "classease_test")
	t.Setenv("TEST_PREFSFILE", "/tmp/prefs.yaml")

	conf := NewConfig()
	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.Equal(t, "memory", conf.Database.Engine)
	assert.Equal(t, "classease_test", conf.Database.Name)
	assert.Equal(t, "localhost:5432", conf.Database.Address())
	assert.Equal(t, "/tmp/prefs.yaml", conf.PrefsFile)
}

func TestNewConfig_dev(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("DEV_DATABASE_PORT", "6543")

	conf := NewConfig()
	assert.Equal(t, "DEV", conf.Env)
	assert.False(t, conf.TestMode)
	assert.Equal(t, "postgres", conf.Database.Engine)
	assert.Equal(t, 6543, conf.Database.Port)
}

func TestFieldErrors(t *testing.T) {
	type input struct {
		Name string `json:"name" validate:"notblank"`
		Age  string `json:"age" validate:"omitempty,digits"`
	}
	fields, ok := FieldErrors(Validate.Struct(input{Name: " ", Age: "1a"}))
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"name": "this field cannot be blank", "age": "age must contain digits only"}, fields)

	fields, ok = FieldErrors(NewValidationError(nil, FieldError{Field: "id", Error: "bad"}))
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"id": "bad"}, fields)
	assert.Equal(t, "invalid input", NewValidationError(nil).Error())

	_, ok = FieldErrors(assert.AnError)
	assert.False(t, ok)
}
