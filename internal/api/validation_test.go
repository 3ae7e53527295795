package api

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidators(t *testing.T) {
	require.NoError(t, RegisterValidators())
	// Registration runs once; later calls report the same result.
	require.NoError(t, RegisterValidators())
}

func TestRegisterRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, registerRules(v, rules))

	type names struct {
		Items []string `validate:"uniquenames"`
	}
	assert.NoError(t, v.Struct(names{Items: []string{"rice", "beans"}}))
	assert.Error(t, v.Struct(names{Items: []string{"Rice", " rice "}}))

	err := registerRules(validator.New(), map[string]validator.Func{"": uniqueNames})
	assert.Error(t, err)
}
