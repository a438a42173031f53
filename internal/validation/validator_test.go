package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Role     string `json:"role" validate:"oneof=admin user"`
	Email    string `json:"email" validate:"omitempty,email"`
	Progress int    `json:"progress" validate:"min=0,max=100"`
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{Role: "owner", Email: "nope", Progress: 101})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalid))

	var verr *Error
	require.True(t, errors.As(err, &verr))
	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "role must be one of: admin user", fields["role"])
	assert.Equal(t, "email must be a valid email", fields["email"])
	assert.Equal(t, "progress must be at most 100", fields["progress"])
}

func TestStruct_Valid(t *testing.T) {
	require.NoError(t, Struct(sample{Role: "admin", Progress: 0}))
}

func TestVar(t *testing.T) {
	assert.Nil(t, Var("status", "pending", "oneof=pending completed"))

	verr := Var("status", "done", "oneof=pending completed")
	require.NotNil(t, verr)
	assert.Equal(t, "status must be one of: pending completed", verr.Error())
}

func TestMissingAndMerge(t *testing.T) {
	assert.NoError(t, Merge(nil, nil))

	err := Merge(Missing("name", "start_date"), nil, New("progress", "progress must be at most %d", 100))
	require.Error(t, err)
	assert.Equal(t, "name is required; start_date is required; progress must be at most 100", err.Error())
	assert.ErrorIs(t, err, ErrInvalid)
}

type yamlSample struct {
	Priority string `yaml:"priority" validate:"oneof=low medium high"`
}

func TestStruct_FallsBackToYAMLNames(t *testing.T) {
	err := Struct(yamlSample{Priority: "urgent"})
	require.Error(t, err)
	assert.Equal(t, "priority must be one of: low medium high", err.Error())
}
