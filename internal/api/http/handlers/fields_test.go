package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

func TestDecodeExactFieldsAccepts(t *testing.T) {
	fields, err := decodeExactFields(
		[]byte(`{"username":"alice","password":"pw"}`),
		[]string{"username", "password"},
	)
	require.NoError(t, err)

	username, err := stringField(fields, "username")
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestDecodeExactFieldsRejectsExtra(t *testing.T) {
	_, err := decodeExactFields(
		[]byte(`{"username":"alice","password":"pw","role":"admin"}`),
		[]string{"username", "password"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role can not be present")
}

func TestDecodeExactFieldsNamesMissing(t *testing.T) {
	_, err := decodeExactFields(
		[]byte(`{"username":"alice"}`),
		[]string{"username", "password"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, []string{"password"}, domainErr.Details["missing"])
}

func TestDecodeExactFieldsRejectsNonJSON(t *testing.T) {
	_, err := decodeExactFields([]byte("not json"), []string{"username"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing JSON in request")
}

func TestIntFieldRejectsString(t *testing.T) {
	fields, err := decodeExactFields([]byte(`{"user_id":"7"}`), []string{"user_id"})
	require.NoError(t, err)

	_, err = intField(fields, "user_id")
	assert.Error(t, err)
}
