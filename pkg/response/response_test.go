package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapSuccessBelow400(t *testing.T) {
	env := Wrap(200, Msg("ok"))

	assert.Equal(t, "OK", env.Status)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, Msg("ok"), env.Success)
	assert.Nil(t, env.Error)
}

func TestWrapErrorAt400AndAbove(t *testing.T) {
	for _, code := range []int{400, 401, 404, 500} {
		env := Wrap(code, Msg("boom"))

		assert.Nil(t, env.Success, "code %d", code)
		assert.Equal(t, Msg("boom"), env.Error, "code %d", code)
		assert.Equal(t, code, env.Code)
	}
}

func TestWrapBoundary(t *testing.T) {
	assert.NotNil(t, Wrap(399, Msg("x")).Success)
	assert.NotNil(t, Wrap(400, Msg("x")).Error)
}
