package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("resend: 401 invalid api key")
	err := Internal(cause)

	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, MsgInternal, err.Error())
	assert.NotContains(t, err.Error(), "api key")
	assert.True(t, errors.Is(err, cause))
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest(MsgSpamDetected).Code)
	assert.Equal(t, MsgSpamDetected, BadRequest(MsgSpamDetected).Message)

	rl := TooManyRequests()
	assert.Equal(t, http.StatusTooManyRequests, rl.Code)
	assert.Equal(t, "Too many requests. Please try later.", rl.Message)
}
