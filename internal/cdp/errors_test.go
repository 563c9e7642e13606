package cdp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want ErrKind
	}{
		{NewUnknownUID("1_2"), KindUnknownUID},
		{NewResolutionFailure("1_2", 42), KindResolutionFailure},
		{newOptionalUnavailable("box model", errors.New("no box")), KindOptionalDataUnavailable},
		{NewConfirmationRequired("clear_cookies"), KindConfirmationRequired},
		{newProtocolError("get document", errors.New("boom")), KindProtocol},
		{errors.New("plain"), KindProtocol},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, KindOf(c.err), "error %v", c.err)
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("handling tool call: %w", NewUnknownUID("2_9"))
	assert.Equal(t, KindUnknownUID, KindOf(err))

	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "2_9", cerr.UID)
}

func TestError_IsMatchesByKind(t *testing.T) {
	err := NewUnknownUID("1_1")

	assert.True(t, errors.Is(err, NewUnknownUID("other")))
	assert.False(t, errors.Is(err, NewResolutionFailure("1_1", 5)))
}

func TestError_UnwrapKeepsCause(t *testing.T) {
	cause := errors.New("Could not compute box model")
	err := newOptionalUnavailable("box model", cause)

	assert.True(t, errors.Is(err, cause))
}

func TestErrKind_String(t *testing.T) {
	assert.Equal(t, "unknown_uid", KindUnknownUID.String())
	assert.Equal(t, "resolution_failure", KindResolutionFailure.String())
	assert.Equal(t, "optional_data_unavailable", KindOptionalDataUnavailable.String())
	assert.Equal(t, "confirmation_required", KindConfirmationRequired.String())
	assert.Equal(t, "protocol_error", KindProtocol.String())
}

func TestNewConfirmationRequired_NamesAction(t *testing.T) {
	err := NewConfirmationRequired("clear_cookies")

	assert.Contains(t, err.Error(), "clear_cookies")
	assert.Contains(t, err.Error(), "confirm=true")
}
