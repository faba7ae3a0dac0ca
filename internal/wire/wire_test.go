package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseExtractsCoreFields(t *testing.T) {
	req, err := Parse([]byte(`{"operation":"user_login","request_id":"r1","username":"alice","password":"x"}`))
	require.NoError(t, err)
	require.Equal(t, "user_login", req.Operation)
	require.Equal(t, "r1", req.RequestID)
	require.Equal(t, "alice", req.Username)
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	require.Error(t, err)
}

func TestSuccessAndErrorResponses(t *testing.T) {
	s := Success("r1", map[string]any{"ok": true})
	require.Equal(t, StatusSuccess, s.Status)
	require.Empty(t, s.ErrorMessage)

	e := Error("r1", "boom", 5)
	require.Equal(t, StatusError, e.Status)
	require.Equal(t, "boom", e.ErrorMessage)
	require.Equal(t, 5, e.ErrorCode)
}

func TestEncodeOmitsEmptyFields(t *testing.T) {
	out, err := Encode(Success("r1", nil))
	require.NoError(t, err)
	require.NotContains(t, string(out), "error_message")
	require.Contains(t, string(out), `"status":"success"`)
}
