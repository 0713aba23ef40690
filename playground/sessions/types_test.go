package sessions

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	testCases := []struct {
		raw     string
		want    Role
		wantErr bool
	}{
		{"user", RoleUser, false},
		{"ai", RoleAI, false},
		{"assistant", RoleAI, false},
		{" User ", RoleUser, false},
		{"system", "", true},
		{"", "", true},
		{"tool", "", true},
	}

	for _, tc := range testCases {
		got, err := ParseRole(tc.raw)
		if tc.wantErr {
			assert.Error(t, err, "role %q should be rejected", tc.raw)
			continue
		}

		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestMessageUnmarshal_RejectsUnknownRole(t *testing.T) {
	var msgs Transcript

	err := json.Unmarshal([]byte(`[{"role":"user","content":"hi"},{"role":"wizard","content":"x"}]`), &msgs)
	assert.Error(t, err)
}

func TestMessageUnmarshal_NormalizesAssistant(t *testing.T) {
	var msgs Transcript

	err := json.Unmarshal([]byte(`[{"role":"assistant","content":"done"}]`), &msgs)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleAI, msgs[0].Role)
}

func TestTranscript_ValueAndScan(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	original := Transcript{
		{Role: RoleUser, Content: "make a button", Timestamp: ts},
		{Role: RoleAI, Content: "here you go", Timestamp: ts},
	}

	value, err := original.Value()
	require.NoError(t, err)

	// simple protocol hands back text, extended protocol hands back bytes
	var fromString Transcript
	require.NoError(t, fromString.Scan(value))
	assert.Equal(t, original, fromString)

	var fromBytes Transcript
	require.NoError(t, fromBytes.Scan([]byte(value.(string))))
	assert.Equal(t, original, fromBytes)
}

func TestTranscript_EmptyValue(t *testing.T) {
	value, err := Transcript(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)

	var scanned Transcript
	require.NoError(t, scanned.Scan(nil))
	assert.NotNil(t, scanned)
	assert.Empty(t, scanned)
}

func TestTranscript_StampMissing(t *testing.T) {
	earlier := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	chat := Transcript{
		{Role: RoleUser, Content: "first", Timestamp: earlier},
		{Role: RoleAI, Content: "second"},
	}

	chat.StampMissing(now)

	assert.Equal(t, earlier, chat[0].Timestamp)
	assert.Equal(t, now, chat[1].Timestamp)
	assert.Equal(t, "first", chat[0].Content, "order must be preserved")
}

func TestUIState_ValueAndScan(t *testing.T) {
	value, err := UIState(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", value)

	var state UIState
	require.NoError(t, state.Scan(`{"tab":"preview","zoom":1.5}`))
	assert.Equal(t, "preview", state["tab"])
	assert.Equal(t, json.Number("1.5"), state["zoom"])

	assert.Error(t, state.Scan(42))
}

func TestUIState_LargeIntegersRoundTrip(t *testing.T) {
	const payload = `{"revision":9007199254740993,"nested":{"ids":[18446744073709551615]}}`

	var state UIState
	require.NoError(t, state.Scan(payload))
	assert.Equal(t, json.Number("9007199254740993"), state["revision"])

	value, err := state.Value()
	require.NoError(t, err)
	assert.JSONEq(t, payload, value.(string))

	var req UpdateSessionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"ui_state":`+payload+`}`), &req))
	encoded, err := json.Marshal(req.UIState)
	require.NoError(t, err)
	assert.Equal(t, `{"nested":{"ids":[18446744073709551615]},"revision":9007199254740993}`, string(encoded))
}

func TestUIState_NullLeavesUnset(t *testing.T) {
	var req UpdateSessionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"ui_state":null}`), &req))

	assert.Nil(t, req.UIState)
	assert.True(t, req.IsEmpty())
}

func TestUIState_RejectsNonObject(t *testing.T) {
	var state UIState
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &state))
}

func TestUpdateSessionRequest_IsEmpty(t *testing.T) {
	assert.True(t, UpdateSessionRequest{}.IsEmpty())
	assert.False(t, UpdateSessionRequest{Code: &Code{}}.IsEmpty())
	assert.False(t, UpdateSessionRequest{Chat: Transcript{}}.IsEmpty())
}

func TestCode_IsEmpty(t *testing.T) {
	assert.True(t, Code{}.IsEmpty())
	assert.False(t, Code{CSS: ".component-container{}"}.IsEmpty())
}
