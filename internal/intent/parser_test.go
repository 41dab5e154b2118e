package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	raw := `Sure, I'll remind you!REMINDER_JSON:{"task":"call mom","hour":17,"minute":0}`

	display, req := Parse(raw)

	assert.Equal(t, "Sure, I'll remind you!", display)
	require.NotNil(t, req)
	assert.Equal(t, "call mom", req.Task)
	assert.Equal(t, 17, *req.Hour)
	assert.Equal(t, 0, *req.Minute)
}

func TestParseNoMarker(t *testing.T) {
	raw := "Just a friendly chat reply."

	display, req := Parse(raw)

	assert.Equal(t, raw, display)
	assert.Nil(t, req)
}

func TestParseTrimsDisplayText(t *testing.T) {
	raw := "Done! I'll ping you.\n\nREMINDER_JSON:{\"task\":\"stretch\",\"hour\":9,\"minute\":30}"

	display, req := Parse(raw)

	assert.Equal(t, "Done! I'll ping you.", display)
	require.NotNil(t, req)
	assert.Equal(t, "stretch", req.Task)
}

func TestParseIgnoresTrailingText(t *testing.T) {
	raw := `Got it.REMINDER_JSON:{"task":"tea","hour":16,"minute":5} some trailing chatter`

	display, req := Parse(raw)

	assert.Equal(t, "Got it.", display)
	require.NotNil(t, req)
	assert.Equal(t, "tea", req.Task)
	assert.Equal(t, 16, *req.Hour)
	assert.Equal(t, 5, *req.Minute)
}

func TestParseBraceInsideTaskString(t *testing.T) {
	raw := `Ok!REMINDER_JSON:{"task":"review {draft}","hour":10,"minute":0}`

	display, req := Parse(raw)

	assert.Equal(t, "Ok!", display)
	require.NotNil(t, req)
	assert.Equal(t, "review {draft}", req.Task)
}

func TestParseUnterminatedPayload(t *testing.T) {
	raw := `I'll remind you.REMINDER_JSON:{"task":"x"`

	display, req := Parse(raw)

	assert.Equal(t, raw, display, "malformed payload must return the original untrimmed text")
	assert.Nil(t, req)
}

func TestParseMissingFields(t *testing.T) {
	raw := `Sure.REMINDER_JSON:{"task":"x"}`

	display, req := Parse(raw)

	assert.Equal(t, raw, display)
	assert.Nil(t, req)
}

func TestParseInvalidJSON(t *testing.T) {
	raw := `Sure.REMINDER_JSON:{task: call mom}`

	display, req := Parse(raw)

	assert.Equal(t, raw, display)
	assert.Nil(t, req)
}

func TestParseMarkerWithoutObject(t *testing.T) {
	raw := `Sure.REMINDER_JSON: I forgot the payload`

	display, req := Parse(raw)

	assert.Equal(t, raw, display)
	assert.Nil(t, req)
}

func TestParseOutOfRange(t *testing.T) {
	cases := []string{
		`Ok.REMINDER_JSON:{"task":"x","hour":24,"minute":0}`,
		`Ok.REMINDER_JSON:{"task":"x","hour":-1,"minute":0}`,
		`Ok.REMINDER_JSON:{"task":"x","hour":8,"minute":60}`,
		`Ok.REMINDER_JSON:{"task":"","hour":8,"minute":0}`,
	}

	for _, raw := range cases {
		display, req := Parse(raw)
		assert.Equal(t, raw, display, raw)
		assert.Nil(t, req, raw)
	}
}

func TestParseZeroHourIsValid(t *testing.T) {
	raw := `Midnight it is.REMINDER_JSON:{"task":"sleep","hour":0,"minute":0}`

	display, req := Parse(raw)

	assert.Equal(t, "Midnight it is.", display)
	require.NotNil(t, req)
	assert.Equal(t, 0, *req.Hour)
	assert.Equal(t, 0, *req.Minute)
}
