package roomname

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imtaco/interview-lobby/internal/errors"
	"github.com/imtaco/interview-lobby/rooms"
)

func newCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(DefaultBaseURL)
	require.NoError(t, err)
	return c
}

func TestNormalizeAcceptedForms(t *testing.T) {
	c := newCodec(t)

	cases := map[string]string{
		"myroom":                                        "myroom",
		"  myroom  ":                                    "myroom",
		"https://concretio.daily.co/myroom":             "myroom",
		"http://concretio.daily.co/myroom/":             "myroom",
		"concretio.daily.co/myroom":                     "myroom",
		"https://other-team.daily.co/myroom?t=abc":      "myroom",
		"https://concretio.daily.co/myroom#chat":        "myroom",
		"https://provider.example/myroom?x=1":           "myroom",
		"provider.example/interview_2025-03":            "interview_2025-03",
		"https://concretio.daily.co/Round-2?lang=en#av": "Round-2",
	}
	for in, want := range cases {
		got, err := c.Normalize(in)
		if assert.NoError(t, err, in) {
			assert.Equal(t, want, got, in)
		}
	}
}

func TestNormalizeRejects(t *testing.T) {
	c := newCodec(t)

	for _, in := range []string{
		"my room",
		"room!",
		"héllo",
		"https://concretio.daily.co/a/b/c",
		"room.name",
	} {
		_, err := c.Normalize(in)
		assert.True(t, errors.Is(err, rooms.ErrValidation), in)

		fe, ok := errors.As[*rooms.FlowError](err)
		require.True(t, ok, in)
		assert.Equal(t, "Invalid Room Name", fe.Title, in)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	c := newCodec(t)

	for _, in := range []string{"", "   ", "https://", "https://concretio.daily.co/"} {
		_, err := c.Normalize(in)
		fe, ok := errors.As[*rooms.FlowError](err)
		require.True(t, ok, in)
		assert.Equal(t, "Room Name Required", fe.Title, in)
	}
}

func TestNormalizeLength(t *testing.T) {
	c := newCodec(t)

	name, err := c.Normalize(strings.Repeat("a", MaxLength))
	require.NoError(t, err)
	assert.Len(t, name, MaxLength)

	_, err = c.Normalize(strings.Repeat("a", MaxLength+1))
	assert.True(t, errors.Is(err, rooms.ErrValidation))
}

func TestCanonicalURLRoundTrip(t *testing.T) {
	c := newCodec(t)

	for _, in := range []string{"myroom", "https://concretio.daily.co/abc_1?x=2", "team.daily.co/Z-9"} {
		name, err := c.Normalize(in)
		require.NoError(t, err)

		again, err := c.Normalize(c.CanonicalURL(name))
		require.NoError(t, err)
		assert.Equal(t, name, again)
	}
	assert.Equal(t, "https://concretio.daily.co/myroom", c.CanonicalURL("myroom"))
}

func TestNewCodec(t *testing.T) {
	c, err := NewCodec("https://acme.daily.co")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.daily.co/r1", c.CanonicalURL("r1"))

	c, err = NewCodec("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	_, err = NewCodec("not a url")
	assert.True(t, errors.Is(err, rooms.ErrConfiguration))
}
