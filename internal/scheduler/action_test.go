package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractJSON_TruncatedObjectTolerated(t *testing.T) {
	obj, err := ExtractJSON(`{"action":"speak","text":"Hello"`)
	require.NoError(t, err)
	require.Equal(t, "speak", obj["action"])
	require.Equal(t, "Hello", obj["text"])
}

func TestExtractJSON_NoBraceFound(t *testing.T) {
	_, err := ExtractJSON("I don't know what to do")
	require.ErrorIs(t, err, ErrParseError)
}

func TestExtractJSON_PreambleBeforeObject(t *testing.T) {
	obj, err := ExtractJSON("Sure, here's my move: {\"action\":\"move\",\"direction\":\"north\"}")
	require.NoError(t, err)
	require.Equal(t, "move", obj["action"])
	require.Equal(t, "north", obj["direction"])
}

func TestParseAction_TruncatedSpeakResolves(t *testing.T) {
	a, err := ParseAction(`{"action":"speak","text":"Hello"`)
	require.NoError(t, err)
	require.Equal(t, ActionSpeak, a.Kind)
	require.Equal(t, "Hello", a.Text)
}

func TestParseAction_MissingActionField(t *testing.T) {
	_, err := ParseAction(`{"text":"Hello"}`)
	require.ErrorIs(t, err, ErrParseError)
}

func TestParseAction_UnknownActionStillReturnsShape(t *testing.T) {
	a, err := ParseAction(`{"action":"dance"}`)
	require.ErrorIs(t, err, ErrUnknownAction)
	require.Equal(t, ActionKind("dance"), a.Kind)
}

func TestParseAction_DirectionLowercased(t *testing.T) {
	a, err := ParseAction(`{"action":"move","direction":"NORTH"}`)
	require.NoError(t, err)
	require.Equal(t, "north", a.Direction)
}
