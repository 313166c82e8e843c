package genai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeClient) Generate(ctx context.Context, profile ModelProfile, prompt string) (string, error) {
	f.calls++
	return f.response, f.err
}

func TestStripFences(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"plain":        {`{"a":1}`, `{"a":1}`},
		"json fence":   {"```json\n{\"a\":1}\n```", `{"a":1}`},
		"bare fence":   {"```\n{\"a\":1}\n```", `{"a":1}`},
		"whitespace":   {"  \n{\"a\":1}\n  ", `{"a":1}`},
		"fence inline": {"```json{\"a\":1}```", `{"a":1}`},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripFences(tc.in))
		})
	}
}

type payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func TestGenerateStructured_Valid(t *testing.T) {
	client := &fakeClient{response: "```json\n{\"title\":\"T\",\"body\":\"B\"}\n```"}

	out, err := GenerateStructured[payload](context.Background(), client, ProfileFast, "prompt", nil)
	require.NoError(t, err)
	assert.Equal(t, "T", out.Title)
	assert.Equal(t, "B", out.Body)
}

func TestGenerateStructured_MalformedJSON(t *testing.T) {
	client := &fakeClient{response: "Sure! Here is your document: it was a pleasure"}

	out, err := GenerateStructured[payload](context.Background(), client, ProfileFast, "prompt", nil)
	require.Error(t, err)
	assert.Nil(t, out)

	var malformed *MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Contains(t, malformed.Raw, "pleasure")
}

func TestGenerateStructured_SchemaCheckRejects(t *testing.T) {
	client := &fakeClient{response: `{"title":"","body":"B"}`}

	check := func(p *payload) error {
		if p.Title == "" {
			return errors.New("missing title")
		}
		return nil
	}

	_, err := GenerateStructured[payload](context.Background(), client, ProfileFast, "prompt", check)
	require.Error(t, err)

	var malformed *MalformedResponseError
	assert.True(t, errors.As(err, &malformed))
}

func TestGenerateStructured_ClientErrorPassesThrough(t *testing.T) {
	boom := errors.New("provider down")
	client := &fakeClient{err: boom}

	_, err := GenerateStructured[payload](context.Background(), client, ProfileCapable, "prompt", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var malformed *MalformedResponseError
	assert.False(t, errors.As(err, &malformed))
}
