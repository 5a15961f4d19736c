package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcgov/nr-repository-composer/internal/catalog"
)

func TestLinePrompter(t *testing.T) {
	tests := []struct {
		name  string
		q     Question
		input string
		want  any
	}{
		{"input value", Question{Spec: input("a")}, "hello\n", "hello"},
		{"input default", Question{Spec: input("a"), Default: "dflt"}, "\n", "dflt"},
		{"input no default", Question{Spec: input("a")}, "\n", ""},
		{"input without trailing newline", Question{Spec: input("a")}, "last", "last"},
		{"confirm yes", Question{Spec: Spec{Name: "c", Type: Confirm}}, "y\n", true},
		{"confirm default true", Question{Spec: Spec{Name: "c", Type: Confirm}, Default: true}, "\n", true},
		{"confirm retry", Question{Spec: Spec{Name: "c", Type: Confirm}}, "maybe\nno\n", false},
		{"select by value", Question{Spec: NodeVersion}, "22\n", "22"},
		{"select by index", Question{Spec: JavaPattern}, "2\n", "Tomcat"},
		{"select default", Question{Spec: NodeVersion, Default: "24"}, "\n", "24"},
		{"select retry", Question{Spec: NodeVersion}, "18\n20\n", "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewLinePrompter(strings.NewReader(tt.input), &out)
			got, err := p.Ask(context.Background(), tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinePrompter_ShowsProblemAndDefault(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("x\n"), &out)

	_, err := p.Ask(context.Background(), Question{
		Spec:    ProjectName,
		Default: "Bad",
		Problem: errors.New("must be lowercase"),
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "! must be lowercase")
	assert.Contains(t, out.String(), "Project: [Bad]")
}

func TestLinePrompter_EOF(t *testing.T) {
	p := NewLinePrompter(strings.NewReader(""), io.Discard)
	_, err := p.Ask(context.Background(), Question{Spec: input("a")})
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestLinePrompter_WithResolve(t *testing.T) {
	specs := []Spec{
		{Name: "flag", Type: Confirm, Message: "Flag?"},
		input("b").WithWhen(Is("flag")),
	}
	p := NewLinePrompter(strings.NewReader("y\nvalue\n"), io.Discard)

	got, err := Resolve(context.Background(), specs, catalog.Answers{}, Policy{}, p)
	require.NoError(t, err)
	assert.Equal(t, catalog.Answers{"flag": true, "b": "value"}, got)
}
