package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndentDiff(t *testing.T) {
	assert.Equal(t, "", IndentDiff("", "  "))
	assert.Equal(t, "  a\n  b\n", IndentDiff("a\n\nb\n", "  "))
}
