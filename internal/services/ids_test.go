package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIDShape(t *testing.T) {
	id := NewID("job")

	parts := strings.SplitN(id, "-", 3)
	assert.Len(t, parts, 3)
	assert.Equal(t, "job", parts[0])
	assert.NotEmpty(t, parts[1])
	assert.NotEmpty(t, parts[2])
}
