package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	v, c := Version, Commit
	t.Cleanup(func() { Version, Commit = v, c })

	Version, Commit = "v1.2.0", ""
	assert.Equal(t, "v1.2.0 ("+Go+")", String())

	Commit = "abc123"
	assert.Equal(t, "v1.2.0-abc123 ("+Go+")", String())
	assert.Equal(t, "abc123", Info()["commit"])
}
