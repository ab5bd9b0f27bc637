package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/ghgcalc/pkg/version"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, "dev", version.GetVersion())
	assert.Equal(t, "unknown", version.GetGitCommit())
	assert.Equal(t, "unknown", version.GetBuildDate())
	assert.Equal(t, "dev (commit unknown, built unknown)", version.String())
}
