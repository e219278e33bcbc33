package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetKeepsStampedValues(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldVersion, oldCommit, oldDate })

	Version, Commit, Date = "v1.2.3", "abc123", "2024-05-01"
	info := Get()
	assert.Equal(t, Info{Version: "v1.2.3", Commit: "abc123", Date: "2024-05-01"}, info)
	assert.Equal(t, "prismatic version v1.2.3\n  commit: abc123\n  built:  2024-05-01\n", info.String())
}
