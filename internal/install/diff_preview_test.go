package install

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewTokens(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.appDir(), "configurations", "local.ini")
	original := "base=@BASE_DIR@\ndb=@DB1_NAME@\nkeep=@NOT_AN_ANSWER@\n"
	writeFile(t, path, original)
	inst := f.installer(t, "")

	previews, err := inst.PreviewTokens(f.app(), 0)
	require.NoError(t, err)
	require.Len(t, previews, 1)

	p := previews[0]
	assert.Equal(t, path, p.Path)
	assert.False(t, p.Truncated)
	assert.Contains(t, p.UnifiedDiff, "-base=@BASE_DIR@")
	assert.Contains(t, p.UnifiedDiff, "+base="+f.baseDir)
	assert.Contains(t, p.UnifiedDiff, "+db=app")
	assert.NotContains(t, p.UnifiedDiff, "+keep=")
	assert.Equal(t, []string{"@NOT_AN_ANSWER@"}, p.Unresolved)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
	assert.Empty(t, f.sys.mutations)
}

func TestPreviewTokensSkipsFilesWithoutTokens(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.appDir(), "configurations", "local.ini"), "static=1\n")
	inst := f.installer(t, "")

	previews, err := inst.PreviewTokens(f.app(), 0)
	require.NoError(t, err)
	assert.Empty(t, previews)
}

func TestPreviewTokensTruncates(t *testing.T) {
	f := newFixture(t)
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("line=@BASE_DIR@\n")
	}
	writeFile(t, filepath.Join(f.appDir(), "configurations", "local.ini"), b.String())
	inst := f.installer(t, "")

	previews, err := inst.PreviewTokens(f.app(), 5)
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.True(t, previews[0].Truncated)
	lines := strings.Split(strings.TrimRight(previews[0].UnifiedDiff, "\n"), "\n")
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[5], "truncated to 5 lines")
}

func TestPreviewTokensMissingFile(t *testing.T) {
	f := newFixture(t)
	inst := f.installer(t, "")

	_, err := inst.PreviewTokens(f.app(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local.ini")
}

func TestRenderTruncatedUnifiedDiffNoChange(t *testing.T) {
	rendered, truncated := renderTruncatedUnifiedDiff("a", "b", "same\n", "same\n", 10)
	assert.Empty(t, rendered)
	assert.False(t, truncated)
}
