package mobkp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const duplicatedInstance = "2 2\n5\n1 2 3\n4 5 6\n4\n5 6\n2 3\n5 6\n5 6\n"

func TestDuplicates(t *testing.T) {
	got := Duplicates([][]int64{{1, 2}, {3, 4}, {1, 2}, {3, 4}, {1, 2}, {5, 6}})
	assert.Equal(t, [][]int64{{1, 2}, {3, 4}}, got)
	assert.Empty(t, Duplicates([][]int64{{1, 2}, {2, 1}}))
}

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.in")
	require.NoError(t, os.WriteFile(path, []byte(duplicatedInstance), 0o644))

	rep, fixed, err := CheckFile(path, false)
	require.NoError(t, err)
	require.NotNil(t, rep)
	assert.False(t, fixed)
	assert.Equal(t, 4, rep.Claimed)
	assert.Equal(t, 2, rep.Unique)
	assert.Equal(t, [][]int64{{5, 6}}, rep.Duplicates)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, duplicatedInstance, string(b), "check without modify must not touch the file")

	rep, fixed, err = CheckFile(path, true)
	require.NoError(t, err)
	require.NotNil(t, rep)
	assert.True(t, fixed)
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2 2\n5\n1 2 3\n4 5 6\n2\n5 6\n2 3\n", string(b))

	rep, _, err = CheckFile(path, true)
	require.NoError(t, err)
	assert.Nil(t, rep)
}

func TestCheckFileClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.in")
	require.NoError(t, WriteInstanceFile(path, sampleProblem(), sampleSolutions()))
	rep, fixed, err := CheckFile(path, true)
	require.NoError(t, err)
	assert.Nil(t, rep)
	assert.False(t, fixed)
}

func TestValidateTree(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("random/2D/a.in", duplicatedInstance)
	write("random/2D/b.in", sampleEncoding)
	write("neg_corr/2D/c.in", "garbage\n")
	write("neg_corr/2D/e.in", "4611686018427387904 3\n10\n")
	write("neg_corr/2D/notes.txt", "ignored")
	write("pos_corr/3D/d.in", duplicatedInstance)
	write("stray.in", duplicatedInstance)

	stats, err := ValidateTree(root, false, zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.Equal(t, ValidationStats{TotalFiles: 5, FilesWithDuplicates: 2, Errors: 2}, *stats)

	stats, err = ValidateTree(root, true, zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.Equal(t, ValidationStats{TotalFiles: 5, FilesWithDuplicates: 2, FilesFixed: 2, Errors: 2}, *stats)

	stats, err = ValidateTree(root, false, zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.Zero(t, stats.FilesWithDuplicates)
}

func TestValidateTreeMissingDir(t *testing.T) {
	_, err := ValidateTree(filepath.Join(t.TempDir(), "absent"), false, zap.NewNop().Sugar())
	assert.ErrorIs(t, err, ErrIO)
}
