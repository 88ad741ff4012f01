package mobkp

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSolutions() *SolutionSet {
	s := NewSolutionSet()
	s.Add([]int64{7, 7})
	s.Add([]int64{5, 10})
	s.Add([]int64{12, 8})
	return s
}

const sampleEncoding = `3 2
30
10 5 1
20 2 9
30 7 7
3
5 10
7 7
12 8
`

func TestEncodeInstance(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeInstance(&buf, sampleProblem(), sampleSolutions()))
	assert.Equal(t, sampleEncoding, buf.String())
}

func TestInstanceFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "3_1.in")
	require.NoError(t, WriteInstanceFile(path, sampleProblem(), sampleSolutions()))

	f, err := ReadInstanceFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleProblem(), f.Problem); diff != "" {
		t.Errorf("problem mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, f.Claimed)
	assert.Equal(t, sampleSolutions().Sorted(), f.Points)
}

func TestWriteInstanceFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.in")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("junk\n"), 100), 0o644))
	require.NoError(t, WriteInstanceFile(path, sampleProblem(), sampleSolutions()))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleEncoding, string(b))
}

func TestEmptyFront(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeInstance(&buf, sampleProblem(), NewSolutionSet()))
	assert.True(t, strings.HasSuffix(buf.String(), "30 7 7\n0\n"))

	f, err := DecodeInstance(&buf, "empty")
	require.NoError(t, err)
	assert.Zero(t, f.Claimed)
	assert.Empty(t, f.Points)
}

func TestDecodeInstanceKeepsDuplicates(t *testing.T) {
	in := "2 2\n5\n1 2 3\n4 5 6\n3\n2 3\n\n2 3\n5 6\n"
	f, err := DecodeInstance(strings.NewReader(in), "dup")
	require.NoError(t, err)
	assert.Equal(t, [][]int64{{2, 3}, {2, 3}, {5, 6}}, f.Points)
	assert.Equal(t, 2, f.Solutions().Len())
}

func TestDecodeInstanceErrors(t *testing.T) {
	for name, in := range map[string]string{
		"empty":         "",
		"header fields": "2\n5\n",
		"bad m":         "2 1\n5\n",
		"no capacity":   "2 2\n",
		"short item":    "2 2\n5\n1 2 3\n4 5\n1\n",
		"missing item":  "2 2\n5\n1 2 3\n",
		"no count":      "1 2\n5\n1 2 3\n",
		"point width":   "1 2\n5\n1 2 3\n1\n2 3 4\n",
		"point value":   "1 2\n5\n1 2 3\n1\n2 y\n",
		"huge n":        "4611686018427387904 3\n10\n",
		"huge m":        "1 9223372036854775807\n10\n",
		"overflow n":    "99999999999999999999 2\n10\n",
		"huge n short":  "1000000000000 2\n10\n1 2 3\n",
		"negative nd":   "1 2\n5\n1 2 3\n-1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeInstance(strings.NewReader(in), name)
			require.Error(t, err)
			assert.Equal(t, ErrMalformedInstance, Classify(err))
		})
	}
}

func TestReadInstanceFileMissing(t *testing.T) {
	_, err := ReadInstanceFile(filepath.Join(t.TempDir(), "absent.in"))
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
