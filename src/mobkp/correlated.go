package mobkp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

const DefaultGeneratorPath = "../include/generator.R"

// ExternalGenerator delegates correlated synthesis to an external program
// invoked as `Path n m correlation 0 weightFactor seed outputPath`. The
// program is trusted to write the instance; nothing is repaired here.
type ExternalGenerator struct {
	Path string
}

func (g *ExternalGenerator) path() string {
	if g.Path == "" {
		return DefaultGeneratorPath
	}
	return g.Path
}

func generatorArgs(r *Request) []string {
	return []string{
		strconv.Itoa(r.N),
		strconv.Itoa(r.M),
		strconv.FormatFloat(r.Correlation, 'g', -1, 64),
		"0",
		strconv.FormatFloat(r.WeightFactor, 'g', -1, 64),
		strconv.FormatInt(r.Seed, 10),
		r.Path(),
	}
}

func (g *ExternalGenerator) Generate(ctx context.Context, r *Request) (*RawInstance, error) {
	cmd := exec.CommandContext(ctx, g.path(), generatorArgs(r)...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s exited with status %d: %s", ErrExternalProcess, g.path(), exitErr.ExitCode(), msg)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrExternalProcess, g.path(), err)
	}

	return ReadGeneratorFile(r.Path(), r.N, r.M)
}

type tokenReader struct {
	sc   *bufio.Scanner
	path string
}

func (t *tokenReader) next(what string) (int64, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return 0, malformed(t.path, "reading %s: %v", what, err)
		}
		return 0, malformed(t.path, "unexpected end of file reading %s", what)
	}
	v, err := strconv.ParseInt(t.sc.Text(), 10, 64)
	if err != nil {
		return 0, malformed(t.path, "%s: %v", what, err)
	}
	return v, nil
}

// ParseGeneratorOutput reads the item section produced by the external
// generator: "n m", "W", then n lines of m values followed by the weight.
// The header must announce the expected n and m; nothing is allocated from
// it otherwise.
func ParseGeneratorOutput(r io.Reader, path string, n, m int) (*RawInstance, error) {
	if !shapeFits(int64(n), int64(m)) {
		return nil, fmt.Errorf("generator output: invalid expected shape n=%d m=%d", n, m)
	}
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	t := &tokenReader{sc: sc, path: path}

	gotN, err := t.next("n")
	if err != nil {
		return nil, err
	}
	gotM, err := t.next("m")
	if err != nil {
		return nil, err
	}
	if gotN != int64(n) || gotM != int64(m) {
		return nil, malformed(path, "generator wrote n=%d m=%d, requested n=%d m=%d", gotN, gotM, n, m)
	}
	data := make([]int64, RawLen(n, m))
	if data[0], err = t.next("capacity"); err != nil {
		return nil, err
	}
	for i := range n {
		off := 1 + i*(m+1)
		for j := range m {
			if data[off+j], err = t.next(fmt.Sprintf("item %d value %d", i, j)); err != nil {
				return nil, err
			}
		}
		if data[off+m], err = t.next(fmt.Sprintf("item %d weight", i)); err != nil {
			return nil, err
		}
	}
	return NewRawInstance(n, m, data)
}

func ReadGeneratorFile(path string, n, m int) (*RawInstance, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, malformed(path, "%v", err)
	}
	defer file.Close()
	return ParseGeneratorOutput(file, path, n, m)
}
