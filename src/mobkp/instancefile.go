package mobkp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// InstanceFile is the decoded content of a written instance+solution file.
// Points keeps the listed vectors as they appear, duplicates included.
type InstanceFile struct {
	Problem *Problem
	Claimed int
	Points  [][]int64
}

// Solutions deduplicates Points, keeping the order of first appearance.
func (f *InstanceFile) Solutions() *SolutionSet {
	s := NewSolutionSet()
	for _, p := range f.Points {
		s.Add(p)
	}
	return s
}

func writeInts(w *bufio.Writer, v []int64) {
	for i, x := range v {
		if i > 0 {
			w.WriteByte(' ')
		}
		w.WriteString(strconv.FormatInt(x, 10))
	}
	w.WriteByte('\n')
}

func writeInstance(out io.Writer, p *Problem, points [][]int64) error {
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "%d %d\n", p.N, p.M)
	fmt.Fprintf(w, "%d\n", p.Capacity)
	line := make([]int64, 0, p.M+1)
	for _, it := range p.Items {
		line = append(line[:0], it.Weight)
		line = append(line, it.Values...)
		writeInts(w, line)
	}
	fmt.Fprintf(w, "%d\n", len(points))
	for _, o := range points {
		writeInts(w, o)
	}
	return w.Flush()
}

// EncodeInstance writes p and the solutions in lexicographic order.
func EncodeInstance(out io.Writer, p *Problem, solutions *SolutionSet) error {
	return writeInstance(out, p, solutions.Sorted())
}

// WriteInstanceFile truncates path (creating its folder when missing) and
// writes p followed by the solutions.
func WriteInstanceFile(path string, p *Problem, solutions *SolutionSet) error {
	return writeInstanceFile(path, p, solutions.Sorted())
}

func writeInstanceFile(path string, p *Problem, points [][]int64) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ioFailure("create instance folder", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return ioFailure("create instance file", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			err = multierr.Append(err, ioFailure("close instance file", cerr))
		}
	}()
	if err := writeInstance(file, p, points); err != nil {
		return ioFailure("write instance file", err)
	}
	return nil
}

type lineReader struct {
	sc   *bufio.Scanner
	path string
	line int
}

func (lr *lineReader) fields(what string) ([]int64, error) {
	if !lr.sc.Scan() {
		if err := lr.sc.Err(); err != nil {
			return nil, malformed(lr.path, "reading %s: %v", what, err)
		}
		return nil, malformed(lr.path, "unexpected end of file reading %s", what)
	}
	lr.line++
	toks := strings.Fields(lr.sc.Text())
	out := make([]int64, len(toks))
	for i, tok := range toks {
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, malformed(lr.path, "line %d (%s): %v", lr.line, what, err)
		}
		out[i] = v
	}
	return out, nil
}

func (lr *lineReader) exactly(what string, count int) ([]int64, error) {
	v, err := lr.fields(what)
	if err != nil {
		return nil, err
	}
	if len(v) != count {
		return nil, malformed(lr.path, "line %d (%s): %d fields, want %d", lr.line, what, len(v), count)
	}
	return v, nil
}

func (f *InstanceFile) parseHeader(lr *lineReader) error {
	head, err := lr.exactly("header", 2)
	if err != nil {
		return err
	}
	if !shapeFits(head[0], head[1]) {
		return malformed(lr.path, "invalid header n=%d m=%d", head[0], head[1])
	}
	capLine, err := lr.exactly("capacity", 1)
	if err != nil {
		return err
	}
	f.Problem = &Problem{N: int(head[0]), M: int(head[1]), Capacity: capLine[0]}
	return nil
}

func (f *InstanceFile) parseItems(lr *lineReader) error {
	p := f.Problem
	// the header is untrusted: grow with the lines actually present
	p.Items = make([]Item, 0, min(p.N, 4096))
	for i := range p.N {
		v, err := lr.exactly(fmt.Sprintf("item %d", i), p.M+1)
		if err != nil {
			return err
		}
		p.Items = append(p.Items, Item{Weight: v[0], Values: v[1:]})
	}
	return nil
}

func (f *InstanceFile) parsePoints(lr *lineReader) error {
	nd, err := lr.exactly("solution count", 1)
	if err != nil {
		return err
	}
	if nd[0] < 0 {
		return malformed(lr.path, "line %d: negative solution count %d", lr.line, nd[0])
	}
	f.Claimed = int(nd[0])
	for lr.sc.Scan() {
		lr.line++
		if strings.TrimSpace(lr.sc.Text()) == "" {
			continue
		}
		toks := strings.Fields(lr.sc.Text())
		if len(toks) != f.Problem.M {
			return malformed(lr.path, "line %d (point): %d fields, want %d", lr.line, len(toks), f.Problem.M)
		}
		o := make([]int64, len(toks))
		for i, tok := range toks {
			if o[i], err = strconv.ParseInt(tok, 10, 64); err != nil {
				return malformed(lr.path, "line %d (point): %v", lr.line, err)
			}
		}
		f.Points = append(f.Points, o)
	}
	if err := lr.sc.Err(); err != nil {
		return malformed(lr.path, "reading points: %v", err)
	}
	return nil
}

func errorCoalesce(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// DecodeInstance parses the instance+solution grammar. Item lines carry the
// weight first, then the M values.
func DecodeInstance(r io.Reader, path string) (*InstanceFile, error) {
	f := new(InstanceFile)
	lr := &lineReader{sc: bufio.NewScanner(r), path: path}
	lr.sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	err := errorCoalesce(
		func() error { return f.parseHeader(lr) },
		func() error { return f.parseItems(lr) },
		func() error { return f.parsePoints(lr) },
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func ReadInstanceFile(path string) (*InstanceFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ioFailure("open instance file", err)
	}
	defer file.Close()
	return DecodeInstance(file, path)
}
