package mobkp

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// StatsLogger appends one CSV row per solved instance to
// <Folder>/times<m>D.csv. Many processes may append to the same file; each
// row is written with a single write while an exclusive advisory lock on
// the file is held.
type StatsLogger struct {
	Folder string
}

func StatsFileName(m int) string {
	return fmt.Sprintf("times%dD.csv", m)
}

func (s *StatsLogger) Path(m int) string {
	return filepath.Join(s.Folder, StatsFileName(m))
}

// FormatStats renders m,n,seed,correlation,elapsedSeconds,solutionCount.
func FormatStats(st RunStats) string {
	return fmt.Sprintf("%d,%d,%d,%.4f,%.4f,%d\n",
		st.M, st.N, st.Seed, st.Correlation, st.Elapsed.Seconds(), st.Solutions)
}

func (s *StatsLogger) Append(st RunStats) (err error) {
	if err := os.MkdirAll(s.Folder, 0o755); err != nil {
		return ioFailure("create stats folder", err)
	}
	path := s.Path(st.M)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return ioFailure("open stats file", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			err = multierr.Append(err, ioFailure("close stats file", cerr))
		}
	}()

	if err := lockFile(file); err != nil {
		return ioFailure("lock "+path, err)
	}
	defer func() {
		if uerr := unlockFile(file); uerr != nil {
			err = multierr.Append(err, ioFailure("unlock "+path, uerr))
		}
	}()

	if _, err := file.WriteString(FormatStats(st)); err != nil {
		return ioFailure("append "+path, err)
	}
	return nil
}
