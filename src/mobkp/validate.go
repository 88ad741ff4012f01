package mobkp

import (
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

type ValidationStats struct {
	TotalFiles          int
	FilesWithDuplicates int
	FilesFixed          int
	Errors              int
}

// FileReport describes one instance file whose listed points contain repeats.
type FileReport struct {
	Path       string
	Claimed    int
	Unique     int
	Duplicates [][]int64
}

// Duplicates returns the points listed more than once, each reported once,
// in order of their second appearance.
func Duplicates(points [][]int64) [][]int64 {
	seen := NewSolutionSet()
	reported := NewSolutionSet()
	var out [][]int64
	for _, p := range points {
		if !seen.Add(p) && reported.Add(p) {
			out = append(out, p)
		}
	}
	return out
}

// CheckFile reads path and returns a report when its point count disagrees
// with the number of distinct points, nil otherwise. With modify the file is
// rewritten without the repeats, first appearance order kept.
func CheckFile(path string, modify bool) (*FileReport, bool, error) {
	f, err := ReadInstanceFile(path)
	if err != nil {
		return nil, false, err
	}
	unique := f.Solutions()
	if unique.Len() == f.Claimed {
		return nil, false, nil
	}
	rep := &FileReport{
		Path:       path,
		Claimed:    f.Claimed,
		Unique:     unique.Len(),
		Duplicates: Duplicates(f.Points),
	}
	if !modify {
		return rep, false, nil
	}
	if err := writeInstanceFile(path, f.Problem, unique.Points()); err != nil {
		return rep, false, err
	}
	return rep, true, nil
}

func subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

// ValidateTree checks every <dir>/<type>/<m>D/*.in file. Unreadable or
// malformed files are counted and logged, never fatal.
func ValidateTree(dir string, modify bool, log *zap.SugaredLogger) (*ValidationStats, error) {
	stats := new(ValidationStats)
	types, err := subdirs(dir)
	if err != nil {
		return nil, ioFailure("read instances folder", err)
	}
	for _, typeDir := range types {
		dims, err := subdirs(typeDir)
		if err != nil {
			return nil, ioFailure("read instance type folder", err)
		}
		log.Debugw("processing instance type", "type", filepath.Base(typeDir), "folders", len(dims))
		for _, dimDir := range dims {
			files, err := filepath.Glob(filepath.Join(dimDir, "*.in"))
			if err != nil {
				return nil, err
			}
			sort.Strings(files)
			for _, path := range files {
				stats.TotalFiles++
				rep, fixed, err := CheckFile(path, modify)
				if err != nil {
					stats.Errors++
					log.Errorw("error processing instance", "file", path, "error", err)
					continue
				}
				if rep == nil {
					continue
				}
				stats.FilesWithDuplicates++
				shown := rep.Duplicates
				if len(shown) > 3 {
					shown = shown[:3]
				}
				log.Warnw("duplicate nondominated points", "file", path,
					"duplicates", rep.Claimed-rep.Unique, "examples", shown)
				if fixed {
					stats.FilesFixed++
					log.Infow("removed duplicates", "file", path)
				}
			}
			log.Debugw("validated folder", "folder", dimDir, "instances", len(files))
		}
	}
	return stats, nil
}
