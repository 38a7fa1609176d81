package bench

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
)

const (
	// SummaryFile is the aggregate results file written by the benchmark
	// runner once all participant counts have finished.
	SummaryFile = "benchmark_summary.json"

	// RunFilePattern matches the per-run result files.
	RunFilePattern = "benchmark_N*.json"
)

var (
	// ErrMalformed is returned when a results file is not valid JSON.
	ErrMalformed = errors.New("malformed benchmark file")

	// ErrInvalidRecord is returned when a record is missing a field or
	// holds a value outside its allowed range.
	ErrInvalidRecord = errors.New("invalid benchmark record")

	// ErrNotDir is returned when the results path is not a directory.
	ErrNotDir = errors.New("not a directory")
)

// SourceKind identifies where records are read from.
type SourceKind int

const (
	// SourceSummary reads a single JSON array from SummaryFile.
	SourceSummary SourceKind = iota
	// SourceRunFiles reads one JSON object per file matching RunFilePattern.
	SourceRunFiles
)

func (k SourceKind) String() string {
	switch k {
	case SourceSummary:
		return "summary"
	case SourceRunFiles:
		return "run-files"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// Source is a resolved location of benchmark records.
type Source struct {
	Kind  SourceKind
	Paths []string
}

// Resolve picks the record source for dir. The summary file wins when it
// exists; otherwise the per-run files are used in filename order. A
// directory with neither yields a run-files source with no paths.
func Resolve(dir string) (Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return Source{}, fmt.Errorf("stat results dir: %w", err)
	}

	if !info.IsDir() {
		return Source{}, fmt.Errorf("%w: %s", ErrNotDir, dir)
	}

	summary := filepath.Join(dir, SummaryFile)
	if _, err := os.Stat(summary); err == nil {
		return Source{Kind: SourceSummary, Paths: []string{summary}}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Source{}, fmt.Errorf("stat %s: %w", summary, err)
	}

	// Match names only so that glob characters in dir stay literal.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Source{}, fmt.Errorf("read results dir: %w", err)
	}

	var paths []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ok, err := filepath.Match(RunFilePattern, e.Name())
		if err != nil {
			return Source{}, fmt.Errorf("match run files: %w", err)
		}

		if ok {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}

	slices.Sort(paths)

	return Source{Kind: SourceRunFiles, Paths: paths}, nil
}

// Load reads every record from the source. Any decode or validation
// failure aborts the load.
func (s Source) Load() (Set, error) {
	switch s.Kind {
	case SourceSummary:
		if len(s.Paths) != 1 {
			return nil, fmt.Errorf("summary source needs one path, got %d",
				len(s.Paths))
		}

		return loadSummary(s.Paths[0])
	case SourceRunFiles:
		records := make(Set, 0, len(s.Paths))

		for _, path := range s.Paths {
			r, err := loadRunFile(path)
			if err != nil {
				return nil, err
			}

			records = append(records, r)
		}

		return records, nil
	default:
		return nil, fmt.Errorf("unknown source kind %s", s.Kind)
	}
}

// Load resolves the record source for dir and reads it. An empty set is
// returned, without error, when dir holds no benchmark files.
func Load(dir string) (Set, error) {
	src, err := Resolve(dir)
	if err != nil {
		return nil, err
	}

	return src.Load()
}

func loadSummary(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var wires []wireRecord
	if err := decode(f, &wires); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrMalformed, path, err)
	}

	records := make(Set, 0, len(wires))

	for i, w := range wires {
		r, err := w.record()
		if err != nil {
			return nil, fmt.Errorf("%s record %d: %w", path, i, err)
		}

		records = append(records, r)
	}

	return records, nil
}

func loadRunFile(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var w wireRecord
	if err := decode(f, &w); err != nil {
		return Record{}, fmt.Errorf("%w %s: %w", ErrMalformed, path, err)
	}

	r, err := w.record()
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}

	return r, nil
}

func decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("decode JSON: trailing data after value")
	}

	return nil
}
