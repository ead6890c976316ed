// Package archive enumerates the class entries of a jar and decodes them
// into class records.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	charmlog "github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/jarscn/internal/analyzer"
	"github.com/ludo-technologies/jarscn/internal/logging"
)

// DefaultIncludePattern selects every class file in the archive
const DefaultIncludePattern = "**/*.class"

// Options controls which entries are decoded and how
type Options struct {
	IncludePatterns []string
	ExcludePatterns []string
	Workers         int
}

// DefaultOptions returns options that decode every class entry using one
// worker per CPU
func DefaultOptions() *Options {
	return &Options{
		IncludePatterns: []string{DefaultIncludePattern},
		ExcludePatterns: []string{},
		Workers:         runtime.NumCPU(),
	}
}

// EntryError reports an entry that could not be read or decoded. Such
// entries are skipped; they never fail the archive as a whole.
type EntryError struct {
	Entry string
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Entry, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// Result holds the decoded records of one archive
type Result struct {
	Path string

	// Records are ordered by entry name
	Records []*analyzer.ClassRecord

	// Entries is the number of entries selected by the patterns
	Entries int

	// Skipped lists the selected entries that failed to decode
	Skipped []*EntryError
}

// ProgressFunc is called after each selected entry has been processed
type ProgressFunc func(processed, total int)

// Reader decodes jar archives
type Reader struct {
	options  *Options
	logger   *charmlog.Logger
	progress ProgressFunc
}

// NewReader creates a reader. A nil options value uses DefaultOptions and a
// nil logger uses the process-wide logger.
func NewReader(options *Options, logger *charmlog.Logger) *Reader {
	if options == nil {
		options = DefaultOptions()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Reader{options: options, logger: logger}
}

// OnProgress registers a progress callback. It may be called from several
// goroutines, but calls never overlap and processed never decreases.
func (r *Reader) OnProgress(fn ProgressFunc) {
	r.progress = fn
}

// ReadArchive opens the jar at path and decodes its class entries
func (r *Reader) ReadArchive(ctx context.Context, path string) (*Result, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer zr.Close()

	result, err := r.read(ctx, &zr.Reader)
	if err != nil {
		return nil, err
	}
	result.Path = path
	return result, nil
}

// Read decodes the class entries of an archive held in memory or another
// random-access source
func (r *Reader) Read(ctx context.Context, ra io.ReaderAt, size int64) (*Result, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return r.read(ctx, zr)
}

func (r *Reader) read(ctx context.Context, zr *zip.Reader) (*Result, error) {
	entries, err := r.selectEntries(zr.File)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("selected archive entries", "entries", len(entries), "total", len(zr.File))

	records := make([]*analyzer.ClassRecord, len(entries))
	failures := make([]*EntryError, len(entries))

	var (
		mu        sync.Mutex
		processed int
	)
	report := func() {
		if r.progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		processed++
		r.progress(processed, len(entries))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())

	for i, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := decodeEntry(entry)
			if err != nil {
				failures[i] = &EntryError{Entry: entry.Name, Err: err}
			} else {
				records[i] = rec
			}
			report()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Entries: len(entries),
		Records: make([]*analyzer.ClassRecord, 0, len(entries)),
	}
	for i := range entries {
		if failures[i] != nil {
			r.logger.Warn("skipping class entry", "entry", failures[i].Entry, "err", failures[i].Err)
			result.Skipped = append(result.Skipped, failures[i])
			continue
		}
		result.Records = append(result.Records, records[i])
	}
	return result, nil
}

// selectEntries returns the non-directory entries matching at least one
// include pattern and no exclude pattern, sorted by name
func (r *Reader) selectEntries(files []*zip.File) ([]*zip.File, error) {
	for _, p := range append(append([]string{}, r.options.IncludePatterns...), r.options.ExcludePatterns...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid entry pattern %q", p)
		}
	}

	include := r.options.IncludePatterns
	if len(include) == 0 {
		include = []string{DefaultIncludePattern}
	}

	var selected []*zip.File
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if !matchAny(include, f.Name) || matchAny(r.options.ExcludePatterns, f.Name) {
			continue
		}
		selected = append(selected, f)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Name < selected[j].Name
	})
	return selected, nil
}

func (r *Reader) workers() int {
	if r.options.Workers > 0 {
		return r.options.Workers
	}
	return runtime.NumCPU()
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

func decodeEntry(f *zip.File) (*analyzer.ClassRecord, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return analyzer.DecodeClass(data)
}
