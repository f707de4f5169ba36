package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"rftidy/internal/align"
	"rftidy/internal/disabler"
	"rftidy/internal/format"
	"rftidy/internal/logx"
	"rftidy/internal/source"
)

// FormatOptions configures a formatting run.
type FormatOptions struct {
	// Check reports files that would change without writing them.
	Check bool
	// Stdout returns formatted content in the results without touching files.
	Stdout bool
	// Jobs limits concurrent workers; <= 0 means GOMAXPROCS.
	Jobs    int
	Aligner *align.Aligner
	Window  disabler.Window
	// Fingerprint identifies the settings for cache keys.
	Fingerprint string
	Cache       *Cache
	Progress    ProgressSink
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
	Stats     align.Stats
	// Pipe and Disabled explain why a file was left alone.
	Pipe     bool
	Disabled bool
	// Cached is set when the cache proved the file formatted without parsing it.
	Cached    bool
	LongLines []int
}

// FormatPaths formats provided files or directories (recursively collecting
// .robot and .resource files). When opts.Check is true, files are not modified;
// Changed indicates whether formatting would update the file contents. When
// opts.Stdout is true, formatted content is returned in the results without
// touching files on disk. Per-file failures are reported in FormatResult.Err.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Aligner == nil {
		return nil, errors.New("format: nil aligner")
	}

	files, err := CollectFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no .robot or .resource files found")
	}

	log := logx.FromContext(ctx)
	timer := logx.Start(log)
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			emit(opts.Progress, Event{File: path, Status: StatusWorking})
			res := formatSingleFile(gctx, path, opts)
			results[i] = res

			status := StatusUnchanged
			switch {
			case res.Err != nil:
				status = StatusError
			case res.Changed:
				status = StatusDone
			}
			emit(opts.Progress, Event{File: path, Status: status, Err: res.Err, Elapsed: time.Since(start)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	changed, failed := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else if r.Changed {
			changed++
		}
	}
	timer.Done("formatting finished", "files", len(files), "changed", changed, "failed", failed)
	return results, nil
}

func formatSingleFile(ctx context.Context, path string, opts FormatOptions) FormatResult {
	log := logx.FromContext(ctx).With("file", path)
	result := FormatResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}

	key := CacheKey(opts.Fingerprint, data)
	if _, hit, err := opts.Cache.Get(key); err != nil {
		log.Debug("cache read failed", "err", err)
	} else if hit {
		log.Debug("cache hit")
		result.Cached = true
		if opts.Stdout {
			result.Formatted = data
		}
		return result
	}

	fileSet := source.NewFileSet()
	content, flags := source.Normalize(data)
	sf := fileSet.Get(fileSet.Add(path, content, flags))
	res, err := format.FormatFile(sf, format.Options{Aligner: opts.Aligner, Window: opts.Window})
	if err != nil {
		result.Err = fmt.Errorf("format: %s: %w", path, err)
		return result
	}
	result.Stats = res.Stats
	result.Pipe = res.Pipe
	result.Disabled = res.Disabled
	result.LongLines = res.LongLines
	result.Changed = res.Changed

	switch {
	case res.Pipe:
		log.Debug("pipe separated format is not supported, file left unchanged")
	case res.Disabled:
		log.Debug("formatting disabled for the whole file")
	}
	if res.Stats.Dropped > 0 {
		log.Debug("statements left unaligned by ignore_line", "count", res.Stats.Dropped)
	}
	for _, line := range res.LongLines {
		log.Warn("line exceeds line_length after alignment", "line", line, "limit", opts.Aligner.Formatting().LineLength)
	}

	switch {
	case opts.Check:
		if !res.Changed {
			remember(log, opts.Cache, opts.Fingerprint, path, data)
		}
	case opts.Stdout:
		result.Formatted = res.Output
		remember(log, opts.Cache, opts.Fingerprint, path, res.Output)
	case res.Changed:
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, res.Output, mode.Perm()); err != nil {
			result.Err = err
			result.Changed = false
			return result
		}
		remember(log, opts.Cache, opts.Fingerprint, path, res.Output)
	default:
		remember(log, opts.Cache, opts.Fingerprint, path, data)
	}
	return result
}

// remember stores content as formatted; cache failures never fail the run.
func remember(log interface{ Debug(any, ...any) }, c *Cache, fingerprint, path string, content []byte) {
	if err := c.Put(CacheKey(fingerprint, content), path, len(content)); err != nil {
		log.Debug("cache write failed", "err", err)
	}
}
