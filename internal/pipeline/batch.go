package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pthm/squares/internal/source"
)

// Options configures Run.
type Options struct {
	// Concurrency bounds the number of files processed at once. Zero means
	// GOMAXPROCS.
	Concurrency int

	// Dimensions is the dimension count for documents that do not declare
	// one in their frontmatter.
	Dimensions int

	// OnProgress, if set, is called after each file. Calls are serialised.
	OnProgress func(done, total int, r Result)
}

// Run processes every path concurrently. Results are returned in input
// order; a file that fails carries its error in its Result. Run stops
// early only when ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(paths))
	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := p.ProcessFile(path, opts.Dimensions)
			results[i] = res

			mu.Lock()
			done++
			if opts.OnProgress != nil {
				opts.OnProgress(done, len(paths), res)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	p.logger.Debug("batch complete",
		zap.Int("files", len(paths)),
		zap.Int("workers", limit))
	return results, nil
}

// Collect expands paths into the list of assessment files to process.
// Directories are walked recursively and only files with a supported
// extension are kept from them; files named explicitly are always kept.
func Collect(paths []string) ([]string, error) {
	var out []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && len(d.Name()) > 1 && d.Name()[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if source.Supported(path) {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
