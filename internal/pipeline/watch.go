package pipeline

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/pthm/squares/internal/source"
)

// debounce is how long a file must stay quiet before it is processed, so
// that an editor's burst of writes yields one result.
const debounce = 200 * time.Millisecond

// Watch processes assessment files in dir as they are created or written
// and passes each result to fn. It blocks until ctx is done.
func (p *Pipeline) Watch(ctx context.Context, dir string, dimensions int, fn func(Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}
	p.logger.Info("watching", zap.String("dir", dir))

	ticker := time.NewTicker(debounce / 2)
	defer ticker.Stop()

	pending := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 || !source.Supported(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.logger.Warn("watch error", zap.Error(err))

		case now := <-ticker.C:
			for path, at := range pending {
				if now.Sub(at) < debounce {
					continue
				}
				delete(pending, path)
				p.logger.Debug("processing", zap.String("source", path))
				fn(p.ProcessFile(path, dimensions))
			}
		}
	}
}
