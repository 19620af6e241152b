package configfile

import (
	"context"
	"sync"

	"github.com/fsnotify/fsnotify"

	"go.llib.dev/iterateur/pkg/logging"
	"go.llib.dev/iterateur/pkg/optional"
	"go.llib.dev/iterateur/pkg/provider"
	"go.llib.dev/iterateur/port/option"
)

// File is a provider for a configuration file,
// that re-reads the file whenever it is written.
// When a reload fails, the previous values are kept.
type File struct {
	path   string
	format Format
	logger *logging.Logger

	mutex  sync.RWMutex
	values *provider.MapProvider[string, string]

	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
}

// Watch loads the file, and starts watching it for changes.
// Close must be called to stop the watching.
func Watch(path string, opts ...Option) (*File, error) {
	c := option.ToConfig(opts)
	f := &File{
		path:   path,
		format: c.Format,
		logger: logging.Or(c.Logger),
	}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	f.watcher = watcher
	f.wg.Add(1)
	go f.watch()
	return f, nil
}

func (f *File) Provide(key string) optional.Optional[string] {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.values.Provide(key)
}

// Reload re-reads the file.
func (f *File) Reload() error {
	values, err := load(f.path, f.format)
	if err != nil {
		return err
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.values = provider.FromMap(values)
	return nil
}

// Close stops watching the file.
func (f *File) Close() error {
	if f.watcher == nil {
		return nil
	}
	err := f.watcher.Close()
	f.wg.Wait()
	return err
}

func (f *File) watch() {
	defer f.wg.Done()
	ctx := logging.ContextWith(context.Background(), logging.Field("path", f.path))
	for {
		select {
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				if err := f.Reload(); err != nil {
					f.logger.Warn(ctx, "configfile: reload failed", logging.ErrField(err))
					continue
				}
				f.logger.Debug(ctx, "configfile: reloaded")
			}
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			f.logger.Error(ctx, "configfile: watch error", logging.ErrField(err))
		}
	}
}
