package app

import (
	"context"
	"fmt"
	"time"

	"github.com/philipparndt/photomeasure/pkg/photo"
	"github.com/philipparndt/photomeasure/pkg/viewer"
	"github.com/philipparndt/photomeasure/pkg/watcher"
)

// OpenPhoto loads the photo at path and fits it into a view of the given size
func (s *Session) OpenPhoto(path string, viewWidth, viewHeight float64) (photo.Info, error) {
	info, err := photo.Load(path)
	if err != nil {
		return photo.Info{}, err
	}
	s.SetPhoto(info)
	s.SetViewport(viewer.FitPhoto(float64(info.Width), float64(info.Height), viewWidth, viewHeight))
	return info, nil
}

// WatchFile reloads the session file at path into a fresh session each time
// it changes and hands the result to onReload. It blocks until ctx is done.
func WatchFile(ctx context.Context, path string, cfg Config, debounce time.Duration, onReload func(*Session, error)) error {
	fw, err := watcher.NewFileWatcher(debounce)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()
	fw.SetLogger(Logger())

	callback := func(changedFile string) {
		s := NewSession(cfg)
		if err := s.LoadFile(changedFile); err != nil {
			onReload(nil, err)
			return
		}
		onReload(s, nil)
	}

	if err := fw.Watch([]string{path}, callback); err != nil {
		return fmt.Errorf("failed to watch files: %w", err)
	}

	Logger().Info("watching session file", "path", path)
	fw.Run(ctx)
	return nil
}
