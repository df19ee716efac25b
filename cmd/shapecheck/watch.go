package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const watchDebounce = 100 * time.Millisecond

// watch runs check once and again whenever the schema or a document changes,
// until ctx is done. Parent directories are watched so editors that replace
// files on save are still seen.
func (a *app) watch(ctx context.Context, schemaPath string, docs []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	tracked := make(map[string]bool, len(docs)+1)
	dirs := make(map[string]bool)
	for _, p := range append([]string{schemaPath}, docs...) {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		tracked[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return err
		}
	}

	run := func() {
		if err := a.check(ctx, schemaPath, docs); err != nil {
			fmt.Fprintln(a.out, a.styles.fail.Render(err.Error()))
		}
		fmt.Fprintln(a.out, a.styles.help.Render("watching for changes..."))
	}
	run()

	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !tracked[filepath.Clean(event.Name)] || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			a.log.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			debounce.Reset(watchDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watch error", zap.Error(err))

		case <-debounce.C:
			run()
		}
	}
}
