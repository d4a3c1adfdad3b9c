package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"haus-finance/finance"
)

// LoadAssumptions reads a YAML assumptions file over the built-in defaults.
// Keys missing from the file keep their default value; scenario growth rates
// are merged per scenario.
func LoadAssumptions(path string) (finance.Assumptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return finance.Assumptions{}, fmt.Errorf("read assumptions: %w", err)
	}
	return ParseAssumptions(data)
}

// ParseAssumptions decodes YAML assumptions over the defaults and validates
// the result. Unknown keys are rejected.
func ParseAssumptions(data []byte) (finance.Assumptions, error) {
	a := finance.DefaultAssumptions()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil && !errors.Is(err, io.EOF) {
		return finance.Assumptions{}, fmt.Errorf("parse assumptions: %w", err)
	}
	if err := a.Validate(); err != nil {
		return finance.Assumptions{}, err
	}
	return a, nil
}

const assumptionsDebounce = 200 * time.Millisecond

// AssumptionsWatcher reloads an assumptions file whenever it changes and
// hands the validated result to onChange. Invalid files are logged and the
// previous assumptions stay in effect.
type AssumptionsWatcher struct {
	path     string
	onChange func(finance.Assumptions) error
	logger   *zap.Logger
}

func NewAssumptionsWatcher(path string, onChange func(finance.Assumptions) error, logger *zap.Logger) *AssumptionsWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssumptionsWatcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		logger:   logger.With(zap.String("file", path)),
	}
}

// Run watches until ctx is cancelled. The parent directory is watched so
// editors that replace the file by rename are picked up.
func (w *AssumptionsWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info("watching assumptions")

	debounce := time.NewTimer(assumptionsDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(assumptionsDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("assumptions watcher error", zap.Error(err))

		case <-debounce.C:
			w.reload()
		}
	}
}

func (w *AssumptionsWatcher) reload() {
	a, err := LoadAssumptions(w.path)
	if err != nil {
		w.logger.Warn("ignoring invalid assumptions file", zap.Error(err))
		return
	}
	if err := w.onChange(a); err != nil {
		w.logger.Warn("assumptions rejected", zap.Error(err))
		return
	}
	w.logger.Info("assumptions reloaded")
}
