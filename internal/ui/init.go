package ui

import (
	"context"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"dataspect/internal/browse"
	"dataspect/internal/config"
	"dataspect/internal/engine"
	"dataspect/internal/util/logx"
)

func initialModel(ctx context.Context, cfg *config.Config) (*Model, error) {
	m := &Model{
		ctx:        ctx,
		cfg:        cfg,
		screen:     screenHome,
		styles:     NewStyles(cfg.Theme == config.ThemeDark),
		keymap:     DefaultKeyMap(),
		collapsed:  map[string]struct{}{},
		termWidth:  80,
		termHeight: 24,
		openEngine: func(path string) (dataEngine, error) { return engine.New(path) },
	}
	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = m.styles.TabActive
	if w, err := fsnotify.NewWatcher(); err == nil {
		m.watcher = w
	} else {
		logx.Warnf("watcher unavailable: %v", err)
	}
	if err := m.seed(cfg.StartPath); err != nil {
		m.cleanup()
		return nil, err
	}
	return m, nil
}

// seed places the model on the right screen for the start path: a directory
// opens the browser there, a data or JSON file opens its inspector with the
// browser pointed at the parent, anything else opens the browser at the
// parent. An empty path stays on Home in the working directory.
func (m *Model) seed(start string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	m.currentDir = cwd
	if start == "" {
		return nil
	}
	path := start
	if abs, err := filepath.Abs(start); err == nil {
		path = abs
	}
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		if err := m.loadDirEntries(path); err != nil {
			return err
		}
		m.screen = screenBrowser
		return nil
	}
	parent := filepath.Dir(path)
	switch browse.Extension(path) {
	case "csv", "parquet":
		if err := m.loadDirEntries(parent); err != nil {
			return err
		}
		if err := m.loadInspector(path); err != nil {
			return err
		}
		m.screen = screenInspector
	case "json", "geojson":
		if err := m.loadDirEntries(parent); err != nil {
			return err
		}
		if err := m.loadJSONDocument(path); err != nil {
			return err
		}
		m.screen = screenJSON
	default:
		if err := m.loadDirEntries(parent); err != nil {
			return err
		}
		m.screen = screenBrowser
	}
	return nil
}

func (m *Model) cleanup() {
	if m.eng != nil {
		m.eng.Close()
		m.eng = nil
	}
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
}

// Run drives the program until quit or ctx cancellation. The alternate
// screen is restored by bubbletea on exit, panics included.
func Run(ctx context.Context, cfg *config.Config) error {
	m, err := initialModel(ctx, cfg)
	if err != nil {
		return err
	}
	defer m.cleanup()
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.watchCmd()
}

// watchCmd blocks on the directory watcher and surfaces change events as
// messages. Watcher errors are logged and the wait continues.
func (m *Model) watchCmd() tea.Cmd {
	w := m.watcher
	if w == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		for {
			select {
			case <-ctx.Done():
				return nil
			case _, ok := <-w.Events:
				if !ok {
					return nil
				}
				return dirChangedMsg{}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				logx.Warnf("watcher: %v", err)
			}
		}
	}
}
