// Package browser owns the Chrome process and the page/tab inventory. It is
// the page-lifecycle collaborator of the CDP core: it hands out the selected
// page and notifies registered listeners synchronously when a page closes so
// per-page state (sessions, UID tables) can be dropped immediately.
package browser

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

type Config struct {
	Headless   bool
	NoSandbox  bool
	Devtools   bool
	ChromePath string
	StartURL   string
}

func DefaultConfig() Config {
	return Config{
		Headless:  true,
		NoSandbox: true,
		StartURL:  "about:blank",
	}
}

// Manager launches one browser and tracks its pages plus a selected-page
// cursor. Safe for concurrent use.
type Manager struct {
	log      *zap.Logger
	browser  *rod.Browser
	launcher *launcher.Launcher

	mu       sync.Mutex
	pages    []*rod.Page
	selected int
	onClose  []func(proto.TargetTargetID)
}

// New launches Chrome and opens an initial page. The launcher is retained so
// Close can kill the browser process, not just the connection.
func New(cfg Config, log *zap.Logger) (*Manager, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Devtools(cfg.Devtools).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain").
		Set("disable-web-security").
		Set("allow-running-insecure-content").
		Set("disable-setuid-sandbox")
	if cfg.ChromePath != "" {
		l = l.Bin(cfg.ChromePath)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(url)
	if err := b.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	m := &Manager{
		log:      log,
		browser:  b,
		launcher: l,
	}

	startURL := cfg.StartURL
	if startURL == "" {
		startURL = "about:blank"
	}
	if _, _, err := m.NewPage(startURL); err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

// OnPageClose registers a listener invoked synchronously whenever a page is
// closed through this manager.
func (m *Manager) OnPageClose(fn func(proto.TargetTargetID)) {
	m.mu.Lock()
	m.onClose = append(m.onClose, fn)
	m.mu.Unlock()
}

// SelectedPage returns the currently selected page, or an error when no page
// is open.
func (m *Manager) SelectedPage() (*rod.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pages) == 0 {
		return nil, fmt.Errorf("no page is open; call new_page first")
	}
	return m.pages[m.selected], nil
}

// PageInfo is a JSON-friendly page listing entry.
type PageInfo struct {
	Index    int    `json:"index"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Selected bool   `json:"selected"`
}

// List describes every open page.
func (m *Manager) List() []PageInfo {
	m.mu.Lock()
	pages := append([]*rod.Page(nil), m.pages...)
	selected := m.selected
	m.mu.Unlock()

	infos := make([]PageInfo, 0, len(pages))
	for i, p := range pages {
		info := PageInfo{Index: i, Selected: i == selected}
		if pi, err := p.Info(); err == nil {
			info.URL = pi.URL
			info.Title = pi.Title
		}
		infos = append(infos, info)
	}
	return infos
}

// NewPage opens a page, navigates it and selects it. Returns the page and its
// index.
func (m *Manager) NewPage(url string) (*rod.Page, int, error) {
	page, err := m.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create page: %w", err)
	}
	if url != "" && url != "about:blank" {
		if err := page.Navigate(url); err != nil {
			_ = page.Close()
			return nil, 0, fmt.Errorf("navigation failed: %w", err)
		}
		if err := page.WaitLoad(); err != nil {
			m.log.Warn("page load wait failed", zap.String("url", url), zap.Error(err))
		}
	}

	m.mu.Lock()
	m.pages = append(m.pages, page)
	m.selected = len(m.pages) - 1
	index := m.selected
	m.mu.Unlock()

	m.log.Info("page opened", zap.String("url", url), zap.Int("index", index))
	return page, index, nil
}

// SelectPage moves the cursor to the page at index.
func (m *Manager) SelectPage(index int) (*rod.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.pages) {
		return nil, fmt.Errorf("page index %d out of range (have %d pages)", index, len(m.pages))
	}
	m.selected = index
	return m.pages[index], nil
}

// ClosePage closes the page at index and notifies listeners with its target
// id before returning, so session registries stay in sync.
func (m *Manager) ClosePage(index int) error {
	m.mu.Lock()
	if index < 0 || index >= len(m.pages) {
		m.mu.Unlock()
		return fmt.Errorf("page index %d out of range (have %d pages)", index, len(m.pages))
	}
	page := m.pages[index]
	m.pages = append(m.pages[:index], m.pages[index+1:]...)
	m.selected = nextSelected(m.selected, index, len(m.pages))
	listeners := append([]func(proto.TargetTargetID){}, m.onClose...)
	m.mu.Unlock()

	targetID := page.TargetID
	err := page.Close()
	for _, fn := range listeners {
		fn(targetID)
	}
	m.log.Info("page closed", zap.String("target", string(targetID)))
	return err
}

// nextSelected keeps the cursor on the same page after the entry at closed is
// removed. Closing a page before the cursor shifts it left by one; closing the
// selected page or one after it leaves the cursor in place, clamped to the
// last remaining page.
func nextSelected(selected, closed, remaining int) int {
	if closed < selected {
		selected--
	}
	if selected >= remaining && selected > 0 {
		selected = remaining - 1
	}
	return selected
}

// Close shuts the browser and the Chrome process down.
func (m *Manager) Close() {
	if m.browser != nil {
		_ = m.browser.Close()
	}
	if m.launcher != nil {
		m.launcher.Kill()
		m.launcher.Cleanup()
	}
}
