// Package driver is the browser automation facade over go-rod (spec §4.5's
// "AMBIENT STACK addition — driver lifecycle"), grounded on
// internal/browser/session_manager.go's SessionManager: launcher
// configuration, rod.New().ControlURL().Connect(), incognito-page creation,
// viewport/cookie/storage plumbing, and the direct Navigate/Click/Type/
// Screenshot call shapes. Unlike SessionManager, a driver.Browser owns
// exactly one scenario run's worth of state — no session registry, no
// Mangle fact reification, no persistence to disk between runs.
package driver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

// Viewport is the emulated device viewport (spec §4.5: "viewport
// (page.SetViewport)").
type Viewport struct {
	Width  int
	Height int
}

// Config configures a Browser launch and every Page it opens, mirroring
// SessionManager's Config fields relevant to a single scenario run.
type Config struct {
	// Bin is the Chrome/Chromium binary path. Empty lets go-rod's launcher
	// find or download one.
	Bin string
	// DebuggerURL, if set, attaches to an already-running Chrome instead of
	// launching one (SessionManager's DebuggerURL field).
	DebuggerURL string
	Headless    bool
	// ExtraFlags are passed through to launcher.Set(flags.Flag(name), value),
	// the same "name=value or bare name" parsing SessionManager.Start uses.
	ExtraFlags []string

	Viewport Viewport
	// TimezoneID is an IANA zone, e.g. "America/New_York". Empty leaves the
	// host timezone.
	TimezoneID string
	// Locale is a BCP-47 tag, e.g. "en-US". Empty leaves the default.
	Locale string
	// ExtraHeaders are sent with every request this page makes.
	ExtraHeaders map[string]string

	NavigationTimeout time.Duration
}

func (c Config) navigationTimeout() time.Duration {
	if c.NavigationTimeout <= 0 {
		return 30 * time.Second
	}
	return c.NavigationTimeout
}

// Browser owns one launched (or attached) Chrome instance for the duration
// of a scenario run.
type Browser struct {
	cfg        Config
	rodBrowser *rod.Browser
	controlURL string
}

// New launches Chrome per cfg (or attaches to cfg.DebuggerURL) and connects
// to it. Grounded on SessionManager.Start's launcher.New()...Launch() /
// rod.New().ControlURL().Connect() sequence, simplified to a single
// launch (skipped when DebuggerURL is set) since a scenario run owns its
// browser outright.
func New(ctx context.Context, cfg Config) (*Browser, error) {
	controlURL := cfg.DebuggerURL
	if controlURL == "" {
		launch := launcher.New().Headless(cfg.Headless)
		if cfg.Bin != "" {
			launch = launch.Bin(cfg.Bin)
		}
		for _, rawFlag := range cfg.ExtraFlags {
			flagStr := strings.TrimLeft(rawFlag, "-")
			name, val, hasVal := strings.Cut(flagStr, "=")
			if hasVal {
				launch = launch.Set(flags.Flag(name), val)
			} else {
				launch = launch.Set(flags.Flag(name))
			}
		}
		url, err := launch.Launch()
		if err != nil {
			return nil, fmt.Errorf("driver: launch chrome: %w", err)
		}
		controlURL = url
	}

	rb := rod.New().ControlURL(controlURL).Context(ctx)
	if err := rb.Connect(); err != nil {
		return nil, fmt.Errorf("driver: connect to chrome: %w", err)
	}

	return &Browser{cfg: cfg, rodBrowser: rb, controlURL: controlURL}, nil
}

// Close disconnects (and, if launched rather than attached, kills) the
// underlying browser process.
func (b *Browser) Close() error {
	if b.rodBrowser == nil {
		return nil
	}
	return b.rodBrowser.Close()
}

// ControlURL is the CDP WebSocket URL Connect used.
func (b *Browser) ControlURL() string { return b.controlURL }

// NewPage opens a fresh incognito page (SessionManager.CreateSession's
// isolation choice, so one scenario run never leaks cookies/storage into
// another) and applies viewport, timezone/locale, and extra-header
// configuration before returning control to the caller for navigation.
func (b *Browser) NewPage(ctx context.Context) (*Page, error) {
	incognito, err := b.rodBrowser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("driver: create incognito context: %w", err)
	}

	rodPage, err := incognito.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("driver: create page: %w", err)
	}

	p := &Page{rodPage: rodPage, cfg: b.cfg}
	if err := p.applyConfig(ctx); err != nil {
		return nil, err
	}
	p.watchConsole(ctx)
	return p, nil
}

func (p *Page) applyConfig(ctx context.Context) error {
	vp := p.cfg.Viewport
	if vp.Width > 0 && vp.Height > 0 {
		if err := proto.EmulationSetDeviceMetricsOverride{
			Width:             vp.Width,
			Height:            vp.Height,
			DeviceScaleFactor: 1,
			Mobile:            false,
		}.Call(p.rodPage); err != nil {
			return fmt.Errorf("driver: set viewport: %w", err)
		}
	}

	if p.cfg.TimezoneID != "" {
		if err := proto.EmulationSetTimezoneOverride{TimezoneID: p.cfg.TimezoneID}.Call(p.rodPage); err != nil {
			return fmt.Errorf("driver: set timezone: %w", err)
		}
	}

	if p.cfg.Locale != "" {
		if err := proto.EmulationSetLocaleOverride{Locale: p.cfg.Locale}.Call(p.rodPage); err != nil {
			return fmt.Errorf("driver: set locale: %w", err)
		}
	}

	if len(p.cfg.ExtraHeaders) > 0 {
		kv := make([]string, 0, len(p.cfg.ExtraHeaders)*2)
		for k, v := range p.cfg.ExtraHeaders {
			kv = append(kv, k, v)
		}
		if _, err := p.rodPage.Context(ctx).SetExtraHeaders(kv); err != nil {
			return fmt.Errorf("driver: set extra headers: %w", err)
		}
	}

	return nil
}
