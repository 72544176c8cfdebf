// internal/browser/session.go
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// consentAffordances are tried in order when dismissing a cookie dialog.
// XPath entries text-match buttons; the CSS entries are common hooks.
var consentAffordances = []struct {
	selector string
	xpath    bool
}{
	{`//button[contains(text(), 'Allow')]`, true},
	{`//button[contains(text(), 'Accept')]`, true},
	{`//button[contains(text(), 'OK')]`, true},
	{`.cookie-accept`, false},
	{`#cookie-accept`, false},
}

// consentTimeout bounds each individual consent-affordance probe. The dialog
// either shows up immediately on navigation or not at all.
const consentTimeout = 5 * time.Second

// Session drives one headless (or visible) Chrome instance via chromedp.
// It implements Controller.
type Session struct {
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
	config      SessionConfig

	closeOnce sync.Once
}

// New starts the browser and returns a ready session. Failures wrap
// ErrSessionInit; there is nothing to degrade to when the browser cannot
// start.
func New(cfg SessionConfig) (*Session, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultSessionConfig().Timeout
	}
	if cfg.WindowWidth <= 0 || cfg.WindowHeight <= 0 {
		cfg.WindowWidth = 1920
		cfg.WindowHeight = 1080
	}

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
	}
	if cfg.Headless {
		opts = append(opts, chromedp.Headless)
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:         ctx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
		config:      cfg,
	}

	// Force the browser process to start now so open failures surface here
	// rather than on the first navigation.
	startCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := chromedp.Run(startCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: %v", ErrSessionInit, err)
	}

	log.Debug().Bool("headless", cfg.Headless).Msg("browser session started")
	return s, nil
}

// Navigate loads the URL and waits for the body to be ready.
func (s *Session) Navigate(ctx context.Context, url string) error {
	runCtx, cancel := s.boundedCtx(ctx)
	defer cancel()

	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

// WaitVisible blocks until the selector is visible or the session timeout
// elapses.
func (s *Session) WaitVisible(ctx context.Context, selector string) error {
	runCtx, cancel := s.boundedCtx(ctx)
	defer cancel()

	if err := chromedp.Run(runCtx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for %q timed out: %w", selector, err)
	}
	return nil
}

// Click clicks the first visible element matching the selector.
func (s *Session) Click(ctx context.Context, selector string) error {
	runCtx, cancel := s.boundedCtx(ctx)
	defer cancel()

	if err := chromedp.Run(runCtx, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible)); err != nil {
		return fmt.Errorf("click on %q failed: %w", selector, err)
	}
	return nil
}

// SetText clears the input and types the value.
func (s *Session) SetText(ctx context.Context, selector, value string) error {
	runCtx, cancel := s.boundedCtx(ctx)
	defer cancel()

	err := chromedp.Run(runCtx,
		chromedp.Clear(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("setting text on %q failed: %w", selector, err)
	}
	return nil
}

// SelectValue sets a named select control and fires its change event, which
// the site relies on to repopulate dependent filters.
func (s *Session) SelectValue(ctx context.Context, selector, value string) error {
	runCtx, cancel := s.boundedCtx(ctx)
	defer cancel()

	err := chromedp.Run(runCtx,
		chromedp.SetValue(selector, value, chromedp.ByQuery),
		chromedp.Evaluate(fmt.Sprintf(
			`document.querySelector(%q).dispatchEvent(new Event('change', {bubbles: true}))`,
			selector), nil),
	)
	if err != nil {
		return fmt.Errorf("selecting %q on %q failed: %w", value, selector, err)
	}
	return nil
}

// SelectValueAt sets the index-th select on the page by document order.
func (s *Session) SelectValueAt(ctx context.Context, index int, value string) error {
	runCtx, cancel := s.boundedCtx(ctx)
	defer cancel()

	script := fmt.Sprintf(`(function() {
		var selects = document.querySelectorAll('select');
		if (%d >= selects.length) { return false; }
		var el = selects[%d];
		el.value = %q;
		el.dispatchEvent(new Event('change', {bubbles: true}));
		return true;
	})()`, index, index, value)

	var ok bool
	if err := chromedp.Run(runCtx, chromedp.Evaluate(script, &ok)); err != nil {
		return fmt.Errorf("selecting %q on select #%d failed: %w", value, index, err)
	}
	if !ok {
		return fmt.Errorf("page has no select control at index %d", index)
	}
	return nil
}

// OuterHTML returns the rendered HTML of the current page.
func (s *Session) OuterHTML(ctx context.Context) (string, error) {
	runCtx, cancel := s.boundedCtx(ctx)
	defer cancel()

	var html string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}
	return html, nil
}

// DismissConsent probes the known consent affordances with a short timeout
// each. The dialog is not guaranteed to appear, so nothing here is an error.
func (s *Session) DismissConsent(ctx context.Context) {
	for _, affordance := range consentAffordances {
		probeCtx, cancel := context.WithTimeout(s.ctx, consentTimeout)
		if ctx != nil {
			var cancelOuter context.CancelFunc
			probeCtx, cancelOuter = mergeCancel(probeCtx, ctx)
			defer cancelOuter()
		}

		query := chromedp.ByQuery
		if affordance.xpath {
			query = chromedp.BySearch
		}

		err := chromedp.Run(probeCtx, chromedp.Click(affordance.selector, query, chromedp.NodeVisible))
		cancel()
		if err == nil {
			log.Info().Str("selector", affordance.selector).Msg("cookie consent dismissed")
			// Give the dialog a moment to animate out before interacting.
			_ = chromedp.Run(s.ctx, chromedp.Sleep(2*time.Second))
			return
		}
	}
	log.Debug().Msg("no cookie consent dialog found")
}

// Close releases the browser. Idempotent, safe after a partial open.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if s.cancelCtx != nil {
			s.cancelCtx()
		}
		if s.cancelAlloc != nil {
			s.cancelAlloc()
		}
		log.Debug().Msg("browser session closed")
	})
	return nil
}

// boundedCtx derives a chromedp context bounded by the session timeout and
// cancelled when the caller's context is cancelled.
func (s *Session) boundedCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithTimeout(s.ctx, s.config.Timeout)
	if ctx == nil {
		return runCtx, cancel
	}
	merged, cancelMerged := mergeCancel(runCtx, ctx)
	return merged, func() {
		cancelMerged()
		cancel()
	}
}

// mergeCancel returns a context derived from base that is additionally
// cancelled when other is cancelled. chromedp actions must run on the
// session's context chain, so the caller's context cannot be passed through
// directly.
func mergeCancel(base, other context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(base)
	stop := context.AfterFunc(other, cancel)
	return merged, func() {
		stop()
		cancel()
	}
}
