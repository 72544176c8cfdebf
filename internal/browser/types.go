// internal/browser/types.go

// Package browser owns the single interactive browsing session used for a
// scraping run. All page interaction goes through the Controller interface so
// the engine can be exercised against a fake without a real browser.
package browser

import (
	"context"
	"errors"
	"time"
)

// ErrSessionInit marks the one fatal error class: the underlying browser
// could not be started. Everything else degrades.
var ErrSessionInit = errors.New("browser session initialization failed")

// Controller is the page-interaction surface the scraping engine depends on.
// Selectors are CSS unless noted. Implementations are not safe for
// concurrent use: the session's browsing state (current page, selected
// filters) is a single mutable context.
type Controller interface {
	// Navigate loads the URL and waits for the document body to be ready.
	Navigate(ctx context.Context, url string) error

	// WaitVisible blocks until the selector matches a visible element or
	// the configured timeout elapses.
	WaitVisible(ctx context.Context, selector string) error

	// Click clicks the first visible element matching the selector.
	Click(ctx context.Context, selector string) error

	// SetText clears a text input and types the value into it.
	SetText(ctx context.Context, selector, value string) error

	// SelectValue sets a select control to the given option value and
	// fires its change event.
	SelectValue(ctx context.Context, selector, value string) error

	// SelectValueAt sets the index-th select element on the page (document
	// order, zero-based) to the given option value and fires its change
	// event. This is the escape hatch for pages whose selects carry no
	// stable names; the index mapping lives with the caller.
	SelectValueAt(ctx context.Context, index int, value string) error

	// OuterHTML returns the rendered HTML of the current page.
	OuterHTML(ctx context.Context) (string, error)

	// DismissConsent attempts to dismiss a cookie-consent dialog if one is
	// present. Absence of a dialog is not an error.
	DismissConsent(ctx context.Context)

	// Close releases the session. Safe to call more than once and after a
	// partially failed open.
	Close() error
}

// SessionConfig configures the chromedp session.
type SessionConfig struct {
	Headless  bool
	UserAgent string

	// Timeout bounds each wait for an element to materialize
	Timeout time.Duration

	WindowWidth  int
	WindowHeight int
}

// DefaultSessionConfig returns a headless session with the waits bounded the
// way the production runs use them.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Headless:     true,
		Timeout:      30 * time.Second,
		WindowWidth:  1920,
		WindowHeight: 1080,
	}
}
