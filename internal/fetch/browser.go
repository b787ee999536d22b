package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

const (
	// UserAgent matches an ordinary desktop Chrome session.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// AcceptLanguage advertised by the browser session.
	AcceptLanguage = "en-US,en"

	pageReadyTimeout = 30 * time.Second
)

// consentScript clicks the first visible consent/continue button, if any.
// Best-effort: the prompt is not always shown.
const consentScript = `(() => {
	const selectors = [
		'button[mode="primary"]',
		'.fc-cta-consent',
		'button[aria-label="Consent"]',
		'#onetrust-accept-btn-handler',
		'button.accept-all',
	];
	for (const sel of selectors) {
		const el = document.querySelector(sel);
		if (el) { el.click(); return true; }
	}
	return false;
})()`

// Browser is a reusable chromedp browsing context. One Browser serves all
// windows of a run; the underlying Chrome process is shared for efficiency.
type Browser struct {
	ctx     context.Context
	cancels []context.CancelFunc
}

// NewBrowser starts a headless browser session emulating the given IANA
// timezone. Close must be called when the run is done.
func NewBrowser(ctx context.Context, zoneName string) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(UserAgent),
		chromedp.Flag("lang", AcceptLanguage),
		chromedp.Flag("headless", true),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	b := &Browser{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc},
	}

	if err := chromedp.Run(browserCtx,
		emulation.SetTimezoneOverride(zoneName),
	); err != nil {
		b.Close()
		return nil, fmt.Errorf("starting browser session: %w", err)
	}

	return b, nil
}

// GetPage navigates to url, dismisses any consent interstitial, and returns
// the rendered document HTML.
func (b *Browser) GetPage(ctx context.Context, url string) (string, error) {
	runCtx, cancel := context.WithTimeout(b.ctx, pageReadyTimeout)
	defer cancel()

	// Honor caller cancellation on top of the session context.
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-runCtx.Done():
		}
	}()

	var clicked bool
	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(consentScript, &clicked),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", url, err)
	}
	if html == "" {
		return "", fmt.Errorf("rendering %s: empty document", url)
	}
	return html, nil
}

// Close tears down the browsing context and the Chrome process.
func (b *Browser) Close() {
	for _, cancel := range b.cancels {
		cancel()
	}
}
