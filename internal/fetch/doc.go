// Package fetch retrieves raw calendar pages from the source site.
//
// Pages are fetched through a real browser session (chromedp) so the source
// sees an ordinary client: realistic user agent, locale, and timezone, with
// interstitial consent prompts dismissed before the document is read. The
// Fetcher wraps a page getter with bounded retries, exponential backoff and
// jitter; a window whose retries are exhausted fails on its own without
// affecting other windows.
package fetch
