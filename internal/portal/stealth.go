package portal

import (
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// randomDelay pauses for a random duration between min and max
// milliseconds, spacing out portal requests so a scraping run doesn't
// hammer the site with back-to-back navigations.
func randomDelay(min, max int) {
	if min >= max {
		time.Sleep(time.Duration(min) * time.Millisecond)
		return
	}
	time.Sleep(time.Duration(rand.Intn(max-min)+min) * time.Millisecond)
}

// humanScroll nudges the page to trigger any lazy-loaded content before
// reading job rows off it.
func humanScroll(page playwright.Page) {
	_, _ = page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")
	randomDelay(300, 700)
}
