package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// A4 in inches, as Chrome's print API expects.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// Chrome rasterizes HTML with a fresh headless Chrome per call. The browser is
// started and torn down inside Rasterize, so concurrent calls do not share state.
type Chrome struct {
	// ExecPath overrides the browser executable. Empty lets chromedp find one.
	ExecPath string
	// Timeout bounds one call including browser start-up. Zero means no extra bound.
	Timeout time.Duration
}

func (c *Chrome) Rasterize(ctx context.Context, html string) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	// lifecycle events can arrive before we start waiting, so keep them
	idle := make(chan cdp.LoaderID, 16)
	chromedp.ListenTarget(tabCtx, func(ev any) {
		if e, ok := ev.(*page.EventLifecycleEvent); ok && e.Name == "networkIdle" {
			select {
			case idle <- e.LoaderID:
			default:
			}
		}
	})

	start := time.Now()
	var pdf []byte
	err := chromedp.Run(tabCtx,
		page.SetLifecycleEventsEnabled(true),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, loaderID, errText, err := page.Navigate("data:text/html;charset=utf-8;base64," + base64.StdEncoding.EncodeToString([]byte(html))).Do(ctx)
			if err != nil {
				return err
			}
			if errText != "" {
				return fmt.Errorf("navigation failed: %s", errText)
			}
			for {
				select {
				case id := <-idle:
					if id == loaderID {
						return nil
					}
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("render: chrome: %w", err)
	}

	log.Debug().
		Str("evt.name", "render.chrome.done").
		Dur("duration", time.Since(start)).
		Int("bytes", len(pdf)).
		Msg("rasterized document in headless chrome")

	return pdf, nil
}
