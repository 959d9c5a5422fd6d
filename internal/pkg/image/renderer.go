// Package image converts a HTML page of charts into a PNG screenshot.
package image

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/device"
)

// Renderer knows how to take a screenshot from a HTML input and writes it as PNG.
//
// The screenshot is taken by a headless Chrome browser.
type Renderer struct {
	options
}

// New builds an image [Renderer] from HTML.
func New(opts ...Option) *Renderer {
	return &Renderer{
		options: optionsWithDefaults(opts),
	}
}

// Render a PNG image as a screenshot from a HTML input [io.Reader].
func (r *Renderer) Render(ctx context.Context, dest io.Writer, source io.Reader) error {
	content, err := io.ReadAll(source)
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}

	screenshot, err := r.screenshot(ctx, content)
	if err != nil {
		return fmt.Errorf("taking screenshot: %w", err)
	}

	_, err = dest.Write(screenshot)
	if err != nil {
		return fmt.Errorf("writing screenshot: %w", err)
	}

	r.l.Debug("screenshot written", slog.Int("bytes", len(screenshot)))

	return nil
}

func (r *Renderer) screenshot(parent context.Context, content []byte) ([]byte, error) {
	timeoutCtx, cancelTimeout := context.WithTimeout(parent, r.Timeout)
	defer cancelTimeout()

	ctx, cancel := chromedp.NewContext(timeoutCtx)
	defer cancel()

	const qualityPNG = 100 // 100 to force PNG

	// a plain data URL would be truncated at the first '#'
	url := "data:text/html;base64," + base64.StdEncoding.EncodeToString(content)

	var screenshot []byte
	err := chromedp.Run(ctx,
		chromedp.Emulate(device.Info{
			Height:    r.Height,
			Width:     r.Width,
			Landscape: true,
		}),
		chromedp.Navigate(url),
		chromedp.Sleep(r.SleepDuration), // wait for the charts to render
		chromedp.FullScreenshot(&screenshot, qualityPNG),
	)
	if err != nil {
		return nil, err
	}

	return screenshot, nil
}
