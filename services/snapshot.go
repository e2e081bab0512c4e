package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"borough-recommender/config"
	"borough-recommender/utils"
)

// Snapshotter renders a map page to PNG with headless Chrome.
type Snapshotter struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig

	// Settle is how long the page gets to fetch tiles before capture.
	Settle time.Duration
}

// NewSnapshotter creates a ready-to-use Snapshotter.
func NewSnapshotter(cfg *config.Config, logger *utils.Logger) *Snapshotter {
	return &Snapshotter{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		Settle: 3 * time.Second,
	}
}

// Capture loads page (a complete HTML document) in a headless browser and
// returns a PNG of the viewport.
func (s *Snapshotter) Capture(ctx context.Context, page []byte) ([]byte, error) {
	tmp, err := os.CreateTemp("", "borough-map-*.html")
	if err != nil {
		return nil, fmt.Errorf("snapshot: create temp page: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(page); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("snapshot: write temp page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("snapshot: close temp page: %w", err)
	}

	chromeBin := s.cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	s.logger.Debug("[snapshot] Using browser binary: %q", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(s.cfg.SnapshotWidth, s.cfg.SnapshotHeight),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	url := "file://" + filepath.ToSlash(tmp.Name())
	var png []byte
	err = s.retry.Do(browserCtx, "map-snapshot", func(ctx context.Context) error {
		tabCtx, cancel := chromedp.NewContext(ctx)
		defer cancel()
		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 60*time.Second)
		defer cancelTimeout()

		return chromedp.Run(tabCtx,
			chromedp.Navigate(url),
			chromedp.WaitVisible("#map", chromedp.ByQuery),
			chromedp.Sleep(s.Settle),
			chromedp.CaptureScreenshot(&png),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	s.logger.Info("[snapshot] Captured %d bytes", len(png))
	return png, nil
}

// WriteFile captures page and stores the PNG under SnapshotDir, returning its
// path.
func (s *Snapshotter) WriteFile(ctx context.Context, page []byte, name string) (string, error) {
	png, err := s.Capture(ctx, page)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.cfg.SnapshotDir, 0755); err != nil {
		return "", fmt.Errorf("snapshot: create output dir: %w", err)
	}
	path := filepath.Join(s.cfg.SnapshotDir, name)
	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", fmt.Errorf("snapshot: write %q: %w", path, err)
	}
	return path, nil
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
