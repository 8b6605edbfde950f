package statement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	defaultChromeTimeout = 30 * time.Second
	// US Letter, in inches
	letterWidth  = 8.5
	letterHeight = 11.0
	marginInches = 0.6
)

// ChromedpRenderer renders HTML to PDF using the Chrome DevTools Protocol
type ChromedpRenderer struct {
	timeout     time.Duration
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer starts a local browser allocator, or connects to
// cfg.RemoteURL when set.
func NewChromedpRenderer(cfg config.ChromeConfig, logger *zap.Logger) *ChromedpRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultChromeTimeout
	}
	r := &ChromedpRenderer{timeout: timeout, logger: logger}

	if cfg.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return r
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

// Render converts an HTML document to PDF
func (r *ChromedpRenderer) Render(ctx context.Context, req *RenderRequest) ([]byte, error) {
	if req == nil || strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}
	timeout := req.Timeout
	if timeout == 0 {
		timeout = r.timeout
	}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	// chromedp contexts do not inherit deadlines from ctx
	go func() {
		select {
		case <-ctx.Done():
			browserCancel()
		case <-browserCtx.Done():
		}
	}()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, req.HTML).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(letterWidth).
				WithPaperHeight(letterHeight).
				WithMarginTop(marginInches).
				WithMarginBottom(marginInches).
				WithMarginLeft(marginInches).
				WithMarginRight(marginInches).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewRenderError(ErrCodeRenderTimeout, fmt.Sprintf("PDF rendering timed out after %v", timeout), err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}
	if len(pdf) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	r.logger.Info("PDF rendered",
		zap.String("title", req.Title),
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)))
	return pdf, nil
}

// Close shuts the browser allocator down
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

var _ PDFRenderer = (*ChromedpRenderer)(nil)
