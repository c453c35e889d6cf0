package controller

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/elsanchez/bakraload/internal/domain"
	"github.com/elsanchez/bakraload/internal/platform"
	"github.com/elsanchez/bakraload/internal/status"
)

// SubmitSingle sends one URL to the service and presents the outcome in the
// single region. Empty input never reaches the network.
func (c *Controller) SubmitSingle(ctx context.Context, in Input) (Outcome, error) {
	rawURL := strings.TrimSpace(in.Text)
	if rawURL == "" {
		c.present(status.RegionSingle, "Please enter a valid URL", status.SeverityError)
		return Outcome{}, domain.ErrEmptyURL
	}

	if err := c.begin(ControlSingle, "Downloading..."); err != nil {
		return Outcome{}, err
	}
	defer c.end(ControlSingle)

	req := domain.DownloadRequest{URL: rawURL, Format: c.formatFor(in)}
	c.logger.Info("submit single", "url", rawURL, "mode", string(c.mode))

	if c.mode == domain.ModeBlob {
		return c.singleBlob(ctx, req)
	}

	result, err := c.svc.Download(ctx, req)
	if err != nil {
		c.presentFailure(status.RegionSingle, err)
		return Outcome{}, err
	}

	if !result.IsSuccess() {
		c.present(status.RegionSingle, "✗ "+result.Message, status.SeverityError)
		return Outcome{}, &domain.ServiceError{Message: result.Message}
	}

	lines := []string{"✓ " + result.Message}
	if result.Title != "" {
		lines = append(lines, "Title: "+result.Title)
	}
	if result.Platform != "" {
		lines = append(lines, "Platform: "+result.Platform)
	}
	c.present(status.RegionSingle, strings.Join(lines, "\n"), status.SeveritySuccess)

	return Outcome{Cleared: true}, nil
}

func (c *Controller) singleBlob(ctx context.Context, req domain.DownloadRequest) (Outcome, error) {
	blob, err := c.svc.DownloadBlob(ctx, req)
	if err != nil {
		c.presentFailure(status.RegionSingle, err)
		return Outcome{}, err
	}

	path, err := c.saver.Save(blob.Filename, blob.Body)
	if err != nil {
		c.present(status.RegionSingle, "✗ "+err.Error(), status.SeverityError)
		return Outcome{}, err
	}

	c.present(status.RegionSingle,
		fmt.Sprintf("✓ Saved %s to %s", filepath.Base(path), filepath.Dir(path)),
		status.SeveritySuccess)

	return Outcome{Cleared: true, Saved: path}, nil
}

// SubmitBulk sends every non-blank line of the input as one batch and
// presents per-URL results in the bulk region.
func (c *Controller) SubmitBulk(ctx context.Context, in Input) (Outcome, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		c.present(status.RegionBulk, "Please enter at least one URL", status.SeverityError)
		return Outcome{}, domain.ErrEmptyBulk
	}

	urls := domain.SplitURLs(text)
	if len(urls) == 0 {
		c.present(status.RegionBulk, "Please enter valid URLs", status.SeverityError)
		return Outcome{}, domain.ErrNoValidURLs
	}

	if err := c.begin(ControlBulk, fmt.Sprintf("Processing %d URLs...", len(urls))); err != nil {
		return Outcome{}, err
	}
	defer c.end(ControlBulk)

	req := domain.BulkDownloadRequest{URLs: urls, Format: c.formatFor(in)}
	c.logger.Info("submit bulk", "count", len(urls), "mode", string(c.mode))

	if c.mode == domain.ModeBlob {
		return c.bulkBlob(ctx, req)
	}

	result, err := c.svc.BulkDownload(ctx, req)
	if err != nil {
		c.presentFailure(status.RegionBulk, err)
		return Outcome{}, err
	}

	if !result.IsSuccess() {
		c.present(status.RegionBulk, "✗ "+result.Message, status.SeverityError)
		return Outcome{}, &domain.ServiceError{Message: result.Message}
	}

	lines := []string{"✓ " + result.Message, ""}
	for i, r := range result.Results {
		icon := "✗"
		if r.IsSuccess() {
			icon = "✓"
		}
		lines = append(lines, fmt.Sprintf("%s URL %d: %s", icon, i+1, r.Message))
	}
	c.present(status.RegionBulk, strings.Join(lines, "\n"), status.SeveritySuccess)

	return Outcome{Cleared: true}, nil
}

func (c *Controller) bulkBlob(ctx context.Context, req domain.BulkDownloadRequest) (Outcome, error) {
	blob, err := c.svc.BulkDownloadBlob(ctx, req)
	if err != nil {
		c.presentFailure(status.RegionBulk, err)
		return Outcome{}, err
	}

	path, err := c.saver.Save(blob.Filename, blob.Body)
	if err != nil {
		c.present(status.RegionBulk, "✗ "+err.Error(), status.SeverityError)
		return Outcome{}, err
	}

	c.present(status.RegionBulk,
		fmt.Sprintf("✓ Processed %d URLs, saved %s", len(req.URLs), filepath.Base(path)),
		status.SeveritySuccess)

	return Outcome{Cleared: true, Saved: path}, nil
}

// DetectInput reports the platform of a URL being typed. The hint is
// transient and shown with loading severity.
func (c *Controller) DetectInput(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	name, ok := platform.Detect(text)
	if ok {
		c.present(status.RegionSingle, "Detected: "+name, status.SeverityLoading)
	}
	return name, ok
}

// presentFailure maps an error from the service to its status message.
func (c *Controller) presentFailure(region status.Region, err error) {
	c.present(region, failureMessage(err), status.SeverityError)
	c.logger.Warn("request failed", "region", string(region), "error", err)
}

func failureMessage(err error) string {
	var te *domain.TransportError
	if errors.As(err, &te) {
		return "✗ Network error: " + te.Err.Error()
	}

	var se *domain.ServiceError
	if errors.As(err, &se) {
		return "✗ " + se.Message
	}

	return "✗ " + err.Error()
}
