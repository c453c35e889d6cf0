package controller

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/elsanchez/bakraload/internal/domain"
	"github.com/elsanchez/bakraload/internal/status"
	"github.com/elsanchez/bakraload/pkg/client"
)

// ClearPrompt is asked before the remote store is wiped.
const ClearPrompt = "Are you sure you want to clear all downloads?"

// RefreshListing reloads the artifact listing. Failures are presented inline
// in the downloads region and reported through Outcome.Failed.
func (c *Controller) RefreshListing(ctx context.Context) (Outcome, error) {
	if err := c.begin(ControlRefresh, "Refreshing..."); err != nil {
		return Outcome{}, err
	}
	defer c.end(ControlRefresh)

	return c.refresh(ctx), nil
}

func (c *Controller) refresh(ctx context.Context) Outcome {
	listing, err := c.svc.ListArtifacts(ctx)
	if err != nil {
		c.setListing(Listing{Err: err, Loaded: true})
		c.present(status.RegionDownloads, "Error loading downloads: "+errorDetail(err), status.SeverityError)
		c.logger.Warn("listing failed", "error", err)
		return Outcome{Failed: true}
	}

	c.setListing(Listing{Items: listing.Items, Loaded: true})
	c.clearRegion(status.RegionDownloads)
	c.logger.Debug("listing loaded", "items", len(listing.Items))
	return Outcome{}
}

// RetrieveItem opens the retrieval URL of a listed file or folder without
// waiting for it.
func (c *Controller) RetrieveItem(name string) (Outcome, error) {
	item, err := c.lookup(name)
	if err != nil {
		c.present(status.RegionDownloads, "✗ Error: "+err.Error(), status.SeverityError)
		return Outcome{}, err
	}

	target := c.svc.FileURL(item.Name)
	if item.IsFolder() {
		target = c.svc.FolderURL(item.Name)
	}

	if err := c.opener.Open(target); err != nil {
		c.present(status.RegionDownloads, "✗ Error: "+err.Error(), status.SeverityError)
		return Outcome{}, err
	}

	c.logger.Info("retrieve item", "name", item.Name, "type", string(item.Type))
	return Outcome{}, nil
}

// SaveItem downloads a listed item into the output directory. Folders
// arrive as zip archives.
func (c *Controller) SaveItem(ctx context.Context, name string) (Outcome, error) {
	item, err := c.lookup(name)
	if err != nil {
		c.present(status.RegionDownloads, "✗ Error: "+err.Error(), status.SeverityError)
		return Outcome{}, err
	}

	target, fallback := c.svc.FileURL(item.Name), item.Name
	if item.IsFolder() {
		target, fallback = c.svc.FolderURL(item.Name), item.Name+".zip"
	}

	blob, err := c.svc.Fetch(ctx, target, fallback)
	if err != nil {
		c.presentFailure(status.RegionDownloads, err)
		return Outcome{}, err
	}

	path, err := c.saver.Save(blob.Filename, blob.Body)
	if err != nil {
		c.present(status.RegionDownloads, "✗ "+err.Error(), status.SeverityError)
		return Outcome{}, err
	}

	c.present(status.RegionDownloads,
		fmt.Sprintf("✓ Saved %s to %s", filepath.Base(path), filepath.Dir(path)),
		status.SeveritySuccess)
	return Outcome{Saved: path}, nil
}

// ClearAll wipes the remote store after confirmation and reloads the listing.
// A declined confirmation returns ErrNotConfirmed without any network call.
func (c *Controller) ClearAll(ctx context.Context, confirm Confirmer) (Outcome, error) {
	if confirm == nil || !confirm.Confirm(ClearPrompt) {
		return Outcome{}, domain.ErrNotConfirmed
	}

	if err := c.begin(ControlClear, "Clearing..."); err != nil {
		return Outcome{}, err
	}
	defer c.end(ControlClear)

	result, err := c.svc.ClearArtifacts(ctx)
	if err != nil {
		c.presentFailure(status.RegionDownloads, err)
		return Outcome{Failed: true}, nil
	}

	if !result.IsSuccess() {
		c.present(status.RegionDownloads, "✗ Error: "+result.Message, status.SeverityError)
		return Outcome{Failed: true}, nil
	}

	c.logger.Info("downloads cleared")
	out := c.refresh(ctx)
	c.presenter.Present(status.RegionDownloads, "✓ All downloads cleared successfully!", status.SeveritySuccess, out.Failed)
	return out, nil
}

// lookup finds name in the loaded listing.
func (c *Controller) lookup(name string) (domain.ArtifactItem, error) {
	if name == "" {
		return domain.ArtifactItem{}, ErrUnknownItem
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items.Items {
		if item.Name == name {
			return item, nil
		}
	}
	return domain.ArtifactItem{}, fmt.Errorf("%w: %s", ErrUnknownItem, name)
}

func errorDetail(err error) string {
	var te *domain.TransportError
	if errors.As(err, &te) {
		return te.Err.Error()
	}
	var se *domain.ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

var _ Service = (*client.Client)(nil)
