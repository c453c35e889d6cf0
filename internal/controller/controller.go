// Package controller owns every user-visible state transition of the client:
// the active tab, the busy state of each control and the artifact listing.
// It renders nothing itself; output goes through a status.Presenter so the
// TUI and the CLI share the same behaviour.
package controller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/elsanchez/bakraload/internal/domain"
	"github.com/elsanchez/bakraload/internal/opener"
	"github.com/elsanchez/bakraload/internal/saver"
	"github.com/elsanchez/bakraload/internal/status"
	"github.com/elsanchez/bakraload/pkg/client"
)

// ErrUnknownItem is returned when a retrieval names an item missing from the listing.
var ErrUnknownItem = errors.New("item not in listing")

// Service is the remote download service.
type Service interface {
	Download(ctx context.Context, req domain.DownloadRequest) (*domain.DownloadResult, error)
	BulkDownload(ctx context.Context, req domain.BulkDownloadRequest) (*domain.BulkDownloadResult, error)
	DownloadBlob(ctx context.Context, req domain.DownloadRequest) (*client.Blob, error)
	BulkDownloadBlob(ctx context.Context, req domain.BulkDownloadRequest) (*client.Blob, error)
	ListArtifacts(ctx context.Context) (*domain.ArtifactListing, error)
	ClearArtifacts(ctx context.Context) (*domain.StatusResponse, error)
	FileURL(name string) string
	FolderURL(name string) string
	Fetch(ctx context.Context, rawURL, fallback string) (*client.Blob, error)
}

// Saver stores a binary response locally and closes body.
type Saver interface {
	Save(filename string, body io.ReadCloser) (string, error)
	Dir() string
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Approve confirms every prompt. Used once the TUI dialog has been accepted.
var Approve Confirmer = ConfirmFunc(func(string) bool { return true })

// Input carries what the user typed or selected for an intent.
type Input struct {
	Text      string
	Format    domain.Format
	Name      string
	Confirmer Confirmer
}

// Outcome reports follow-up work for the caller.
type Outcome struct {
	// Cleared is set after a successful submission; the input field should be emptied.
	Cleared bool
	// Saved is the local path written in blob mode.
	Saved string
	// Failed is set when a listing or clearing failure was presented inline.
	Failed bool
}

// Listing is the last loaded artifact listing.
type Listing struct {
	Items  []domain.ArtifactItem
	Err    error
	Loaded bool
}

// Empty reports a successful load with no items.
func (l Listing) Empty() bool {
	return l.Loaded && l.Err == nil && len(l.Items) == 0
}

// Controller coordinates service calls and presentation.
type Controller struct {
	svc       Service
	presenter status.Presenter
	saver     Saver
	opener    opener.Opener
	logger    *slog.Logger

	mode    domain.ResponseMode
	format  domain.Format
	listing bool

	mu       sync.Mutex
	tab      Tab
	controls map[ControlID]*Control
	items    Listing

	handlers map[Intent]Handler
}

// Option configures a Controller.
type Option func(*Controller)

// WithMode selects how the service answers submissions.
func WithMode(m domain.ResponseMode) Option {
	return func(c *Controller) {
		c.mode = m
	}
}

// WithFormat sets the format sent when the input carries none.
func WithFormat(f domain.Format) Option {
	return func(c *Controller) {
		c.format = f
	}
}

// WithListing enables the artifact listing refresh on tab switch.
func WithListing(enabled bool) Option {
	return func(c *Controller) {
		c.listing = enabled
	}
}

// WithSaver sets where blob responses are written.
func WithSaver(s Saver) Option {
	return func(c *Controller) {
		c.saver = s
	}
}

// WithOpener sets how retrieval URLs are opened.
func WithOpener(o opener.Opener) Option {
	return func(c *Controller) {
		c.opener = o
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// New creates a controller on the single tab with every control idle.
func New(svc Service, presenter status.Presenter, opts ...Option) *Controller {
	c := &Controller{
		svc:       svc,
		presenter: presenter,
		saver:     saver.New(filepath.Join(os.TempDir(), "bakraload")),
		opener:    opener.NewBrowser(),
		logger:    slog.Default(),
		mode:      domain.ModeJSON,
		listing:   true,
		tab:       TabSingle,
		controls:  newControls(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.handlers = c.dispatchTable()
	return c
}

// Mode returns the configured response mode.
func (c *Controller) Mode() domain.ResponseMode {
	return c.mode
}

// ListingEnabled reports whether the downloads tab loads the listing.
func (c *Controller) ListingEnabled() bool {
	return c.listing
}

// Listing returns a copy of the current listing state.
func (c *Controller) Listing() Listing {
	c.mu.Lock()
	defer c.mu.Unlock()

	l := c.items
	l.Items = append([]domain.ArtifactItem(nil), c.items.Items...)
	return l
}

func (c *Controller) setListing(l Listing) {
	c.mu.Lock()
	c.items = l
	c.mu.Unlock()
}

func (c *Controller) formatFor(in Input) domain.Format {
	if in.Format != domain.FormatNone {
		return in.Format
	}
	return c.format
}

func (c *Controller) present(region status.Region, message string, severity status.Severity) {
	c.presenter.Present(region, message, severity, false)
}

// clearRegion empties region when the presenter supports it.
func (c *Controller) clearRegion(region status.Region) {
	if cl, ok := c.presenter.(interface{ Clear(status.Region) }); ok {
		cl.Clear(region)
	}
}
