package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elsanchez/bakraload/internal/domain"
)

// Rutas del servicio de descargas
const (
	PathDownload           = "/download"
	PathBulkDownload       = "/bulk-download"
	PathDownloads          = "/downloads"
	PathDownloadFile       = "/download-file/"
	PathDownloadFolder     = "/download-folder/"
	PathClearDownloads     = "/clear-downloads"
	PathSupportedPlatforms = "/supported-platforms"
)

// DefaultBaseURL es la dirección por defecto del servicio
const DefaultBaseURL = "http://127.0.0.1:5000"

// Client representa un cliente HTTP del servicio de descargas
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configura el cliente
type Option func(*Client)

// WithHTTPClient usa un http.Client propio
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout limita la duración total de cada petición (0 = sin límite)
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent fija el User-Agent de las peticiones
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger fija el logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New crea un cliente para el servicio en baseURL
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		userAgent:  "bakra/" + Version,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		c.httpClient.Timeout = c.timeout
	}
	return c
}

// Version se inyecta en el User-Agent por defecto
var Version = "dev"

// BaseURL retorna la URL base normalizada
func (c *Client) BaseURL() string {
	return c.baseURL
}

// send ejecuta la petición y retorna la respuesta sin leer el body.
// Cualquier fallo aquí es un error de transporte.
func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, application/octet-stream, */*")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			"request_id", requestID,
			"method", method,
			"path", path,
			"error", err,
		)
		return nil, &domain.TransportError{Op: op, Err: err}
	}

	c.logger.Debug("request completed",
		"request_id", requestID,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	return resp, nil
}

// sendJSON ejecuta la petición y decodifica el body JSON sin mirar el status HTTP
func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) (int, error) {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, &domain.TransportError{
			Op:  method + " " + path,
			Err: fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err),
		}
	}

	return resp.StatusCode, nil
}

// Download envía una URL en modo JSON
func (c *Client) Download(ctx context.Context, req domain.DownloadRequest) (*domain.DownloadResult, error) {
	var result domain.DownloadResult
	if _, err := c.sendJSON(ctx, http.MethodPost, PathDownload, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BulkDownload envía varias URLs en modo JSON.
// Results debe venir alineado con las URLs enviadas.
func (c *Client) BulkDownload(ctx context.Context, req domain.BulkDownloadRequest) (*domain.BulkDownloadResult, error) {
	var result domain.BulkDownloadResult
	if _, err := c.sendJSON(ctx, http.MethodPost, PathBulkDownload, req, &result); err != nil {
		return nil, err
	}

	if result.IsSuccess() && len(result.Results) != len(req.URLs) {
		return nil, fmt.Errorf("%w: got %d results for %d urls",
			domain.ErrMisalignedResults, len(result.Results), len(req.URLs))
	}

	return &result, nil
}

// ListArtifacts obtiene el listado de archivos guardados por el servicio
func (c *Client) ListArtifacts(ctx context.Context) (*domain.ArtifactListing, error) {
	var listing domain.ArtifactListing
	status, err := c.sendJSON(ctx, http.MethodGet, PathDownloads, nil, &listing)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusBadRequest {
		return nil, &domain.ServiceError{StatusCode: status, Message: "listing unavailable"}
	}
	return &listing, nil
}

// ClearArtifacts borra todos los archivos guardados por el servicio
func (c *Client) ClearArtifacts(ctx context.Context) (*domain.StatusResponse, error) {
	var result domain.StatusResponse
	if _, err := c.sendJSON(ctx, http.MethodPost, PathClearDownloads, struct{}{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SupportedPlatforms obtiene el catálogo de plataformas del servicio
func (c *Client) SupportedPlatforms(ctx context.Context) (*domain.PlatformCatalog, error) {
	var catalog domain.PlatformCatalog
	status, err := c.sendJSON(ctx, http.MethodGet, PathSupportedPlatforms, nil, &catalog)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusBadRequest {
		return nil, &domain.ServiceError{StatusCode: status, Message: "platform catalog unavailable"}
	}
	return &catalog, nil
}

// FileURL retorna la URL de descarga de un archivo del listado
func (c *Client) FileURL(name string) string {
	return c.baseURL + PathDownloadFile + url.PathEscape(name)
}

// FolderURL retorna la URL de descarga (zip) de una carpeta del listado
func (c *Client) FolderURL(name string) string {
	return c.baseURL + PathDownloadFolder + url.PathEscape(name)
}

// Fetch descarga una URL arbitraria del servicio como blob
func (c *Client) Fetch(ctx context.Context, rawURL, fallback string) (*Blob, error) {
	path := strings.TrimPrefix(rawURL, c.baseURL)
	if path == rawURL {
		return nil, fmt.Errorf("fetch %s: url outside service %s", rawURL, c.baseURL)
	}

	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return blobFromResponse(resp, fallback)
}
