package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elsanchez/bakraload/internal/domain"
)

// Nombres por defecto cuando el servicio no sugiere uno
const (
	DefaultSingleFilename = "download.zip"
	DefaultBulkFilename   = "bulk_download.zip"
)

// maxErrorBody limita lo que se lee de un body de error
const maxErrorBody = 64 << 10

// Blob es una respuesta binaria exitosa del servicio.
// El llamador debe cerrar Body.
type Blob struct {
	Filename    string
	ContentType string
	Size        int64 // -1 si el servicio no envía Content-Length
	Body        io.ReadCloser
}

// Close libera el body de la respuesta
func (b *Blob) Close() error {
	if b.Body == nil {
		return nil
	}
	return b.Body.Close()
}

// DownloadBlob envía una URL en modo blob y retorna el archivo resultante
func (c *Client) DownloadBlob(ctx context.Context, req domain.DownloadRequest) (*Blob, error) {
	resp, err := c.send(ctx, http.MethodPost, PathDownload, req)
	if err != nil {
		return nil, err
	}
	return blobFromResponse(resp, DefaultSingleFilename)
}

// BulkDownloadBlob envía varias URLs en modo blob y retorna el zip resultante
func (c *Client) BulkDownloadBlob(ctx context.Context, req domain.BulkDownloadRequest) (*Blob, error) {
	resp, err := c.send(ctx, http.MethodPost, PathBulkDownload, req)
	if err != nil {
		return nil, err
	}
	return blobFromResponse(resp, DefaultBulkFilename)
}

// blobFromResponse toma posesión de resp. En error el body ya está cerrado.
func blobFromResponse(resp *http.Response, fallback string) (*Blob, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, serviceErrorFrom(resp)
	}

	return &Blob{
		Filename:    FilenameFromDisposition(resp.Header.Get("Content-Disposition"), fallback),
		ContentType: resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
		Body:        resp.Body,
	}, nil
}

// serviceErrorFrom lee el body de error {message} o usa un mensaje genérico
func serviceErrorFrom(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}

	err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&body)
	if err != nil || body.Message == "" {
		return &domain.ServiceError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Download failed (HTTP %d)", resp.StatusCode),
		}
	}

	return &domain.ServiceError{StatusCode: resp.StatusCode, Message: body.Message}
}
