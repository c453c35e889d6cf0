package domain

import "strings"

// ResultStatus representa el status que reporta el servicio
type ResultStatus string

const (
	ResultSuccess ResultStatus = "success"
	ResultError   ResultStatus = "error"
)

// DownloadRequest es el body de POST /download
type DownloadRequest struct {
	URL    string `json:"url"`
	Format Format `json:"format,omitempty"`
}

// BulkDownloadRequest es el body de POST /bulk-download
type BulkDownloadRequest struct {
	URLs   []string `json:"urls"`
	Format Format   `json:"format,omitempty"`
}

// DownloadResult es la respuesta JSON de una descarga individual
type DownloadResult struct {
	Status   ResultStatus `json:"status"`
	Message  string       `json:"message"`
	Title    string       `json:"title,omitempty"`
	Platform string       `json:"platform,omitempty"`
}

// IsSuccess retorna true solo si el servicio reportó "success"
func (r *DownloadResult) IsSuccess() bool {
	return r.Status == ResultSuccess
}

// BulkDownloadResult es la respuesta JSON de una descarga masiva.
// Results está alineado posicionalmente con las URLs enviadas.
type BulkDownloadResult struct {
	Status  ResultStatus     `json:"status"`
	Message string           `json:"message"`
	Results []DownloadResult `json:"results"`
}

// IsSuccess retorna true solo si el servicio reportó "success"
func (r *BulkDownloadResult) IsSuccess() bool {
	return r.Status == ResultSuccess
}

// StatusResponse es la respuesta genérica {status, message}
type StatusResponse struct {
	Status  ResultStatus `json:"status"`
	Message string       `json:"message"`
}

// IsSuccess retorna true solo si el servicio reportó "success"
func (r *StatusResponse) IsSuccess() bool {
	return r.Status == ResultSuccess
}

// SplitURLs divide el texto multilínea en URLs.
// Las líneas vacías se descartan; el orden y los duplicados se conservan.
func SplitURLs(raw string) []string {
	lines := strings.Split(raw, "\n")
	urls := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}

	return urls
}
