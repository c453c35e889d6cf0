package domain

// ArtifactType distingue archivos de carpetas en el listado
type ArtifactType string

const (
	ArtifactFile   ArtifactType = "file"
	ArtifactFolder ArtifactType = "folder"
)

// ArtifactItem es un archivo o carpeta guardado por el servicio.
// Size aplica a archivos y FileCount a carpetas.
type ArtifactItem struct {
	Name      string       `json:"name"`
	Type      ArtifactType `json:"type"`
	Size      int64        `json:"size,omitempty"`
	FileCount int          `json:"file_count,omitempty"`
}

// IsFile retorna true si el item es un archivo
func (a *ArtifactItem) IsFile() bool {
	return a.Type == ArtifactFile
}

// IsFolder retorna true si el item es una carpeta
func (a *ArtifactItem) IsFolder() bool {
	return a.Type == ArtifactFolder
}

// ArtifactListing es la respuesta de GET /downloads
type ArtifactListing struct {
	Items []ArtifactItem `json:"items"`
}

// PlatformCatalog es la respuesta de GET /supported-platforms
type PlatformCatalog struct {
	VideoPlatforms  []string `json:"video_platforms"`
	SocialPlatforms []string `json:"social_platforms"`
	Features        []string `json:"features"`
}
