package mockservice

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/elsanchez/bakraload/internal/domain"
	"github.com/elsanchez/bakraload/internal/platform"
)

var (
	errInvalidURL = errors.New("Invalid or unsupported URL.")
	errNoContent  = errors.New("No downloadable content found.")
)

type downloadPayload struct {
	URL    string        `json:"url"`
	URLs   []string      `json:"urls"`
	Format domain.Format `json:"format"`
}

// fetched is one fake download written into the store.
type fetched struct {
	path     string
	title    string
	platform string
}

func (s *Service) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req downloadPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "No URL provided.")
		return
	}

	item, err := s.fetch(s.dir, rawURL, req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.mode == domain.ModeBlob {
		defer os.Remove(item.path)
		serveAttachment(w, item.path, filepath.Base(item.path), "application/octet-stream")
		return
	}

	writeJSON(w, http.StatusOK, domain.DownloadResult{
		Status:   domain.ResultSuccess,
		Message:  fmt.Sprintf("%s content downloaded successfully!", item.platform),
		Title:    item.title,
		Platform: item.platform,
	})
}

func (s *Service) handleBulkDownload(w http.ResponseWriter, r *http.Request) {
	var req downloadPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if len(req.URLs) == 0 {
		writeError(w, http.StatusBadRequest, "No URLs provided.")
		return
	}

	batchID := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	batchDir := filepath.Join(s.dir, "bulk_"+batchID)
	if err := os.MkdirAll(batchDir, 0755); err != nil {
		writeError(w, http.StatusInternalServerError, "Bulk download error.")
		return
	}

	results := make([]domain.DownloadResult, 0, len(req.URLs))
	var errs []string
	succeeded := 0

	for i, rawURL := range req.URLs {
		item, err := s.fetch(batchDir, rawURL, req.Format)
		if err != nil {
			results = append(results, domain.DownloadResult{Status: domain.ResultError, Message: err.Error()})
			errs = append(errs, fmt.Sprintf("URL %d: %s", i+1, err.Error()))
			continue
		}
		succeeded++
		results = append(results, domain.DownloadResult{
			Status:   domain.ResultSuccess,
			Message:  fmt.Sprintf("%s content downloaded successfully!", item.platform),
			Title:    item.title,
			Platform: item.platform,
		})
	}

	if s.mode == domain.ModeBlob {
		defer os.RemoveAll(batchDir)
		if succeeded == 0 {
			writeError(w, http.StatusBadRequest, "No downloadable content found.\n"+strings.Join(errs, "\n"))
			return
		}

		zipPath := filepath.Join(s.dir, "Bulk_vid_"+batchID+".zip")
		defer os.Remove(zipPath)
		if err := zipDir(batchDir, zipPath); err != nil {
			writeError(w, http.StatusInternalServerError, "Bulk download error.")
			return
		}
		serveAttachment(w, zipPath, filepath.Base(zipPath), "application/zip")
		return
	}

	if succeeded == 0 {
		os.RemoveAll(batchDir)
	}

	writeJSON(w, http.StatusOK, domain.BulkDownloadResult{
		Status:  domain.ResultSuccess,
		Message: fmt.Sprintf("Processed %d URLs (%d succeeded, %d failed)", len(req.URLs), succeeded, len(req.URLs)-succeeded),
		Results: results,
	})
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]domain.ArtifactItem, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			files, _ := os.ReadDir(filepath.Join(s.dir, e.Name()))
			items = append(items, domain.ArtifactItem{
				Name:      e.Name(),
				Type:      domain.ArtifactFolder,
				FileCount: len(files),
			})
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}
		items = append(items, domain.ArtifactItem{
			Name: e.Name(),
			Type: domain.ArtifactFile,
			Size: info.Size(),
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	writeJSON(w, http.StatusOK, domain.ArtifactListing{Items: items})
}

func (s *Service) handleFile(w http.ResponseWriter, r *http.Request) {
	name, ok := s.itemParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	serveAttachment(w, path, name, "application/octet-stream")
}

func (s *Service) handleFolder(w http.ResponseWriter, r *http.Request) {
	name, ok := s.itemParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	dir := filepath.Join(s.dir, name)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		http.NotFound(w, r)
		return
	}

	tmp, err := os.CreateTemp("", "bakra-mock-*.zip")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := zipDir(dir, tmp.Name()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	serveAttachment(w, tmp.Name(), name+".zip", "application/zip")
}

func (s *Service) handleClear(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.dir, e.Name())); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("remove %s: %v", e.Name(), err))
			return
		}
	}

	writeJSON(w, http.StatusOK, domain.StatusResponse{
		Status:  domain.ResultSuccess,
		Message: fmt.Sprintf("Cleared %d items", len(entries)),
	})
}

func (s *Service) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.PlatformCatalog{
		VideoPlatforms: []string{
			"YouTube (videos, shorts, playlists)", "TikTok", "Twitter/X", "Facebook",
			"Instagram (Reels, IGTV)", "Reddit", "Twitch", "Vimeo", "Dailymotion",
		},
		SocialPlatforms: []string{
			"Instagram (Posts, Stories, Reels, IGTV)", "Twitter/X (Tweets, Threads)",
			"Facebook (Posts, Videos)", "Reddit (Posts, Images, Videos)",
			"LinkedIn (Posts)", "Pinterest (Pins)",
		},
		Features: []string{
			"Auto-platform detection", "Bulk downloads", "Stories download",
			"Playlist support", "High quality downloads", "Metadata preservation",
			"Subtitle downloads",
		},
	})
}

// fetch simulates a download of rawURL into dir.
func (s *Service) fetch(dir, rawURL string, format domain.Format) (*fetched, error) {
	rawURL = strings.TrimSpace(rawURL)
	lower := strings.ToLower(rawURL)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return nil, errInvalidURL
	}
	if strings.Contains(lower, s.failMarker) {
		return nil, errNoContent
	}

	name, ok := platform.Detect(rawURL)
	if !ok {
		name = "Generic"
	}

	ext := ".mp4"
	if format == domain.FormatMP3 {
		ext = ".mp3"
	}

	title := "Video " + uuid.NewString()[:8]
	path := filepath.Join(dir, name+"_"+strings.ReplaceAll(title, " ", "_")+ext)
	if err := os.WriteFile(path, []byte("fake media for "+rawURL+"\n"), 0644); err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}

	return &fetched{path: path, title: title, platform: name}, nil
}

// itemParam returns the decoded {name} parameter if it names a direct child of the store.
func (s *Service) itemParam(r *http.Request) (string, bool) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		return "", false
	}
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", false
	}
	return name, true
}

func serveAttachment(w http.ResponseWriter, path, filename, contentType string) {
	f, err := os.Open(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		w.Header().Set("Content-Length", fmt.Sprint(info.Size()))
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	io.Copy(w, f)
}

func zipDir(dir, zipPath string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	err = filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		dst, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		src, err := os.Open(p)
		if err != nil {
			return err
		}
		defer src.Close()

		_, err = io.Copy(dst, src)
		return err
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("zip %s: %w", dir, err)
	}

	return zw.Close()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, domain.StatusResponse{Status: domain.ResultError, Message: message})
}
