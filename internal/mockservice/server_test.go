package mockservice

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elsanchez/bakraload/internal/domain"
)

func newServer(t *testing.T, mode domain.ResponseMode) (*Service, *httptest.Server, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "store")
	svc, err := New(Config{Mode: mode, Dir: dir})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	server := httptest.NewServer(svc.Handler())
	t.Cleanup(server.Close)
	return svc, server, dir
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestCallsByRoutePattern(t *testing.T) {
	svc, server, dir := newServer(t, domain.ModeJSON)
	os.WriteFile(filepath.Join(dir, "a.mp4"), []byte("x"), 0644)

	for _, path := range []string{"/download-file/a.mp4", "/download-file/missing", "/downloads"} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
	}

	if n := svc.Calls("GET /download-file/{name}"); n != 2 {
		t.Errorf("file calls = %d, want 2", n)
	}
	if n := svc.TotalCalls(); n != 3 {
		t.Errorf("total calls = %d, want 3", n)
	}
}

func TestDownload_Modes(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		_, server, dir := newServer(t, domain.ModeJSON)

		resp := post(t, server.URL+"/download", map[string]string{"url": "https://youtu.be/x", "format": "mp3"})
		defer resp.Body.Close()

		var result domain.DownloadResult
		json.NewDecoder(resp.Body).Decode(&result)
		if !result.IsSuccess() || result.Platform != "YouTube" {
			t.Errorf("result = %+v", result)
		}

		entries, _ := os.ReadDir(dir)
		if len(entries) != 1 || filepath.Ext(entries[0].Name()) != ".mp3" {
			t.Errorf("store = %v", entries)
		}
	})

	t.Run("blob", func(t *testing.T) {
		_, server, dir := newServer(t, domain.ModeBlob)

		resp := post(t, server.URL+"/download", map[string]string{"url": "https://x.com/u/status/1"})
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, `filename="Twitter_Video_`) {
			t.Errorf("Content-Disposition = %q", cd)
		}
		if !strings.Contains(string(body), "https://x.com/u/status/1") {
			t.Errorf("body = %q", body)
		}

		entries, _ := os.ReadDir(dir)
		if len(entries) != 0 {
			t.Errorf("blob mode should not keep artifacts: %v", entries)
		}
	})
}

func TestBulkDownload_BlobZip(t *testing.T) {
	_, server, _ := newServer(t, domain.ModeBlob)

	resp := post(t, server.URL+"/bulk-download", map[string][]string{
		"urls": {"https://youtu.be/a", "https://fail.test/b", "https://www.tiktok.com/@u/video/1"},
	})
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %q", resp.StatusCode, body)
	}

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		t.Fatalf("response is not a zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Errorf("zip entries = %d, want 2", len(zr.File))
	}
}

func TestItemParam_RejectsTraversal(t *testing.T) {
	_, server, _ := newServer(t, domain.ModeJSON)

	for _, name := range []string{"..", "%2E%2E", "a%2Fb"} {
		resp, err := http.Get(server.URL + "/download-folder/" + name)
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", name, resp.StatusCode)
		}
	}
}
