package dashboard

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/elsanchez/bakraload/internal/controller"
	"github.com/elsanchez/bakraload/internal/domain"
	"github.com/elsanchez/bakraload/internal/logging"
	"github.com/elsanchez/bakraload/internal/mockservice"
	"github.com/elsanchez/bakraload/internal/opener"
	"github.com/elsanchez/bakraload/internal/status"
	"github.com/elsanchez/bakraload/pkg/client"
)

type harness struct {
	model  Model
	board  *status.Board
	svc    *mockservice.Service
	opened []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	svc, err := mockservice.New(mockservice.Config{
		Mode:   domain.ModeJSON,
		Dir:    filepath.Join(t.TempDir(), "store"),
		Logger: logging.Discard(),
	})
	if err != nil {
		t.Fatalf("failed to create mock service: %v", err)
	}
	server := httptest.NewServer(svc.Handler())
	t.Cleanup(server.Close)

	h := &harness{board: status.NewBoard(), svc: svc}
	ctrl := controller.New(client.New(server.URL), h.board,
		controller.WithLogger(logging.Discard()),
		controller.WithOpener(opener.Func(func(url string) error {
			h.opened = append(h.opened, url)
			return nil
		})),
	)
	h.model = NewModel(context.Background(), ctrl, h.board, domain.FormatNone)

	// A blinking cursor schedules timed commands on every keystroke
	h.model.urlInput.Cursor.SetMode(cursor.CursorStatic)
	h.model.bulkInput.Cursor.SetMode(cursor.CursorStatic)
	return h
}

// send feeds msg to the model and runs returned commands until none is left.
func (h *harness) send(t *testing.T, msg tea.Msg) {
	t.Helper()

	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		updated, cmd := h.model.Update(next)
		h.model = updated.(Model)
		queue = append(queue, drain(cmd)...)
	}
}

// drain runs cmd and keeps only the messages this model produces.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, drain(c)...)
		}
		return out
	case intentDoneMsg:
		return []tea.Msg{msg}
	default:
		return nil
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (h *harness) typeText(t *testing.T, s string) {
	for _, r := range s {
		h.send(t, keyRunes(string(r)))
	}
}

func TestUpdate_SingleSubmit(t *testing.T) {
	h := newHarness(t)

	h.typeText(t, "https://youtu.be/abc")
	if got := h.board.Blocks(status.RegionSingle); len(got) != 1 || got[0].Text() != "Detected: YouTube" {
		t.Errorf("detection block = %+v", got)
	}

	h.send(t, tea.KeyMsg{Type: tea.KeyEnter})

	blocks := h.board.Blocks(status.RegionSingle)
	if len(blocks) != 1 || blocks[0].Severity != status.SeveritySuccess {
		t.Fatalf("blocks = %+v", blocks)
	}
	if !strings.Contains(blocks[0].Text(), "Platform: YouTube") {
		t.Errorf("block = %q", blocks[0].Text())
	}
	if h.model.urlInput.Value() != "" {
		t.Errorf("input should be cleared, got %q", h.model.urlInput.Value())
	}
	if h.svc.Calls("POST /download") != 1 {
		t.Errorf("download calls = %d", h.svc.Calls("POST /download"))
	}
}

func TestUpdate_EmptySubmitStaysLocal(t *testing.T) {
	h := newHarness(t)

	h.send(t, tea.KeyMsg{Type: tea.KeyEnter})

	if got := h.board.Blocks(status.RegionSingle); len(got) != 1 || got[0].Text() != "Please enter a valid URL" {
		t.Errorf("blocks = %+v", got)
	}
	if h.svc.TotalCalls() != 0 {
		t.Errorf("service calls = %d, want 0", h.svc.TotalCalls())
	}
}

func TestUpdate_FailedSubmitKeepsInput(t *testing.T) {
	h := newHarness(t)

	h.typeText(t, "https://www.reddit.com/r/fail/1")
	h.send(t, tea.KeyMsg{Type: tea.KeyEnter})

	blocks := h.board.Blocks(status.RegionSingle)
	if len(blocks) != 1 || blocks[0].Severity != status.SeverityError {
		t.Errorf("blocks = %+v", blocks)
	}
	if h.model.urlInput.Value() == "" {
		t.Error("input should be kept after a failure")
	}
}

func TestUpdate_TabCycle(t *testing.T) {
	h := newHarness(t)

	want := []controller.Tab{controller.TabBulk, controller.TabDownloads, controller.TabSingle}
	for _, tab := range want {
		h.send(t, tea.KeyMsg{Type: tea.KeyTab})
		if got := h.model.ctrl.ActiveTab(); got != tab {
			t.Fatalf("active tab = %v, want %v", got, tab)
		}
	}

	h.send(t, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := h.model.ctrl.ActiveTab(); got != controller.TabDownloads {
		t.Errorf("shift+tab = %v, want Downloads", got)
	}

	// Entering the downloads tab refreshed the listing both times
	if n := h.svc.Calls("GET /downloads"); n != 2 {
		t.Errorf("listing calls = %d, want 2", n)
	}
	if !h.model.ctrl.Listing().Empty() {
		t.Errorf("listing = %+v", h.model.ctrl.Listing())
	}
}

func TestUpdate_BulkSubmit(t *testing.T) {
	h := newHarness(t)
	h.send(t, keyAlt("2"))

	h.typeText(t, "https://youtu.be/a")
	h.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	h.typeText(t, "https://x.com/u/status/1")
	h.send(t, tea.KeyMsg{Type: tea.KeyCtrlS})

	blocks := h.board.Blocks(status.RegionBulk)
	if len(blocks) != 1 {
		t.Fatalf("blocks = %+v", blocks)
	}
	lines := blocks[0].Lines
	if len(lines) != 4 || !strings.HasPrefix(lines[2], "✓ URL 1:") || !strings.HasPrefix(lines[3], "✓ URL 2:") {
		t.Errorf("lines = %q", lines)
	}
	if h.model.bulkInput.Value() != "" {
		t.Errorf("textarea should be cleared, got %q", h.model.bulkInput.Value())
	}
}

func TestUpdate_DownloadsActions(t *testing.T) {
	h := newHarness(t)

	h.typeText(t, "https://youtu.be/abc")
	h.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	h.send(t, keyAlt("3"))

	items := h.model.ctrl.Listing().Items
	if len(items) != 1 {
		t.Fatalf("items = %+v", items)
	}

	h.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	if len(h.opened) != 1 || !strings.Contains(h.opened[0], "/download-file/") {
		t.Errorf("opened = %v", h.opened)
	}

	// Declined confirmation leaves the store alone
	h.send(t, keyRunes("c"))
	if h.model.currentView != viewConfirm {
		t.Fatal("c should open the confirmation dialog")
	}
	h.send(t, keyRunes("n"))
	if h.model.currentView != viewTabs || h.svc.Calls("POST /clear-downloads") != 0 {
		t.Error("declined clear should not call the service")
	}

	h.send(t, keyRunes("c"))
	h.send(t, keyRunes("y"))
	if h.svc.Calls("POST /clear-downloads") != 1 {
		t.Errorf("clear calls = %d", h.svc.Calls("POST /clear-downloads"))
	}
	if !h.model.ctrl.Listing().Empty() {
		t.Errorf("listing after clear = %+v", h.model.ctrl.Listing())
	}
	if !strings.Contains(h.model.View(), "No downloads yet") {
		t.Error("empty state should be rendered")
	}
}

func TestUpdate_FormatCycle(t *testing.T) {
	h := newHarness(t)

	for _, want := range []domain.Format{domain.FormatDefault, domain.FormatMP4, domain.FormatMP3, domain.FormatNone} {
		h.send(t, tea.KeyMsg{Type: tea.KeyCtrlF})
		if got := h.model.format(); got != want {
			t.Errorf("format = %q, want %q", got, want)
		}
	}
}

func TestView_RendersControls(t *testing.T) {
	h := newHarness(t)

	out := h.model.View()
	for _, want := range []string{"bakraload", "Single", "Bulk", "Downloads", "Download"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func keyAlt(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Alt: true}
}
