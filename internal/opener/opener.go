// Package opener hands retrieval URLs to the desktop without waiting for them.
package opener

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener starts a retrieval of url. It does not wait for the retrieval.
type Opener interface {
	Open(url string) error
}

// Func adapts a function to Opener.
type Func func(url string) error

func (f Func) Open(url string) error {
	return f(url)
}

// Browser opens URLs with the platform's default handler.
type Browser struct {
	goos string
}

// NewBrowser creates an opener for the running OS.
func NewBrowser() *Browser {
	return &Browser{goos: runtime.GOOS}
}

// Command returns the command used to open url.
func (b *Browser) Command(url string) (string, []string) {
	switch b.goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// Open starts the handler and returns without waiting for it to exit.
func (b *Browser) Open(url string) error {
	name, args := b.Command(url)

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}

	// Reap the child in the background
	go cmd.Wait()
	return nil
}
