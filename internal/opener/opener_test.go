package opener

import "testing"

func TestBrowser_Command(t *testing.T) {
	tests := []struct {
		goos     string
		expected string
	}{
		{"linux", "xdg-open"},
		{"freebsd", "xdg-open"},
		{"darwin", "open"},
		{"windows", "rundll32"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			b := &Browser{goos: tt.goos}
			name, args := b.Command("http://svc/download-file/a")
			if name != tt.expected {
				t.Errorf("command = %q, want %q", name, tt.expected)
			}
			if args[len(args)-1] != "http://svc/download-file/a" {
				t.Errorf("url should be the last argument: %v", args)
			}
		})
	}
}

func TestFunc(t *testing.T) {
	var got string
	var o Opener = Func(func(url string) error {
		got = url
		return nil
	})

	if err := o.Open("x"); err != nil || got != "x" {
		t.Errorf("Func.Open: got %q, err %v", got, err)
	}
}
