package platform

import "strings"

// Entry maps a URL substring to the platform display name.
type Entry struct {
	Key  string
	Name string
}

// table order is the tie-break: the first key contained in the URL wins.
var table = []Entry{
	{"youtube.com", "YouTube"},
	{"youtu.be", "YouTube"},
	{"instagram.com", "Instagram"},
	{"tiktok.com", "TikTok"},
	{"twitter.com", "Twitter"},
	{"x.com", "Twitter"},
	{"facebook.com", "Facebook"},
	{"fb.watch", "Facebook"},
	{"reddit.com", "Reddit"},
}

// Detect returns the display name of the first table entry contained in urlText.
func Detect(urlText string) (string, bool) {
	urlText = strings.ToLower(urlText)

	for _, e := range table {
		if strings.Contains(urlText, e.Key) {
			return e.Name, true
		}
	}

	return "", false
}

// Table returns a copy of the detection table in lookup order.
func Table() []Entry {
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}
