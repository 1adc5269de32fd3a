package filesystem

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath turns an import location into a local path. It accepts
// bare paths, file:// URIs (percent-escapes decoded, host "localhost"
// ignored) and a leading "~/" for the home directory.
func ResolvePath(uri string) string {
	if rest, ok := strings.CutPrefix(uri, "file://"); ok {
		rest = strings.TrimPrefix(rest, "localhost")
		if decoded, err := url.PathUnescape(rest); err == nil {
			rest = decoded
		}
		return rest
	}
	if rest, ok := strings.CutPrefix(uri, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return uri
}
