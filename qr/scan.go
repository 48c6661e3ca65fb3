package qr

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/alwitt/herbtrace/models"
)

/*
ResolveScannedID extract the herb ID from scanned QR text.

The text is tried, in order, as

  - an absolute URL: the segment after a leading `p` segment, otherwise the last path segment.
    A scheme-less `host:port/path` is read the same way.
  - a JSON object with a string `id` field
  - the herb ID itself

	@param text string - scanned text
	@return herb ID
*/
func ResolveScannedID(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", models.ErrUnresolvable
	}

	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		segments := pathSegments(parsed.Path)
		if parsed.Path == "" && parsed.Opaque != "" {
			// `host:port/...` parses as scheme `host` with an opaque `port/...`
			segments = pathSegments(parsed.Opaque)
			if len(segments) > 0 {
				segments = segments[1:]
			}
		}
		if len(segments) >= 2 && segments[0] == "p" {
			return segments[1], nil
		}
		if len(segments) > 0 {
			return segments[len(segments)-1], nil
		}
	}

	var asObject map[string]any
	if err := json.Unmarshal([]byte(trimmed), &asObject); err == nil {
		if id, ok := asObject["id"].(string); ok {
			return id, nil
		}
	}

	return trimmed, nil
}

func pathSegments(path string) []string {
	segments := make([]string, 0)
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
