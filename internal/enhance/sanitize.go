package enhance

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// plainText strips any markup from model output. The policy escapes entities,
// so they are decoded again to keep the text as the model wrote it.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// sanitizeDocument applies plainText to every string inside a decoded JSON value.
func sanitizeDocument(v any) any {
	switch t := v.(type) {
	case string:
		return plainText(t)
	case map[string]any:
		for k, inner := range t {
			t[k] = sanitizeDocument(inner)
		}
		return t
	case []any:
		for i, inner := range t {
			t[i] = sanitizeDocument(inner)
		}
		return t
	default:
		return v
	}
}
