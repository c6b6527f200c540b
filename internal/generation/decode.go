package generation

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// maxSearchDepth bounds the recursive image URL scan.
const maxSearchDepth = 5

var (
	imageExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".gif", ".bmp", ".svg"}
	imageHosts      = []string{
		"images.gen-api.ru",
		"replicate.delivery",
		"fal.media",
		"oaidalleapiprodscus",
	}

	// Probe order matters: the first valid candidate wins.
	directImagePaths = [][]any{
		{"output"},
		{"result", "output"},
		{"result", "images", 0},
		{"images", 0},
		{"image_url"},
		{"url"},
	}
	singleImageKeys = []string{"output", "url", "image_url", "image", "img", "src", "source", "link"}
	arrayImageKeys  = []string{"images", "outputs", "results", "data"}
)

// Decode reads a finished job as the requested kind of result.
func Decode(kind ResultKind, raw map[string]any) (Result, error) {
	switch kind {
	case ResultText:
		text, err := ExtractText(raw)
		if err != nil {
			return Result{}, err
		}
		return TextResult(text), nil
	case ResultImageURL:
		u, ok := ExtractImageURL(raw)
		if !ok {
			return Result{}, ErrMissingImageURL
		}
		return ImageURLResult(u), nil
	default:
		return Result{}, fmt.Errorf("unknown result kind %q: %w", kind, ErrDecodeFailure)
	}
}

// ExtractText returns the first textual payload found in a finished job.
func ExtractText(raw map[string]any) (string, error) {
	probes := [][]any{
		{"full_response", 0, "message", "content"},
		{"result", "choices", 0, "message", "content"},
		{"result", "text"},
	}
	for _, path := range probes {
		if s, ok := lookup(raw, path...).(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), nil
		}
	}
	switch result := lookup(raw, "result").(type) {
	case string:
		if strings.TrimSpace(result) != "" {
			return strings.TrimSpace(result), nil
		}
	case []any:
		lines := make([]string, 0, len(result))
		for _, item := range result {
			switch v := item.(type) {
			case string:
				lines = append(lines, v)
			case float64, bool:
				lines = append(lines, fmt.Sprint(v))
			}
		}
		if joined := strings.Join(lines, "\n"); strings.TrimSpace(joined) != "" {
			return strings.TrimSpace(joined), nil
		}
	}
	return "", ErrDecodeFailure
}

// ExtractImageURL returns the first image URL in a finished job. Direct fields
// are probed first, then the object graph is scanned up to maxSearchDepth.
// Sibling objects are visited in alphabetical key order.
func ExtractImageURL(raw map[string]any) (string, bool) {
	for _, path := range directImagePaths {
		if s, ok := lookup(raw, path...).(string); ok && IsImageURL(s) {
			return strings.TrimSpace(s), true
		}
	}
	if found := searchImageURL(raw, 0); found != "" {
		return found, true
	}
	return "", false
}

// IsImageURL accepts http(s) URLs that either end in an image extension or
// point at a known image host.
func IsImageURL(s string) bool {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	if parsed, err := url.Parse(s); err == nil {
		path := strings.ToLower(parsed.Path)
		for _, ext := range imageExtensions {
			if strings.HasSuffix(path, ext) {
				return true
			}
		}
	}
	for _, host := range imageHosts {
		if strings.Contains(lower, host) {
			return true
		}
	}
	return false
}

func searchImageURL(node any, depth int) string {
	if depth > maxSearchDepth {
		return ""
	}
	switch v := node.(type) {
	case map[string]any:
		return searchObject(v, depth)
	case []any:
		for _, item := range v {
			switch item.(type) {
			case map[string]any, []any:
				if found := searchImageURL(item, depth+1); found != "" {
					return found
				}
			}
		}
	}
	return ""
}

func searchObject(obj map[string]any, depth int) string {
	for _, key := range singleImageKeys {
		if s, ok := obj[key].(string); ok && IsImageURL(s) {
			return strings.TrimSpace(s)
		}
	}
	scanned := make(map[string]struct{}, len(arrayImageKeys))
	for _, key := range arrayImageKeys {
		items, ok := obj[key].([]any)
		if !ok {
			continue
		}
		scanned[key] = struct{}{}
		for _, item := range items {
			switch v := item.(type) {
			case string:
				if IsImageURL(v) {
					return strings.TrimSpace(v)
				}
			case map[string]any:
				if found := searchImageURL(v, depth+1); found != "" {
					return found
				}
			}
		}
	}
	keys := make([]string, 0, len(obj))
	for key := range obj {
		if _, done := scanned[key]; done {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		switch obj[key].(type) {
		case map[string]any, []any:
			if found := searchImageURL(obj[key], depth+1); found != "" {
				return found
			}
		}
	}
	return ""
}

// lookup walks a path of object keys (string) and array indexes (int).
func lookup(node any, path ...any) any {
	current := node
	for _, step := range path {
		switch key := step.(type) {
		case string:
			obj, ok := current.(map[string]any)
			if !ok {
				return nil
			}
			current = obj[key]
		case int:
			arr, ok := current.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return nil
			}
			current = arr[key]
		default:
			return nil
		}
	}
	return current
}
