// Package page reconciles the backend's divergent list-response shapes
// into one canonical paginated structure.
//
// The backend returns at least four layouts for list endpoints: a flat
// array with sibling counters, a nested items object, a notifications
// envelope with its own pagination block, and a handful of ad hoc shapes.
// Normalize tries recognizers in order and never fails; unrecognized
// input yields an empty page rather than an error.
package page

import (
	"encoding/json"
	"math"
	"strconv"
)

// Page is the canonical list result. Pages are 1-based.
type Page struct {
	Items      []any `json:"items"`
	Total      int   `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
}

// List is a typed projection of Page for callers that know the item type.
type List[T any] struct {
	Items      []T
	Total      int
	Page       int
	Size       int
	TotalPages int
}

// Normalize maps any decoded list-response body to a Page. It is total:
// it never panics and always returns a usable Page, and it is idempotent
// on input that is already canonical.
func Normalize(raw any) Page {
	m, _ := raw.(map[string]any)

	// Flat: {data: [...], total, page, size} with counters beside data.
	if m != nil {
		if items, ok := asSlice(m["data"]); ok {
			if _, hasTotal := m["total"]; hasTotal {
				total := toInt(m["total"], 0)
				size := toInt(m["size"], len(items))
				return Page{
					Items:      items,
					Total:      total,
					Page:       toInt(m["page"], 1),
					Size:       size,
					TotalPages: firstInt(ceilDiv(total, size), m["pages"]),
				}
			}
		}
	}

	data, _ := mapField(m, "data")

	// Nested: {data: {items: [...], total, page, size|page_size, ...}}.
	if data != nil {
		if items, ok := asSlice(data["items"]); ok {
			size := toInt(data["size"], 0)
			if size == 0 {
				size = toInt(data["page_size"], len(items))
			}
			totalPages := firstInt(0, data["total_pages"], data["pages"], data["total_page"])
			if totalPages == 0 {
				totalPages = 1
			}
			return Page{
				Items:      items,
				Total:      toInt(data["total"], 0),
				Page:       toInt(data["page"], 1),
				Size:       size,
				TotalPages: totalPages,
			}
		}

		// Notifications: {data: {notifications: [...], pagination: {...}}}.
		if items, ok := asSlice(data["notifications"]); ok {
			p, _ := mapField(data, "pagination")
			return Page{
				Items:      items,
				Total:      toInt(p["total"], len(items)),
				Page:       firstInt(1, p["current_page"], p["page"]),
				Size:       firstInt(len(items), p["per_page"], p["size"]),
				TotalPages: toInt(p["total_pages"], 1),
			}
		}
	}

	// Fallback: best-effort scan of common field placements.
	var items []any
	if s, ok := asSlice(anyField(data, "data")); ok {
		items = s
	} else if s, ok := asSlice(anyField(m, "data")); ok {
		items = s
	} else if s, ok := asSlice(raw); ok {
		items = s
	} else {
		items = []any{}
	}

	// Canonical input replays through here: {items, total, page, size, total_pages}.
	if m != nil {
		if s, ok := asSlice(m["items"]); ok {
			items = s
		}
	}

	return Page{
		Items:      items,
		Total:      firstInt(len(items), field(m, data, "total")...),
		Page:       firstInt(1, field(m, data, "page")...),
		Size:       firstInt(len(items), field(m, data, "size")...),
		TotalPages: firstInt(1, field(m, data, "total_pages")...),
	}
}

// NormalizeJSON decodes raw JSON and normalizes it. Malformed JSON yields
// an empty page.
func NormalizeJSON(data []byte) Page {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Page{Items: []any{}, Page: 1, TotalPages: 1}
	}
	return Normalize(raw)
}

// As re-decodes the items of a Page into a typed List.
func As[T any](p Page) (List[T], error) {
	out := List[T]{
		Items:      make([]T, 0, len(p.Items)),
		Total:      p.Total,
		Page:       p.Page,
		Size:       p.Size,
		TotalPages: p.TotalPages,
	}
	for _, item := range p.Items {
		buf, err := json.Marshal(item)
		if err != nil {
			return out, err
		}
		var v T
		if err := json.Unmarshal(buf, &v); err != nil {
			return out, err
		}
		out.Items = append(out.Items, v)
	}
	return out, nil
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

func mapField(m map[string]any, key string) (map[string]any, bool) {
	if m == nil {
		return nil, false
	}
	sub, ok := m[key].(map[string]any)
	return sub, ok
}

func anyField(m map[string]any, key string) any {
	if m == nil {
		return nil
	}
	return m[key]
}

// field collects a key from the top-level body and the nested data object,
// in that priority, for the fallback recognizer.
func field(m, data map[string]any, key string) []any {
	return []any{anyField(m, key), anyField(data, key)}
}

// firstInt returns the first value that coerces to a positive integer.
func firstInt(def int, candidates ...any) int {
	for _, c := range candidates {
		if n := toInt(c, 0); n != 0 {
			return n
		}
	}
	return def
}

// toInt coerces JSON numerics (float64, json.Number, numeric strings) to
// int. NaN, infinities, and non-numeric values collapse to the default so
// they never leak into a Page.
func toInt(v any, def int) int {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return def
		}
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return def
}

func ceilDiv(total, size int) int {
	if size <= 0 {
		size = 1
	}
	return int(math.Ceil(float64(total) / float64(size)))
}
