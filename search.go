// Package deepresearch decomposes a research question into sub-questions,
// investigates each one with a pluggable search capability, and merges the
// findings into a single cited report.
package deepresearch

import (
	"context"
	"fmt"
	"strings"
)

// SearchFunc is the capability an Investigator uses to gather evidence. The
// result must be renderable as text; implementations own transport, auth and
// timeouts.
type SearchFunc func(ctx context.Context, query string) (string, error)

// CannedSearch returns a deterministic search capability suitable for tests
// and offline runs: a fixed three-item result set echoing the query.
func CannedSearch() SearchFunc {
	return func(_ context.Context, query string) (string, error) {
		slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(query)), " ", "-")
		var b strings.Builder
		fmt.Fprintf(&b, "Results for: %s\n\n", query)
		for i := 1; i <= 3; i++ {
			fmt.Fprintf(&b, "[Reference %d on %s] Background material covering %s, part %d.\n", i, query, query, i)
			fmt.Fprintf(&b, "URL: https://example.com/%s/%d\n\n", slug, i)
		}
		return strings.TrimRight(b.String(), "\n"), nil
	}
}
