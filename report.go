package equiv

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/equiv/i18n"
)

// Render formats an accumulated failure set as one aggregated, human-readable
// report: every mismatch with its path context, plus a go-cmp diff where one
// was captured.
func Render(ff Failures) string {
	if len(ff) == 0 {
		return "no differences"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "found %d difference(s):\n", len(ff))
	for _, f := range ff {
		path := f.Path
		if path == "" {
			path = "<root>"
		}
		msg := f.Message
		if msg == "" {
			msg = i18n.T(f.Code, nil)
		}
		fmt.Fprintf(&b, "  - %s: %s [%s]\n", path, msg, f.Code)
		if d, ok := f.Params["diff"].(string); ok && d != "" {
			for _, line := range strings.Split(strings.TrimRight(d, "\n"), "\n") {
				fmt.Fprintf(&b, "      %s\n", line)
			}
		}
	}
	return b.String()
}

// safeDiff renders a go-cmp diff of the pair, or "" when the pair cannot be
// diffed (unexported fields without options, mixed types go-cmp rejects).
func safeDiff(expected, actual any) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()
	return cmp.Diff(expected, actual)
}
