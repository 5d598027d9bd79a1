// Package output computes log windows over the chronological entries of an
// execution. The windowing is purely local: the full fetched sequence goes
// in, a suffix of it comes out, order untouched.
package output

import "github.com/ehsaniara/rundeck-mcp/internal/rundeck/domain"

// Window selects the entries to return.
//
// lastLines keeps only the most recent N entries (0 = all available);
// maxLines is a hard ceiling applied after that selection, truncating from
// the oldest end so the most recent maxLines entries survive (0 = no
// ceiling). Asking for more lines than exist returns everything, not an
// error. The result preserves chronological order.
func Window(entries []domain.LogEntry, lastLines, maxLines int) []domain.LogEntry {
	selected := entries
	if lastLines > 0 && lastLines < len(selected) {
		selected = selected[len(selected)-lastLines:]
	}
	if maxLines > 0 && maxLines < len(selected) {
		selected = selected[len(selected)-maxLines:]
	}
	return selected
}
