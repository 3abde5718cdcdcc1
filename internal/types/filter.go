//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// StatusAll is the list filter value meaning "any status".
const StatusAll = "All"

// ListFilter narrows a user's application list.
type ListFilter struct {
	Status string // exact match; empty or "All" disables the filter
	Search string // case-insensitive substring of company or role
}

// FilterApplications applies f to apps and returns the matching subset in the original order.
// The result is never nil.
func FilterApplications(apps []Application, f ListFilter) []Application {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Application, 0, len(apps))
	for _, app := range apps {
		if f.Status != "" && f.Status != StatusAll && string(app.Status) != f.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(app.Company), search) &&
			!strings.Contains(strings.ToLower(app.Role), search) {
			continue
		}
		out = append(out, app)
	}
	return out
}
