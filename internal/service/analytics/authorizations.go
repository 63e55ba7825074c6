package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/authlens/change-analytics/internal/domain/change"
)

// AuthorizationCriteria filters the authorization list view. Selector fields
// are exact-match with empty meaning "all"; the search term is a
// case-insensitive substring over name, type, workspace and ID.
type AuthorizationCriteria struct {
	Workspace      string
	DataSourceType string
	Status         change.Status
	SearchTerm     string
}

// FilterAuthorizations applies the criteria and returns a new slice in
// input order.
func FilterAuthorizations(auths []change.Authorization, c AuthorizationCriteria) []change.Authorization {
	result := make([]change.Authorization, 0, len(auths))
	term := strings.TrimSpace(strings.ToLower(c.SearchTerm))

	for _, a := range auths {
		if c.Workspace != "" && a.Workspace != c.Workspace {
			continue
		}
		if c.DataSourceType != "" && a.DataSourceType != c.DataSourceType {
			continue
		}
		if c.Status != "" && a.Status != c.Status {
			continue
		}
		if term != "" && !authorizationMatchesSearch(a, term) {
			continue
		}
		result = append(result, a)
	}
	return result
}

func authorizationMatchesSearch(a change.Authorization, term string) bool {
	for _, field := range []string{a.Name, a.DataSourceType, a.Workspace, a.ID} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// AuthorizationSortField selects the comparison key for the list view
type AuthorizationSortField string

const (
	AuthSortByName      AuthorizationSortField = "name"
	AuthSortByType      AuthorizationSortField = "type"
	AuthSortByWorkspace AuthorizationSortField = "workspace"
	AuthSortByCreatedAt AuthorizationSortField = "createdAt"
	AuthSortByLastUsed  AuthorizationSortField = "lastUsedAt"
	AuthSortByStatus    AuthorizationSortField = "status"
)

// SortAuthorizations returns a new, stably sorted slice. A nil LastUsedAt
// sorts as the zero time, so never-used authorizations group first ascending.
func SortAuthorizations(auths []change.Authorization, field AuthorizationSortField, order SortOrder) []change.Authorization {
	sorted := make([]change.Authorization, len(auths))
	copy(sorted, auths)

	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := compareAuthorizations(sorted[i], sorted[j], field)
		if order == OrderAscending {
			return cmp < 0
		}
		return cmp > 0
	})
	return sorted
}

func compareAuthorizations(a, b change.Authorization, field AuthorizationSortField) int {
	switch field {
	case AuthSortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case AuthSortByType:
		return strings.Compare(a.DataSourceType, b.DataSourceType)
	case AuthSortByWorkspace:
		return strings.Compare(a.Workspace, b.Workspace)
	case AuthSortByLastUsed:
		return compareTimes(timeOrZero(a.LastUsedAt), timeOrZero(b.LastUsedAt))
	case AuthSortByStatus:
		return strings.Compare(string(a.Status), string(b.Status))
	default:
		return compareTimes(a.CreatedAt, b.CreatedAt)
	}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
