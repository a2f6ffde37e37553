package analytics

import (
	"errors"
	"sort"

	"redpulse/internal/snapshot"
)

// ErrNoRelease is returned when no version name was given and no open
// issue carries one either.
var ErrNoRelease = errors.New("no release/version found")

// Release reports delivery progress for one version. With an empty
// scope.VersionName it falls back to the version most open issues point
// at, which is usually the release currently being worked.
func Release(rows []snapshot.Row, scope Scope) (*ReleaseStatus, error) {
	versionName := scope.VersionName
	if versionName == "" {
		versionName = busiestOpenVersion(scope.filter(rows))
		if versionName == "" {
			return nil, ErrNoRelease
		}
	}

	scoped := Scope{ProjectID: scope.ProjectID, VersionName: versionName}.filter(rows)
	st := &ReleaseStatus{
		Name:    versionName,
		Total:   len(scoped),
		DueDate: "Not set",
	}
	for _, r := range scoped {
		if r.StatusClosed {
			st.Completed++
		}
		if st.DueDate == "Not set" && r.DueDate != nil {
			st.DueDate = r.DueDate.Format("2006-01-02")
		}
	}
	st.Unresolved = st.Total - st.Completed
	st.Progress = percent(st.Completed, st.Total)
	return st, nil
}

func busiestOpenVersion(rows []snapshot.Row) string {
	counts := map[string]int{}
	for _, r := range rows {
		if !r.StatusClosed && r.VersionName != "" {
			counts[r.VersionName]++
		}
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
