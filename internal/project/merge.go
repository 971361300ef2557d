package project

import "sort"

// Merge combines several catalogs into one. Projects are keyed by
// name; when the same name appears more than once, the entry with the
// higher star count wins, and on a tie the earlier occurrence is kept.
// Entries without a name are dropped. The result is ordered by stars
// descending, then name, so merged files are deterministic.
func Merge(lists ...[]Project) []Project {
	byName := make(map[string]Project)
	for _, list := range lists {
		for _, p := range list {
			if p.Name == "" {
				continue
			}
			if cur, ok := byName[p.Name]; ok && p.Stars <= cur.Stars {
				continue
			}
			byName[p.Name] = p
		}
	}

	merged := make([]Project, 0, len(byName))
	for _, p := range byName {
		merged = append(merged, p)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Stars != merged[j].Stars {
			return merged[i].Stars > merged[j].Stars
		}
		return merged[i].Name < merged[j].Name
	})
	return merged
}
