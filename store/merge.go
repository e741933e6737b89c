package store

import "cyberlearn/models/content"

// Merge reconciles a candidate list (remote or mirrored data) with the seed
// catalog: every candidate is taken once, first occurrence per id winning,
// then every default whose id is not already present is appended in seed
// order. A backend record therefore always shadows a same-id seed entry, and
// the seed fills any gaps so the result is never emptier than the defaults.
func Merge(candidates, defaults []content.ContentItem) []content.ContentItem {
	seen := make(map[string]bool, len(candidates)+len(defaults))
	out := make([]content.ContentItem, 0, len(candidates)+len(defaults))

	for _, it := range candidates {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	for _, it := range defaults {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}

	return out
}
