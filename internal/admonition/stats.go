// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package admonition

import "sort"

// Stats counts the admonitions found in a document.
type Stats struct {
	Total  int            `json:"total" yaml:"total"`
	ByType map[string]int `json:"by_type,omitempty" yaml:"by_type,omitempty"`
}

// Stats tallies the admonitions of d by type.
func (d Document) Stats() Stats {
	s := Stats{ByType: map[string]int{}}
	for _, a := range d.Admonitions() {
		s.Total++
		s.ByType[a.Type]++
	}
	return s
}

// Types returns the distinct admonition types in sorted order.
func (s Stats) Types() []string {
	types := make([]string, 0, len(s.ByType))
	for t := range s.ByType {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
