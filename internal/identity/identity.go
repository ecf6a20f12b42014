// Package identity resolves whether two candidate submissions belong to the
// same person, using contact identifiers extracted from their materials.
package identity

import "sort"

// Identifier categories, in the order they are compared and reported.
const (
	CategoryEmails   = "emails"
	CategoryPhones   = "phones"
	CategoryLinkedIn = "linkedin"
	CategoryGitHub   = "github"
)

// Categories lists the identifier categories in canonical order.
var Categories = []string{CategoryEmails, CategoryPhones, CategoryLinkedIn, CategoryGitHub}

// Identity holds the normalized contact identifiers for one candidate.
// Each field is a sorted, deduplicated set.
type Identity struct {
	Emails   []string `json:"emails"`
	Phones   []string `json:"phones"`
	LinkedIn []string `json:"linkedin"`
	GitHub   []string `json:"github"`
}

// Category returns the identifier set for a category name.
func (id Identity) Category(name string) []string {
	switch name {
	case CategoryEmails:
		return id.Emails
	case CategoryPhones:
		return id.Phones
	case CategoryLinkedIn:
		return id.LinkedIn
	case CategoryGitHub:
		return id.GitHub
	}
	return nil
}

// HasAny reports whether at least one identifier category is non-empty.
func (id Identity) HasAny() bool {
	for _, cat := range Categories {
		if len(id.Category(cat)) > 0 {
			return true
		}
	}
	return false
}

// Overlap reports whether two identities share at least one identifier in any
// category. Two empty sets never match: absence of evidence is not evidence
// of identity.
func Overlap(a, b Identity) bool {
	for _, cat := range Categories {
		if intersect(a.Category(cat), b.Category(cat)) != nil {
			return true
		}
	}
	return false
}

// SharedCategory describes one identifier category two identities have in
// common, with the shared values.
type SharedCategory struct {
	Category string
	Values   []string
}

// Shared returns the categories where the two identities overlap, in
// canonical category order, with the shared values sorted.
func Shared(a, b Identity) []SharedCategory {
	var shared []SharedCategory
	for _, cat := range Categories {
		if values := intersect(a.Category(cat), b.Category(cat)); values != nil {
			shared = append(shared, SharedCategory{Category: cat, Values: values})
		}
	}
	return shared
}

// Union merges two identities, keeping each category sorted and deduplicated.
func Union(a, b Identity) Identity {
	return Identity{
		Emails:   unionSets(a.Emails, b.Emails),
		Phones:   unionSets(a.Phones, b.Phones),
		LinkedIn: unionSets(a.LinkedIn, b.LinkedIn),
		GitHub:   unionSets(a.GitHub, b.GitHub),
	}
}

func unionSets(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(a)+len(b))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		set[v] = struct{}{}
	}
	return normalizeSet(set)
}

// intersect returns the sorted intersection of two sets, or nil when either
// side is empty or nothing is shared.
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	inA := make(map[string]struct{}, len(a))
	for _, v := range a {
		inA[v] = struct{}{}
	}
	var out []string
	for _, v := range b {
		if _, ok := inA[v]; ok {
			out = append(out, v)
		}
	}
	if out == nil {
		return nil
	}
	sort.Strings(out)
	return dedupSorted(out)
}

// normalizeSet sorts and deduplicates a set built from a map.
func normalizeSet(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func dedupSorted(values []string) []string {
	out := values[:1]
	for _, v := range values[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
