package view

import "go-doctor-directory/internal/domain/entity"

// DefaultSuggestionLimit caps the suggestion dropdown.
const DefaultSuggestionLimit = 5

// Suggest returns up to limit doctors, in store order, whose name or any specialty
// contains query, ignoring case. Unlike Reduce, an empty query yields no doctors.
func Suggest(records []entity.Doctor, query string, limit int) []entity.Doctor {
	if query == "" || limit <= 0 {
		return []entity.Doctor{}
	}

	out := make([]entity.Doctor, 0, min(limit, len(records)))

	q := fold(query)
	for i := range records {
		if len(out) == limit {
			break
		}
		if matchesSuggestion(&records[i], q) {
			out = append(out, records[i])
		}
	}
	return out
}

func matchesSuggestion(d *entity.Doctor, foldedQuery string) bool {
	if containsFolded(d.Name, foldedQuery) {
		return true
	}
	for _, s := range d.Specialities {
		if containsFolded(s.Name, foldedQuery) {
			return true
		}
	}
	return false
}

// CollectSpecialties returns every distinct normalized specialty name in first-seen order.
func CollectSpecialties(records []entity.Doctor) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for i := range records {
		for _, s := range records[i].Specialities {
			name := entity.NormalizeSpecialtyName(s.Name)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}
