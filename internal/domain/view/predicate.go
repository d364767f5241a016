// Package view derives the displayed doctor lists from the directory records.
// Every function here is pure: records and filters are read, never modified.
package view

import (
	"strings"

	"go-doctor-directory/internal/domain/entity"

	"golang.org/x/text/cases"
)

// Predicate decides whether a single doctor is part of a view.
type Predicate func(d *entity.Doctor) bool

// fold returns the caseless form of s. A Caser keeps state, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// containsFolded expects foldedSubstr to be folded already.
func containsFolded(s, foldedSubstr string) bool {
	return strings.Contains(fold(s), foldedSubstr)
}

// MatchesName reports whether the doctor's name contains query, ignoring case.
// An empty query matches every doctor.
func MatchesName(d *entity.Doctor, query string) bool {
	if query == "" {
		return true
	}
	return containsFolded(d.Name, fold(query))
}

func MatchesConsultationType(d *entity.Doctor, t entity.ConsultationType) bool {
	switch t {
	case entity.ConsultationTypeVideo:
		return d.VideoConsult
	case entity.ConsultationTypeClinic:
		return d.InClinic
	default:
		return true
	}
}

// MatchesSpecialties reports whether the doctor has at least one of the selected specialties.
// selected holds normalized names. An empty selection matches every doctor.
func MatchesSpecialties(d *entity.Doctor, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range d.Specialities {
		name := entity.NormalizeSpecialtyName(s.Name)
		for _, want := range selected {
			if name == want {
				return true
			}
		}
	}
	return false
}

// FilterPredicates returns the predicates a filter activates. Inactive dimensions are omitted.
func FilterPredicates(filter entity.DoctorFilter) []Predicate {
	filter = filter.Normalize()

	var preds []Predicate
	if filter.Name != "" {
		name := fold(filter.Name)
		preds = append(preds, func(d *entity.Doctor) bool {
			return containsFolded(d.Name, name)
		})
	}
	if filter.ConsultationType != entity.ConsultationTypeUnset {
		t := filter.ConsultationType
		preds = append(preds, func(d *entity.Doctor) bool {
			return MatchesConsultationType(d, t)
		})
	}
	if len(filter.Specialties) > 0 {
		selected := filter.Specialties
		preds = append(preds, func(d *entity.Doctor) bool {
			return MatchesSpecialties(d, selected)
		})
	}
	return preds
}

// All combines predicates with logical AND. No predicates match everything.
func All(preds ...Predicate) Predicate {
	return func(d *entity.Doctor) bool {
		for _, p := range preds {
			if !p(d) {
				return false
			}
		}
		return true
	}
}
