package entity

import "slices"

// ConsultationType selects doctors by how they consult. At most one is active.
type ConsultationType string

const (
	ConsultationTypeUnset  ConsultationType = ""
	ConsultationTypeVideo  ConsultationType = "video"
	ConsultationTypeClinic ConsultationType = "clinic"
)

// ParseConsultationType maps any value outside the known set to ConsultationTypeUnset.
func ParseConsultationType(s string) ConsultationType {
	switch ConsultationType(s) {
	case ConsultationTypeVideo, ConsultationTypeClinic:
		return ConsultationType(s)
	default:
		return ConsultationTypeUnset
	}
}

// SortKey selects the ordering of the doctor list. At most one is active.
type SortKey string

const (
	SortKeyUnset                SortKey = ""
	SortKeyFeesAscending        SortKey = "fees"
	SortKeyExperienceDescending SortKey = "experience"
)

// ParseSortKey maps any value outside the known set to SortKeyUnset.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortKeyFeesAscending, SortKeyExperienceDescending:
		return SortKey(s)
	default:
		return SortKeyUnset
	}
}

// DoctorFilter is the user's current search, filter and sort selection.
// It is a value type: every mutation returns a new filter and leaves the receiver untouched.
// Specialties is kept sorted and free of duplicates; nil means no specialty filter.
type DoctorFilter struct {
	Name             string
	ConsultationType ConsultationType
	Specialties      []string
	SortBy           SortKey
}

func (f DoctorFilter) WithName(name string) DoctorFilter {
	f.Name = name
	return f
}

func (f DoctorFilter) WithConsultationType(t ConsultationType) DoctorFilter {
	f.ConsultationType = ParseConsultationType(string(t))
	return f
}

func (f DoctorFilter) WithSort(key SortKey) DoctorFilter {
	f.SortBy = ParseSortKey(string(key))
	return f
}

// ToggleSpecialty selects the specialty if it is not selected and deselects it otherwise.
func (f DoctorFilter) ToggleSpecialty(name string) DoctorFilter {
	name = NormalizeSpecialtyName(name)
	if name == "" {
		return f
	}

	selected := make([]string, 0, len(f.Specialties)+1)
	found := false
	for _, s := range f.Specialties {
		if s == name {
			found = true
			continue
		}
		selected = append(selected, s)
	}
	if !found {
		selected = append(selected, name)
	}

	f.Specialties = normalizeSpecialties(selected)
	return f
}

func (f DoctorFilter) HasSpecialty(name string) bool {
	_, found := slices.BinarySearch(f.Specialties, NormalizeSpecialtyName(name))
	return found
}

// Clear resets every selection to its default.
func (f DoctorFilter) Clear() DoctorFilter {
	return DoctorFilter{}
}

func (f DoctorFilter) IsDefault() bool {
	n := f.Normalize()
	return n.Name == "" &&
		n.ConsultationType == ConsultationTypeUnset &&
		len(n.Specialties) == 0 &&
		n.SortBy == SortKeyUnset
}

// Normalize maps unknown enum values to unset and sorts, dedupes and drops blank specialties.
func (f DoctorFilter) Normalize() DoctorFilter {
	return DoctorFilter{
		Name:             f.Name,
		ConsultationType: ParseConsultationType(string(f.ConsultationType)),
		Specialties:      normalizeSpecialties(f.Specialties),
		SortBy:           ParseSortKey(string(f.SortBy)),
	}
}

func normalizeSpecialties(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = NormalizeSpecialtyName(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	slices.Sort(out)
	return slices.Compact(out)
}
