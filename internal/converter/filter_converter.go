package converter

import (
	"net/url"
	"strings"

	"go-doctor-directory/internal/delivery/dto"
	"go-doctor-directory/internal/domain/entity"
)

// Query string parameters holding the directory filter.
const (
	ParamName             = "name"
	ParamConsultationType = "consultationType"
	ParamSpecialties      = "specialties"
	ParamSortBy           = "sortBy"
)

const specialtySeparator = ","

// SpecialtyPersistable reports whether name survives a trip through the specialties
// parameter. Names holding the separator are split apart on the way back.
func SpecialtyPersistable(name string) bool {
	return !strings.Contains(name, specialtySeparator)
}

// HydrateFilter builds a filter from URL query values. Missing or unrecognized values fall
// back to their defaults; hydration never fails.
func HydrateFilter(values url.Values) entity.DoctorFilter {
	var specialties []string
	for _, raw := range values[ParamSpecialties] {
		specialties = append(specialties, strings.Split(raw, specialtySeparator)...)
	}

	return entity.DoctorFilter{
		Name:             values.Get(ParamName),
		ConsultationType: entity.ParseConsultationType(values.Get(ParamConsultationType)),
		Specialties:      specialties,
		SortBy:           entity.ParseSortKey(values.Get(ParamSortBy)),
	}.Normalize()
}

// PersistFilter returns the query values for filter, holding only non-default fields.
// The result replaces the whole query string.
func PersistFilter(filter entity.DoctorFilter) url.Values {
	filter = filter.Normalize()
	values := url.Values{}

	if filter.Name != "" {
		values.Set(ParamName, filter.Name)
	}
	if filter.ConsultationType != entity.ConsultationTypeUnset {
		values.Set(ParamConsultationType, string(filter.ConsultationType))
	}
	if len(filter.Specialties) > 0 {
		values.Set(ParamSpecialties, strings.Join(filter.Specialties, specialtySeparator))
	}
	if filter.SortBy != entity.SortKeyUnset {
		values.Set(ParamSortBy, string(filter.SortBy))
	}

	return values
}

// CanonicalQuery encodes filter deterministically. The default filter encodes to "".
func CanonicalQuery(filter entity.DoctorFilter) string {
	return PersistFilter(filter).Encode()
}

// CanonicalURL joins path with the canonical query of filter.
func CanonicalURL(path string, filter entity.DoctorFilter) string {
	query := CanonicalQuery(filter)
	if query == "" {
		return path
	}
	return path + "?" + query
}

// FilterToResponse converts a filter to its response DTO
func FilterToResponse(filter entity.DoctorFilter) dto.FilterResponse {
	filter = filter.Normalize()
	return dto.FilterResponse{
		Name:             filter.Name,
		ConsultationType: string(filter.ConsultationType),
		Specialties:      filter.Specialties,
		SortBy:           string(filter.SortBy),
	}
}
