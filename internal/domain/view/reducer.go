package view

import (
	"cmp"
	"slices"

	"go-doctor-directory/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Reduce returns the doctors that satisfy every active predicate of filter, in store order,
// then ordered by filter.SortBy when one is set. Equal sort keys keep store order.
//
// Doctors whose fee does not parse sort after all others for SortKeyFeesAscending, and
// doctors whose experience does not parse sort after all others for
// SortKeyExperienceDescending.
func Reduce(records []entity.Doctor, filter entity.DoctorFilter) []entity.Doctor {
	filter = filter.Normalize()
	match := All(FilterPredicates(filter)...)

	out := make([]entity.Doctor, 0, len(records))
	for i := range records {
		if match(&records[i]) {
			out = append(out, records[i])
		}
	}

	switch filter.SortBy {
	case entity.SortKeyFeesAscending:
		sortStableBy(out, feeKey, compareFees)
	case entity.SortKeyExperienceDescending:
		sortStableBy(out, experienceKey, compareExperience)
	}

	return out
}

type parsed[T any] struct {
	value T
	ok    bool
}

type keyed[T any] struct {
	doctor entity.Doctor
	key    parsed[T]
}

// sortStableBy parses each key once and stable-sorts docs in place.
func sortStableBy[T any](docs []entity.Doctor, key func(*entity.Doctor) parsed[T], compare func(a, b parsed[T]) int) {
	items := make([]keyed[T], len(docs))
	for i := range docs {
		items[i] = keyed[T]{doctor: docs[i], key: key(&docs[i])}
	}

	slices.SortStableFunc(items, func(a, b keyed[T]) int {
		return compare(a.key, b.key)
	})

	for i := range items {
		docs[i] = items[i].doctor
	}
}

func feeKey(d *entity.Doctor) parsed[decimal.Decimal] {
	amount, ok := d.FeeAmount()
	return parsed[decimal.Decimal]{value: amount, ok: ok}
}

func experienceKey(d *entity.Doctor) parsed[int] {
	years, ok := d.ExperienceYears()
	return parsed[int]{value: years, ok: ok}
}

// compareFees orders fees ascending with unparsable fees last.
func compareFees(a, b parsed[decimal.Decimal]) int {
	if c, done := compareMissing(a.ok, b.ok); done {
		return c
	}
	return a.value.Cmp(b.value)
}

// compareExperience orders experience descending with unparsable values last.
func compareExperience(a, b parsed[int]) int {
	if c, done := compareMissing(a.ok, b.ok); done {
		return c
	}
	return cmp.Compare(b.value, a.value)
}

func compareMissing(aOK, bOK bool) (int, bool) {
	switch {
	case aOK && bOK:
		return 0, false
	case !aOK && !bOK:
		return 0, true
	case !aOK:
		return 1, true
	default:
		return -1, true
	}
}
