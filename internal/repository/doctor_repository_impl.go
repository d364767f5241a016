package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"go-doctor-directory/internal/domain/entity"
	domainRepo "go-doctor-directory/internal/domain/repository"
	"go-doctor-directory/internal/domain/view"
	"go-doctor-directory/pkg/validator"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"
)

// doctorRepository holds the directory in memory. The record fields are written once by
// Load before state becomes ready and are read-only afterwards.
type doctorRepository struct {
	source    domainRepo.DoctorSource
	validator *validator.CustomValidator
	log       *logrus.Logger

	once    sync.Once
	loadErr error
	state   atomic.Int32

	records     []entity.Doctor
	byID        map[string]int
	specialties []string
	version     string
}

func NewDoctorRepository(source domainRepo.DoctorSource, validator *validator.CustomValidator, log *logrus.Logger) domainRepo.DoctorRepository {
	return &doctorRepository{
		source:    source,
		validator: validator,
		log:       log,
	}
}

// Load reads and decodes the source exactly once. Later calls return the first result.
func (r *doctorRepository) Load(ctx context.Context) error {
	r.once.Do(func() {
		r.loadErr = r.load(ctx)
		if r.loadErr != nil {
			r.log.Errorf("Failed to load doctors from %s: %+v", r.source.Name(), r.loadErr)
			r.state.Store(int32(domainRepo.StoreFailed))
			return
		}
		r.state.Store(int32(domainRepo.StoreReady))
	})
	return r.loadErr
}

func (r *doctorRepository) load(ctx context.Context) error {
	raw, err := r.source.Read(ctx)
	if err != nil {
		return fmt.Errorf("read doctors: %w", err)
	}

	var doctors []entity.Doctor
	if err := json.Unmarshal(raw, &doctors); err != nil {
		return fmt.Errorf("decode doctors: %w", err)
	}

	records := make([]entity.Doctor, 0, len(doctors))
	byID := make(map[string]int, len(doctors))
	for i := range doctors {
		d := doctors[i]
		if err := r.validator.Validate(&d); err != nil {
			r.log.Warnf("Skipping doctor record at index %d: %v", i, r.validator.FormatValidationErrors(err))
			continue
		}
		if _, exists := byID[d.ID]; exists {
			r.log.Warnf("Skipping duplicate doctor id %s at index %d", d.ID, i)
			continue
		}
		if _, ok := d.FeeAmount(); !ok {
			r.log.Warnf("Doctor %s has unparsable fees %q, sorted last by fees", d.ID, d.Fees)
		}
		if _, ok := d.ExperienceYears(); !ok {
			r.log.Warnf("Doctor %s has unparsable experience %q, sorted last by experience", d.ID, d.Experience)
		}

		d.NormalizeSpecialities()

		byID[d.ID] = len(records)
		records = append(records, d)
	}

	r.records = records
	r.byID = byID
	r.specialties = view.CollectSpecialties(records)
	r.version = fmt.Sprintf("%016x", xxhash.Sum64(raw))

	r.log.Infof("Loaded %d doctors (%d specialties) from %s", len(records), len(r.specialties), r.source.Name())
	return nil
}

func (r *doctorRepository) State() domainRepo.StoreState {
	return domainRepo.StoreState(r.state.Load())
}

// Version fingerprints the loaded asset. It is empty until the store is ready.
func (r *doctorRepository) Version() string {
	if r.State() != domainRepo.StoreReady {
		return ""
	}
	return r.version
}

func (r *doctorRepository) Count() int {
	if r.State() != domainRepo.StoreReady {
		return 0
	}
	return len(r.records)
}

func (r *doctorRepository) ready() error {
	switch r.State() {
	case domainRepo.StoreReady:
		return nil
	case domainRepo.StoreFailed:
		return domainRepo.ErrStoreFailed
	default:
		return domainRepo.ErrStoreLoading
	}
}

// FindAll returns every doctor in asset order.
func (r *doctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	doctors := make([]entity.Doctor, len(r.records))
	for i := range r.records {
		doctors[i] = r.records[i].Clone()
	}
	return doctors, nil
}

func (r *doctorRepository) FindByID(ctx context.Context, id string) (*entity.Doctor, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	idx, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	doctor := r.records[idx].Clone()
	return &doctor, nil
}

// Specialties returns the distinct specialty names in first-seen order.
func (r *doctorRepository) Specialties(ctx context.Context) ([]string, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	return slices.Clone(r.specialties), nil
}
