package repository

import (
	"context"
	"errors"

	"go-doctor-directory/internal/domain/entity"
)

var (
	ErrStoreLoading = errors.New("doctor store is still loading")
	ErrStoreFailed  = errors.New("doctor store failed to load")
)

// StoreState is the lifecycle of the doctor store. It only moves forward:
// loading to ready, or loading to failed.
type StoreState int32

const (
	StoreLoading StoreState = iota
	StoreReady
	StoreFailed
)

func (s StoreState) String() string {
	switch s {
	case StoreReady:
		return "ready"
	case StoreFailed:
		return "failed"
	default:
		return "loading"
	}
}

// DoctorSource supplies the raw doctor asset.
type DoctorSource interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
}

// DoctorRepository is the read-only record store. Every read returns ErrStoreLoading
// before Load completes and ErrStoreFailed after a failed Load.
type DoctorRepository interface {
	Load(ctx context.Context) error
	State() StoreState
	Version() string
	Count() int
	FindAll(ctx context.Context) ([]entity.Doctor, error)
	FindByID(ctx context.Context, id string) (*entity.Doctor, error)
	Specialties(ctx context.Context) ([]string, error)
}
