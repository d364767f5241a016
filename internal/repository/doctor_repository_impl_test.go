package repository

import (
	"context"
	"errors"
	"testing"

	domainRepo "go-doctor-directory/internal/domain/repository"
	"go-doctor-directory/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	data  []byte
	err   error
	reads int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Read(ctx context.Context) ([]byte, error) {
	s.reads++
	return s.data, s.err
}

const doctorsJSON = `[
  {"id": "1", "name": "Dr. Asha Rao", "specialities": [{"name": "Dentist"}], "fees": "500", "experience": "12", "video_consult": true},
  {"id": "2", "name": "Dr. Bilal Khan", "specialities": [{"name": "General Physician"}, {"name": "Dentist"}], "fees": "free", "experience": "4", "in_clinic": true},
  {"id": "", "name": "Dr. No Id", "fees": "100", "experience": "1"},
  {"id": "1", "name": "Dr. Duplicate", "fees": "100", "experience": "1"},
  {"id": "3", "name": "Dr. Chitra Menon", "specialities": [{"name": "Dermatologist"}], "fees": "700", "experience": "many"}
]`

func newTestRepository(source domainRepo.DoctorSource) (domainRepo.DoctorRepository, *test.Hook) {
	log, hook := test.NewNullLogger()
	return NewDoctorRepository(source, validator.NewValidator(), log), hook
}

func warnings(hook *test.Hook) []string {
	var out []string
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			out = append(out, e.Message)
		}
	}
	return out
}

func TestDoctorRepository_LoadingStateRejectsReads(t *testing.T) {
	repo, _ := newTestRepository(&stubSource{data: []byte(doctorsJSON)})

	assert.Equal(t, domainRepo.StoreLoading, repo.State())
	assert.Equal(t, 0, repo.Count())
	assert.Empty(t, repo.Version())

	_, err := repo.FindAll(context.Background())
	assert.ErrorIs(t, err, domainRepo.ErrStoreLoading)

	_, err = repo.FindByID(context.Background(), "1")
	assert.ErrorIs(t, err, domainRepo.ErrStoreLoading)

	_, err = repo.Specialties(context.Background())
	assert.ErrorIs(t, err, domainRepo.ErrStoreLoading)
}

func TestDoctorRepository_Load(t *testing.T) {
	repo, hook := newTestRepository(&stubSource{data: []byte(doctorsJSON)})
	ctx := context.Background()

	require.NoError(t, repo.Load(ctx))
	assert.Equal(t, domainRepo.StoreReady, repo.State())
	assert.Equal(t, 3, repo.Count())
	assert.Len(t, repo.Version(), 16)

	doctors, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 3)
	assert.Equal(t, "Dr. Asha Rao", doctors[0].Name)
	assert.Equal(t, "2", doctors[1].ID)
	assert.Equal(t, "3", doctors[2].ID)

	specialties, err := repo.Specialties(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dentist", "General Physician", "Dermatologist"}, specialties)

	warns := warnings(hook)
	assert.Len(t, warns, 4)
	assert.Contains(t, warns[0], `unparsable fees "free"`)
	assert.Contains(t, warns[1], "index 2")
	assert.Contains(t, warns[2], "duplicate doctor id 1")
	assert.Contains(t, warns[3], `unparsable experience "many"`)
}

func TestDoctorRepository_FindByID(t *testing.T) {
	repo, _ := newTestRepository(&stubSource{data: []byte(doctorsJSON)})
	ctx := context.Background()
	require.NoError(t, repo.Load(ctx))

	doctor, err := repo.FindByID(ctx, "3")
	require.NoError(t, err)
	require.NotNil(t, doctor)
	assert.Equal(t, "Dr. Chitra Menon", doctor.Name)

	doctor.Name = "changed"
	again, err := repo.FindByID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Chitra Menon", again.Name)

	missing, err := repo.FindByID(ctx, "404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDoctorRepository_FindAllReturnsCopy(t *testing.T) {
	repo, _ := newTestRepository(&stubSource{data: []byte(doctorsJSON)})
	ctx := context.Background()
	require.NoError(t, repo.Load(ctx))

	first, err := repo.FindAll(ctx)
	require.NoError(t, err)
	first[0], first[1] = first[1], first[0]

	second, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", second[0].ID)
}

func TestDoctorRepository_LoadFailureIsTerminal(t *testing.T) {
	source := &stubSource{err: errors.New("disk on fire")}
	repo, hook := newTestRepository(source)
	ctx := context.Background()

	err := repo.Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
	assert.Equal(t, domainRepo.StoreFailed, repo.State())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	source.err = nil
	source.data = []byte(doctorsJSON)
	assert.Equal(t, err, repo.Load(ctx), "load must not be retried")
	assert.Equal(t, 1, source.reads)

	_, err = repo.FindAll(ctx)
	assert.ErrorIs(t, err, domainRepo.ErrStoreFailed)
}

func TestDoctorRepository_MalformedJSONFails(t *testing.T) {
	repo, _ := newTestRepository(&stubSource{data: []byte(`{"id": "not-a-list"}`)})

	err := repo.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode doctors")
	assert.Equal(t, domainRepo.StoreFailed, repo.State())
}

func TestDoctorRepository_EmptyStore(t *testing.T) {
	repo, _ := newTestRepository(&stubSource{data: []byte(`[]`)})
	ctx := context.Background()

	require.NoError(t, repo.Load(ctx))

	doctors, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, doctors)

	specialties, err := repo.Specialties(ctx)
	require.NoError(t, err)
	assert.Empty(t, specialties)
}

func TestDoctorRepository_VersionTracksContent(t *testing.T) {
	a, _ := newTestRepository(&stubSource{data: []byte(`[]`)})
	b, _ := newTestRepository(&stubSource{data: []byte(doctorsJSON)})
	require.NoError(t, a.Load(context.Background()))
	require.NoError(t, b.Load(context.Background()))

	assert.NotEqual(t, a.Version(), b.Version())
}

func TestDoctorRepository_NormalizesSpecialityNames(t *testing.T) {
	data := `[{"id": "1", "name": "Dr. Asha Rao", "specialities": [{"name": "Dentist "}, {"name": " "}], "fees": "500", "experience": "12"}]`
	repo, _ := newTestRepository(&stubSource{data: []byte(data)})
	ctx := context.Background()
	require.NoError(t, repo.Load(ctx))

	specialties, err := repo.Specialties(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dentist"}, specialties)

	doctor, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dentist"}, doctor.SpecialityNames())
}

func TestDoctorRepository_ReadsDoNotShareSlices(t *testing.T) {
	data := `[{"id": "1", "name": "Dr. Asha Rao", "specialities": [{"name": "Dentist"}], "languages": ["English"], "fees": "500", "experience": "12"}]`
	repo, _ := newTestRepository(&stubSource{data: []byte(data)})
	ctx := context.Background()
	require.NoError(t, repo.Load(ctx))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	all[0].Specialities[0].Name = "changed"
	all[0].Languages[0] = "changed"

	one, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Dentist", one.Specialities[0].Name)
	assert.Equal(t, "English", one.Languages[0])

	one.Languages[0] = "changed"
	again, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "English", again[0].Languages[0])
}
