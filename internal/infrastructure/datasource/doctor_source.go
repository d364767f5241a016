package datasource

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"go-doctor-directory/config"
	domainRepo "go-doctor-directory/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// bundledDoctors is the doctor asset shipped with the binary.
//
//go:embed doctors.json
var bundledDoctors []byte

type embeddedSource struct{}

type fileSource struct {
	path string
}

// NewDoctorSource returns the file at cfg.SourcePath, or the bundled asset when no path is set.
func NewDoctorSource(cfg config.DataConfig) domainRepo.DoctorSource {
	if cfg.SourcePath == "" {
		logrus.Info("Using bundled doctor data")
		return &embeddedSource{}
	}

	logrus.Infof("Using doctor data from %s", cfg.SourcePath)
	return &fileSource{path: cfg.SourcePath}
}

func (s *embeddedSource) Name() string {
	return "bundled"
}

func (s *embeddedSource) Read(ctx context.Context) ([]byte, error) {
	return bundledDoctors, nil
}

func (s *fileSource) Name() string {
	return s.path
}

func (s *fileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read doctor data: %w", err)
	}
	return data, nil
}
