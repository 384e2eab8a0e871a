package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/asysyifa-husada/clinic-service/internal/storage"
)

var ErrMissingClinicName = errors.New("clinic name is required")

// Settings holds the clinic profile shown in page headers and printouts.
type Settings struct {
	ClinicName    string `json:"clinic_name"`
	ClinicAddress string `json:"clinic_address"`
	ClinicPhone   string `json:"clinic_phone"`
	ClinicEmail   string `json:"clinic_email"`
}

// Defaults returns the built-in clinic profile used until the first save.
func Defaults() Settings {
	return Settings{
		ClinicName:    "Klinik Asy-Syifa Husada",
		ClinicAddress: "Takeran, Magetan, Jawa Timur",
		ClinicPhone:   "(0351) 123456",
		ClinicEmail:   "info@asysyifahusada.com",
	}
}

type Service struct {
	store *storage.Singleton[Settings]
}

func NewService(kv storage.KV) *Service {
	return &Service{store: storage.NewSingleton[Settings](kv, storage.KeySettings)}
}

// Get returns the saved settings, falling back to the defaults when
// nothing was ever saved.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	settings, ok, err := s.store.Get(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	if !ok {
		return Defaults(), nil
	}
	return settings, nil
}

func (s *Service) Update(ctx context.Context, settings Settings) (Settings, error) {
	if settings.ClinicName == "" {
		return Settings{}, ErrMissingClinicName
	}
	if err := s.store.Set(ctx, settings); err != nil {
		return Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}
