// Package fleetseed loads the initial drone fleet from a YAML file at startup.
//
// File format:
//
//	drones:
//	  - code: D1
//	    status: active
//	    battery: 90
//	    totalDeliveries: 120
//	    distance: 348.5
//
// Seeding is idempotent by code: drones already present are left untouched.
package fleetseed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"foodfast/internal/core/application/usecases/commands"
	"foodfast/internal/core/application/usecases/queries"
	"foodfast/internal/core/domain/model/drone"
	"foodfast/internal/core/domain/model/kernel"
	"foodfast/internal/pkg/errs"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type File struct {
	Drones []Drone `yaml:"drones"`
}

type Drone struct {
	Code            string   `yaml:"code"`
	Status          string   `yaml:"status"`
	Battery         *int     `yaml:"battery"`
	DailyDeliveries *int     `yaml:"dailyDeliveries"`
	TotalDeliveries *int     `yaml:"totalDeliveries"`
	Distance        *float64 `yaml:"distance"`
}

// Load reads and decodes a fleet file. Unknown keys are rejected.
func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read fleet file: %w", err)
	}
	return Decode(raw)
}

func Decode(raw []byte) (File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return File{}, errs.NewValueIsInvalidErrorWithCause("fleet file", err)
	}

	seen := make(map[string]struct{}, len(file.Drones))
	for i, d := range file.Drones {
		code := strings.TrimSpace(d.Code)
		if code == "" {
			return File{}, errs.NewValueIsRequiredError(fmt.Sprintf("drones[%d].code", i))
		}
		if _, dup := seen[code]; dup {
			return File{}, errs.NewValueIsInvalidError(fmt.Sprintf("drone code %s is listed twice", code))
		}
		seen[code] = struct{}{}
		file.Drones[i].Code = code
	}

	return file, nil
}

func (d Drone) patch() (commands.DronePatch, error) {
	patch := commands.DronePatch{
		Battery:         d.Battery,
		DailyDeliveries: d.DailyDeliveries,
		TotalDeliveries: d.TotalDeliveries,
		Distance:        d.Distance,
	}
	if d.Status != "" {
		status, err := drone.ParseStatus(d.Status)
		if err != nil {
			return commands.DronePatch{}, err
		}
		patch.Status = &status
	}
	return patch, nil
}

type FleetReader interface {
	Handle(ctx context.Context, query queries.GetFleetQuery) ([]queries.DroneView, error)
}

type DroneRegistrar interface {
	Handle(ctx context.Context, cmd commands.RegisterDroneCommand) (*drone.Drone, error)
}

type Seeder struct {
	fleet    FleetReader
	register DroneRegistrar
	logger   zerolog.Logger
}

func NewSeeder(fleet FleetReader, register DroneRegistrar, logger zerolog.Logger) *Seeder {
	return &Seeder{
		fleet:    fleet,
		register: register,
		logger:   logger.With().Str("component", "fleet_seed").Logger(),
	}
}

// Seed registers every drone of file whose code is not in the fleet yet and
// returns how many were added.
func (s *Seeder) Seed(ctx context.Context, file File) (int, error) {
	existing, err := s.fleet.Handle(ctx, queries.NewGetFleetQuery())
	if err != nil {
		return 0, err
	}

	taken := make(map[string]struct{}, len(existing))
	for _, view := range existing {
		taken[view.Code] = struct{}{}
	}

	added := 0
	for _, d := range file.Drones {
		if _, ok := taken[d.Code]; ok {
			s.logger.Debug().Str("code", d.Code).Msg("drone already registered")
			continue
		}

		patch, err := d.patch()
		if err != nil {
			return added, fmt.Errorf("drone %s: %w", d.Code, err)
		}

		cmd, err := commands.NewRegisterDroneCommand(kernel.NewUUID(), d.Code, patch)
		if err != nil {
			return added, err
		}

		if _, err = s.register.Handle(ctx, cmd); err != nil {
			return added, fmt.Errorf("drone %s: %w", d.Code, err)
		}
		added++
	}

	s.logger.Info().Int("added", added).Int("listed", len(file.Drones)).Msg("fleet seeded")
	return added, nil
}
