// Package scenario loads named simulation scenarios from YAML files,
// validated against an embedded CUE schema.
package scenario

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
)

//go:embed schema.cue
var schemaSource []byte

// Scenario is one runnable case: parameters, an optional canned resolver
// verdict, and optional expectations about the outcome.
type Scenario struct {
	Name        string                      `yaml:"name"`
	Description string                      `yaml:"description"`
	Parameters  domain.SimulationParameters `yaml:"parameters"`
	Resolution  *Resolution                 `yaml:"resolution"`
	Expect      Expect                      `yaml:"expect"`
}

// Resolution is a fixed trajectory verdict.
type Resolution struct {
	Impact         bool    `yaml:"impact"`
	Lat            float64 `yaml:"lat"`
	Lng            float64 `yaml:"lng"`
	VelocityKms    float64 `yaml:"velocity_kms"`
	ImpactAngleDeg float64 `yaml:"impact_angle_deg"`
	AzimuthDeg     float64 `yaml:"azimuth_deg"`
	MissDistanceKm float64 `yaml:"miss_distance_km"`
}

// Expect lists outcome properties a scenario asserts. Empty fields are not
// checked.
type Expect struct {
	Outcome     string `yaml:"outcome"`
	Mode        string `yaml:"mode"`
	ThreatLevel string `yaml:"threat_level"`
	ErrorKind   string `yaml:"error_kind"`
}

// Validate checks raw YAML against the #Scenario schema. name labels
// error positions.
func Validate(name string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if schema.Err() != nil {
		return fmt.Errorf("compile scenario schema: %w", schema.Err())
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))

	file, err := cueyaml.Extract(name, data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	value := ctx.BuildFile(file)
	if value.Err() != nil {
		return fmt.Errorf("parse %s: %w", name, value.Err())
	}

	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("scenario %s: %w", name, err)
	}
	return nil
}

// Parse validates and decodes one scenario document.
func Parse(name string, data []byte) (Scenario, error) {
	if err := Validate(name, data); err != nil {
		return Scenario{}, err
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return s, nil
}

// Load reads, validates, and decodes a scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(path, data)
}

// Resolver returns a TrajectoryResolver that answers with the scenario's
// canned verdict, or nil when the scenario has none.
func (s Scenario) Resolver() domain.TrajectoryResolver {
	if s.Resolution == nil {
		return nil
	}
	return staticResolver{*s.Resolution}
}

type staticResolver struct {
	r Resolution
}

func (s staticResolver) Resolve(_ context.Context, _ domain.OrbitalElements, encounter time.Time) (domain.TrajectoryResolution, error) {
	return domain.TrajectoryResolution{
		Impact:         s.r.Impact,
		Lat:            s.r.Lat,
		Lng:            s.r.Lng,
		VelocityKms:    s.r.VelocityKms,
		ImpactAngleDeg: s.r.ImpactAngleDeg,
		AzimuthDeg:     s.r.AzimuthDeg,
		MissDistanceKm: s.r.MissDistanceKm,
		EncounterTime:  encounter,
	}, nil
}

// Check compares an outcome with the scenario's expectations and returns
// one message per mismatch.
func (s Scenario) Check(o domain.Outcome) []string {
	var problems []string
	mismatch := func(field, want, got string) {
		if want != "" && want != got {
			problems = append(problems, fmt.Sprintf("%s: want %q, got %q", field, want, got))
		}
	}

	mismatch("outcome", s.Expect.Outcome, o.Kind())
	mismatch("threat_level", s.Expect.ThreatLevel, string(o.Threat()))
	mismatch("error_kind", s.Expect.ErrorKind, string(o.ErrorKind))

	mode := ""
	if o.ImpactOutcome != nil {
		mode = string(o.Results.Mode)
	}
	mismatch("mode", s.Expect.Mode, mode)
	return problems
}
