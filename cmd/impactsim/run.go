package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/effects"
	"github.com/couchcryptid/neo-impact-service/internal/engine"
	"github.com/couchcryptid/neo-impact-service/internal/scenario"
)

type runFlags struct {
	scenarioPath string
	compact      bool

	diameter   float64
	density    float64
	velocity   float64
	angle      float64
	azimuth    float64
	lat        float64
	lng        float64
	strength   float64
	oceanDepth float64

	mitigation string
	leadTime   float64
	deltaV     float64
	yield      float64
	efficiency float64
}

func newRunCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation and print the outcome as JSON",
		Long: `run simulates a single impactor described by flags or by a scenario file.
Scenario expectations, when present, are checked and reported as an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulation(cmd, g, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.scenarioPath, "scenario", "", "scenario YAML file (overrides parameter flags)")
	fl.BoolVar(&f.compact, "compact", false, "print single-line JSON")
	fl.Float64Var(&f.diameter, "diameter", 0, "impactor diameter in meters")
	fl.Float64Var(&f.density, "density", 3000, "impactor density in kg/m^3")
	fl.Float64Var(&f.velocity, "velocity", 0, "entry velocity in km/s")
	fl.Float64Var(&f.angle, "angle", 45, "impact angle from horizontal in degrees")
	fl.Float64Var(&f.azimuth, "azimuth", 0, "heading in degrees clockwise from north")
	fl.Float64Var(&f.lat, "lat", 0, "ground-zero latitude")
	fl.Float64Var(&f.lng, "lng", 0, "ground-zero longitude")
	fl.Float64Var(&f.strength, "strength", domain.DefaultStrength, "material strength in MPa")
	fl.Float64Var(&f.oceanDepth, "ocean-depth", 0, "water depth at ground zero in meters (0 = land)")
	fl.StringVar(&f.mitigation, "mitigation", "", "mitigation strategy (deflection, ablation, nuclear)")
	fl.Float64Var(&f.leadTime, "lead-time", 0, "mitigation lead time in days")
	fl.Float64Var(&f.deltaV, "delta-v", 0, "deflection delta-v in m/s")
	fl.Float64Var(&f.yield, "yield", 0, "nuclear yield in megatons")
	fl.Float64Var(&f.efficiency, "efficiency", 1, "mitigation efficiency 0-1 (tuned default when unset)")
	return cmd
}

func runSimulation(cmd *cobra.Command, g *globalFlags, f *runFlags) error {
	tuning, err := g.tuning()
	if err != nil {
		return err
	}

	var sc *scenario.Scenario
	params := f.params(cmd.Flags().Changed("efficiency"))
	opts := engine.Options{Tuning: &tuning, Logger: g.logger(cmd)}
	if f.scenarioPath != "" {
		s, err := scenario.Load(f.scenarioPath)
		if err != nil {
			return err
		}
		sc = &s
		params = s.Parameters
		opts.Resolver = s.Resolver()
	}

	outcome := engine.New(opts).Run(cmd.Context(), params)

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !f.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(outcome); err != nil {
		return fmt.Errorf("write outcome: %w", err)
	}

	if sc != nil {
		if problems := sc.Check(outcome); len(problems) > 0 {
			return fmt.Errorf("scenario %s: %s", sc.Name, strings.Join(problems, "; "))
		}
		return nil
	}
	if !outcome.OK {
		return fmt.Errorf("simulation failed (%s)", outcome.ErrorKind)
	}
	return nil
}

func (f *runFlags) params(withEfficiency bool) domain.SimulationParameters {
	p := domain.SimulationParameters{
		DiameterM:      f.diameter,
		DensityKgM3:    f.density,
		VelocityKms:    &f.velocity,
		ImpactAngleDeg: &f.angle,
		AzimuthDeg:     &f.azimuth,
		Lat:            &f.lat,
		Lng:            &f.lng,
		StrengthMPa:    &f.strength,
		OceanDepthM:    f.oceanDepth,
		MitigationType: effects.MitigationType(f.mitigation),
		MitigationParams: effects.MitigationParams{
			LeadTimeDays: f.leadTime,
			DeltaVMs:     f.deltaV,
			YieldMt:      f.yield,
		},
	}
	if withEfficiency {
		p.MitigationParams.Efficiency = &f.efficiency
	}
	return p
}
