// Command planetgen trains the planetary property models, persists them as
// JSON artifacts and generates example star systems from the result.
//
// Existing artifacts in the output directory are reused unless -force is
// given, so repeated runs only pay the training cost once.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/stellar-forge/planetgen/mixture"
	"github.com/stellar-forge/planetgen/pkg/log"
	"github.com/stellar-forge/planetgen/property"
	"github.com/stellar-forge/planetgen/synth"
	"github.com/stellar-forge/planetgen/systemgen"
	"github.com/stellar-forge/planetgen/visualize"
)

func main() {
	var (
		samples  = flag.Int("samples", 1500, "number of synthetic samples to generate")
		seed     = flag.Int64("seed", 42, "seed for data generation and model selection")
		outDir   = flag.String("out", "artifacts", "directory for model artifacts and plots")
		folds    = flag.Int("folds", 5, "cross-validation folds")
		maxDeg   = flag.Int("max-degree", 7, "highest polynomial degree to try")
		force    = flag.Bool("force", false, "retrain even if artifacts exist")
		plots    = flag.Bool("plot", false, "write fit diagnostic plots")
		systems  = flag.Int("systems", 3, "number of example star systems to generate")
		logLevel = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	log.SetupLogger(*logLevel)

	if err := run(*samples, *seed, *outDir, *folds, *maxDeg, *force, *plots, *systems); err != nil {
		slog.Error("planetgen failed", log.ErrAttr(err))
		os.Exit(1)
	}
}

func run(samples int, seed int64, outDir string, folds, maxDeg int, force, plots bool, systems int) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	models, sampleSet, err := loadOrTrainProperties(samples, seed, outDir, folds, maxDeg, force)
	if err != nil {
		return err
	}
	zones, err := loadOrTrainZones(samples, seed, outDir, force)
	if err != nil {
		return err
	}

	if plots && sampleSet != nil {
		for _, target := range property.AllTargets() {
			path := filepath.Join(outDir, target.String()+"_fit.png")
			if err := visualize.SaveFitDiagnostic(path, models[target], sampleSet.Distance, target.Column(sampleSet)); err != nil {
				return err
			}
			slog.Info("diagnostic plot written", log.PathKey, path, log.PropertyKey, target.String())
		}
	}

	printPredictionTable(models)

	if systems > 0 {
		gen, err := systemgen.NewGenerator(models, zones, seed)
		if err != nil {
			return err
		}
		out, err := gen.GenerateN(systems)
		if err != nil {
			return err
		}
		printSystems(out)
	}
	return nil
}

// loadOrTrainProperties returns the three property models, training and
// saving them only when an artifact is missing or -force is set. The
// sample set is non-nil only after a fresh training run.
func loadOrTrainProperties(samples int, seed int64, outDir string, folds, maxDeg int, force bool) (map[property.Target]*property.Model, *synth.SampleSet, error) {
	if !force {
		models, ok := loadProperties(outDir)
		if ok {
			slog.Info("loaded property models from artifacts", log.PathKey, outDir)
			return models, nil, nil
		}
	}

	cfg := property.DefaultPipelineConfig()
	cfg.NumSamples = samples
	cfg.Seed = seed
	cfg.SplitSeed = seed
	cfg.Fit.Folds = folds
	cfg.Fit.MaxDegree = maxDeg
	cfg.Fit.CVSeed = seed

	result, err := property.RunPipeline(cfg)
	if err != nil {
		return nil, nil, err
	}

	for target, m := range result.Models {
		path := artifactPath(outDir, target)
		if err := m.Save(path); err != nil {
			return nil, nil, err
		}
		slog.Info("property model saved", log.PropertyKey, target.String(), log.PathKey, path)
	}
	return result.Models, result.Samples, nil
}

// loadProperties loads all three property artifacts, reporting false if any
// is missing or unreadable.
func loadProperties(outDir string) (map[property.Target]*property.Model, bool) {
	models := make(map[property.Target]*property.Model, 3)
	for _, target := range property.AllTargets() {
		m, err := property.Load(artifactPath(outDir, target))
		if err != nil {
			return nil, false
		}
		models[target] = m
	}
	return models, true
}

func loadOrTrainZones(samples int, seed int64, outDir string, force bool) (*mixture.ZoneModel, error) {
	path := filepath.Join(outDir, "zones.json")

	if !force {
		if zm, err := mixture.Load(path); err == nil {
			slog.Info("loaded zone model from artifact", log.PathKey, path)
			return zm, nil
		}
	}

	set, err := synth.GenerateZones(samples, seed)
	if err != nil {
		return nil, err
	}
	zm := mixture.NewZoneModel()
	if err := zm.Fit(set); err != nil {
		return nil, err
	}
	if err := zm.Save(path); err != nil {
		return nil, err
	}
	slog.Info("zone model saved", log.PathKey, path, log.ComponentsKey, zm.NComponents())
	return zm, nil
}

func artifactPath(outDir string, target property.Target) string {
	return filepath.Join(outDir, target.String()+".json")
}

func printPredictionTable(models map[property.Target]*property.Model) {
	distances := []float64{0.5, 1, 5, 10, 30}

	fmt.Printf("%-12s", "distance")
	for _, target := range property.AllTargets() {
		fmt.Printf("%14s", target.String())
	}
	fmt.Println()

	for _, d := range distances {
		fmt.Printf("%-12.1f", d)
		for _, target := range property.AllTargets() {
			v, err := models[target].PredictOne(d)
			if err != nil {
				fmt.Printf("%14s", "error")
				continue
			}
			fmt.Printf("%14.3f", v)
		}
		fmt.Println()
	}
}

func printSystems(systems []*systemgen.System) {
	for i, s := range systems {
		fmt.Printf("\nsystem %d: star mass %.2f, %d planets\n", i+1, s.Star.Mass, len(s.Planets))
		for _, p := range s.Planets {
			fmt.Printf("  d=%6.2f AU  mass=%8.2f  radius=%6.2f  temp=%7.1f K  density=%5.2f  v=%5.2f AU/yr\n",
				p.OrbitalDistance, p.Mass, p.Radius, p.Temperature, p.Density, p.OrbitalVelocity)
		}
	}
}
