package property

import (
	"log/slog"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/stellar-forge/planetgen/crossval"
	"github.com/stellar-forge/planetgen/metrics"
	"github.com/stellar-forge/planetgen/pkg/errors"
	"github.com/stellar-forge/planetgen/pkg/log"
	"github.com/stellar-forge/planetgen/synth"
)

// PipelineConfig drives the end-to-end training run.
type PipelineConfig struct {
	NumSamples   int
	Seed         int64
	TestFraction float64
	SplitSeed    int64
	Fit          FitConfig
}

// DefaultPipelineConfig mirrors the standard run: 1500 samples at seed 42,
// an 80/20 split and the default degree search.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		NumSamples:   1500,
		Seed:         42,
		TestFraction: 0.2,
		SplitSeed:    42,
		Fit:          DefaultFitConfig(),
	}
}

// TargetReport summarizes one fitted property on the held-out test
// partition.
type TargetReport struct {
	Degree  int
	CVScore float64
	TestMSE float64
	TestR2  float64
}

// PipelineResult carries the fitted models plus evaluation reports.
type PipelineResult struct {
	Samples *synth.SampleSet
	Models  map[Target]*Model
	Reports map[Target]TargetReport
}

// RunPipeline generates a sample set, makes one train/test split shared by
// all three properties (identical rows, so distance-to-target alignment is
// preserved across targets), fits each property concurrently and evaluates
// the selected models on the held-out partition.
func RunPipeline(cfg PipelineConfig) (*PipelineResult, error) {
	const op = "property.RunPipeline"
	start := time.Now()

	if cfg.NumSamples <= 0 {
		return nil, errors.NewValueError(op, "NumSamples must be positive")
	}
	if err := cfg.Fit.validate(op); err != nil {
		return nil, err
	}

	samples, err := synth.Generate(cfg.NumSamples, cfg.Seed)
	if err != nil {
		return nil, err
	}
	slog.Info("sample set generated",
		log.OperationKey, "generate",
		log.SamplesKey, samples.Len(),
		log.SeedKey, cfg.Seed,
	)

	trainIdx, testIdx, err := crossval.TrainTestSplit(samples.Len(), cfg.TestFraction, cfg.SplitSeed)
	if err != nil {
		return nil, err
	}

	// Fail before any fitting if the training partition cannot support
	// cross-validation at the maximum degree.
	if required := cfg.Fit.MinTrainingSamples(); len(trainIdx) < required {
		return nil, errors.NewInsufficientSamplesError(op, required, len(trainIdx), cfg.Fit.Folds, cfg.Fit.MaxDegree)
	}

	trainDist := crossval.Take(samples.Distance, trainIdx)
	testDist := crossval.Take(samples.Distance, testIdx)

	targets := AllTargets()
	models := make([]*Model, len(targets))
	reports := make([]TargetReport, len(targets))
	fitErrs := make([]error, len(targets))

	// Each property fit reads only its own column slice; runs are pure so
	// the three targets can train concurrently.
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(slot int, target Target) {
			defer wg.Done()

			column := target.Column(samples)
			trainVals := crossval.Take(column, trainIdx)
			testVals := crossval.Take(column, testIdx)

			result, err := Fit(trainDist, trainVals, target, cfg.Fit)
			if err != nil {
				fitErrs[slot] = err
				return
			}

			report, err := evaluate(result, testDist, testVals)
			if err != nil {
				fitErrs[slot] = err
				return
			}

			models[slot] = result.Model
			reports[slot] = report
		}(i, target)
	}
	wg.Wait()

	for i, err := range fitErrs {
		if err != nil {
			return nil, errors.Wrapf(err, "fitting %s failed", targets[i])
		}
	}

	out := &PipelineResult{
		Samples: samples,
		Models:  make(map[Target]*Model, len(targets)),
		Reports: make(map[Target]TargetReport, len(targets)),
	}
	for i, target := range targets {
		out.Models[target] = models[i]
		out.Reports[target] = reports[i]
		slog.Info("property model fitted",
			log.PropertyKey, target.String(),
			log.DegreeKey, reports[i].Degree,
			log.ScoreKey, reports[i].CVScore,
			"test_mse", reports[i].TestMSE,
			"test_r2", reports[i].TestR2,
		)
	}

	slog.Info("pipeline finished",
		log.OperationKey, "fit",
		log.SamplesKey, samples.Len(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return out, nil
}

// evaluate scores a fit result on the held-out partition.
func evaluate(result *FitResult, testDist, testVals []float64) (TargetReport, error) {
	pred, err := result.Model.Predict(testDist)
	if err != nil {
		return TargetReport{}, err
	}

	predVec := mat.NewVecDense(len(pred), pred)
	trueVec := mat.NewVecDense(len(testVals), testVals)

	testMSE, err := metrics.MSE(trueVec, predVec)
	if err != nil {
		return TargetReport{}, err
	}
	testR2, err := metrics.R2(trueVec, predVec)
	if err != nil {
		return TargetReport{}, err
	}

	var cvScore float64
	for _, s := range result.Scores {
		if s.Degree == result.Degree {
			cvScore = s.MeanScore
			break
		}
	}

	return TargetReport{
		Degree:  result.Degree,
		CVScore: cvScore,
		TestMSE: testMSE,
		TestR2:  testR2,
	}, nil
}
