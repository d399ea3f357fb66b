// Package planetgen models planetary properties as functions of orbital
// distance. It generates deterministic synthetic observations, selects a
// polynomial regression degree per property by cross-validation and exposes
// the fitted models for inference, persistence and star-system generation.
//
// # Quick start
//
// Train all three property models on a fresh sample set and query them:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/stellar-forge/planetgen/property"
//	)
//
//	func main() {
//	    result, err := property.RunPipeline(property.DefaultPipelineConfig())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    mass := result.Models[property.Mass]
//	    predictions, err := mass.Predict([]float64{0.5, 1, 5, 10, 30})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("mass:", predictions)
//	}
//
// # Packages
//
//   - synth: seeded synthetic data generation (regression samples and
//     zone records)
//   - property: degree-selecting polynomial fitter, inference and
//     artifact persistence for mass, radius and temperature
//   - mixture: Gaussian mixture over orbital distance with per-component
//     property profiles
//   - systemgen: full star-system assembly from fitted models
//   - crossval: k-fold splitting and train/test partitioning
//   - linear, preprocessing, metrics: the regression building blocks
//   - visualize: fit diagnostic plots
//   - core/model, core/parallel, pkg/errors, pkg/log: shared
//     infrastructure
//
// Every generator and fitter is seeded, so a given seed reproduces the
// same samples, the same selected degrees and the same predictions.
package planetgen
