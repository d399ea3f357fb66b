package mixture

import (
	"encoding/json"
	"io"

	"github.com/stellar-forge/planetgen/core/model"
	"github.com/stellar-forge/planetgen/pkg/errors"
	"github.com/stellar-forge/planetgen/preprocessing"
)

const (
	artifactName          = "ZoneMixtureModel"
	artifactFormatVersion = "1.0"
)

// zoneParams is the serialized form of a fitted ZoneModel.
type zoneParams struct {
	ScalerMean    []float64 `json:"scaler_mean"`
	ScalerScale   []float64 `json:"scaler_scale"`
	Weights       []float64 `json:"weights"`
	Means         []float64 `json:"means"`
	Variances     []float64 `json:"variances"`
	LogLikelihood float64   `json:"log_likelihood"`
	NSamples      int       `json:"n_samples"`
	Profiles      []Profile `json:"profiles"`
	Fallback      Profile   `json:"fallback"`
}

// Save writes the fitted zone model to path as a JSON artifact.
func (zm *ZoneModel) Save(path string) error {
	params, err := zm.params()
	if err != nil {
		return err
	}
	return model.SaveArtifact(path, artifactName, artifactFormatVersion, params)
}

// SaveToWriter writes the fitted zone model to w.
func (zm *ZoneModel) SaveToWriter(w io.Writer) error {
	params, err := zm.params()
	if err != nil {
		return err
	}
	return model.SaveArtifactToWriter(w, artifactName, artifactFormatVersion, params)
}

func (zm *ZoneModel) params() (*zoneParams, error) {
	if err := zm.state.RequireFitted("ZoneModel", "Save"); err != nil {
		return nil, err
	}
	return &zoneParams{
		ScalerMean:    zm.scaler.Mean,
		ScalerScale:   zm.scaler.Scale,
		Weights:       zm.gmm.Weights,
		Means:         zm.gmm.Means,
		Variances:     zm.gmm.Variances,
		LogLikelihood: zm.gmm.LogLikelihood,
		NSamples:      zm.gmm.nSamples,
		Profiles:      zm.profiles,
		Fallback:      zm.fallback,
	}, nil
}

// Load reads a zone model artifact written by Save.
func Load(path string) (*ZoneModel, error) {
	raw, err := model.LoadArtifact(path, artifactName)
	if err != nil {
		return nil, err
	}
	return restore(raw)
}

// LoadFromReader reads a zone model artifact from r.
func LoadFromReader(r io.Reader) (*ZoneModel, error) {
	raw, err := model.LoadArtifactFromReader(r, artifactName)
	if err != nil {
		return nil, err
	}
	return restore(raw)
}

func restore(raw json.RawMessage) (*ZoneModel, error) {
	const op = "mixture.Load"

	var params zoneParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, errors.Wrap(err, "decoding zone model params")
	}
	if len(params.Profiles) != len(params.Weights) {
		return nil, errors.NewDimensionError(op, len(params.Weights), len(params.Profiles), 0)
	}

	scaler := preprocessing.NewStandardScaler()
	if err := scaler.Restore(params.ScalerMean, params.ScalerScale); err != nil {
		return nil, err
	}

	gmm := NewGaussianMixture(len(params.Weights))
	if err := gmm.Restore(params.Weights, params.Means, params.Variances, params.LogLikelihood, params.NSamples); err != nil {
		return nil, err
	}

	zm := &ZoneModel{
		state:    model.NewStateManager(),
		scaler:   scaler,
		gmm:      gmm,
		profiles: params.Profiles,
		fallback: params.Fallback,
	}
	zm.state.SetDimensions(1, params.NSamples)
	zm.state.SetFitted()
	return zm, nil
}
