package property

import (
	"encoding/json"
	"io"

	"github.com/stellar-forge/planetgen/core/model"
	"github.com/stellar-forge/planetgen/linear"
	"github.com/stellar-forge/planetgen/pkg/errors"
)

const (
	artifactName          = "PropertyModel"
	artifactFormatVersion = "1.0"
)

// modelParams is the serialized payload of a property model artifact.
type modelParams struct {
	Target    string    `json:"target"`
	Degree    int       `json:"degree"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// Save writes the model as a JSON artifact at path.
func (m *Model) Save(path string) error {
	if err := m.state.RequireFitted("PropertyModel", "Save"); err != nil {
		return err
	}
	return model.SaveArtifact(path, artifactName, artifactFormatVersion, m.params())
}

// SaveToWriter writes the model as a JSON artifact to w.
func (m *Model) SaveToWriter(w io.Writer) error {
	if err := m.state.RequireFitted("PropertyModel", "SaveToWriter"); err != nil {
		return err
	}
	return model.SaveArtifactToWriter(w, artifactName, artifactFormatVersion, m.params())
}

func (m *Model) params() modelParams {
	return modelParams{
		Target:    m.target.String(),
		Degree:    m.degree,
		Weights:   m.reg.GetWeights(),
		Intercept: m.reg.GetIntercept(),
	}
}

// Load reads a property model artifact from path.
func Load(path string) (*Model, error) {
	raw, err := model.LoadArtifact(path, artifactName)
	if err != nil {
		return nil, err
	}
	return restore(raw)
}

// LoadFromReader reads a property model artifact from r.
func LoadFromReader(r io.Reader) (*Model, error) {
	raw, err := model.LoadArtifactFromReader(r, artifactName)
	if err != nil {
		return nil, err
	}
	return restore(raw)
}

func restore(raw json.RawMessage) (*Model, error) {
	var params modelParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal property model params")
	}

	target, err := TargetFromString(params.Target)
	if err != nil {
		return nil, err
	}
	if params.Degree < 1 {
		return nil, errors.NewValueError("property.Load", "degree must be at least 1")
	}
	if len(params.Weights) != params.Degree {
		return nil, errors.NewDimensionError("property.Load", params.Degree, len(params.Weights), 1)
	}

	reg := linear.NewLinearRegression()
	if err := reg.Restore(params.Weights, params.Intercept); err != nil {
		return nil, err
	}

	return newFittedModel(target, params.Degree, reg), nil
}
