package model

import (
	"encoding/json"
	"io"
	"os"

	"github.com/stellar-forge/planetgen/pkg/errors"
)

// ArtifactSpec identifies the kind and format of a persisted model blob.
type ArtifactSpec struct {
	Name          string `json:"name"`
	FormatVersion string `json:"format_version"`
}

// Artifact is the envelope every persisted model uses: a spec header plus an
// opaque params payload. Consumers only see the file through Load, so the
// payload layout is free to evolve with the format version.
type Artifact struct {
	Spec   ArtifactSpec    `json:"model_spec"`
	Params json.RawMessage `json:"params"`
}

// SaveArtifact writes params wrapped in an Artifact envelope to path.
func SaveArtifact(path, name, formatVersion string, params interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create artifact file %s", path)
	}
	defer file.Close()

	return SaveArtifactToWriter(file, name, formatVersion, params)
}

// SaveArtifactToWriter writes params wrapped in an Artifact envelope to w.
func SaveArtifactToWriter(w io.Writer, name, formatVersion string, params interface{}) error {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "failed to marshal artifact params")
	}

	artifact := Artifact{
		Spec: ArtifactSpec{
			Name:          name,
			FormatVersion: formatVersion,
		},
		Params: paramsJSON,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&artifact); err != nil {
		return errors.Wrap(err, "failed to encode artifact")
	}
	return nil
}

// LoadArtifact reads an Artifact envelope from path and checks its name.
func LoadArtifact(path, wantName string) (json.RawMessage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open artifact file %s", path)
	}
	defer file.Close()

	return LoadArtifactFromReader(file, wantName)
}

// LoadArtifactFromReader reads an Artifact envelope from r and checks its
// name.
func LoadArtifactFromReader(r io.Reader, wantName string) (json.RawMessage, error) {
	var artifact Artifact
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&artifact); err != nil {
		return nil, errors.Wrap(err, "failed to decode artifact")
	}

	if artifact.Spec.Name != wantName {
		return nil, errors.Newf("artifact name mismatch: expected %q, got %q", wantName, artifact.Spec.Name)
	}
	if artifact.Params == nil {
		return nil, errors.Newf("artifact %q has no params payload", wantName)
	}

	return artifact.Params, nil
}
