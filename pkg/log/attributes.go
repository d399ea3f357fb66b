package log

// Standard attribute keys used across the pipeline. Keys follow a
// hierarchical naming convention ("data.samples", "fit.degree") so logs can
// be filtered by concern.
const (
	// ModelNameKey identifies the model type emitting the record.
	// Examples: "PropertyModel", "GaussianMixture", "LinearRegression"
	ModelNameKey = "model.name"

	// OperationKey names the operation in flight.
	// Standard values: "generate", "fit", "predict", "save", "load"
	OperationKey = "ml.operation"

	// PropertyKey names the planetary property a record concerns.
	// Values: "mass", "radius", "temperature"
	PropertyKey = "planet.property"

	// SamplesKey is the number of rows in the data being processed.
	SamplesKey = "data.samples"

	// SeedKey is the random seed driving a deterministic operation.
	SeedKey = "data.seed"

	// DegreeKey is a polynomial degree, either a candidate under evaluation
	// or the selected one.
	DegreeKey = "fit.degree"

	// FoldsKey is the cross-validation fold count.
	FoldsKey = "fit.folds"

	// ScoreKey is a CV score (negative MSE, higher is better).
	ScoreKey = "fit.score"

	// ComponentsKey is a mixture component count.
	ComponentsKey = "mixture.components"

	// BICKey is the Bayesian information criterion of a mixture fit.
	BICKey = "mixture.bic"

	// PathKey is a filesystem path for persistence operations.
	PathKey = "artifact.path"

	// DurationMsKey is elapsed wall time in milliseconds.
	DurationMsKey = "duration_ms"
)
