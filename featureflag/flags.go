package featureflag

type Flag string

const (
	// FlagDisableIndexFastPath forces a full cell reindex on every
	// broadphase update, even when the new bound spans the same cells as
	// the stored one.
	FlagDisableIndexFastPath Flag = "DISABLE_INDEX_FAST_PATH"

	// FlagDisableInstrumentation turns off the prometheus instrumentation
	// of broadphase operations.
	FlagDisableInstrumentation Flag = "DISABLE_INSTRUMENTATION"
)
