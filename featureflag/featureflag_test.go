package featureflag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeatureFlag(t *testing.T) {
	f := New([]string{string(FlagDisableIndexFastPath)})

	t.Run("is set", func(t *testing.T) {
		require.True(t, f.IsSet(FlagDisableIndexFastPath))
		require.False(t, f.IsSet(FlagDisableInstrumentation))
	})

	t.Run("run if enabled", func(t *testing.T) {
		var runFastPath bool
		f.IfSet(FlagDisableIndexFastPath, func() {
			runFastPath = true
		})
		require.True(t, runFastPath)

		var runInstrumentation bool
		f.IfSet(FlagDisableInstrumentation, func() {
			runInstrumentation = true
		})
		require.False(t, runInstrumentation)
	})

	t.Run("run if disabled", func(t *testing.T) {
		var runFastPath bool
		f.IfNotSet(FlagDisableIndexFastPath, func() {
			runFastPath = true
		})
		require.False(t, runFastPath)

		var runInstrumentation bool
		f.IfNotSet(FlagDisableInstrumentation, func() {
			runInstrumentation = true
		})
		require.True(t, runInstrumentation)
	})

	t.Run("nil flags have nothing set", func(t *testing.T) {
		var none FeatureFlag
		require.False(t, none.IsSet(FlagDisableIndexFastPath))

		var ran bool
		none.IfNotSet(FlagDisableInstrumentation, func() {
			ran = true
		})
		require.True(t, ran)
	})
}
