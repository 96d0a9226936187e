package smoketest

import (
	"context"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/aukilabs/raidho/featureflag"
)

func TestRun(t *testing.T) {
	res, err := Run(context.Background(), Options{})
	require.NoError(t, err)

	require.NotEmpty(t, res.RunID)
	require.Equal(t, 3, res.RegisteredShapes)
	require.Equal(t, 1, res.ShapeCandidates)
	require.Equal(t, 3, res.RayCandidates)
	require.Equal(t, 1, res.NarrowOverlaps)
	require.Equal(t, 2, res.RayHits)
	require.Equal(t, 1, res.ShapeCandidates2D)
	require.Equal(t, 3, res.RayCandidates2D)
}

func TestRunWithInflatedBounds(t *testing.T) {
	res, err := Run(context.Background(), Options{
		CellSize:    2,
		ScaleFactor: 1.5,
		Flags: featureflag.New([]string{
			string(featureflag.FlagDisableInstrumentation),
		}),
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.ShapeCandidates)
	require.Equal(t, 3, res.RayCandidates)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{})
	require.Error(t, err)
	require.Equal(t, ErrTypeSmokeTestFailed, errors.Type(err))
}
