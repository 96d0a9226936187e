package mathf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNearlyEqual(t *testing.T) {
	require.True(t, NearlyEqual(1, 1))
	require.True(t, NearlyEqualEps(0.1, 0.2, 0.11))
	require.False(t, NearlyEqual(1, 1.001))
}

func TestIsZero(t *testing.T) {
	require.True(t, IsZero(0))
	require.True(t, IsZero(1e-7))
	require.False(t, IsZero(1e-3))
}

func TestClamp(t *testing.T) {
	require.Equal(t, float32(0), Clamp01(-1))
	require.Equal(t, float32(1), Clamp01(2))
	require.Equal(t, float32(0.5), Clamp01(0.5))
	require.Equal(t, float32(-2), Clamp(-5, -2, 2))
}

func TestLerp(t *testing.T) {
	require.Equal(t, float32(5), Lerp(0, 10, 0.5))
	require.Equal(t, float32(0), Lerp(0, 10, 0))
	require.Equal(t, float32(10), Lerp(0, 10, 1))
}

func TestAngleConversions(t *testing.T) {
	require.True(t, NearlyEqualEps(DegToRad(180), 3.14159265, 1e-5))
	require.True(t, NearlyEqualEps(RadToDeg(DegToRad(90)), 90, 1e-4))
}

func TestInRangeEps(t *testing.T) {
	require.True(t, InRangeEps(0.5, 0, 1, 0))
	require.True(t, InRangeEps(-0.05, 0, 1, 0.1))
	require.False(t, InRangeEps(1.2, 0, 1, 0.1))
}
