// Package smoketest runs a scripted end-to-end check of the spatial
// packages: a transform rig, both broadphases, candidate queries, and
// narrow-phase refinement. The broadphase stages use fixed shapes; they
// are not placed from the transform rig. It is meant as a deployment
// self-check for systems embedding the library.
package smoketest

import (
	"context"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"

	"github.com/aukilabs/raidho/broadphase"
	"github.com/aukilabs/raidho/featureflag"
	"github.com/aukilabs/raidho/mathf"
	"github.com/aukilabs/raidho/models"
	"github.com/aukilabs/raidho/quat"
	"github.com/aukilabs/raidho/raycast"
	"github.com/aukilabs/raidho/shape"
	"github.com/aukilabs/raidho/transform"
	"github.com/aukilabs/raidho/vec"
)

// ErrTypeSmokeTestFailed tags errors returned when a stage observes a
// wrong result.
const ErrTypeSmokeTestFailed = "smoke_test_failed"

// poseEps is the tolerance for pose comparisons across matrix
// round-trips.
const poseEps float32 = 1e-4

type Options struct {
	// CellSize of both broadphases. Zero falls back to 1.
	CellSize float32

	// ScaleFactor is the indexing bound inflation. Zero falls back to 1.
	ScaleFactor float32

	// Flags are forwarded to the broadphases.
	Flags featureflag.FeatureFlag
}

type Results struct {
	RunID string

	RegisteredShapes  int
	ShapeCandidates   int
	RayCandidates     int
	NarrowOverlaps    int
	RayHits           int
	ShapeCandidates2D int
	RayCandidates2D   int

	Duration time.Duration
}

// Run executes the smoke test stages in order and returns the observed
// counts. The first wrong result aborts the run.
func Run(ctx context.Context, opts Options) (Results, error) {
	if opts.CellSize <= 0 {
		opts.CellSize = 1
	}
	if opts.ScaleFactor < 1 {
		opts.ScaleFactor = 1
	}

	res := Results{RunID: uuid.NewString()}
	start := time.Now()

	log := logs.WithTag("run_id", res.RunID)
	log.Info("starting spatial smoke test")

	if err := runTransformStage(ctx); err != nil {
		return res, errors.New("transform stage failed").
			WithType(ErrTypeSmokeTestFailed).
			WithTag("run_id", res.RunID).
			Wrap(err)
	}
	log.Info("transform stage passed")

	if err := runBroadphaseStage(ctx, opts, &res); err != nil {
		return res, errors.New("broadphase stage failed").
			WithType(ErrTypeSmokeTestFailed).
			WithTag("run_id", res.RunID).
			Wrap(err)
	}
	log.Info("broadphase stage passed")

	if err := runBroadphase2DStage(ctx, opts, &res); err != nil {
		return res, errors.New("broadphase 2d stage failed").
			WithType(ErrTypeSmokeTestFailed).
			WithTag("run_id", res.RunID).
			Wrap(err)
	}
	log.Info("broadphase 2d stage passed")

	res.Duration = time.Since(start)
	log.WithTag("duration", res.Duration).Info("spatial smoke test passed")

	return res, nil
}

func runTransformStage(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	parentA := transform.New()
	parentB := transform.New()
	child := transform.New()

	parentA.SetLocalPosition(vec.Vec3{X: 10})
	parentB.SetLocalPosition(vec.Vec3{X: -5})

	if err := child.SetParent(parentA); err != nil {
		return err
	}
	child.SetLocalPosition(vec.Vec3{X: 1})

	worldBefore := child.WorldPosition()
	if !nearlyEqualVec(worldBefore, vec.Vec3{X: 11}) {
		return errors.New("child world position is wrong").
			WithTag("got", worldBefore)
	}

	if err := child.SetParent(parentB); err != nil {
		return err
	}

	if got := child.WorldPosition(); !nearlyEqualVec(got, worldBefore) {
		return errors.New("reparenting did not preserve world position").
			WithTag("got", got)
	}
	if got := child.LocalPosition(); !nearlyEqualVec(got, vec.Vec3{X: 16}) {
		return errors.New("recomputed local position is wrong").
			WithTag("got", got)
	}

	// Cycles must be rejected.
	if err := parentB.SetParent(child); !errors.IsType(err, transform.ErrTypeInvalidParent) {
		return errors.New("cycle was not rejected")
	}

	// A rotated parent must carry its children around the origin.
	rotated := transform.New()

	orbiting := transform.New()
	if err := orbiting.SetParent(rotated); err != nil {
		return err
	}
	rotated.SetLocalRotation(quat.FromEuler(vec.Vec3{Y: mathf.DegToRad(90)}))
	orbiting.SetLocalPosition(vec.Vec3{X: 5})

	if got := orbiting.WorldPosition(); !nearlyEqualVec(got, vec.Vec3{Z: -5}) {
		return errors.New("rotated parent did not move child world position").
			WithTag("got", got)
	}
	if got := orbiting.Forward(); !nearlyEqualVec(got, vec.Vec3{X: 1}) {
		return errors.New("child forward did not follow parent rotation").
			WithTag("got", got)
	}

	// World poses must round-trip through the inverse.
	probe := vec.Vec3{X: 1, Y: 2, Z: 3}
	back := orbiting.InverseTransformPoint(orbiting.TransformPoint(probe))
	if !nearlyEqualVec(back, probe) {
		return errors.New("transform point round-trip diverged").
			WithTag("got", back)
	}

	return nil
}

func runBroadphaseStage(ctx context.Context, opts Options, res *Results) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	owners := models.NewOwnerTable()

	bp := broadphase.New(opts.CellSize,
		broadphase.WithScaleFactor(opts.ScaleFactor),
		broadphase.WithFeatureFlags(opts.Flags))

	near := shape.NewSphere(vec.Vec3{}, 1)
	near.Ctx = owners.Register("near")

	touching := shape.NewSphere(vec.Vec3{X: 1.5}, 1)
	touching.Ctx = owners.Register("touching")

	far := shape.NewSphere(vec.Vec3{X: 5}, 1)
	far.Ctx = owners.Register("far")

	bp.UpdateMany([]shape.Shape{near, touching, far})
	res.RegisteredShapes = 3

	candidates := bp.Candidates(near)
	res.ShapeCandidates = len(candidates)
	if len(candidates) != 1 {
		return errors.New("wrong shape candidate count").
			WithTag("got", len(candidates))
	}

	owner, err := owners.Owner(candidates[0].(*shape.Sphere).Ctx.(models.Handle))
	if err != nil {
		return err
	}
	if owner != "touching" {
		return errors.New("wrong shape candidate").WithTag("owner", owner)
	}

	if shape.Overlap(near, touching) {
		res.NarrowOverlaps++
	} else {
		return errors.New("touching spheres do not overlap")
	}
	if shape.Overlap(near, far) {
		return errors.New("distant spheres overlap")
	}

	ray := raycast.Ray{Direction: vec.Vec3{X: 1}}
	rayCandidates := bp.CandidatesAlongRay(ray, 5)
	res.RayCandidates = len(rayCandidates)
	if len(rayCandidates) != 3 {
		return errors.New("wrong ray candidate count").
			WithTag("got", len(rayCandidates))
	}

	hit, err := raycast.Cast(ray, far)
	if err != nil {
		return err
	}
	if !hit.Hit || !mathf.NearlyEqualEps(hit.Distance, 4, poseEps) {
		return errors.New("ray hit on far sphere is wrong").
			WithTag("distance", hit.Distance)
	}
	res.RayHits++

	bp.Remove(touching)
	if bp.Contains(touching) {
		return errors.New("removed shape is still indexed")
	}

	return nil
}

func runBroadphase2DStage(ctx context.Context, opts Options, res *Results) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bp := broadphase.New2D(opts.CellSize,
		broadphase.WithScaleFactor(opts.ScaleFactor),
		broadphase.WithFeatureFlags(opts.Flags))

	near := shape.NewCircle(vec.Vec2{}, 1)
	touching := shape.NewCircle(vec.Vec2{X: 1.5}, 1)
	far := shape.NewCircle(vec.Vec2{X: 5}, 1)

	bp.UpdateMany([]shape.Shape2D{near, touching, far})

	candidates := bp.Candidates(near)
	res.ShapeCandidates2D = len(candidates)
	if len(candidates) != 1 || candidates[0] != shape.Shape2D(touching) {
		return errors.New("wrong 2d shape candidates").
			WithTag("got", len(candidates))
	}

	ray := raycast.Ray2D{Direction: vec.Vec2{X: 1}}
	rayCandidates := bp.CandidatesAlongRay(ray, 5)
	res.RayCandidates2D = len(rayCandidates)
	if len(rayCandidates) != 3 {
		return errors.New("wrong 2d ray candidate count").
			WithTag("got", len(rayCandidates))
	}

	hit, err := raycast.Cast2D(ray, far)
	if err != nil {
		return err
	}
	if !hit.Hit || !mathf.NearlyEqualEps(hit.Distance, 4, poseEps) {
		return errors.New("2d ray hit on far circle is wrong").
			WithTag("distance", hit.Distance)
	}
	res.RayHits++

	return nil
}

func nearlyEqualVec(a, b vec.Vec3) bool {
	return mathf.NearlyEqualEps(a.X, b.X, poseEps) &&
		mathf.NearlyEqualEps(a.Y, b.Y, poseEps) &&
		mathf.NearlyEqualEps(a.Z, b.Z, poseEps)
}
