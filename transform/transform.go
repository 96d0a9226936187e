// Package transform implements a scene-graph node with local TRS state
// and a lazily recomputed world matrix.
//
// Parent and child references are non-owning; the hierarchy is kept a
// tree by SetParent, which rejects reparenting onto a descendant. A tree
// must not be mutated from multiple goroutines without external
// synchronisation.
package transform

import (
	"github.com/aukilabs/go-tooling/pkg/errors"

	"github.com/aukilabs/raidho/mat4"
	"github.com/aukilabs/raidho/quat"
	"github.com/aukilabs/raidho/vec"
)

// ErrTypeInvalidParent tags errors returned when reparenting would create
// a cycle.
const ErrTypeInvalidParent = "invalid_parent"

type Transform struct {
	// Ctx is an opaque owner handle round-tripped without
	// interpretation.
	Ctx any

	localPosition vec.Vec3
	localRotation quat.Quat
	localScale    vec.Vec3

	localMatrix mat4.Mat4
	worldMatrix mat4.Mat4

	parent   *Transform
	children []*Transform

	localDirty bool
	worldDirty bool
}

func New() *Transform {
	return &Transform{
		localRotation: quat.Identity(),
		localScale:    vec.Vec3{X: 1, Y: 1, Z: 1},
		localMatrix:   mat4.Identity(),
		worldMatrix:   mat4.Identity(),
		localDirty:    true,
		worldDirty:    true,
	}
}

// Destroy detaches the node from its parent and re-parents its children
// to nil, preserving each child's world pose. The node is reusable as a
// root afterwards, but destroying subtrees bottom-up remains cheaper.
func (t *Transform) Destroy() {
	for len(t.children) > 0 {
		// SetParent(nil) never fails and removes the child from the
		// slice.
		_ = t.children[0].SetParent(nil)
	}
	_ = t.SetParent(nil)
}

func (t *Transform) SetLocalPosition(position vec.Vec3) {
	t.localPosition = position
	t.localDirty = true
	t.markDirty()
}

func (t *Transform) SetLocalRotation(rotation quat.Quat) {
	t.localRotation = rotation
	t.localDirty = true
	t.markDirty()
}

func (t *Transform) SetLocalScale(scale vec.Vec3) {
	t.localScale = scale
	t.localDirty = true
	t.markDirty()
}

func (t *Transform) LocalPosition() vec.Vec3 {
	return t.localPosition
}

func (t *Transform) LocalRotation() quat.Quat {
	return t.localRotation
}

func (t *Transform) LocalScale() vec.Vec3 {
	return t.localScale
}

func (t *Transform) WorldPosition() vec.Vec3 {
	t.updateWorldMatrix()
	return mat4.GetTranslation(t.worldMatrix)
}

func (t *Transform) WorldRotation() quat.Quat {
	t.updateWorldMatrix()
	return mat4.GetRotation(t.worldMatrix)
}

func (t *Transform) WorldScale() vec.Vec3 {
	t.updateWorldMatrix()
	return mat4.GetScale(t.worldMatrix)
}

// TranslateLocal moves the node along its own rotated axes.
func (t *Transform) TranslateLocal(delta vec.Vec3) {
	t.localPosition = t.localPosition.Add(t.localRotation.Rotate(delta))
	t.localDirty = true
	t.markDirty()
}

// TranslateWorld moves the node along the world axes regardless of its
// orientation.
func (t *Transform) TranslateWorld(delta vec.Vec3) {
	worldPos := t.WorldPosition().Add(delta)

	if t.parent != nil {
		t.SetLocalPosition(mat4.TransformPoint(mat4.InverseTRS(t.parent.WorldMatrix()), worldPos))
	} else {
		t.SetLocalPosition(worldPos)
	}
}

func (t *Transform) RotateLocal(delta quat.Quat) {
	t.SetLocalRotation(t.localRotation.Mul(delta).Normalized())
}

// RotateLocalEuler rotates by XYZ Euler angles in radians.
func (t *Transform) RotateLocalEuler(eulerRad vec.Vec3) {
	t.RotateLocal(quat.FromEuler(eulerRad))
}

func (t *Transform) RotateWorld(delta quat.Quat) {
	newWorldRot := delta.Mul(t.WorldRotation())

	if t.parent != nil {
		t.SetLocalRotation(quat.Inverse(t.parent.WorldRotation()).Mul(newWorldRot).Normalized())
	} else {
		t.SetLocalRotation(newWorldRot)
	}
}

// RotateWorldEuler rotates by XYZ Euler angles in radians.
func (t *Transform) RotateWorldEuler(eulerRad vec.Vec3) {
	t.RotateWorld(quat.FromEuler(eulerRad))
}

// SetLocalMatrix installs m as the local matrix and decomposes it into
// the TRS components. Positive scale only.
func (t *Transform) SetLocalMatrix(m mat4.Mat4) {
	t.localMatrix = m

	t.localPosition, t.localRotation, t.localScale = mat4.DecomposeTRS(m)

	t.localDirty = false
	t.markDirty()
}

// LocalMatrix recomposes translate * rotate * scale when dirty.
func (t *Transform) LocalMatrix() mat4.Mat4 {
	if t.localDirty {
		t.localMatrix = mat4.TRS(t.localPosition, t.localRotation, t.localScale)
		t.localDirty = false
	}

	return t.localMatrix
}

// WorldMatrix returns parent.world * local, recomputing the chain above
// when dirty. A root's world matrix is its local matrix.
func (t *Transform) WorldMatrix() mat4.Mat4 {
	t.updateWorldMatrix()
	return t.worldMatrix
}

// SetParent moves the node under parent (or to the root set when parent
// is nil), keeping its world pose: the local matrix is recomputed as
// inverse(parentWorld) * world. Reparenting onto itself or one of its
// descendants fails with an ErrTypeInvalidParent error.
func (t *Transform) SetParent(parent *Transform) error {
	if t.parent == parent {
		return nil
	}

	for ancestor := parent; ancestor != nil; ancestor = ancestor.parent {
		if ancestor == t {
			return errors.New("parent is the transform itself or one of its descendants").
				WithType(ErrTypeInvalidParent)
		}
	}

	t.updateWorldMatrix()

	if t.parent != nil {
		t.parent.removeChild(t)
	}

	t.parent = parent

	if t.parent != nil {
		t.parent.addChild(t)

		t.parent.updateWorldMatrix()

		local := mat4.Mul(mat4.InverseTRS(t.parent.worldMatrix), t.worldMatrix)
		t.SetLocalMatrix(local)
	} else {
		t.SetLocalMatrix(t.worldMatrix)
	}

	return nil
}

func (t *Transform) Parent() *Transform {
	return t.parent
}

func (t *Transform) ChildCount() int {
	return len(t.children)
}

// Child returns the index-th child, or nil when out of range.
func (t *Transform) Child(index int) *Transform {
	if index < 0 || index >= len(t.children) {
		return nil
	}
	return t.children[index]
}

// ReorderChild moves the child at from to position to. Out-of-range or
// equal indices are a no-op.
func (t *Transform) ReorderChild(from, to int) {
	if from < 0 || from >= len(t.children) ||
		to < 0 || to >= len(t.children) || from == to {
		return
	}

	child := t.children[from]
	t.children = append(t.children[:from], t.children[from+1:]...)

	t.children = append(t.children, nil)
	copy(t.children[to+1:], t.children[to:])
	t.children[to] = child
}

func (t *Transform) Forward() vec.Vec3 {
	return t.TransformDirection(vec.Vec3{Z: 1})
}

func (t *Transform) Up() vec.Vec3 {
	return t.TransformDirection(vec.Vec3{Y: 1})
}

func (t *Transform) Right() vec.Vec3 {
	return t.TransformDirection(vec.Vec3{X: 1})
}

// TransformPoint maps a local-space point to world space.
func (t *Transform) TransformPoint(localPoint vec.Vec3) vec.Vec3 {
	t.updateWorldMatrix()
	return mat4.TransformPoint(t.worldMatrix, localPoint)
}

// TransformDirection maps a local-space direction to world space,
// ignoring translation.
func (t *Transform) TransformDirection(localDirection vec.Vec3) vec.Vec3 {
	t.updateWorldMatrix()
	return mat4.TransformDirection(t.worldMatrix, localDirection)
}

// InverseTransformPoint maps a world-space point to local space.
func (t *Transform) InverseTransformPoint(worldPoint vec.Vec3) vec.Vec3 {
	t.updateWorldMatrix()
	return mat4.TransformPoint(mat4.InverseTRS(t.worldMatrix), worldPoint)
}

// InverseTransformDirection maps a world-space direction to local space.
func (t *Transform) InverseTransformDirection(worldDirection vec.Vec3) vec.Vec3 {
	t.updateWorldMatrix()
	return mat4.TransformDirection(mat4.InverseTRS(t.worldMatrix), worldDirection)
}

func (t *Transform) addChild(child *Transform) {
	t.children = append(t.children, child)
}

func (t *Transform) removeChild(child *Transform) {
	for i, c := range t.children {
		if c == child {
			t.children = append(t.children[:i], t.children[i+1:]...)
			return
		}
	}
}

// markDirty flags the world matrix of the node and its whole subtree.
func (t *Transform) markDirty() {
	t.worldDirty = true

	for _, child := range t.children {
		child.markDirty()
	}
}

func (t *Transform) updateWorldMatrix() {
	if !t.worldDirty {
		return
	}

	local := t.LocalMatrix()

	if t.parent != nil {
		t.parent.updateWorldMatrix()
		t.worldMatrix = mat4.Mul(t.parent.worldMatrix, local)
	} else {
		t.worldMatrix = local
	}

	t.worldDirty = false
}
