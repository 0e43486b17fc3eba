package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

type OpKind int

const (
	OpTranslate OpKind = iota
	OpRotateY
	OpScale
)

// Op is one affine step of a transform chain. Angle is in radians and only
// used by OpRotateY; Vec is the translation or the per-axis scale.
type Op struct {
	Kind  OpKind
	Vec   mgl32.Vec3
	Angle float32
}

func Translate(x, y, z float32) Op {
	return Op{Kind: OpTranslate, Vec: mgl32.Vec3{x, y, z}}
}

func RotateY(angle float32) Op {
	return Op{Kind: OpRotateY, Angle: angle}
}

func ScaleUniform(s float32) Op {
	return Op{Kind: OpScale, Vec: mgl32.Vec3{s, s, s}}
}

// Matrix returns the op as a standalone 4x4 matrix.
func (o Op) Matrix() mgl32.Mat4 {
	switch o.Kind {
	case OpTranslate:
		return mgl32.Translate3D(o.Vec[0], o.Vec[1], o.Vec[2])
	case OpRotateY:
		return mgl32.HomogRotate3DY(o.Angle)
	case OpScale:
		return mgl32.Scale3D(o.Vec[0], o.Vec[1], o.Vec[2])
	}
	return mgl32.Ident4()
}

// Chain is an ordered list of ops. Each op post-multiplies the running matrix,
// so it acts in the local frame left behind by the ops before it. Chains are
// never reordered or simplified: a translate/untranslate pair stays in place.
type Chain []Op

// Apply runs the chain on top of base.
func (c Chain) Apply(base mgl32.Mat4) mgl32.Mat4 {
	m := base
	for _, op := range c {
		m = m.Mul4(op.Matrix())
	}
	return m
}

// Origin returns the world-space position of the local origin of m.
func Origin(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}
