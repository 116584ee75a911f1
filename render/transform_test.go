package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ashenengine/ashen/gfx/gfxtest"
)

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestDefaultTransformIsIdentity(t *testing.T) {
	tr := DefaultTransform()
	m := tr.ModelMatrix()
	identity := mgl32.Ident4()
	for i := range m {
		if !almostEqual(m[i], identity[i]) {
			t.Fatalf("expected identity model matrix, got %v", m)
		}
	}
}

func TestSetPositionUpdatesModelMatrix(t *testing.T) {
	tr := DefaultTransform()
	tr.SetPosition(mgl32.Vec3{1, 2, 3})
	m := tr.ModelMatrix()

	if !almostEqual(m[12], 1) || !almostEqual(m[13], 2) || !almostEqual(m[14], 3) {
		t.Fatalf("expected translation column (1,2,3), got (%v,%v,%v)", m[12], m[13], m[14])
	}
}

func TestTranslateAccumulates(t *testing.T) {
	tr := DefaultTransform()
	tr.Translate(mgl32.Vec3{1, 0, 0})
	tr.Translate(mgl32.Vec3{0, 1, 0})

	pos := tr.Position()
	if !almostEqual(pos.X(), 1) || !almostEqual(pos.Y(), 1) || !almostEqual(pos.Z(), 0) {
		t.Fatalf("expected (1,1,0), got %v", pos)
	}
}

func TestPackMat4RoundTripsLittleEndianFloats(t *testing.T) {
	m := mgl32.Mat4{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	b := packMat4(m)
	if len(b) != 64 {
		t.Fatalf("expected 64 bytes, got %d", len(b))
	}

	var decoded mgl32.Mat4
	for i := range decoded {
		bits := uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24
		decoded[i] = math.Float32frombits(bits)
	}
	if decoded != m {
		t.Fatalf("expected round trip to preserve values, got %v", decoded)
	}
}

func TestPackMat3PaddedLaysOutThreeVec4s(t *testing.T) {
	m := mgl32.Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	b := packMat3Padded(m)
	if len(b) != 48 {
		t.Fatalf("expected 48 padded bytes, got %d", len(b))
	}

	readF32 := func(off int) float32 {
		bits := uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
		return math.Float32frombits(bits)
	}

	want := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	i := 0
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			got := readF32(col*16 + row*4)
			if !almostEqual(got, want[i]) {
				t.Fatalf("col %d row %d: expected %v, got %v", col, row, want[i], got)
			}
			i++
		}
	}
}

func TestTransformBindGroupCachesUntilDirty(t *testing.T) {
	ctx := gfxtest.New(640, 480)
	tr := DefaultTransform()

	bg1, err := tr.BindGroup(ctx)
	if err != nil {
		t.Fatalf("BindGroup: %v", err)
	}
	bg2, err := tr.BindGroup(ctx)
	if err != nil {
		t.Fatalf("BindGroup: %v", err)
	}
	if bg1 != bg2 {
		t.Fatal("expected BindGroup to be cached when nothing changed")
	}

	tr.SetPosition(mgl32.Vec3{5, 0, 0})
	bg3, err := tr.BindGroup(ctx)
	if err != nil {
		t.Fatalf("BindGroup: %v", err)
	}
	if bg3 == bg2 {
		t.Fatal("expected BindGroup to rebuild after SetPosition")
	}
}

func TestRecalculateNormalMatrixDirtiesBuffers(t *testing.T) {
	ctx := gfxtest.New(640, 480)
	tr := DefaultTransform()

	bg1, err := tr.BindGroup(ctx)
	if err != nil {
		t.Fatalf("BindGroup: %v", err)
	}

	tr.RecalculateNormalMatrix(mgl32.Ident4())
	bg2, err := tr.BindGroup(ctx)
	if err != nil {
		t.Fatalf("BindGroup: %v", err)
	}
	if bg1 == bg2 {
		t.Fatal("expected RecalculateNormalMatrix to dirty the cached bind group even with an unmoved transform")
	}
}

func TestSharedTransformLayoutCachedPerContext(t *testing.T) {
	ctxA := gfxtest.New(640, 480)
	ctxB := gfxtest.New(640, 480)

	la1, err := TransformBindGroupLayout(ctxA)
	if err != nil {
		t.Fatalf("TransformBindGroupLayout: %v", err)
	}
	la2, err := TransformBindGroupLayout(ctxA)
	if err != nil {
		t.Fatalf("TransformBindGroupLayout: %v", err)
	}
	if la1 != la2 {
		t.Fatal("expected the layout to be cached per Context")
	}

	lb, err := TransformBindGroupLayout(ctxB)
	if err != nil {
		t.Fatalf("TransformBindGroupLayout: %v", err)
	}
	if la1 == lb {
		t.Fatal("expected distinct Contexts to get distinct layouts")
	}
}
