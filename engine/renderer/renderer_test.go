package renderer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/halcyon-gfx/halcyon/common"
	"github.com/halcyon-gfx/halcyon/engine/camera"
	"github.com/halcyon-gfx/halcyon/engine/primitives"
	"github.com/halcyon-gfx/halcyon/engine/renderer/bind_group_provider"
	"github.com/halcyon-gfx/halcyon/engine/renderer/pipeline"
	"github.com/halcyon-gfx/halcyon/engine/renderer/text"
)

const testStride = 256

// transformBuild records one BuildTransformBindGroup call.
type transformBuild struct {
	pipeline pipeline.Pipeline
	first    *wgpu.Texture
	second   *wgpu.Texture
}

// textureWrite records one WriteTextureRegion call.
type textureWrite struct {
	tex           *wgpu.Texture
	x, y          uint32
	width, height uint32
	bytes         int
}

// fakeBackend is a recording RendererBackend used to test the renderer's
// resource and offset bookkeeping without a GPU.
type fakeBackend struct {
	created       []*wgpu.Texture
	released      []*wgpu.Texture
	batches       [][]bind_group_provider.BufferWrite
	textureWrites []textureWrite
	builds        []transformBuild
	uniformBuilds int
	compiles      int
	shaderSources []string
	configures    [][2]int
	frames        [][]DrawCommand
	texturePasses [][]DrawCommand
	frameErr      error
}

var _ RendererBackend = &fakeBackend{}

func (f *fakeBackend) ConfigureSurface(width, height int) {
	f.configures = append(f.configures, [2]int{width, height})
}

func (f *fakeBackend) SetPresentMode(PresentMode) {}

func (f *fakeBackend) SurfaceFormat() wgpu.TextureFormat {
	return wgpu.TextureFormatBGRA8Unorm
}

func (f *fakeBackend) UniformStride() uint32 {
	return testStride
}

func (f *fakeBackend) CreateTexture(width, height uint32, useSurfaceFormat bool) (*wgpu.Texture, error) {
	tex := new(wgpu.Texture)
	f.created = append(f.created, tex)
	return tex, nil
}

func (f *fakeBackend) WriteTextureRegion(tex *wgpu.Texture, pixels []byte, x, y, width, height uint32) {
	f.textureWrites = append(f.textureWrites, textureWrite{tex, x, y, width, height, len(pixels)})
}

func (f *fakeBackend) ReleaseTexture(tex *wgpu.Texture) {
	if tex != nil {
		f.released = append(f.released, tex)
	}
}

func (f *fakeBackend) CompileRenderPipeline(p pipeline.Pipeline, shaderSource string) error {
	f.compiles++
	f.shaderSources = append(f.shaderSources, shaderSource)
	if len(p.Uniforms()) > 0 && p.CustomUniforms() == nil {
		p.SetCustomUniforms(bind_group_provider.NewBindGroupProvider("pipeline uniforms"))
	}
	return nil
}

func (f *fakeBackend) BuildTransformBindGroup(p pipeline.Pipeline, first, second *wgpu.Texture) error {
	f.builds = append(f.builds, transformBuild{p, first, second})
	return nil
}

func (f *fakeBackend) BuildUniformBindGroup(p pipeline.Pipeline) error {
	if len(p.Uniforms()) > 0 {
		f.uniformBuilds++
	}
	return nil
}

func (f *fakeBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	provider.SetIndexCount(indexCount)
	return nil
}

func (f *fakeBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	batch := make([]bind_group_provider.BufferWrite, len(writes))
	for i, w := range writes {
		batch[i] = w
		batch[i].Data = append([]byte(nil), w.Data...)
	}
	f.batches = append(f.batches, batch)
}

func (f *fakeBackend) RenderToTexture(target *wgpu.Texture, clear common.Color, draws []DrawCommand) error {
	f.texturePasses = append(f.texturePasses, draws)
	return nil
}

func (f *fakeBackend) RenderFrame(clear common.Color, draws []DrawCommand) error {
	if f.frameErr != nil {
		return f.frameErr
	}
	f.frames = append(f.frames, draws)
	return nil
}

func (f *fakeBackend) Destroy(destroyDevice bool) {}

func (f *fakeBackend) Device() *wgpu.Device   { return nil }
func (f *fakeBackend) Queue() *wgpu.Queue     { return nil }
func (f *fakeBackend) Adapter() *wgpu.Adapter { return nil }
func (f *fakeBackend) Surface() *wgpu.Surface { return nil }

// newTestRenderer builds a renderer over a fake backend with a 200x100
// canvas, mirroring what NewRenderer does minus the GPU.
func newTestRenderer(t *testing.T, backend RendererBackend) *renderer {
	t.Helper()
	return &renderer{
		mu:            &sync.Mutex{},
		backend:       backend,
		clearColor:    common.Color{R: 0.01, G: 0.01, B: 0.02, A: 1.0},
		defaultCamera: camera.NewCamera(),
		width:         200,
		height:        100,
		updatePool:    worker.NewDynamicWorkerPool(2, 256, 1*time.Second),
	}
}

// allWrites flattens every flushed batch in order.
func allWrites(f *fakeBackend) []bind_group_provider.BufferWrite {
	var out []bind_group_provider.BufferWrite
	for _, b := range f.batches {
		out = append(out, b...)
	}
	return out
}

// lastBlockAt returns the most recent binding-0 write at the given offset.
func lastBlockAt(f *fakeBackend, offset uint64) []byte {
	var out []byte
	for _, w := range allWrites(f) {
		if w.Binding == 0 && w.Offset == offset {
			out = w.Data
		}
	}
	return out
}

// f32At reads the i-th float32 from a raw uniform block.
func f32At(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
}

func addRect(t *testing.T, r *renderer, pid common.PipelineID) common.ObjectID {
	t.Helper()
	id, err := r.AddObject(ObjectSetup{
		Pipeline: pid,
		Vertices: primitives.Rect(10, 10, 0),
	})
	if err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	return id
}

func TestAddObjectAssignsStableOffsets(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	pid, err := r.AddPipeline(pipeline.WithMaxObjectCount(3))
	if err != nil {
		t.Fatalf("AddPipeline: %v", err)
	}

	for want := uint64(0); want < 3; want++ {
		id := addRect(t, r, pid)
		if got := uint64(id.Slot) * testStride; got != want*testStride {
			t.Fatalf("object %d: offset %d, want %d", id.Slot, got, want*testStride)
		}
		if lastBlockAt(f, want*testStride) == nil {
			t.Fatalf("object %d: no seed transform written at offset %d", want, want*testStride)
		}
	}

	_, err = r.AddObject(ObjectSetup{Pipeline: pid, Vertices: primitives.Rect(10, 10, 0)})
	if !errors.Is(err, ErrPipelineFull) {
		t.Fatalf("4th object: got %v, want ErrPipelineFull", err)
	}
}

func TestAddObjectRequiresVertexData(t *testing.T) {
	r := newTestRenderer(t, &fakeBackend{})

	pid, err := r.AddPipeline()
	if err != nil {
		t.Fatalf("AddPipeline: %v", err)
	}
	if _, err := r.AddObject(ObjectSetup{Pipeline: pid}); !errors.Is(err, ErrNoVertexData) {
		t.Fatalf("got %v, want ErrNoVertexData", err)
	}
}

func TestAddObjectStalePipeline(t *testing.T) {
	r := newTestRenderer(t, &fakeBackend{})

	bogus := common.PipelineID{Index: 7, Generation: 3}
	if _, err := r.AddObject(ObjectSetup{Pipeline: bogus, Vertices: primitives.Rect(1, 1, 0)}); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("got %v, want ErrStaleHandle", err)
	}
}

func TestUpdateObjectIdempotent(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	pid, err := r.AddPipeline(pipeline.WithMaxObjectCount(1))
	if err != nil {
		t.Fatalf("AddPipeline: %v", err)
	}
	id := addRect(t, r, pid)

	update := NewObjectUpdate(id,
		WithTranslate(3, -4, 5),
		WithRotation(common.Vec3{0, 1, 0}, 30),
		WithScale(2, 2, 2),
	)
	if err := r.UpdateObject(update); err != nil {
		t.Fatalf("first update: %v", err)
	}
	first := lastBlockAt(f, 0)

	if err := r.UpdateObject(update); err != nil {
		t.Fatalf("second update: %v", err)
	}
	second := lastBlockAt(f, 0)

	if !bytes.Equal(first, second) {
		t.Fatal("identical updates produced different uniform bytes")
	}
	if len(first) != 3*16*4 {
		t.Fatalf("block size %d, want %d", len(first), 3*16*4)
	}
}

func TestUpdateObjectTranslatesOnlyItsSlot(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	pid, err := r.AddPipeline(pipeline.WithMaxObjectCount(2))
	if err != nil {
		t.Fatalf("AddPipeline: %v", err)
	}
	first := addRect(t, r, pid)
	addRect(t, r, pid)

	if err := r.UpdateObject(NewObjectUpdate(first, WithTranslate(10, 0, 0))); err != nil {
		t.Fatalf("UpdateObject: %v", err)
	}
	if err := r.Render([]common.PipelineID{pid}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	block0 := lastBlockAt(f, 0)
	block1 := lastBlockAt(f, testStride)
	// Column-major model matrix: translation lives at elements 12-14.
	if got := f32At(block0, 12); got != 10 {
		t.Fatalf("object 0 translation x = %v, want 10", got)
	}
	if got := f32At(block1, 12); got != 0 {
		t.Fatalf("object 1 translation x = %v, want 0", got)
	}

	draws := f.frames[len(f.frames)-1]
	if len(draws) != 2 {
		t.Fatalf("draw count %d, want 2", len(draws))
	}
	if draws[0].DynamicOffset != 0 || draws[1].DynamicOffset != testStride {
		t.Fatalf("dynamic offsets %d, %d; want 0, %d", draws[0].DynamicOffset, draws[1].DynamicOffset, testStride)
	}
}

func TestUpdateObjectsBatchFlushesOnce(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	pid, err := r.AddPipeline(pipeline.WithMaxObjectCount(4))
	if err != nil {
		t.Fatalf("AddPipeline: %v", err)
	}
	var updates []ObjectUpdate
	for i := 0; i < 4; i++ {
		id := addRect(t, r, pid)
		updates = append(updates, NewObjectUpdate(id, WithTranslate(float32(i), 0, 0)))
	}

	before := len(f.batches)
	if err := r.UpdateObjects(updates); err != nil {
		t.Fatalf("UpdateObjects: %v", err)
	}
	if got := len(f.batches) - before; got != 1 {
		t.Fatalf("batch flushes %d, want 1", got)
	}
	batch := f.batches[len(f.batches)-1]
	if len(batch) != 4 {
		t.Fatalf("writes in batch %d, want 4", len(batch))
	}
	for i, w := range batch {
		if got := f32At(w.Data, 12); got != float32(i) {
			t.Fatalf("write %d translation x = %v, want %d", i, got, i)
		}
	}
}

func TestUpdateObjectsJoinsBadHandles(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	pid, err := r.AddPipeline(pipeline.WithMaxObjectCount(1))
	if err != nil {
		t.Fatalf("AddPipeline: %v", err)
	}
	good := addRect(t, r, pid)
	bad := common.ObjectID{Pipeline: pid, Slot: 9}

	err = r.UpdateObjects([]ObjectUpdate{
		NewObjectUpdate(good, WithTranslate(1, 2, 3)),
		NewObjectUpdate(bad),
	})
	if !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("got %v, want joined ErrStaleHandle", err)
	}
	// The good update must still have been written.
	if got := f32At(lastBlockAt(f, 0), 12); got != 1 {
		t.Fatalf("good update translation x = %v, want 1", got)
	}
}

func TestRenderSkipsInvisibleObjects(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	pid, err := r.AddPipeline(pipeline.WithMaxObjectCount(2))
	if err != nil {
		t.Fatalf("AddPipeline: %v", err)
	}
	hidden := addRect(t, r, pid)
	addRect(t, r, pid)

	if err := r.UpdateObject(NewObjectUpdate(hidden, WithVisibility(false))); err != nil {
		t.Fatalf("UpdateObject: %v", err)
	}
	if err := r.Render([]common.PipelineID{pid}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	draws := f.frames[len(f.frames)-1]
	if len(draws) != 1 {
		t.Fatalf("draw count %d, want 1", len(draws))
	}
	if draws[0].DynamicOffset != testStride {
		t.Fatalf("dynamic offset %d, want %d (slot 1)", draws[0].DynamicOffset, testStride)
	}
}

func TestRenderSkipsStalePipelineHandles(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	bogus := common.PipelineID{Index: 3, Generation: 1}
	if err := r.Render([]common.PipelineID{bogus}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(f.frames[0]) != 0 {
		t.Fatalf("draw count %d, want 0", len(f.frames[0]))
	}
}

func TestRenderReconfiguresOnSurfaceLost(t *testing.T) {
	f := &fakeBackend{frameErr: wrapSurfaceError(errors.New("Surface image is Lost"))}
	r := newTestRenderer(t, f)

	err := r.Render(nil)
	if !errors.Is(err, ErrSurfaceLost) {
		t.Fatalf("got %v, want ErrSurfaceLost", err)
	}
	if len(f.configures) != 1 || f.configures[0] != [2]int{200, 100} {
		t.Fatalf("configures %v, want one at 200x100", f.configures)
	}
}

func TestRenderToTextureUsesNamedTarget(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	tex, err := r.AddTexture(200, 100, "", true)
	if err != nil {
		t.Fatalf("AddTexture: %v", err)
	}
	pid, err := r.AddPipeline(pipeline.WithMaxObjectCount(1))
	if err != nil {
		t.Fatalf("AddPipeline: %v", err)
	}
	addRect(t, r, pid)

	if err := r.RenderToTexture([]common.PipelineID{pid}, tex, &common.Color{A: 1}); err != nil {
		t.Fatalf("RenderToTexture: %v", err)
	}
	if len(f.texturePasses) != 1 || len(f.texturePasses[0]) != 1 {
		t.Fatalf("texture passes %d, want 1 with 1 draw", len(f.texturePasses))
	}

	stale := common.TextureID{Index: 42}
	if err := r.RenderToTexture(nil, stale, nil); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("got %v, want ErrStaleHandle", err)
	}
}

func TestUpdateTextureSizeRebuildsBindGroupKeepingBothSlots(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	first, err := r.AddTexture(32, 32, "", false)
	if err != nil {
		t.Fatalf("AddTexture: %v", err)
	}
	second, err := r.AddTexture(16, 16, "", false)
	if err != nil {
		t.Fatalf("AddTexture: %v", err)
	}
	firstTex, secondTex := f.created[0], f.created[1]

	pid, err := r.AddPipeline(pipeline.WithTextures(&first, &second))
	if err != nil {
		t.Fatalf("AddPipeline: %v", err)
	}
	if len(f.builds) != 1 {
		t.Fatalf("builds after AddPipeline %d, want 1", len(f.builds))
	}
	if f.builds[0].first != firstTex || f.builds[0].second != secondTex {
		t.Fatal("initial bind group built against wrong textures")
	}

	if err := r.UpdateTextureSize(first, &pid, 64, 64); err != nil {
		t.Fatalf("UpdateTextureSize: %v", err)
	}

	if len(f.released) != 1 || f.released[0] != firstTex {
		t.Fatal("old texture was not released")
	}
	if len(f.builds) != 2 {
		t.Fatalf("builds after resize %d, want 2", len(f.builds))
	}
	rebuilt := f.builds[1]
	if rebuilt.first == firstTex {
		t.Fatal("rebuild still references the destroyed texture")
	}
	if rebuilt.first != f.created[len(f.created)-1] {
		t.Fatal("rebuild does not reference the new texture")
	}
	if rebuilt.second != secondTex {
		t.Fatal("resize dropped the pipeline's second texture slot")
	}
}

func TestUpdateTextureSizeWithoutOwner(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	tex, err := r.AddTexture(32, 32, "", false)
	if err != nil {
		t.Fatalf("AddTexture: %v", err)
	}
	if err := r.UpdateTextureSize(tex, nil, 64, 64); err != nil {
		t.Fatalf("UpdateTextureSize: %v", err)
	}
	if len(f.builds) != 0 {
		t.Fatalf("builds %d, want 0 without an owner", len(f.builds))
	}
}

// writeTestPNG writes a solid-color PNG of the given size and returns its path.
func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	img.Set(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	path := filepath.Join(t.TempDir(), "tex.png")
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create png: %v", err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return path
}

func TestAddTextureFromImageUsesImageDimensions(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	path := writeTestPNG(t, 8, 6)
	id, err := r.AddTexture(999, 999, path, false)
	if err != nil {
		t.Fatalf("AddTexture: %v", err)
	}
	if len(f.textureWrites) != 1 {
		t.Fatalf("texture writes %d, want 1", len(f.textureWrites))
	}
	w := f.textureWrites[0]
	if w.width != 8 || w.height != 6 || w.bytes != 8*6*4 {
		t.Fatalf("uploaded %dx%d (%d bytes), want 8x6 (%d bytes)", w.width, w.height, w.bytes, 8*6*4)
	}

	// A later update with matching dimensions succeeds.
	if err := r.UpdateTexture(id, path); err != nil {
		t.Fatalf("UpdateTexture: %v", err)
	}
}

func TestAddTextureDecodeFailureDegradesToBlank(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	id, err := r.AddTexture(20, 30, filepath.Join(t.TempDir(), "missing.png"), false)
	if err != nil {
		t.Fatalf("AddTexture: %v", err)
	}
	if len(f.textureWrites) != 0 {
		t.Fatalf("texture writes %d, want 0 for a blank texture", len(f.textureWrites))
	}
	// The handle stays usable for a retry with matching dimensions.
	if err := r.UpdateTexture(id, writeTestPNG(t, 20, 30)); err != nil {
		t.Fatalf("UpdateTexture after degrade: %v", err)
	}
}

func TestUpdateTextureSizeMismatch(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	id, err := r.AddTexture(16, 16, "", false)
	if err != nil {
		t.Fatalf("AddTexture: %v", err)
	}
	err = r.UpdateTexture(id, writeTestPNG(t, 8, 8))
	if !errors.Is(err, ErrTextureSizeMismatch) {
		t.Fatalf("got %v, want ErrTextureSizeMismatch", err)
	}
}

func TestRenderStringExceedsBoundsWritesNothing(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	tex, err := r.AddTexture(100, 100, "", false)
	if err != nil {
		t.Fatalf("AddTexture: %v", err)
	}

	err = r.RenderStringOnTexture(tex, text.StringInput{
		Text:      "W",
		Size:      400,
		Color:     [3]uint8{255, 255, 255},
		BasePoint: [2]uint32{0, 50},
		CharGap:   2,
	})
	if !errors.Is(err, text.ErrExceedsBounds) {
		t.Fatalf("got %v, want ErrExceedsBounds", err)
	}
	if len(f.textureWrites) != 0 {
		t.Fatalf("texture writes %d, want 0", len(f.textureWrites))
	}
}

func TestRenderStringWritesGlyphRegions(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	tex, err := r.AddTexture(100, 100, "", false)
	if err != nil {
		t.Fatalf("AddTexture: %v", err)
	}

	err = r.RenderStringOnTexture(tex, text.StringInput{
		Text:      "Hi",
		Size:      16,
		Color:     [3]uint8{255, 0, 0},
		BasePoint: [2]uint32{10, 60},
		CharGap:   2,
	})
	if err != nil {
		t.Fatalf("RenderStringOnTexture: %v", err)
	}
	if len(f.textureWrites) != 2 {
		t.Fatalf("texture writes %d, want 2", len(f.textureWrites))
	}
	for i, w := range f.textureWrites {
		if w.x+w.width > 100 || w.y+w.height > 100 {
			t.Fatalf("glyph %d region (%d,%d %dx%d) outside texture", i, w.x, w.y, w.width, w.height)
		}
		if w.bytes != int(w.width*w.height*4) {
			t.Fatalf("glyph %d has %d bytes for %dx%d region", i, w.bytes, w.width, w.height)
		}
	}
}

func TestAddOverlayPipeline(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	pid, tex, err := r.AddOverlayPipeline()
	if err != nil {
		t.Fatalf("AddOverlayPipeline: %v", err)
	}

	// The overlay texture is canvas-sized and usable as a string target.
	if err := r.RenderStringOnTexture(tex, text.StringInput{
		Text:      "x",
		Size:      12,
		BasePoint: [2]uint32{4, 30},
		CharGap:   1,
	}); err != nil {
		t.Fatalf("RenderStringOnTexture: %v", err)
	}

	if err := r.Render([]common.PipelineID{pid}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	draws := f.frames[len(f.frames)-1]
	if len(draws) != 1 {
		t.Fatalf("draw count %d, want 1", len(draws))
	}
	if draws[0].Mesh.IndexCount() == 0 {
		t.Fatal("overlay quad has no index buffer")
	}
}

func animTriangle() []common.VertexAnim {
	return []common.VertexAnim{
		{Position: [3]float32{0, 0, 0}, Weights: [4]float32{1, 0, 0, 0}},
		{Position: [3]float32{1, 0, 0}, Joints: [4]uint32{1, 0, 0, 0}, Weights: [4]float32{1, 0, 0, 0}},
		{Position: [3]float32{0, 1, 0}, Weights: [4]float32{1, 0, 0, 0}},
	}
}

func TestAnimatedPipelineJointWrites(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	pid, err := r.AddPipeline(
		pipeline.WithVertexType(pipeline.VertexTypeAnimated),
		pipeline.WithMaxObjectCount(1),
		pipeline.WithMaxJointCount(2),
	)
	if err != nil {
		t.Fatalf("AddPipeline: %v", err)
	}
	id, err := r.AddObject(ObjectSetup{Pipeline: pid, AnimVertices: animTriangle()})
	if err != nil {
		t.Fatalf("AddObject: %v", err)
	}

	// One matrix over capacity; the write must be truncated to two.
	joints := []common.Mat4{
		common.Translate(1, 0, 0),
		common.Translate(0, 2, 0),
		common.Translate(0, 0, 3),
	}
	if err := r.UpdateObject(NewObjectUpdate(id, WithJointTransforms(joints))); err != nil {
		t.Fatalf("UpdateObject: %v", err)
	}

	var jointWrite *bind_group_provider.BufferWrite
	for _, w := range allWrites(f) {
		if w.Binding == 4 {
			jw := w
			jointWrite = &jw
		}
	}
	if jointWrite == nil {
		t.Fatal("no joint buffer write at binding 4")
	}
	if jointWrite.Offset != 0 {
		t.Fatalf("joint write offset %d, want 0 (shared buffer)", jointWrite.Offset)
	}
	want := common.SliceToBytes(joints[:2])
	if !bytes.Equal(jointWrite.Data, want) {
		t.Fatalf("joint data %d bytes, want the first %d bytes (capacity 2)", len(jointWrite.Data), len(want))
	}
}

func TestDefaultAnimatedShaderMatchesJointCapacity(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	if _, err := r.AddPipeline(
		pipeline.WithVertexType(pipeline.VertexTypeAnimated),
		pipeline.WithMaxJointCount(16),
	); err != nil {
		t.Fatalf("AddPipeline: %v", err)
	}
	src := f.shaderSources[0]
	if !strings.Contains(src, "array<mat4x4<f32>, 16>") {
		t.Fatal("joint array not sized to the pipeline's joint capacity")
	}
	if strings.Contains(src, "array<mat4x4<f32>, 64>") {
		t.Fatal("shader still declares the default joint capacity")
	}

	// Without the option the default capacity stands.
	f2 := &fakeBackend{}
	r2 := newTestRenderer(t, f2)
	if _, err := r2.AddPipeline(pipeline.WithVertexType(pipeline.VertexTypeAnimated)); err != nil {
		t.Fatalf("AddPipeline: %v", err)
	}
	if !strings.Contains(f2.shaderSources[0], "array<mat4x4<f32>, 64>") {
		t.Fatal("default shader lost its joint array declaration")
	}
}

func TestCustomUniformWritesUseSlotOffset(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	pid, err := r.AddPipeline(
		pipeline.WithMaxObjectCount(2),
		pipeline.WithUniforms(pipeline.Uniform{
			BindSlot:    1,
			Visibility:  wgpu.ShaderStageFragment,
			SizeInBytes: 16,
		}),
	)
	if err != nil {
		t.Fatalf("AddPipeline: %v", err)
	}
	if f.uniformBuilds != 1 {
		t.Fatalf("uniform bind group builds %d, want 1", f.uniformBuilds)
	}
	addRect(t, r, pid)
	second := addRect(t, r, pid)

	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	if err := r.UpdateObject(NewObjectUpdate(second, WithUniformData(1, payload))); err != nil {
		t.Fatalf("UpdateObject: %v", err)
	}

	batch := f.batches[len(f.batches)-1]
	if len(batch) != 2 {
		t.Fatalf("writes in batch %d, want transform + uniform", len(batch))
	}
	uw := batch[1]
	if uw.Binding != 1 {
		t.Fatalf("uniform write binding %d, want declared bind slot 1", uw.Binding)
	}
	if uw.Offset != testStride {
		t.Fatalf("uniform write offset %d, want %d (slot 1)", uw.Offset, testStride)
	}
	if !bytes.Equal(uw.Data, payload) {
		t.Fatal("uniform payload altered in staging")
	}
}

func TestDestroyInvalidatesHandles(t *testing.T) {
	f := &fakeBackend{}
	r := newTestRenderer(t, f)

	tex, err := r.AddTexture(8, 8, "", false)
	if err != nil {
		t.Fatalf("AddTexture: %v", err)
	}
	pid, err := r.AddPipeline()
	if err != nil {
		t.Fatalf("AddPipeline: %v", err)
	}

	r.Destroy(false)

	if len(f.released) != 1 {
		t.Fatalf("released textures %d, want 1", len(f.released))
	}
	if err := r.UpdateTexture(tex, "whatever.png"); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("texture after destroy: got %v, want ErrStaleHandle", err)
	}
	if _, err := r.AddObject(ObjectSetup{Pipeline: pid, Vertices: primitives.Rect(1, 1, 0)}); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("pipeline after destroy: got %v, want ErrStaleHandle", err)
	}
}

func TestClassifyFrameError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FrameErrorKind
	}{
		{name: "nil", err: nil, want: FrameErrorNone},
		{name: "lost is recoverable", err: wrapSurfaceError(errors.New("surface lost")), want: FrameErrorRecoverable},
		{name: "outdated is transient", err: wrapSurfaceError(errors.New("surface is outdated")), want: FrameErrorTransient},
		{name: "timeout is transient", err: wrapSurfaceError(errors.New("acquire timeout")), want: FrameErrorTransient},
		{name: "oom is fatal", err: wrapSurfaceError(errors.New("Out of Memory")), want: FrameErrorFatal},
		{name: "unknown is fatal", err: errors.New("device exploded"), want: FrameErrorFatal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyFrameError(tc.err); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestArenaGenerations(t *testing.T) {
	var a arena[int]

	idx, gen := a.insert(10)
	if _, ok := a.get(idx, gen); !ok {
		t.Fatal("fresh handle did not resolve")
	}
	if _, ok := a.remove(idx, gen); !ok {
		t.Fatal("remove failed")
	}
	if _, ok := a.get(idx, gen); ok {
		t.Fatal("stale handle resolved after remove")
	}

	// The freed slot is reused with a bumped generation.
	idx2, gen2 := a.insert(20)
	if idx2 != idx || gen2 != gen+1 {
		t.Fatalf("reuse: got slot %d gen %d, want slot %d gen %d", idx2, gen2, idx, gen+1)
	}
	if _, ok := a.get(idx, gen); ok {
		t.Fatal("old handle resolved against reused slot")
	}
	if v, ok := a.get(idx2, gen2); !ok || v != 20 {
		t.Fatalf("new handle: got %v %v", v, ok)
	}
}
