package raster

import (
	"context"
	"go/parser"
	"go/token"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oliverbestmann/gl2d/glimpse"
	"github.com/oliverbestmann/gl2d/glimpse/glimpsetest"
	"github.com/oliverbestmann/gl2d/glm"
	"github.com/oliverbestmann/gl2d/orion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T, host *glimpsetest.FakeHost) orion.Renderer {
	t.Helper()

	module := &Module{}
	require.NoError(t, module.Init(context.Background()))

	dc, err := module.AcquireContext(host)
	require.NoError(t, err)

	backend, err := module.NewBackend(dc)
	require.NoError(t, err)

	renderer, err := module.NewRenderer(backend)
	require.NoError(t, err)

	t.Cleanup(renderer.Release)

	return renderer
}

// gray returns the 8 bit red component at the given pixel
func gray(img image.Image, x, y int) uint32 {
	r, _, _, _ := img.At(x, y).RGBA()
	return r >> 8
}

func TestRendererBlitsBackingSizedImage(t *testing.T) {
	host := glimpsetest.NewFakeHost(40, 30, 2)
	renderer := newTestRenderer(t, host)

	input := glimpse.NewInputState()
	input.SetScreenSize(40, 30, 2)

	renderer.BeginFrame(input)
	require.NoError(t, renderer.Draw())

	require.Len(t, host.Blits, 1)
	assert.Equal(t, image.Rect(0, 0, 80, 60), host.Blits[0].Bounds())

	// the top left field is the bright one
	assert.InDelta(t, 237, gray(host.Blits[0], 10, 10), 3)
}

func TestRendererPansWithWheel(t *testing.T) {
	host := glimpsetest.NewFakeHost(40, 30, 1)
	renderer := newTestRenderer(t, host)

	input := glimpse.NewInputState()
	input.SetScreenSize(40, 30, 1)

	// scroll by one field to the right
	input.AddWheel(48, 0)

	renderer.BeginFrame(input)
	require.NoError(t, renderer.Draw())

	assert.Equal(t, glimpse.Deltas{}, input.Deltas())
	assert.Equal(t, glm.Vec2f{-48, 0}, renderer.(*Renderer).Camera().Translate)

	// the second field is the dark one
	assert.InDelta(t, 51, gray(host.Blits[0], 10, 10), 3)
}

func TestRendererReleaseOnce(t *testing.T) {
	host := glimpsetest.NewFakeHost(10, 10, 1)
	renderer := newTestRenderer(t, host)

	require.NotPanics(t, func() {
		renderer.Release()
		renderer.Release()
	})
}

func TestModuleAcquireContext(t *testing.T) {
	host := glimpsetest.NewFakeHost(10, 10, 1)
	host.BlitterErr = glimpse.ErrContextUnavailable

	_, err := (&Module{}).AcquireContext(host)
	assert.ErrorIs(t, err, glimpse.ErrContextUnavailable)
}

func TestModuleLicense(t *testing.T) {
	module := &Module{}
	assert.Panics(t, func() { module.License() })

	require.NoError(t, module.Init(context.Background()))
	assert.Contains(t, module.License(), "gogpu/gg")
}

func TestModuleRejectsForeignValues(t *testing.T) {
	module := &Module{}

	_, err := module.NewBackend(42)
	assert.Error(t, err)
}

func TestPackageDoesNotImportWebGPU(t *testing.T) {
	fset := token.NewFileSet()

	files, err := filepath.Glob("*.go")
	require.NoError(t, err)

	for _, file := range files {
		parsed, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
		require.NoError(t, err)

		for _, imp := range parsed.Imports {
			path := strings.Trim(imp.Path.Value, `"`)

			assert.NotContains(t, path, "webgpu", "%s imports %s", file, path)
			assert.NotEqual(t, "github.com/oliverbestmann/gl2d/pulse", path, "%s imports the webgpu engine", file)
		}
	}
}
