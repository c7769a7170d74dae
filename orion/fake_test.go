package orion

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/oliverbestmann/gl2d/glimpse"
	"github.com/oliverbestmann/gl2d/glimpse/glimpsetest"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	released int
}

func (b *fakeBackend) Release() {
	b.released++
}

type fakeRenderer struct {
	backend *fakeBackend

	// copies of the input pushed with each BeginFrame
	frames   []glimpse.InputState
	draws    int
	released int
	drawErr  error
}

func (r *fakeRenderer) BeginFrame(input *glimpse.InputState) {
	r.frames = append(r.frames, *input)
}

func (r *fakeRenderer) Draw() error {
	r.draws++
	return r.drawErr
}

func (r *fakeRenderer) Release() {
	r.released++
	r.backend.Release()
}

type fakeModule struct {
	initErr     error
	rendererErr error
	drawErr     error

	// if set, Init blocks until the channel is closed
	gate chan struct{}

	backend  *fakeBackend
	renderer *fakeRenderer
}

func (m *fakeModule) AcquireContext(host glimpse.Host) (DrawingContext, error) {
	return host.SurfaceDescriptor()
}

func (m *fakeModule) Init(ctx context.Context) error {
	if m.gate != nil {
		<-m.gate
	}

	return m.initErr
}

func (m *fakeModule) License() string {
	return "fake license"
}

func (m *fakeModule) NewBackend(dc DrawingContext) (Backend, error) {
	m.backend = &fakeBackend{}
	return m.backend, nil
}

func (m *fakeModule) NewRenderer(backend Backend) (Renderer, error) {
	if m.rendererErr != nil {
		return nil, m.rendererErr
	}

	m.renderer = &fakeRenderer{
		backend: backend.(*fakeBackend),
		drawErr: m.drawErr,
	}

	return m.renderer, nil
}

type recorder struct {
	licenses []string
	errors   []error
}

func (r *recorder) options() SurfaceOptions {
	return SurfaceOptions{
		Logger:  slog.New(slog.DiscardHandler),
		OnReady: func(license string) { r.licenses = append(r.licenses, license) },
		OnError: func(err error) { r.errors = append(r.errors, err) },
	}
}

// awaitInit waits until the engine initialization posted its result
// to the host and runs it.
func awaitInit(t *testing.T, host *glimpsetest.FakeHost) {
	t.Helper()

	require.Eventually(t,
		func() bool { return host.Pending() > 0 },
		time.Second, time.Millisecond,
		"engine initialization did not complete",
	)

	host.Frame()
}

func mountReady(t *testing.T, host *glimpsetest.FakeHost, module Module, rec *recorder) *Surface {
	t.Helper()

	surface := NewSurface(host, module, rec.options())
	require.NoError(t, surface.Mount(context.Background()))

	awaitInit(t, host)

	return surface
}
