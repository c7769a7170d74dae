package pulse

import (
	"log/slog"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// View holds the configuration of the surface we render to. The surface
// is only reconfigured if the backing store size changes.
type View struct {
	*Context

	surfaceConfig *wgpu.SurfaceConfiguration
}

func NewView(dev *Context) *View {
	caps := dev.Surface.GetCapabilities(dev.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	return &View{
		Context: dev,
		surfaceConfig: &wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      wgpu.TextureFormatBGRA8Unorm,
			PresentMode: wgpu.PresentModeFifo,
			AlphaMode:   caps.AlphaModes[0],

			// try to reduce input latency
			DesiredMaximumFrameLatency: 1,
		},
	}
}

func (vs *View) Format() wgpu.TextureFormat {
	return vs.surfaceConfig.Format
}

func (vs *View) Size() (width, height uint32) {
	return vs.surfaceConfig.Width, vs.surfaceConfig.Height
}

// Configure resizes the surface. Returns false if the size did not change.
func (vs *View) Configure(width, height uint32) bool {
	// a surface can not have a zero size
	width, height = max(width, 1), max(height, 1)

	if vs.surfaceConfig.Width == width && vs.surfaceConfig.Height == height {
		return false
	}

	slog.Debug("Resize surface",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	vs.surfaceConfig.Width = width
	vs.surfaceConfig.Height = height
	vs.Surface.Configure(vs.Device, vs.surfaceConfig)

	return true
}
