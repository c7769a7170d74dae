package pulse

import (
	_ "embed"
	"fmt"
	"log/slog"
	"structs"
	"unsafe"

	"github.com/oliverbestmann/gl2d/glm"
	"github.com/oliverbestmann/gl2d/scene"
	"github.com/oliverbestmann/webgpu/wgpu"
)

//go:embed mesh.wgsl
var meshShaderCode string

// maximum number of vertices to render in one batch
const maxMeshVertices = 16 * 1024 * 3

type MeshVertex struct {
	_ structs.HostLayout

	Position glm.Vec2f
	Color    glm.Vec4f
}

// MeshCommand batches colored triangles and renders them in one pass.
type MeshCommand struct {
	ctx *Context

	pipelineCache *PipelineCache[meshPipelineConfig]

	vertices    []MeshVertex
	bufVertices *wgpu.Buffer
}

func NewMeshCommand(ctx *Context) (*MeshCommand, error) {
	bufVertices, err := ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Mesh.Vertices",
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof(MeshVertex{})) * maxMeshVertices,
	})

	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	p := &MeshCommand{
		ctx:           ctx,
		bufVertices:   bufVertices,
		pipelineCache: NewPipelineCache[meshPipelineConfig](ctx),
	}

	return p, nil
}

// ClipTransform maps pixel coordinates of a target with the given size to clip space.
func ClipTransform(width, height uint32) glm.Mat3f {
	return glm.TranslationMat3[float32](-1, 1).
		Scale(2/float32(width), -2/float32(height))
}

// DrawTile queues the two triangles of a tile. The transform maps world coordinates to clip space.
func (p *MeshCommand) DrawTile(target *wgpu.TextureView, format wgpu.TextureFormat, transform glm.Mat3f, tile scene.Tile) error {
	if len(p.vertices)+6 > maxMeshVertices {
		if err := p.Flush(target, format); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
	}

	color := tile.Color.ToVec()
	corners := tile.Corners()

	for _, idx := range [6]int{0, 1, 2, 1, 3, 2} {
		p.vertices = append(p.vertices, MeshVertex{
			Position: transform.Transform2(corners[idx]),
			Color:    color,
		})
	}

	return nil
}

// Flush renders all queued triangles into the target.
func (p *MeshCommand) Flush(target *wgpu.TextureView, format wgpu.TextureFormat) error {
	defer p.reset()

	if len(p.vertices) == 0 {
		return nil
	}

	slog.Debug("Rendering triangles", slog.Int("vertexCount", len(p.vertices)))

	pipeline, err := p.pipelineCache.Get(meshPipelineConfig{TargetFormat: format})
	if err != nil {
		return fmt.Errorf("get pipeline: %w", err)
	}

	err = p.ctx.WriteBuffer(p.bufVertices, 0, wgpu.ToBytes(p.vertices))
	if err != nil {
		return fmt.Errorf("update vertex buffer: %w", err)
	}

	encoder, err := p.ctx.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "RenderPassMesh",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    target,
				LoadOp:  wgpu.LoadOpLoad,
				StoreOp: wgpu.StoreOpStore,
			},
		},
	})

	defer func() {
		if pass != nil {
			pass.Release()
		}
	}()

	pass.SetPipeline(pipeline)
	pass.SetVertexBuffer(0, p.bufVertices, 0, wgpu.WholeSize)
	pass.Draw(uint32(len(p.vertices)), 1, 0, 0)

	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	// must release pass before finishing the encoder
	pass.Release()
	pass = nil

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}

	defer cmdBuffer.Release()

	p.ctx.Submit(cmdBuffer)

	return nil
}

func (p *MeshCommand) Release() {
	p.pipelineCache.Purge()
	p.bufVertices.Release()
}

func (p *MeshCommand) reset() {
	p.vertices = p.vertices[:0]
}

type meshPipelineConfig struct {
	TargetFormat wgpu.TextureFormat
}

func (conf meshPipelineConfig) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for meshes",
		slog.Any("format", conf.TargetFormat),
	)

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Mesh.ShaderSource",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: meshShaderCode},
	})
	if err != nil {
		return nil, fmt.Errorf("compile mesh shader: %w", err)
	}

	defer shader.Release()

	blendState := wgpu.BlendStateAlphaBlending

	pipeline, err := dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("Mesh.%s", conf.TargetFormat),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(MeshVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							// position
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(MeshVertex{}.Position)),
							ShaderLocation: 0,
						},
						{
							// color
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         uint64(unsafe.Offsetof(MeshVertex{}.Color)),
							ShaderLocation: 1,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     &blendState,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})

	if err != nil {
		return nil, fmt.Errorf("build mesh pipeline: %w", err)
	}

	return pipeline, nil
}
