package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/gekko3d/galaxy/galaxyrt/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// QuadVertex is one corner of the camera facing square drawn per point.
type QuadVertex struct {
	Corner [2]float32
}

// PointsUniform matches the WGSL Camera struct of the points shader.
type PointsUniform struct {
	ViewProj mgl32.Mat4
	Model    mgl32.Mat4
	Params   [4]float32
}

// PointsDraw is one point cloud to draw this frame. Key identifies the scene
// object; GPU buffers live as long as the key keeps appearing.
type PointsDraw struct {
	Key         string
	Buffer      *core.ParticleBuffer
	Model       mgl32.Mat4
	Size        float32
	Attenuation bool
}

type pointsBatch struct {
	source    *core.ParticleBuffer
	instances *wgpu.Buffer
	count     uint32
	uniform   *wgpu.Buffer
	bindGroup *wgpu.BindGroup
	params    PointsUniform
}

func (b *pointsBatch) release() {
	if b.instances != nil {
		b.instances.Release()
	}
	b.bindGroup.Release()
	b.uniform.Release()
}

type PointsRenderPass struct {
	Pipeline   *wgpu.RenderPipeline
	Device     *wgpu.Device
	QuadBuffer *wgpu.Buffer

	batches map[string]*pointsBatch
	order   []string
	scratch []core.PointInstance
}

var unitQuad = []QuadVertex{
	{Corner: [2]float32{-1, -1}}, {Corner: [2]float32{1, -1}}, {Corner: [2]float32{1, 1}},
	{Corner: [2]float32{-1, -1}}, {Corner: [2]float32{1, 1}}, {Corner: [2]float32{-1, 1}},
}

func NewPointsRenderPass(device *wgpu.Device, format wgpu.TextureFormat) (*PointsRenderPass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "PointsShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.PointsWGSL},
	})
	if err != nil {
		return nil, err
	}
	defer shaderModule.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "PointsPipeline",
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(QuadVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					},
				},
				{
					ArrayStride: uint64(unsafe.Sizeof(core.PointInstance{})),
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 1},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 2},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOne,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorZero,
							DstFactor: wgpu.BlendFactorOne,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		// test against the sun, never write
		DepthStencil: depthState(false),
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	p := &PointsRenderPass{
		Pipeline: pipeline,
		Device:   device,
		batches:  make(map[string]*pointsBatch),
	}

	size := uint64(len(unitQuad) * int(unsafe.Sizeof(QuadVertex{})))
	p.QuadBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "PointsQuadBuffer",
		Size:  size,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	device.GetQueue().WriteBuffer(p.QuadBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&unitQuad[0])), size))
	return p, nil
}

// Update uploads new point clouds, refreshes uniforms and releases buffers of
// clouds that are no longer drawn.
func (p *PointsRenderPass) Update(queue *wgpu.Queue, viewProj mgl32.Mat4, fbWidth, fbHeight int, draws []PointsDraw) error {
	seen := make(map[string]bool, len(draws))
	p.order = p.order[:0]

	for _, d := range draws {
		b, ok := p.batches[d.Key]
		if !ok {
			var err error
			if b, err = p.newBatch(); err != nil {
				return err
			}
			p.batches[d.Key] = b
		}
		if b.source != d.Buffer {
			if err := p.upload(queue, b, d.Buffer); err != nil {
				return err
			}
		}

		attenuate := float32(0)
		if d.Attenuation {
			attenuate = 1
		}
		b.params = PointsUniform{
			ViewProj: viewProj,
			Model:    d.Model,
			Params:   [4]float32{float32(fbWidth), float32(fbHeight), d.Size, attenuate},
		}
		queue.WriteBuffer(b.uniform, 0, unsafe.Slice((*byte)(unsafe.Pointer(&b.params)), unsafe.Sizeof(b.params)))

		seen[d.Key] = true
		p.order = append(p.order, d.Key)
	}

	for key, b := range p.batches {
		if !seen[key] {
			b.release()
			delete(p.batches, key)
		}
	}
	return nil
}

func (p *PointsRenderPass) newBatch() (*pointsBatch, error) {
	uniform, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "PointsUniform",
		Size:  uint64(unsafe.Sizeof(PointsUniform{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	layout := p.Pipeline.GetBindGroupLayout(0)
	defer layout.Release()
	bg, err := p.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "PointsBG",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: uniform, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		uniform.Release()
		return nil, err
	}
	return &pointsBatch{uniform: uniform, bindGroup: bg}, nil
}

func (p *PointsRenderPass) upload(queue *wgpu.Queue, b *pointsBatch, buf *core.ParticleBuffer) error {
	b.source = buf
	p.scratch = core.PackInstances(buf, p.scratch)
	b.count = uint32(len(p.scratch))
	if b.count == 0 {
		return nil
	}

	stride := uint64(unsafe.Sizeof(core.PointInstance{}))
	size := uint64(b.count) * stride
	if b.instances == nil || b.instances.GetSize() < size {
		if b.instances != nil {
			b.instances.Release()
		}
		var err error
		b.instances, err = p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "PointsInstanceBuffer",
			Size:  size,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
	}
	queue.WriteBuffer(b.instances, 0, unsafe.Slice((*byte)(unsafe.Pointer(&p.scratch[0])), size))
	return nil
}

func (p *PointsRenderPass) Draw(pass *wgpu.RenderPassEncoder) {
	for _, key := range p.order {
		b := p.batches[key]
		if b == nil || b.count == 0 {
			continue
		}
		pass.SetPipeline(p.Pipeline)
		pass.SetBindGroup(0, b.bindGroup, nil)
		pass.SetVertexBuffer(0, p.QuadBuffer, 0, p.QuadBuffer.GetSize())
		pass.SetVertexBuffer(1, b.instances, 0, b.instances.GetSize())
		pass.Draw(uint32(len(unitQuad)), b.count, 0, 0)
	}
}

func (p *PointsRenderPass) Release() {
	for key, b := range p.batches {
		b.release()
		delete(p.batches, key)
	}
	p.QuadBuffer.Release()
	p.Pipeline.Release()
}
