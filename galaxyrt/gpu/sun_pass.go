package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/gekko3d/galaxy/galaxyrt/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

type SunCameraUniform struct {
	ViewProj mgl32.Mat4
	Model    mgl32.Mat4
	Eye      [4]float32
}

type SunMaterialUniform struct {
	Attenuation [4]float32
	Optics      [4]float32
	Specular    [4]float32
}

func NewSunMaterialUniform(m core.PhysicalMaterial) SunMaterialUniform {
	att := core.ColorVec3(m.AttenuationColor)
	spec := core.ColorVec3(m.SpecularColor)
	return SunMaterialUniform{
		Attenuation: [4]float32{att[0], att[1], att[2], float32(m.AttenuationDistance)},
		Optics:      [4]float32{float32(m.IOR), float32(m.Thickness), float32(m.SpecularIntensity), float32(m.Transmission)},
		Specular:    [4]float32{spec[0], spec[1], spec[2], 1},
	}
}

type SunDraw struct {
	Key      string
	Mesh     *core.SphereMesh
	Material core.PhysicalMaterial
	Model    mgl32.Mat4
}

type sunBatch struct {
	vertices   *wgpu.Buffer
	indices    *wgpu.Buffer
	indexCount uint32
	camera     *wgpu.Buffer
	material   *wgpu.Buffer
	bindGroup  *wgpu.BindGroup
}

func (b *sunBatch) release() {
	b.bindGroup.Release()
	b.material.Release()
	b.camera.Release()
	if b.indices != nil {
		b.indices.Release()
	}
	if b.vertices != nil {
		b.vertices.Release()
	}
}

type SunRenderPass struct {
	Pipeline *wgpu.RenderPipeline
	Device   *wgpu.Device

	batches map[string]*sunBatch
	order   []string
}

func NewSunRenderPass(device *wgpu.Device, format wgpu.TextureFormat) (*SunRenderPass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "SunShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.SunWGSL},
	})
	if err != nil {
		return nil, err
	}
	defer shaderModule.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "SunPipeline",
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(unsafe.Sizeof(core.MeshVertex{})),
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						Operation: wgpu.BlendOperationAdd,
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
					},
					Alpha: wgpu.BlendComponent{
						Operation: wgpu.BlendOperationAdd,
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
					},
				},
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: depthState(true),
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	return &SunRenderPass{
		Pipeline: pipeline,
		Device:   device,
		batches:  make(map[string]*sunBatch),
	}, nil
}

func (p *SunRenderPass) Update(queue *wgpu.Queue, viewProj mgl32.Mat4, eye mgl32.Vec3, draws []SunDraw) error {
	seen := make(map[string]bool, len(draws))
	p.order = p.order[:0]

	for _, d := range draws {
		b, ok := p.batches[d.Key]
		if !ok {
			var err error
			if b, err = p.newBatch(queue, d); err != nil {
				return err
			}
			p.batches[d.Key] = b
		}
		cam := SunCameraUniform{ViewProj: viewProj, Model: d.Model, Eye: [4]float32{eye[0], eye[1], eye[2], 1}}
		queue.WriteBuffer(b.camera, 0, unsafe.Slice((*byte)(unsafe.Pointer(&cam)), unsafe.Sizeof(cam)))

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

func (p *SunRenderPass) newBatch(queue *wgpu.Queue, d SunDraw) (*sunBatch, error) {
	b := &sunBatch{}
	var err error
	b.camera, err = p.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "SunCamera",
		Size:  uint64(unsafe.Sizeof(SunCameraUniform{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	mat := NewSunMaterialUniform(d.Material)
	b.material, err = p.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "SunMaterial",
		Contents: unsafe.Slice((*byte)(unsafe.Pointer(&mat)), unsafe.Sizeof(mat)),
		Usage:    wgpu.BufferUsageUniform,
	})
	if err != nil {
		b.camera.Release()
		return nil, err
	}

	layout := p.Pipeline.GetBindGroupLayout(0)
	defer layout.Release()
	b.bindGroup, err = p.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "SunBG",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.camera, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: b.material, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		b.material.Release()
		b.camera.Release()
		return nil, err
	}

	if d.Mesh == nil || len(d.Mesh.Indices) == 0 {
		return b, nil
	}
	b.vertices, err = p.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "SunVertices",
		Contents: wgpu.ToBytes(d.Mesh.Vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		b.release()
		return nil, err
	}
	b.indices, err = p.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "SunIndices",
		Contents: wgpu.ToBytes(d.Mesh.Indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		b.release()
		return nil, err
	}
	b.indexCount = uint32(len(d.Mesh.Indices))
	return b, nil
}

func (p *SunRenderPass) Draw(pass *wgpu.RenderPassEncoder) {
	for _, key := range p.order {
		b := p.batches[key]
		if b == nil || b.indexCount == 0 {
			continue
		}
		pass.SetPipeline(p.Pipeline)
		pass.SetBindGroup(0, b.bindGroup, nil)
		pass.SetVertexBuffer(0, b.vertices, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(b.indices, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		pass.DrawIndexed(b.indexCount, 1, 0, 0, 0)
	}
}

func (p *SunRenderPass) Release() {
	for key, b := range p.batches {
		b.release()
		delete(p.batches, key)
	}
	p.Pipeline.Release()
}
