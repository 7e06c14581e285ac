package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

const DepthFormat = wgpu.TextureFormatDepth24Plus

func depthState(write bool) *wgpu.DepthStencilState {
	always := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionAlways,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationKeep,
	}
	return &wgpu.DepthStencilState{
		Format:            DepthFormat,
		DepthWriteEnabled: write,
		DepthCompare:      wgpu.CompareFunctionLess,
		StencilFront:      always,
		StencilBack:       always,
	}
}

// DepthTarget is the depth attachment shared by the sun and points passes.
type DepthTarget struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
}

func NewDepthTarget(device *wgpu.Device, width, height int) (*DepthTarget, error) {
	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "DepthTexture",
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	return &DepthTarget{Texture: tex, View: view}, nil
}

func (d *DepthTarget) Attachment() *wgpu.RenderPassDepthStencilAttachment {
	return &wgpu.RenderPassDepthStencilAttachment{
		View:            d.View,
		DepthLoadOp:     wgpu.LoadOpClear,
		DepthStoreOp:    wgpu.StoreOpStore,
		DepthClearValue: 1,
	}
}

func (d *DepthTarget) Release() {
	d.View.Release()
	d.Texture.Release()
}
