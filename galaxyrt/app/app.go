// Package app owns the WebGPU device and surface and draws a frame of
// galaxy points, the sun and the panel overlay.
package app

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/gekko3d/galaxy/galaxyrt/gpu"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Frame is everything drawn in one frame. View and Projection are GL style;
// the renderer converts the depth range itself.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Eye        mgl32.Vec3
	Points     []gpu.PointsDraw
	Suns       []gpu.SunDraw
	Text       []core.TextItem
	Clear      wgpu.Color
}

type App struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	Depth  *gpu.DepthTarget
	Points *gpu.PointsRenderPass
	Sun    *gpu.SunRenderPass
	Text   *gpu.TextRenderPass

	FontSize float64
}

func NewApp(window *glfw.Window) *App {
	return &App{Window: window, FontSize: 18}
}

func (a *App) Init() error {
	a.Instance = wgpu.CreateInstance(nil)
	a.Surface = a.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(a.Window))

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "Galaxy Device"})
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	a.Queue = a.Device.GetQueue()

	width, height := a.Window.GetFramebufferSize()
	caps := a.Surface.GetCapabilities(adapter)
	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	a.Surface.Configure(a.Adapter, a.Device, a.Config)

	if a.Depth, err = gpu.NewDepthTarget(a.Device, int(a.Config.Width), int(a.Config.Height)); err != nil {
		return fmt.Errorf("depth target: %w", err)
	}
	if a.Points, err = gpu.NewPointsRenderPass(a.Device, a.Config.Format); err != nil {
		return fmt.Errorf("points pass: %w", err)
	}
	if a.Sun, err = gpu.NewSunRenderPass(a.Device, a.Config.Format); err != nil {
		return fmt.Errorf("sun pass: %w", err)
	}

	tr, err := core.NewPanelTextRenderer(a.FontSize)
	if err != nil {
		return fmt.Errorf("text renderer: %w", err)
	}
	if a.Text, err = gpu.NewTextRenderPass(a.Device, a.Queue, a.Config.Format, tr); err != nil {
		return fmt.Errorf("text pass: %w", err)
	}
	return nil
}

// Resize reconfigures the surface and depth target to the framebuffer size.
func (a *App) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	if uint32(w) == a.Config.Width && uint32(h) == a.Config.Height {
		return nil
	}
	a.Config.Width = uint32(w)
	a.Config.Height = uint32(h)
	a.Surface.Configure(a.Adapter, a.Device, a.Config)

	depth, err := gpu.NewDepthTarget(a.Device, w, h)
	if err != nil {
		return err
	}
	a.Depth.Release()
	a.Depth = depth
	return nil
}

func (a *App) LineHeight() float32 {
	return a.Text.Renderer.LineHeight(1)
}

func (a *App) Render(f Frame) error {
	fbW, fbH := int(a.Config.Width), int(a.Config.Height)
	viewProj := core.WebGPUProjection(f.Projection).Mul4(f.View)

	if err := a.Sun.Update(a.Queue, viewProj, f.Eye, f.Suns); err != nil {
		return fmt.Errorf("sun update: %w", err)
	}
	if err := a.Points.Update(a.Queue, viewProj, fbW, fbH, f.Points); err != nil {
		return fmt.Errorf("points update: %w", err)
	}
	if err := a.Text.Update(a.Queue, f.Text, fbW, fbH); err != nil {
		return fmt.Errorf("text update: %w", err)
	}

	nextTexture, err := a.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	defer view.Release()

	encoder, err := a.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: f.Clear,
		}},
		DepthStencilAttachment: a.Depth.Attachment(),
	})
	// opaque depth first so additive points are hidden behind the sun
	a.Sun.Draw(pass)
	a.Points.Draw(pass)
	a.Text.Draw(pass)
	if err := pass.End(); err != nil {
		return fmt.Errorf("render pass: %w", err)
	}
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("encoder finish: %w", err)
	}
	defer cmd.Release()
	a.Queue.Submit(cmd)
	a.Surface.Present()
	return nil
}

func (a *App) Release() {
	if a.Text != nil {
		a.Text.Release()
	}
	if a.Sun != nil {
		a.Sun.Release()
	}
	if a.Points != nil {
		a.Points.Release()
	}
	if a.Depth != nil {
		a.Depth.Release()
	}
	if a.Device != nil {
		a.Device.Release()
	}
	if a.Adapter != nil {
		a.Adapter.Release()
	}
	if a.Surface != nil {
		a.Surface.Release()
	}
	if a.Instance != nil {
		a.Instance.Release()
	}
}
