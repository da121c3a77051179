// Package reveal paints pointer-following "reveal" highlights on decorated
// elements for [Ebitengine] and headless hosts.
//
// A [Boundary] watches the pointer over a container element. Every decorated
// element inside it is a [Target] that owns a drawing surface: a
// [RasterSurface] such as [EbitenSurface] or [ImageSurface], or a
// [VectorSurface] such as [SVGSurface]. While the pointer is inside the
// boundary each target paints a border glow around its outline and a hover
// light under the pointer. Pressing a target starts a ripple that spreads
// from the press point and fades after release.
//
// # Quick start
//
// [Run] opens a window and drives everything for you:
//
//	host := reveal.NewHost(reveal.DefaultConfig(), 640, 480)
//	panel := reveal.NewBox("panel", reveal.Rect{X: 0, Y: 0, Width: 640, Height: 480})
//	b := host.AddBoundary(panel)
//	button := reveal.NewBox("ok", reveal.Rect{X: 40, Y: 40, Width: 120, Height: 40}, "button")
//	host.AddTarget(b, button)
//	reveal.Run(host, reveal.RunConfig{Title: "Reveal", Width: 640, Height: 480})
//
// For full control, create a [Manager] with your own [FrameRequester] and
// forward pointer events to the boundaries, or use a [PointerRouter].
//
// # Styles
//
// Targets read their appearance from a [StyleSource]. The default source
// resolves classes against a [StyleSheet] loaded from YAML; [MapStyleSource]
// and [TypedStyleSource] serve hosts with their own style systems. Styles
// are re-read at most once per frame and glow patterns are regenerated only
// when their radius, color or opacity change.
//
// # Frames
//
// Boundaries never paint on their own. They request a frame from the
// [FrameRequester] and repaint when the host runs it. [FrameLoop] is a
// ready-made requester, and [Headless] combines it with a virtual clock for
// tests and offline rendering.
//
// # Configuration
//
// [Config] is built with [ConfigBuilder] or loaded from YAML with
// [LoadConfigFile]; REVEAL_* environment variables override file values.
// Logging uses [log/slog] through [NewLogger].
//
// [Ebitengine]: https://ebitengine.org
package reveal
