// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-orrery/pkg/logging"
	"github.com/opd-ai/go-orrery/pkg/physics"
	"github.com/opd-ai/go-orrery/pkg/scene"
)

// Renderer draws one frame of a scene. RenderNode receives every node
// below the root with its world position.
type Renderer interface {
	Clear()
	RenderNode(node *scene.Node, world physics.Vector3)
	Present()
}

// Annotator is implemented by renderers that show frame information.
type Annotator interface {
	Annotate(frame uint64, elapsed float64)
}

// Draw renders the hierarchy under root as one frame.
func Draw(r Renderer, root *scene.Node) {
	r.Clear()
	root.Walk(func(node *scene.Node, world physics.Vector3) {
		if node.Kind == scene.KindRoot {
			return
		}
		r.RenderNode(node, world)
	})
	r.Present()
}

// NullRenderer draws nothing and logs every call at debug level.
type NullRenderer struct {
	logger *logging.Logger
	frames uint64
	nodes  int
	last   int
}

// NewNullRenderer creates a NullRenderer. A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{
		logger: logger.With("component", "null_renderer"),
	}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {
	d.nodes = 0
	d.logger.Debug(context.Background(), "Clear called")
}

// RenderNode implements Renderer.
func (d *NullRenderer) RenderNode(node *scene.Node, world physics.Vector3) {
	ctx := context.Background()
	if node == nil {
		d.logger.Debug(ctx, "RenderNode called with nil node")
		return
	}
	d.nodes++
	d.logger.Debug(ctx, "RenderNode called",
		"node", node.Path,
		"kind", node.Kind.String(),
		"x", world.X,
		"z", world.Z,
	)
}

// Present implements Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.last = d.nodes
	d.logger.Debug(context.Background(), "Present called", "nodes", d.nodes, "frame", d.frames)
}

// Frames returns the number of presented frames.
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// LastFrameNodes returns how many nodes the last presented frame contained.
func (d *NullRenderer) LastFrameNodes() int {
	return d.last
}
