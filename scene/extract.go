package scene

import "github.com/gogpu/uirender"

// Extract flattens tree into draw-ordered layers.
//
// Traversal is depth-first. Group children share the current layer. A Clip
// opens a layer bounded by the intersection of the current clip and its own
// bounds; primitives that follow the Clip continue in a fresh layer with the
// outer clip so that later primitives still draw on top. Layers are created
// only when geometry lands in them, so an empty tree, None, or a fully
// clipped subtree produces no layer.
func Extract(tree Primitive, vp uirender.Viewport) []Layer {
	var e extractor
	e.visit(tree, vp.Bounds(), 0)
	return e.layers
}

type extractor struct {
	layers []Layer
	// scopes[i] is the clip scope layers[i] was opened for.
	scopes    []int
	lastScope int
}

// layer returns the layer accepting geometry for scope, opening a new one
// when the most recent layer belongs to a different scope.
func (e *extractor) layer(clip uirender.Rect, scope int) *Layer {
	if n := len(e.layers); n > 0 && e.scopes[n-1] == scope {
		return &e.layers[n-1]
	}
	e.layers = append(e.layers, Layer{Bounds: clip})
	e.scopes = append(e.scopes, scope)
	return &e.layers[len(e.layers)-1]
}

func (e *extractor) visit(p Primitive, clip uirender.Rect, scope int) {
	switch p := p.(type) {
	case nil, None:
	case Group:
		for _, child := range p.Children {
			e.visit(child, clip, scope)
		}
	case Quad:
		l := e.layer(clip, scope)
		l.Quads = append(l.Quads, p)
	case Text:
		if p.Content == "" {
			return
		}
		l := e.layer(clip, scope)
		l.Text = append(l.Text, p)
	case Image:
		if p.Ref == "" {
			return
		}
		l := e.layer(clip, scope)
		l.Images = append(l.Images, p)
	case Clip:
		inner := clip.Intersect(p.Bounds)
		if inner.Empty() {
			return
		}
		e.lastScope++
		e.visit(p.Content, inner, e.lastScope)
	}
}
