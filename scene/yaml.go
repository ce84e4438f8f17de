package scene

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/uirender"
)

// Errors returned by Decode.
var (
	ErrUnknownPrimitive = errors.New("scene: unknown primitive type")
	ErrInvalidBounds    = errors.New("scene: bounds must have four numbers")
	ErrInvalidColor     = errors.New("scene: invalid color")
	ErrInvalidAlign     = errors.New("scene: invalid alignment")
)

// node is the YAML form of a primitive.
//
//	type: group
//	children:
//	  - type: quad
//	    bounds: [0, 0, 50, 50]
//	    fill: "#ff0000"
//	  - type: clip
//	    bounds: [10, 10, 20, 20]
//	    child: {type: text, bounds: [10, 10, 80, 20], content: Hi, size: 16}
type node struct {
	Type     string    `yaml:"type"`
	Bounds   []float32 `yaml:"bounds"`
	Children []node    `yaml:"children"`
	Child    *node     `yaml:"child"`

	Fill         string  `yaml:"fill"`
	BorderWidth  float32 `yaml:"border_width"`
	BorderColor  string  `yaml:"border_color"`
	BorderRadius float32 `yaml:"border_radius"`

	Content string  `yaml:"content"`
	Size    float32 `yaml:"size"`
	Color   string  `yaml:"color"`
	Font    string  `yaml:"font"`
	HAlign  string  `yaml:"halign"`
	VAlign  string  `yaml:"valign"`

	Ref string `yaml:"ref"`
}

// Decode parses a YAML scene description into a primitive tree.
func Decode(data []byte) (Primitive, error) {
	var root node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("scene: parse yaml: %w", err)
	}
	return root.primitive("root")
}

func (n *node) primitive(path string) (Primitive, error) {
	switch strings.ToLower(n.Type) {
	case "", "none":
		return None{}, nil
	case "group":
		g := Group{Children: make([]Primitive, 0, len(n.Children))}
		for i := range n.Children {
			child, err := n.Children[i].primitive(fmt.Sprintf("%s.children[%d]", path, i))
			if err != nil {
				return nil, err
			}
			g.Children = append(g.Children, child)
		}
		return g, nil
	case "quad":
		bounds, err := decodeBounds(path, n.Bounds)
		if err != nil {
			return nil, err
		}
		fill, err := decodeColor(path, n.Fill, uirender.Transparent)
		if err != nil {
			return nil, err
		}
		border, err := decodeColor(path, n.BorderColor, uirender.Transparent)
		if err != nil {
			return nil, err
		}
		return Quad{
			Bounds:       bounds,
			Fill:         fill,
			BorderWidth:  n.BorderWidth,
			BorderColor:  border,
			BorderRadius: n.BorderRadius,
		}, nil
	case "text":
		return n.text(path)
	case "image":
		bounds, err := decodeBounds(path, n.Bounds)
		if err != nil {
			return nil, err
		}
		return Image{Bounds: bounds, Ref: n.Ref}, nil
	case "clip":
		bounds, err := decodeBounds(path, n.Bounds)
		if err != nil {
			return nil, err
		}
		var content Primitive = None{}
		if n.Child != nil {
			content, err = n.Child.primitive(path + ".child")
			if err != nil {
				return nil, err
			}
		}
		return Clip{Bounds: bounds, Content: content}, nil
	default:
		return nil, fmt.Errorf("%s: %w: %q", path, ErrUnknownPrimitive, n.Type)
	}
}

func (n *node) text(path string) (Primitive, error) {
	bounds, err := decodeBounds(path, n.Bounds)
	if err != nil {
		return nil, err
	}
	c, err := decodeColor(path, n.Color, uirender.Black)
	if err != nil {
		return nil, err
	}
	t := Text{
		Bounds:  bounds,
		Content: n.Content,
		Size:    n.Size,
		Color:   c,
		Font:    n.Font,
	}
	if t.Size <= 0 {
		t.Size = 16
	}
	switch strings.ToLower(n.HAlign) {
	case "", "left":
	case "center":
		t.HAlign = uirender.AlignCenter
	case "right":
		t.HAlign = uirender.AlignRight
	default:
		return nil, fmt.Errorf("%s: %w: halign %q", path, ErrInvalidAlign, n.HAlign)
	}
	switch strings.ToLower(n.VAlign) {
	case "", "top":
	case "middle", "center":
		t.VAlign = uirender.AlignMiddle
	case "bottom":
		t.VAlign = uirender.AlignBottom
	default:
		return nil, fmt.Errorf("%s: %w: valign %q", path, ErrInvalidAlign, n.VAlign)
	}
	return t, nil
}

func decodeBounds(path string, v []float32) (uirender.Rect, error) {
	if len(v) != 4 {
		return uirender.Rect{}, fmt.Errorf("%s: %w (got %d)", path, ErrInvalidBounds, len(v))
	}
	return uirender.NewRect(v[0], v[1], v[2], v[3]), nil
}

func decodeColor(path, s string, fallback uirender.Color) (uirender.Color, error) {
	if s == "" {
		return fallback, nil
	}
	c, ok := uirender.Hex(s)
	if !ok {
		return uirender.Color{}, fmt.Errorf("%s: %w: %q", path, ErrInvalidColor, s)
	}
	return c, nil
}
