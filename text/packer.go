package text

import "image"

// shelf is one horizontal strip of the atlas.
type shelf struct {
	y      int
	height int
	nextX  int
}

// shelfPacker places rectangles left to right on shelves, opening a new
// shelf below the last one when nothing fits. It never frees space; the
// atlas is cleared as a whole on rebuild.
type shelfPacker struct {
	width   int
	height  int
	padding int
	shelves []shelf
	used    int
}

func newShelfPacker(width, height, padding int) *shelfPacker {
	if padding < 0 {
		padding = 0
	}
	return &shelfPacker{width: width, height: height, padding: padding}
}

// allocate reserves a width x height rectangle. ok is false when the
// rectangle cannot be placed.
func (p *shelfPacker) allocate(width, height int) (image.Rectangle, bool) {
	if width <= 0 || height <= 0 {
		return image.Rectangle{}, false
	}
	pw, ph := width+p.padding, height+p.padding
	if pw > p.width || ph > p.height {
		return image.Rectangle{}, false
	}

	last := len(p.shelves) - 1
	for i := range p.shelves {
		s := &p.shelves[i]
		if s.nextX+pw > p.width {
			continue
		}
		if ph > s.height {
			// Only the bottom shelf may grow, and only if room remains.
			if i != last || s.y+ph > p.height {
				continue
			}
			s.height = ph
		}
		return p.place(s, width, height, pw), true
	}

	y := 0
	if last >= 0 {
		y = p.shelves[last].y + p.shelves[last].height
	}
	if y+ph > p.height {
		return image.Rectangle{}, false
	}
	p.shelves = append(p.shelves, shelf{y: y, height: ph})
	return p.place(&p.shelves[len(p.shelves)-1], width, height, pw), true
}

func (p *shelfPacker) place(s *shelf, width, height, pw int) image.Rectangle {
	r := image.Rect(s.nextX, s.y, s.nextX+width, s.y+height)
	s.nextX += pw
	p.used += width * height
	return r
}

// reset clears all shelves and resizes the packing area.
func (p *shelfPacker) reset(width, height int) {
	p.width, p.height = width, height
	p.shelves = p.shelves[:0]
	p.used = 0
}

// utilization returns the fraction of the area covered by allocations.
func (p *shelfPacker) utilization() float64 {
	total := p.width * p.height
	if total == 0 {
		return 0
	}
	return float64(p.used) / float64(total)
}
