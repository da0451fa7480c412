package display

// RowRange is an inclusive span of modified rows.
type RowRange struct {
	First, Last int
}

// FullHeight covers every row of the panel.
var FullHeight = RowRange{First: 0, Last: Height - 1}

// Panel owns the framebuffer on the platform side. Writers only see the
// buffer inside Frame; the pointer must not escape the callback.
type Panel struct {
	buf     Buffer
	dirty   RowRange
	pending bool
	busy    bool
}

// NewPanel returns a panel cleared to black.
func NewPanel() *Panel { return &Panel{} }

// Frame lends the buffer to fn for one composition and records the rows
// fn reports as modified.
func (p *Panel) Frame(fn func(fb *Buffer) RowRange) {
	if p.busy {
		panic("display: framebuffer already borrowed")
	}
	p.busy = true
	defer func() { p.busy = false }()
	p.MarkUpdatedRows(fn(&p.buf))
}

// Clear fills the panel with one colour and marks every row.
func (p *Panel) Clear(white bool) {
	p.buf.Clear(white)
	p.MarkUpdatedRows(FullHeight)
}

// MarkUpdatedRows widens the pending update to include r.
func (p *Panel) MarkUpdatedRows(r RowRange) {
	if r.First < 0 {
		r.First = 0
	}
	if r.Last > Height-1 {
		r.Last = Height - 1
	}
	if r.First > r.Last {
		return
	}
	if !p.pending {
		p.dirty, p.pending = r, true
		return
	}
	if r.First < p.dirty.First {
		p.dirty.First = r.First
	}
	if r.Last > p.dirty.Last {
		p.dirty.Last = r.Last
	}
}

// Present hands the rows modified since the last Present to fn and resets
// the pending range. fn is not called when nothing changed.
func (p *Panel) Present(fn func(fb *Buffer, rows RowRange)) bool {
	if !p.pending {
		return false
	}
	rows := p.dirty
	p.pending = false
	fn(&p.buf, rows)
	return true
}
