package display

import "testing"

func TestPanelFrameRecordsRows(t *testing.T) {
	p := NewPanel()
	p.Frame(func(fb *Buffer) RowRange {
		fb.Set(0, 5, true)
		return RowRange{First: 5, Last: 5}
	})
	p.Frame(func(fb *Buffer) RowRange { return RowRange{First: 9, Last: 12} })

	var got RowRange
	if !p.Present(func(fb *Buffer, rows RowRange) {
		got = rows
		if !fb.Lit(0, 5) {
			t.Fatal("write lost")
		}
	}) {
		t.Fatal("expected a pending update")
	}
	if got != (RowRange{First: 5, Last: 12}) {
		t.Fatalf("rows got %+v", got)
	}
	if p.Present(func(*Buffer, RowRange) { t.Fatal("unexpected present") }) {
		t.Fatal("update not reset")
	}
}

func TestPanelClampsRange(t *testing.T) {
	p := NewPanel()
	p.MarkUpdatedRows(RowRange{First: -4, Last: 1000})
	p.Present(func(_ *Buffer, rows RowRange) {
		if rows != FullHeight {
			t.Fatalf("rows got %+v", rows)
		}
	})
}

func TestPanelNestedBorrowPanics(t *testing.T) {
	p := NewPanel()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on nested Frame")
		}
	}()
	p.Frame(func(*Buffer) RowRange {
		p.Frame(func(*Buffer) RowRange { return FullHeight })
		return FullHeight
	})
}
