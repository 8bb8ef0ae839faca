package vt

import "testing"

func TestCellWidth(t *testing.T) {
	if w := (Cell{Ch: 'a'}).Width(); w != 1 {
		t.Errorf("ascii width = %d, want 1", w)
	}
	if w := (Cell{Ch: '中'}).Width(); w != 2 {
		t.Errorf("wide CJK width = %d, want 2", w)
	}
}

func TestRowCloneDeepCopiesCombining(t *testing.T) {
	r := NewRow(4)
	r[0].Combining = []rune{'́'}
	clone := r.Clone()
	clone[0].Combining[0] = '̀'
	if r[0].Combining[0] != '́' {
		t.Errorf("mutating clone's Combining slice affected the original")
	}
}

func TestRowResizeGrowAndShrink(t *testing.T) {
	r := NewRow(4)
	r[2].Ch = 'x'
	grown := r.Resize(6)
	if len(grown) != 6 || grown[2].Ch != 'x' || grown[5].Ch != ' ' {
		t.Fatalf("unexpected grown row: %+v", grown)
	}
	shrunk := grown.Resize(2)
	if len(shrunk) != 2 {
		t.Fatalf("unexpected shrunk row length: %d", len(shrunk))
	}
}
