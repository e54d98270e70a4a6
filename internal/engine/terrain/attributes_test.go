package terrain

import (
	"slices"
	"testing"
)

func TestAttributeSet_MarkUsedIdempotent(t *testing.T) {
	var s AttributeSet
	s.MarkUsed(Color)
	s.MarkUsed(Color)
	s.MarkUsed(TileCoordinate)

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if s.Stride() != 3 {
		t.Errorf("Stride() = %d, want 3", s.Stride())
	}
}

func TestAttributeSet_PositionAlwaysFirst(t *testing.T) {
	var s AttributeSet
	s.MarkUsed(Normal)
	s.MarkUsed(Color)
	s.MarkUsed(Position)
	s.MarkUsed(TextureCoordinate)
	s.MarkUsed(Position)

	want := []AttributeKind{Position, Normal, Color, TextureCoordinate}
	if got := s.Kinds(); !slices.Equal(got, want) {
		t.Errorf("Kinds() = %v, want %v", got, want)
	}
}

func TestAttributeSet_Stride(t *testing.T) {
	tests := []struct {
		name  string
		kinds []AttributeKind
		want  int
	}{
		{"empty", nil, 0},
		{"position", []AttributeKind{Position}, 3},
		{"position normal", []AttributeKind{Position, Normal}, 6},
		{"color is one slot", []AttributeKind{Position, Color}, 4},
		{"all", []AttributeKind{Position, Normal, Color, TextureCoordinate, TileCoordinate}, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s AttributeSet
			for _, k := range tt.kinds {
				s.MarkUsed(k)
			}
			if got := s.Stride(); got != tt.want {
				t.Errorf("Stride() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAttributeSet_Reset(t *testing.T) {
	var s AttributeSet
	s.MarkUsed(Position)
	s.MarkUsed(Normal)
	s.Reset()

	if s.IsUsed(Position) || s.IsUsed(Normal) {
		t.Error("expected no kinds used after Reset")
	}
	if s.Stride() != 0 {
		t.Errorf("Stride() after Reset = %d, want 0", s.Stride())
	}
}

func TestAttributeSet_Layout(t *testing.T) {
	var s AttributeSet
	s.MarkUsed(Color)
	s.MarkUsed(TileCoordinate)
	s.MarkUsed(Position)

	layout := s.Layout()
	want := []AttributeDescriptor{
		{Kind: Position, Name: "a_position", Components: 3, Slots: 3, Offset: 0},
		{Kind: Color, Name: "a_color", Components: 4, Slots: 1, Offset: 12, Packed: true},
		{Kind: TileCoordinate, Name: "a_tilePosition", Components: 2, Slots: 2, Offset: 16},
	}
	if !slices.Equal(layout, want) {
		t.Errorf("Layout() = %+v, want %+v", layout, want)
	}
}

func TestAttributeKind_String(t *testing.T) {
	if got := TextureCoordinate.String(); got != "texcoord" {
		t.Errorf("String() = %q, want texcoord", got)
	}
	if got := AttributeKind(42).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
	if got := AttributeKind(42).Slots(); got != 0 {
		t.Errorf("Slots() = %d, want 0", got)
	}
}
