package terrain

import "slices"

// AttributeKind names a category of per-vertex data.
type AttributeKind int

// Vertex attribute kinds.
const (
	Position AttributeKind = iota
	Normal
	Color
	TextureCoordinate
	TileCoordinate
)

var attributeNames = [...]string{
	Position:          "position",
	Normal:            "normal",
	Color:             "color",
	TextureCoordinate: "texcoord",
	TileCoordinate:    "tile",
}

var shaderNames = [...]string{
	Position:          "a_position",
	Normal:            "a_normal",
	Color:             "a_color",
	TextureCoordinate: "a_texCoords",
	TileCoordinate:    "a_tilePosition",
}

// String returns the attribute name.
func (k AttributeKind) String() string {
	if k < 0 || int(k) >= len(attributeNames) {
		return "unknown"
	}
	return attributeNames[k]
}

// ShaderName returns the vertex shader input the attribute binds to.
func (k AttributeKind) ShaderName() string {
	if k < 0 || int(k) >= len(shaderNames) {
		return ""
	}
	return shaderNames[k]
}

// Slots returns the number of float32 slots the attribute occupies in a packed vertex.
// Color packs four channels into a single slot.
func (k AttributeKind) Slots() int {
	switch k {
	case Position, Normal:
		return 3
	case TextureCoordinate, TileCoordinate:
		return 2
	case Color:
		return 1
	default:
		return 0
	}
}

// Components returns the component count a renderer reads for the attribute.
func (k AttributeKind) Components() int {
	if k == Color {
		return 4
	}
	return k.Slots()
}

// AttributeDescriptor tells a renderer how to read one attribute from a packed vertex.
type AttributeDescriptor struct {
	Kind       AttributeKind
	Name       string
	Components int  // Components the renderer reads
	Slots      int  // float32 slots used in the packed buffer
	Offset     int  // Byte offset within a vertex
	Packed     bool // Four normalized unsigned bytes stored in one float32
}

// AttributeSet is an insertion-ordered set of attribute kinds.
// Position, once used, always comes first.
type AttributeSet struct {
	kinds []AttributeKind
}

// MarkUsed adds kind to the set. Marking a kind twice has no effect.
func (s *AttributeSet) MarkUsed(kind AttributeKind) {
	if s.IsUsed(kind) {
		return
	}
	if kind == Position {
		s.kinds = slices.Insert(s.kinds, 0, kind)
		return
	}
	s.kinds = append(s.kinds, kind)
}

// IsUsed reports whether kind has been marked used.
func (s *AttributeSet) IsUsed(kind AttributeKind) bool {
	return slices.Contains(s.kinds, kind)
}

// Kinds returns the used kinds in packing order.
func (s *AttributeSet) Kinds() []AttributeKind {
	return slices.Clone(s.kinds)
}

// Len returns the number of used kinds.
func (s *AttributeSet) Len() int {
	return len(s.kinds)
}

// Stride returns the float32 slots per packed vertex.
func (s *AttributeSet) Stride() int {
	stride := 0
	for _, k := range s.kinds {
		stride += k.Slots()
	}
	return stride
}

// Reset clears the set.
func (s *AttributeSet) Reset() {
	s.kinds = s.kinds[:0]
}

// Layout derives the attribute layout from the current contents of the set.
func (s *AttributeSet) Layout() []AttributeDescriptor {
	layout := make([]AttributeDescriptor, 0, len(s.kinds))
	offset := 0
	for _, k := range s.kinds {
		layout = append(layout, AttributeDescriptor{
			Kind:       k,
			Name:       k.ShaderName(),
			Components: k.Components(),
			Slots:      k.Slots(),
			Offset:     offset,
			Packed:     k == Color,
		})
		offset += k.Slots() * 4
	}
	return layout
}
