package models

import (
	"reflect"
	"testing"
)

// numbered builds a block list whose contents are "b0".."bN-1", handy for
// checking order after reordering operations.
func numbered(n int) []Block {
	blocks := make([]Block, n)
	for i := range blocks {
		blocks[i] = Block{Type: BlockText, Content: "b" + string(rune('0'+i))}
	}
	return blocks
}

func contents(blocks []Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Content
	}
	return out
}

func TestAppendBlock(t *testing.T) {
	blocks := numbered(3)
	got := AppendBlock(blocks)

	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	for i := 0; i < 3; i++ {
		if got[i] != blocks[i] {
			t.Errorf("block %d changed: %+v", i, got[i])
		}
	}
	if got[3].Type != BlockText || got[3].Content != "" {
		t.Errorf("appended block = %+v, want empty text block", got[3])
	}
	if len(blocks) != 3 {
		t.Error("input slice was modified")
	}
}

func TestRemoveBlock(t *testing.T) {
	tests := []struct {
		name string
		i    int
		want []string
	}{
		{name: "first", i: 0, want: []string{"b1", "b2"}},
		{name: "middle", i: 1, want: []string{"b0", "b2"}},
		{name: "last", i: 2, want: []string{"b0", "b1"}},
		{name: "negative index", i: -1, want: []string{"b0", "b1", "b2"}},
		{name: "out of range", i: 3, want: []string{"b0", "b1", "b2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveBlock(numbered(3), tt.i)
			if !reflect.DeepEqual(contents(got), tt.want) {
				t.Errorf("RemoveBlock(_, %d) = %v, want %v", tt.i, contents(got), tt.want)
			}
		})
	}
}

// TestMoveBlock checks that moving i→j places the moved element at j and
// keeps every other element in its original relative order.
func TestMoveBlock(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{name: "forward", from: 0, to: 3, want: []string{"b1", "b2", "b3", "b0", "b4"}},
		{name: "backward", from: 3, to: 0, want: []string{"b3", "b0", "b1", "b2", "b4"}},
		{name: "adjacent down", from: 1, to: 2, want: []string{"b0", "b2", "b1", "b3", "b4"}},
		{name: "adjacent up", from: 2, to: 1, want: []string{"b0", "b2", "b1", "b3", "b4"}},
		{name: "to end", from: 2, to: 4, want: []string{"b0", "b1", "b3", "b4", "b2"}},
		{name: "to start", from: 4, to: 0, want: []string{"b4", "b0", "b1", "b2", "b3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveBlock(numbered(5), tt.from, tt.to)
			if len(got) != 5 {
				t.Fatalf("len = %d, want 5", len(got))
			}
			if !reflect.DeepEqual(contents(got), tt.want) {
				t.Errorf("MoveBlock(_, %d, %d) = %v, want %v", tt.from, tt.to, contents(got), tt.want)
			}
		})
	}
}

// TestMoveBlockNoOp verifies the no-op guard: equal source/destination or
// an invalid destination returns the input unchanged, element for element.
func TestMoveBlockNoOp(t *testing.T) {
	blocks := numbered(4)

	tests := []struct {
		name     string
		from, to int
	}{
		{name: "same index", from: 2, to: 2},
		{name: "negative destination", from: 1, to: -1},
		{name: "destination past end", from: 1, to: 4},
		{name: "negative source", from: -1, to: 2},
		{name: "source past end", from: 4, to: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveBlock(blocks, tt.from, tt.to)
			if len(got) != len(blocks) {
				t.Fatalf("len = %d, want %d", len(got), len(blocks))
			}
			for i := range blocks {
				if got[i] != blocks[i] {
					t.Errorf("element %d changed: %+v != %+v", i, got[i], blocks[i])
				}
			}
		})
	}
}

func TestSwapBlock(t *testing.T) {
	tests := []struct {
		name   string
		i, dir int
		want   []string
	}{
		{name: "down", i: 0, dir: 1, want: []string{"b1", "b0", "b2"}},
		{name: "up", i: 2, dir: -1, want: []string{"b0", "b2", "b1"}},
		{name: "up past start", i: 0, dir: -1, want: []string{"b0", "b1", "b2"}},
		{name: "down past end", i: 2, dir: 1, want: []string{"b0", "b1", "b2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SwapBlock(numbered(3), tt.i, tt.dir)
			if !reflect.DeepEqual(contents(got), tt.want) {
				t.Errorf("SwapBlock(_, %d, %d) = %v, want %v", tt.i, tt.dir, contents(got), tt.want)
			}
		})
	}
}

// TestRetypeClearsInvalidFields verifies that changing a block's type
// drops the fields the new type does not carry and keeps the shared ones.
func TestRetypeClearsInvalidFields(t *testing.T) {
	blocks := []Block{{
		Type:          BlockImage,
		Content:       "cover.jpg",
		Content2:      "second.jpg",
		ImgText:       "caption one",
		ImgText2:      "caption two",
		ImageSize:     ImageSizeLarge,
		ImagePosition: ImagePosLeft,
	}}

	got := Retype(blocks, 0, BlockText)
	b := got[0]

	if b.Type != BlockText {
		t.Fatalf("type = %q, want %q", b.Type, BlockText)
	}
	if b.Content != "cover.jpg" {
		t.Errorf("content should survive retype, got %q", b.Content)
	}
	if b.Content2 != "" || b.ImgText != "" || b.ImgText2 != "" {
		t.Errorf("image-only fields not cleared: %+v", b)
	}
	if b.ImageSize != "" || b.ImagePosition != "" {
		t.Errorf("presentation fields not cleared: %+v", b)
	}

	// Retyping back must not resurrect the cleared values.
	back := Retype(got, 0, BlockImage)
	if back[0].Content2 != "" || back[0].ImgText != "" {
		t.Errorf("cleared fields resurfaced after retype: %+v", back[0])
	}
}

func TestRetypeInvalidType(t *testing.T) {
	blocks := numbered(2)
	got := Retype(blocks, 0, BlockType("banner"))
	if !reflect.DeepEqual(got, blocks) {
		t.Error("unknown type should leave the list unchanged")
	}
}

func TestSetField(t *testing.T) {
	blocks := []Block{{Type: BlockBoldText, Content: "label"}}

	got := SetField(blocks, 0, FieldAdditionalContent, "detail")
	if got[0].AdditionalContent != "detail" {
		t.Errorf("aditionalContent = %q, want %q", got[0].AdditionalContent, "detail")
	}

	// Fields invalid for the type are ignored.
	got = SetField(blocks, 0, FieldImgText, "nope")
	if got[0].ImgText != "" {
		t.Error("imgtext must be rejected on a boldtext block")
	}

	// Input untouched.
	if blocks[0].AdditionalContent != "" {
		t.Error("input slice was modified")
	}
}

func TestFieldsForEveryType(t *testing.T) {
	for _, bt := range BlockTypes {
		fields := FieldsFor(bt)
		if bt == BlockBreak {
			if len(fields) != 0 {
				t.Errorf("break block should carry no fields, got %v", fields)
			}
			continue
		}
		if len(fields) == 0 {
			t.Errorf("block type %q has no fields", bt)
		}
		if fields[0] != FieldContent {
			t.Errorf("block type %q: first field = %q, want content", bt, fields[0])
		}
	}
}

func TestBlockDefaults(t *testing.T) {
	b := &Block{Type: BlockImage}
	if b.Size() != ImageSizeMedium {
		t.Errorf("default size = %q, want medium", b.Size())
	}
	if b.Position() != ImagePosCenter {
		t.Errorf("default position = %q, want center", b.Position())
	}

	b.ImageSize = ImageSizeFull
	b.ImagePosition = ImagePosRight
	if b.Size() != ImageSizeFull || b.Position() != ImagePosRight {
		t.Errorf("explicit size/position not honored: %q/%q", b.Size(), b.Position())
	}
}

func TestBlockIsDual(t *testing.T) {
	single := &Block{Type: BlockImage, Content: "a.jpg"}
	if single.IsDual() {
		t.Error("single image reported as dual")
	}
	dual := &Block{Type: BlockImage, Content: "a.jpg", Content2: "b.jpg"}
	if !dual.IsDual() {
		t.Error("dual image not detected")
	}
	flex := &Block{Type: BlockFlexText, Content: "p", Content2: "img.jpg"}
	if flex.IsDual() {
		t.Error("flex-text must never report dual")
	}
}

func TestFlexImage(t *testing.T) {
	legacy := &Block{Type: BlockFlexText, Content2: "old.jpg"}
	if legacy.FlexImage() != "old.jpg" {
		t.Errorf("legacy content2 ref not used: %q", legacy.FlexImage())
	}
	modern := &Block{Type: BlockFlexText, Image: "new.jpg", Content2: "old.jpg"}
	if modern.FlexImage() != "new.jpg" {
		t.Errorf("image field must win over content2: %q", modern.FlexImage())
	}
}
