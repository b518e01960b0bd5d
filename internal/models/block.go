package models

// BlockType tags one unit of a project body. The string values are the
// wire format stored in the content column, so they must not change,
// including the historical spellings ("opsom", "aditionalContent").
type BlockType string

const (
	BlockText              BlockType = "text"
	BlockBreak             BlockType = "break"
	BlockSubtitle          BlockType = "subtitle"
	BlockSmallSubtitle     BlockType = "small-subtitle"
	BlockBoldSmallSubtitle BlockType = "bold-small-subtitle"
	BlockQuoteTop          BlockType = "quote-top"
	BlockQuote             BlockType = "quote"
	BlockQuoteBottom       BlockType = "quote-bottom"
	BlockBoldText          BlockType = "boldtext"
	BlockBoldTextTop       BlockType = "boldtexttop"
	BlockOpsomTextTop      BlockType = "opsom-text-top"
	BlockOpsomText         BlockType = "opsom-text"
	BlockOpsomTextBottom   BlockType = "opsom-text-bottom"
	BlockImage             BlockType = "image"
	BlockFlexText          BlockType = "flex-text"
	BlockVideo             BlockType = "video"
	BlockFlexTextVideo     BlockType = "flex-text-video"
)

// ImageSize controls how wide an image-bearing block renders.
type ImageSize string

const (
	ImageSizeSmall  ImageSize = "small"
	ImageSizeMedium ImageSize = "medium"
	ImageSizeLarge  ImageSize = "large"
	ImageSizeFull   ImageSize = "full"
)

// ImagePosition controls where an image-bearing block aligns.
type ImagePosition string

const (
	ImagePosLeft   ImagePosition = "left"
	ImagePosRight  ImagePosition = "right"
	ImagePosCenter ImagePosition = "center"
)

// Block is one unit of a project's body. Which fields are meaningful is
// determined solely by Type; FieldsFor enumerates them. The JSON tags are
// the persisted wire format.
type Block struct {
	Type              BlockType     `json:"type"`
	Content           string        `json:"content,omitempty"`
	Content2          string        `json:"content2,omitempty"`
	Image             string        `json:"image,omitempty"`
	ImgText           string        `json:"imgtext,omitempty"`
	ImgText2          string        `json:"imgtext2,omitempty"`
	AdditionalContent string        `json:"aditionalContent,omitempty"`
	ImageSize         ImageSize     `json:"imageSize,omitempty"`
	ImagePosition     ImagePosition `json:"imagePosition,omitempty"`
}

// BlockField names one editable field of a block.
type BlockField string

const (
	FieldContent           BlockField = "content"
	FieldContent2          BlockField = "content2"
	FieldImage             BlockField = "image"
	FieldImgText           BlockField = "imgtext"
	FieldImgText2          BlockField = "imgtext2"
	FieldAdditionalContent BlockField = "aditionalContent"
	FieldImageSize         BlockField = "imageSize"
	FieldImagePosition     BlockField = "imagePosition"
)

// blockFields maps each block type to the fields valid for it. The editor
// renders exactly this set, and Retype clears everything outside it.
var blockFields = map[BlockType][]BlockField{
	BlockBreak:             {},
	BlockText:              {FieldContent},
	BlockSubtitle:          {FieldContent},
	BlockSmallSubtitle:     {FieldContent},
	BlockBoldSmallSubtitle: {FieldContent},
	BlockQuoteTop:          {FieldContent},
	BlockQuote:             {FieldContent},
	BlockQuoteBottom:       {FieldContent},
	BlockOpsomTextTop:      {FieldContent},
	BlockOpsomText:         {FieldContent},
	BlockOpsomTextBottom:   {FieldContent},
	BlockBoldText:          {FieldContent, FieldAdditionalContent},
	BlockBoldTextTop:       {FieldContent, FieldAdditionalContent},
	BlockImage:             {FieldContent, FieldContent2, FieldImgText, FieldImgText2, FieldImageSize, FieldImagePosition},
	BlockFlexText:          {FieldContent, FieldContent2, FieldImage, FieldImageSize, FieldImagePosition},
	BlockVideo:             {FieldContent, FieldImgText},
	BlockFlexTextVideo:     {FieldContent, FieldContent2, FieldImgText, FieldImageSize, FieldImagePosition},
}

// BlockTypes lists all valid block types in editor display order.
var BlockTypes = []BlockType{
	BlockText, BlockBreak,
	BlockSubtitle, BlockSmallSubtitle, BlockBoldSmallSubtitle,
	BlockQuoteTop, BlockQuote, BlockQuoteBottom,
	BlockBoldText, BlockBoldTextTop,
	BlockOpsomTextTop, BlockOpsomText, BlockOpsomTextBottom,
	BlockImage, BlockFlexText, BlockVideo, BlockFlexTextVideo,
}

// ValidBlockType reports whether t is one of the known block types.
func ValidBlockType(t BlockType) bool {
	_, ok := blockFields[t]
	return ok
}

// FieldsFor returns the fields meaningful for the given block type.
// Unknown types get the text-block field set.
func FieldsFor(t BlockType) []BlockField {
	if fields, ok := blockFields[t]; ok {
		return fields
	}
	return blockFields[BlockText]
}

// HasField reports whether the given field is valid for the block's type.
func (b Block) HasField(f BlockField) bool {
	for _, valid := range FieldsFor(b.Type) {
		if valid == f {
			return true
		}
	}
	return false
}

// Size returns the block's image size, defaulting to medium.
func (b Block) Size() ImageSize {
	if b.ImageSize == "" {
		return ImageSizeMedium
	}
	return b.ImageSize
}

// Position returns the block's image position, defaulting to center.
func (b Block) Position() ImagePosition {
	if b.ImagePosition == "" {
		return ImagePosCenter
	}
	return b.ImagePosition
}

// IsDual reports whether an image block carries a second image and should
// render both side by side.
func (b Block) IsDual() bool {
	return b.Type == BlockImage && b.Content2 != ""
}

// FlexImage returns the image reference of a flex-text block. Older
// records used content2 for it, newer ones use image; image wins.
func (b Block) FlexImage() string {
	if b.Image != "" {
		return b.Image
	}
	return b.Content2
}

// --- Editor list operations ---
//
// The block editor mutates a project body through these pure functions.
// They all return a new slice; the input is never modified in place.

// AppendBlock adds a fresh text block with empty content at the end.
func AppendBlock(blocks []Block) []Block {
	out := make([]Block, len(blocks), len(blocks)+1)
	copy(out, blocks)
	return append(out, Block{Type: BlockText})
}

// RemoveBlock deletes the block at index i. Out-of-range indexes leave
// the list unchanged.
func RemoveBlock(blocks []Block, i int) []Block {
	if i < 0 || i >= len(blocks) {
		return blocks
	}
	out := make([]Block, 0, len(blocks)-1)
	out = append(out, blocks[:i]...)
	return append(out, blocks[i+1:]...)
}

// Retype changes the type of the block at index i. Fields that are not
// valid for the new type are cleared: stale hidden values would otherwise
// resurface on a later type change and round-trip into storage.
func Retype(blocks []Block, i int, t BlockType) []Block {
	if i < 0 || i >= len(blocks) || !ValidBlockType(t) {
		return blocks
	}
	out := make([]Block, len(blocks))
	copy(out, blocks)

	old := out[i]
	b := Block{Type: t}
	for _, f := range FieldsFor(t) {
		switch f {
		case FieldContent:
			b.Content = old.Content
		case FieldContent2:
			b.Content2 = old.Content2
		case FieldImage:
			b.Image = old.Image
		case FieldImgText:
			b.ImgText = old.ImgText
		case FieldImgText2:
			b.ImgText2 = old.ImgText2
		case FieldAdditionalContent:
			b.AdditionalContent = old.AdditionalContent
		case FieldImageSize:
			b.ImageSize = old.ImageSize
		case FieldImagePosition:
			b.ImagePosition = old.ImagePosition
		}
	}
	out[i] = b
	return out
}

// SetField updates one field of the block at index i. Fields invalid for
// the block's type are ignored.
func SetField(blocks []Block, i int, f BlockField, value string) []Block {
	if i < 0 || i >= len(blocks) || !blocks[i].HasField(f) {
		return blocks
	}
	out := make([]Block, len(blocks))
	copy(out, blocks)

	switch f {
	case FieldContent:
		out[i].Content = value
	case FieldContent2:
		out[i].Content2 = value
	case FieldImage:
		out[i].Image = value
	case FieldImgText:
		out[i].ImgText = value
	case FieldImgText2:
		out[i].ImgText2 = value
	case FieldAdditionalContent:
		out[i].AdditionalContent = value
	case FieldImageSize:
		out[i].ImageSize = ImageSize(value)
	case FieldImagePosition:
		out[i].ImagePosition = ImagePosition(value)
	}
	return out
}

// MoveBlock moves the block at index from to index to, shifting the
// blocks in between while keeping their relative order. A move onto
// itself or with an out-of-range index is a no-op returning the input
// slice unchanged.
func MoveBlock(blocks []Block, from, to int) []Block {
	if from == to || from < 0 || from >= len(blocks) || to < 0 || to >= len(blocks) {
		return blocks
	}
	out := make([]Block, 0, len(blocks))
	out = append(out, blocks[:from]...)
	out = append(out, blocks[from+1:]...)
	moved := blocks[from]

	out = append(out, Block{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out
}

// SwapBlock exchanges the block at index i with its neighbor in the
// given direction (-1 for up, +1 for down). Swaps past either end are
// no-ops.
func SwapBlock(blocks []Block, i, direction int) []Block {
	j := i + direction
	if i < 0 || i >= len(blocks) || j < 0 || j >= len(blocks) {
		return blocks
	}
	out := make([]Block, len(blocks))
	copy(out, blocks)
	out[i], out[j] = out[j], out[i]
	return out
}
