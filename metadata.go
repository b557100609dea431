package magenta

import (
	"fmt"
	"image"
	"image/color"
)

// MetaMagic is the first byte of an embedded metadata channel.
const MetaMagic byte = 0b10101010

// metaHeaderLen is magic + 16-bit big-endian length.
const metaHeaderLen = 3

// MetaBlob is the metadata decoded from a metadata-channel blob.
type MetaBlob struct {
	// Pad is the transparent border, in pixels, around every frame.
	Pad uint8
	// Anchor is reserved. It is decoded when present and otherwise ignored.
	Anchor uint8
}

// Bytes returns the channel bytes for m: magic, payload length, padding,
// anchor.
func (m MetaBlob) Bytes() []byte {
	return EncodeMetaPayload([]byte{m.Pad, m.Anchor})
}

// EncodeMetaPayload frames payload with the magic byte and its big-endian
// length. The payload must fit in 16 bits of length.
func EncodeMetaPayload(payload []byte) []byte {
	if len(payload) > 0xFFFF {
		panic(fmt.Sprintf("magenta: metadata payload of %d bytes exceeds 65535", len(payload)))
	}
	out := make([]byte, 0, metaHeaderLen+len(payload))
	out = append(out, MetaMagic, byte(len(payload)>>8), byte(len(payload)))
	return append(out, payload...)
}

// DecodeMeta reads b's pixels as a metadata channel. Pixels are taken row by
// row: fully transparent pixels are skipped, pure black is a 0 bit, pure
// white is a 1 bit, and any other color means b is an ordinary frame. Bits
// fill each byte least-significant first; a trailing partial byte is
// dropped.
//
// The second result is false whenever b is not a valid channel. That is not
// an error: the blob simply stays an animation frame.
func DecodeMeta(g *PixelGrid, b Blob) (MetaBlob, bool) {
	data, ok := metaBytes(g, b)
	if !ok || len(data) < metaHeaderLen+1 {
		return MetaBlob{}, false
	}
	if data[0] != MetaMagic {
		return MetaBlob{}, false
	}
	n := int(data[1])<<8 | int(data[2])
	if n+metaHeaderLen > len(data) {
		return MetaBlob{}, false
	}
	m := MetaBlob{Pad: data[3]}
	if n >= 2 {
		m.Anchor = data[4]
	}
	return m, true
}

func metaBytes(g *PixelGrid, b Blob) ([]byte, bool) {
	data := make([]byte, 0, (b.Width()*b.Height())/8)
	var cur byte
	var nbits uint
	for y := b.YMin; y <= b.YMax; y++ {
		for x := b.XMin; x <= b.XMax; x++ {
			c := g.At(x, y)
			var bit byte
			switch {
			case c.IsTransparent():
				continue
			case c.R == 0 && c.G == 0 && c.B == 0:
				bit = 0
			case c.R == 255 && c.G == 255 && c.B == 255:
				bit = 1
			default:
				return nil, false
			}
			cur |= bit << nbits
			nbits++
			if nbits == 8 {
				data = append(data, cur)
				cur, nbits = 0, 0
			}
		}
	}
	return data, true
}

// MetaImage renders data as a metadata channel strip width pixels wide,
// least-significant bit first. Cells after the last bit are transparent.
func MetaImage(data []byte, width int) *image.NRGBA {
	if width <= 0 {
		panic(fmt.Sprintf("magenta: metadata strip width %d", width))
	}
	bits := 8 * len(data)
	height := max((bits+width-1)/width, 1)
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	black := color.NRGBA{A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for i := 0; i < bits; i++ {
		c := black
		if data[i/8]>>(uint(i)%8)&1 == 1 {
			c = white
		}
		img.SetNRGBA(i%width, i/width, c)
	}
	return img
}
