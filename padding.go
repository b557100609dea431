package magenta

// InferPadding estimates the transparent border shared by all frames when an
// atlas has no metadata channel.
//
// Each blob is walked ring by ring from its outer edge; the ring holding the
// first opaque pixel is that blob's border, since every ring outside it was
// fully transparent. A blob with no opaque pixel at all counts as bordered
// up to its innermost ring. The result is the smallest border over all
// blobs, so trimming it never cuts into any frame. No blobs means no padding.
func InferPadding(g *PixelGrid, blobs []Blob) int {
	if len(blobs) == 0 {
		return 0
	}
	pad := -1
	for _, b := range blobs {
		p := blobPadding(g, b)
		if pad < 0 || p < pad {
			pad = p
		}
	}
	return pad
}

func blobPadding(g *PixelGrid, b Blob) int {
	deepest := 0
	for s := range BlobRing(b).All() {
		if !g.At(s.X, s.Y).IsTransparent() {
			return s.Ring
		}
		deepest = max(deepest, s.Ring)
	}
	return deepest
}
