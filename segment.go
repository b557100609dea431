package magenta

import (
	"time"

	"go.uber.org/zap"
)

// Segmentation is the result of splitting an atlas into animation frames.
type Segmentation struct {
	// Frames holds the frame rectangles in animation order.
	Frames []Blob
	// Meta is the decoded metadata channel, valid when HasMeta is true.
	Meta    MetaBlob
	HasMeta bool
	// MetaRegion is the blob the metadata was decoded from.
	MetaRegion Blob
	// Padding is the border trimmed from every frame: Meta.Pad when a
	// metadata channel was found, otherwise the inferred padding.
	Padding int
}

// AnimMeta summarises the frame list. It is computed once per atlas and
// used to pick draw scales.
type AnimMeta struct {
	NumFrames int
	MaxWidth  int
	MaxHeight int
	AvgWidth  float64
	AvgHeight float64
	Padding   int
}

// AnimMeta computes the frame summary for s. An atlas without frames has zero
// averages.
func (s *Segmentation) AnimMeta() AnimMeta {
	m := AnimMeta{NumFrames: len(s.Frames), Padding: s.Padding}
	if m.NumFrames == 0 {
		return m
	}
	for _, b := range s.Frames {
		m.MaxWidth = max(m.MaxWidth, b.Width())
		m.MaxHeight = max(m.MaxHeight, b.Height())
		m.AvgWidth += float64(b.Width())
		m.AvgHeight += float64(b.Height())
	}
	m.AvgWidth /= float64(m.NumFrames)
	m.AvgHeight /= float64(m.NumFrames)
	return m
}

// Segment scans g for frames, decodes the metadata channel from the last
// blob when it carries one, and otherwise infers the frame padding. g is not
// retained.
func Segment(g *PixelGrid) Segmentation {
	var stats debugStats
	start := time.Now()

	var s Segmentation
	s.Frames = Scan(g)
	stats.scanTime = time.Since(start)
	stats.blobCount = len(s.Frames)

	mark := time.Now()
	if n := len(s.Frames); n > 0 {
		if m, ok := DecodeMeta(g, s.Frames[n-1]); ok {
			s.Meta, s.HasMeta = m, true
			s.MetaRegion = s.Frames[n-1]
			s.Frames = s.Frames[:n-1:n-1]
			s.Padding = int(m.Pad)
		}
	}
	stats.decodeTime = time.Since(mark)

	mark = time.Now()
	if !s.HasMeta {
		s.Padding = InferPadding(g, s.Frames)
	}
	stats.inferTime = time.Since(mark)

	stats.width, stats.height = g.Width(), g.Height()
	stats.hasMeta = s.HasMeta
	stats.padding = s.Padding
	logSegmentStats(stats)
	return s
}

func logSegmentStats(stats debugStats) {
	if !globalDebug {
		return
	}
	logger.Debug("segmented atlas",
		zap.Int("width", stats.width),
		zap.Int("height", stats.height),
		zap.Int("blobs", stats.blobCount),
		zap.Bool("meta", stats.hasMeta),
		zap.Int("padding", stats.padding),
		zap.Duration("scan", stats.scanTime),
		zap.Duration("decode", stats.decodeTime),
		zap.Duration("infer", stats.inferTime))
}
