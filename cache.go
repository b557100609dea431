package magenta

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

var (
	// ErrCacheMagic is returned when cached data was not written by
	// WriteSegmentation.
	ErrCacheMagic = errors.New("magenta: not a segmentation cache")
	// ErrCacheCorrupt is returned when cached data is truncated or
	// inconsistent.
	ErrCacheCorrupt = errors.New("magenta: corrupt segmentation cache")
)

const (
	cacheMagic   = "MGSC"
	cacheVersion = 1
	// magic, version, flags, padding, meta pad, meta anchor, frame count
	cacheHeaderLen = 4 + 1 + 1 + 4 + 1 + 1 + 4
)

const cacheFlagMeta = 1 << 0

// CacheKey returns the cache key for an atlas file's contents.
func CacheKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// WriteSegmentation stores s zstd-compressed in w.
func WriteSegmentation(w io.Writer, s Segmentation) error {
	raw := make([]byte, 0, cacheHeaderLen+BlobRecordSize*(len(s.Frames)+1))
	raw = append(raw, cacheMagic...)
	raw = append(raw, cacheVersion)
	var flags byte
	if s.HasMeta {
		flags |= cacheFlagMeta
	}
	raw = append(raw, flags)
	raw = binary.LittleEndian.AppendUint32(raw, uint32(s.Padding))
	raw = append(raw, s.Meta.Pad, s.Meta.Anchor)
	raw = binary.LittleEndian.AppendUint32(raw, uint32(len(s.Frames)))
	raw = AppendBlobs(raw, s.Frames)
	if s.HasMeta {
		raw = appendBlob(raw, s.MetaRegion)
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("magenta: cache writer: %w", err)
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return fmt.Errorf("magenta: write cache: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("magenta: write cache: %w", err)
	}
	return nil
}

// ReadSegmentation reads a segmentation written by WriteSegmentation.
func ReadSegmentation(r io.Reader) (Segmentation, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return Segmentation{}, fmt.Errorf("magenta: cache reader: %w", err)
	}
	defer dec.Close()
	raw, err := io.ReadAll(dec)
	if err != nil {
		return Segmentation{}, fmt.Errorf("magenta: read cache: %w", err)
	}

	if len(raw) < cacheHeaderLen || !bytes.HasPrefix(raw, []byte(cacheMagic)) {
		return Segmentation{}, ErrCacheMagic
	}
	if raw[4] != cacheVersion {
		return Segmentation{}, fmt.Errorf("%w: version %d", ErrCacheCorrupt, raw[4])
	}
	var s Segmentation
	s.HasMeta = raw[5]&cacheFlagMeta != 0
	s.Padding = int(binary.LittleEndian.Uint32(raw[6:]))
	s.Meta = MetaBlob{Pad: raw[10], Anchor: raw[11]}
	n := int(binary.LittleEndian.Uint32(raw[12:]))

	body := raw[cacheHeaderLen:]
	want := n * BlobRecordSize
	if s.HasMeta {
		want += BlobRecordSize
	}
	if len(body) != want {
		return Segmentation{}, fmt.Errorf("%w: %d frame bytes, want %d", ErrCacheCorrupt, len(body), want)
	}
	blobs, err := ParseBlobs(body)
	if err != nil {
		return Segmentation{}, fmt.Errorf("%w: %v", ErrCacheCorrupt, err)
	}
	s.Frames = blobs[:n:n]
	if s.HasMeta {
		s.MetaRegion = blobs[n]
	}
	return s, nil
}
