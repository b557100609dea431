package magenta

import (
	"encoding/binary"
	"fmt"
)

// BlobRecordSize is the size of one packed blob: four little-endian uint32
// values XMin, YMin, XMax, YMax, matching a C struct of four u32 fields.
const BlobRecordSize = 16

// AppendBlobs appends the packed records of blobs to dst. The result can be
// handed across a foreign-memory boundary as a pointer and a record count.
func AppendBlobs(dst []byte, blobs []Blob) []byte {
	for _, b := range blobs {
		dst = appendBlob(dst, b)
	}
	return dst
}

func appendBlob(dst []byte, b Blob) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(b.XMin))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(b.YMin))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(b.XMax))
	return binary.LittleEndian.AppendUint32(dst, uint32(b.YMax))
}

// ParseBlobs decodes records written by AppendBlobs.
func ParseBlobs(data []byte) ([]Blob, error) {
	if len(data)%BlobRecordSize != 0 {
		return nil, fmt.Errorf("magenta: blob records: %d bytes is not a multiple of %d", len(data), BlobRecordSize)
	}
	blobs := make([]Blob, 0, len(data)/BlobRecordSize)
	for off := 0; off < len(data); off += BlobRecordSize {
		b, err := parseBlob(data[off : off+BlobRecordSize])
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, b)
	}
	return blobs, nil
}

func parseBlob(rec []byte) (Blob, error) {
	b := Blob{
		XMin: int(binary.LittleEndian.Uint32(rec[0:])),
		YMin: int(binary.LittleEndian.Uint32(rec[4:])),
		XMax: int(binary.LittleEndian.Uint32(rec[8:])),
		YMax: int(binary.LittleEndian.Uint32(rec[12:])),
	}
	if b.XMax < b.XMin || b.YMax < b.YMin {
		return Blob{}, fmt.Errorf("magenta: blob record %v has inverted bounds", b)
	}
	return b, nil
}
