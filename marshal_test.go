package magenta

import (
	"bytes"
	"testing"
)

func TestAppendBlobs_Layout(t *testing.T) {
	got := AppendBlobs(nil, []Blob{{XMin: 1, YMin: 2, XMax: 0x0304, YMax: 0x01020304}})
	want := []byte{
		1, 0, 0, 0,
		2, 0, 0, 0,
		4, 3, 0, 0,
		4, 3, 2, 1,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("AppendBlobs = % x, want % x", got, want)
	}
}

func TestParseBlobs_RoundTrip(t *testing.T) {
	img := newAtlas(60, 20)
	for i := 0; i < 5; i++ {
		paintFrame(img, 1+i*11, 1+i, 10, 10, 1)
	}
	blobs := Scan(GridFromImage(img))

	data := AppendBlobs([]byte("hdr"), blobs)
	if len(data) != 3+len(blobs)*BlobRecordSize {
		t.Fatalf("len = %d", len(data))
	}
	back, err := ParseBlobs(data[3:])
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != len(blobs) {
		t.Fatalf("parsed %d blobs, want %d", len(back), len(blobs))
	}
	for i := range blobs {
		if back[i] != blobs[i] {
			t.Errorf("blob %d = %v, want %v", i, back[i], blobs[i])
		}
	}
}

func TestParseBlobs_Empty(t *testing.T) {
	blobs, err := ParseBlobs(nil)
	if err != nil || len(blobs) != 0 {
		t.Errorf("ParseBlobs(nil) = %v, %v", blobs, err)
	}
}

func TestParseBlobs_Errors(t *testing.T) {
	if _, err := ParseBlobs(make([]byte, 15)); err == nil {
		t.Error("accepted a partial record")
	}
	inverted := AppendBlobs(nil, []Blob{{XMin: 5, YMin: 0, XMax: 4, YMax: 0}})
	if _, err := ParseBlobs(inverted); err == nil {
		t.Error("accepted inverted bounds")
	}
}
