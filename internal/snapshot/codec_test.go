package snapshot

import (
	"testing"
	"time"
)

type sampleEntry struct {
	Name    string
	Columns []string
	ReadAt  time.Time
}

func TestCodecRoundTrip(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec() error: %v", err)
	}
	defer codec.Close()

	in := []sampleEntry{
		{Name: "users", Columns: []string{"id", "name"}, ReadAt: time.Unix(1700000000, 0).UTC()},
		{Name: "orders", Columns: []string{"id", "user_id", "total"}, ReadAt: time.Unix(1700000100, 0).UTC()},
	}

	data, err := codec.Encode(in)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var out []sampleEntry
	if err := codec.Decode(data, &out); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("decoded %d entries, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].Name != in[i].Name {
			t.Errorf("entry %d name = %q, want %q", i, out[i].Name, in[i].Name)
		}
		if len(out[i].Columns) != len(in[i].Columns) {
			t.Errorf("entry %d has %d columns, want %d", i, len(out[i].Columns), len(in[i].Columns))
		}
		if !out[i].ReadAt.Equal(in[i].ReadAt) {
			t.Errorf("entry %d read time = %v, want %v", i, out[i].ReadAt, in[i].ReadAt)
		}
	}
}

func TestCodecDecodeGarbage(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec() error: %v", err)
	}
	defer codec.Close()

	var out sampleEntry
	if err := codec.Decode([]byte("not a snapshot"), &out); err == nil {
		t.Errorf("Decode(garbage) succeeded, want error")
	}
}
