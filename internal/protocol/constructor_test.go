package protocol

import (
	"bytes"
	"testing"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint8
	}{
		{
			name: "empty slice",
			data: []byte{},
			want: 0,
		},
		{
			name: "nil slice",
			data: nil,
			want: 0,
		},
		{
			name: "single byte",
			data: []byte{0x42},
			want: 0x42,
		},
		{
			name: "wraps mod 256",
			data: []byte{0xFF, 0xFF},
			want: 0xFE,
		},
		{
			name: "state query prefix",
			data: []byte{0x81, 0x8A, 0x8B},
			want: 0x96,
		},
		{
			name: "all zeros",
			data: make([]byte, 32),
			want: 0,
		},
		{
			name: "large input does not overflow accumulator",
			data: bytes.Repeat([]byte{0xFF}, 1024),
			want: 0x00, // 1024 * 255 = 261120, low byte 0
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum() = 0x%02x, want 0x%02x", got, tt.want)
			}
		})
	}
}

func TestBuildStateQuery(t *testing.T) {
	want := []byte{0x81, 0x8A, 0x8B, 0x96}

	got := BuildStateQuery()
	if !bytes.Equal(got, want) {
		t.Errorf("BuildStateQuery() = % 02x, want % 02x", got, want)
	}
}

func TestBuildColorSet(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    []byte
	}{
		{
			name: "documented example",
			r:    0x10, g: 0x20, b: 0x30,
			want: []byte{0x31, 0x10, 0x20, 0x30, 0x00, 0xF0, 0x0F, 0x90},
		},
		{
			name: "black",
			r:    0x00, g: 0x00, b: 0x00,
			want: []byte{0x31, 0x00, 0x00, 0x00, 0x00, 0xF0, 0x0F, 0x30},
		},
		{
			name: "full white checksum wraps",
			r:    0xFF, g: 0xFF, b: 0xFF,
			want: []byte{0x31, 0xFF, 0xFF, 0xFF, 0x00, 0xF0, 0x0F, 0x2D},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildColorSet(tt.r, tt.g, tt.b)

			if len(got) != 8 {
				t.Fatalf("frame length = %d, want 8", len(got))
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("BuildColorSet() = % 02x, want % 02x", got, tt.want)
			}

			// Trailer byte must equal the checksum of everything before it
			if chk := Checksum(got[:7]); got[7] != chk {
				t.Errorf("checksum byte = 0x%02x, want 0x%02x", got[7], chk)
			}
		})
	}
}

func TestBuildPowerSet(t *testing.T) {
	tests := []struct {
		name string
		on   bool
		want []byte
	}{
		{
			name: "power on",
			on:   true,
			want: []byte{0x71, 0x23, 0x0F, 0xA3},
		},
		{
			name: "power off",
			on:   false,
			want: []byte{0x71, 0x24, 0x0F, 0xA4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPowerSet(tt.on)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("BuildPowerSet(%v) = % 02x, want % 02x", tt.on, got, tt.want)
			}
		})
	}
}

// Identical inputs must always produce byte-identical frames.
func TestBuildersAreDeterministic(t *testing.T) {
	if !bytes.Equal(BuildStateQuery(), BuildStateQuery()) {
		t.Error("BuildStateQuery() not deterministic")
	}
	if !bytes.Equal(BuildColorSet(1, 2, 3), BuildColorSet(1, 2, 3)) {
		t.Error("BuildColorSet() not deterministic")
	}
	if !bytes.Equal(BuildPowerSet(true), BuildPowerSet(true)) {
		t.Error("BuildPowerSet() not deterministic")
	}
}
