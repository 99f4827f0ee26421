package protocol

import (
	"errors"
	"testing"
)

// referenceReply is a captured status reply from a 5-channel controller.
var referenceReply = []byte{
	0x81, 0x25, 0x23, 0x61, 0x21, 0x06, 0x38, 0x05, 0x06, 0xf9, 0x01, 0x00, 0x0f, 0x9d,
}

func TestParseStatusReply(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		wantErr     bool
		checkFields func(t *testing.T, reply *StatusReply)
	}{
		{
			name: "captured reference reply",
			data: referenceReply,
			checkFields: func(t *testing.T, reply *StatusReply) {
				if reply.Head != 0x81 {
					t.Errorf("head = 0x%02x, want 0x81", reply.Head)
				}
				if reply.DeviceType != 0x25 {
					t.Errorf("device type = 0x%02x, want 0x25", reply.DeviceType)
				}
				if reply.Power != PowerOn {
					t.Errorf("power = 0x%02x, want 0x%02x", reply.Power, PowerOn)
				}
				if !reply.On() {
					t.Error("On() = false, want true")
				}
				if reply.PresetPattern != 0x61 {
					t.Errorf("preset pattern = 0x%02x, want 0x61", reply.PresetPattern)
				}
				if reply.ColorMode != 0x21 {
					t.Errorf("color mode = 0x%02x, want 0x21", reply.ColorMode)
				}
				if reply.Speed != 0x06 {
					t.Errorf("speed = %d, want 6", reply.Speed)
				}
				if reply.Red != 0x38 || reply.Green != 0x05 || reply.Blue != 0x06 {
					t.Errorf("rgb = (0x%02x,0x%02x,0x%02x), want (0x38,0x05,0x06)",
						reply.Red, reply.Green, reply.Blue)
				}
				if reply.WarmWhite != 0xf9 {
					t.Errorf("warm white = 0x%02x, want 0xf9", reply.WarmWhite)
				}
				if reply.Version != 0x01 {
					t.Errorf("version = 0x%02x, want 0x01", reply.Version)
				}
				if reply.CoolWhite != 0x00 {
					t.Errorf("cool white = 0x%02x, want 0x00", reply.CoolWhite)
				}
				if reply.WriteMask != MaskWhites {
					t.Errorf("write mask = 0x%02x, want 0x%02x", reply.WriteMask, MaskWhites)
				}
				if reply.Checksum != 0x9d {
					t.Errorf("checksum = 0x%02x, want 0x9d", reply.Checksum)
				}
			},
		},
		{
			name: "powered off reply",
			data: []byte{0x81, 0x25, 0x24, 0x61, 0x03, 0x01, 0xff, 0x00, 0x00, 0x00, 0x01, 0x00, 0xf0, 0x00},
			checkFields: func(t *testing.T, reply *StatusReply) {
				if reply.On() {
					t.Error("On() = true, want false")
				}
				if reply.Red != 0xff {
					t.Errorf("red = 0x%02x, want 0xff", reply.Red)
				}
			},
		},
		{
			name:    "13 bytes too short",
			data:    referenceReply[:13],
			wantErr: true,
		},
		{
			name:    "15 bytes too long",
			data:    append(append([]byte{}, referenceReply...), 0x00),
			wantErr: true,
		},
		{
			name:    "empty input",
			data:    []byte{},
			wantErr: true,
		},
		{
			name:    "nil input",
			data:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := ParseStatusReply(tt.data)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrReplyLength) {
					t.Errorf("error = %v, want ErrReplyLength", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.checkFields != nil {
				tt.checkFields(t, reply)
			}
		})
	}
}

// Wrong length must fail for every length except 14.
func TestParseStatusReplyLengthSweep(t *testing.T) {
	for n := 0; n <= 32; n++ {
		_, err := ParseStatusReply(make([]byte, n))
		if n == StatusReplyLength {
			if err != nil {
				t.Errorf("length %d: unexpected error: %v", n, err)
			}
			continue
		}
		if !errors.Is(err, ErrReplyLength) {
			t.Errorf("length %d: error = %v, want ErrReplyLength", n, err)
		}
	}
}

func TestVerifyChecksum(t *testing.T) {
	reply, err := ParseStatusReply(referenceReply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reply.VerifyChecksum(); err != nil {
		t.Errorf("VerifyChecksum() on valid reply = %v, want nil", err)
	}

	// Corrupt one payload byte; the transmitted trailer no longer matches
	corrupted := append([]byte{}, referenceReply...)
	corrupted[6] ^= 0xFF
	reply, err = ParseStatusReply(corrupted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reply.VerifyChecksum(); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("VerifyChecksum() on corrupted reply = %v, want ErrChecksumMismatch", err)
	}
}

func TestDeviceStateProjection(t *testing.T) {
	reply, err := ParseStatusReply(referenceReply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state := reply.DeviceState()
	if !state.On {
		t.Error("state.On = false, want true")
	}
	if state.Red != 0x38 || state.Green != 0x05 || state.Blue != 0x06 {
		t.Errorf("state rgb = (%d,%d,%d), want (0x38,0x05,0x06)", state.Red, state.Green, state.Blue)
	}
}

func TestNameHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"power on", PowerStateName(PowerOn), "on"},
		{"power off", PowerStateName(PowerOff), "off"},
		{"power other counts as on", PowerStateName(0x00), "on(0x00)"},
		{"mode ww", ColorModeName(ColorModeWW), "WW"},
		{"mode ww+cw", ColorModeName(ColorModeWWCW), "WW+CW"},
		{"mode rgb", ColorModeName(ColorModeRGB), "RGB"},
		{"mode rgbw", ColorModeName(ColorModeRGBW), "RGBW"},
		{"mode rgbww", ColorModeName(ColorModeRGBWW), "RGBWW"},
		{"mode unknown", ColorModeName(0x21), "unknown(0x21)"},
		{"mask colors", WriteMaskName(MaskColors), "colors"},
		{"mask whites", WriteMaskName(MaskWhites), "whites"},
		{"mask all", WriteMaskName(MaskAll), "all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
