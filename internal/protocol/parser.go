package protocol

import (
	"errors"
	"fmt"
)

// Command heads (first byte of every outgoing frame)
const (
	CmdStateQuery = 0x81 // State query, answered with a 14-byte status reply
	CmdColorSet   = 0x31 // Set RGB color, no reply
	CmdPowerSet   = 0x71 // Set power state, no reply
)

// State query trailer bytes (captured from official app traffic)
const (
	QueryArg1 = 0x8A
	QueryArg2 = 0x8B
)

// Power state bytes, used both in the PowerSet command and at offset 2
// of the status reply.
const (
	PowerOn  = 0x23
	PowerOff = 0x24
)

// Color-set frame trailer: zero white slot plus the write mask that tells
// the controller to apply the color channels and leave the whites alone.
const (
	ColorSetFiller = 0x00
	MaskColors     = 0xF0 // Color channels were set
	MaskWhites     = 0x0F // White channels were set
	MaskAll        = 0x00 // All channels were set
)

// Color modes reported at offset 4 of the status reply.
const (
	ColorModeWW    = 0x01 // Warm white only
	ColorModeWWCW  = 0x02 // Warm white + cool white
	ColorModeRGB   = 0x03
	ColorModeRGBW  = 0x04
	ColorModeRGBWW = 0x05
)

// StatusReplyLength is the fixed size of the controller's state answer.
const StatusReplyLength = 14

// Preset pattern animation speed bounds, offset 5 of the status reply.
// Lower is faster.
const (
	SpeedFastest = 0x01
	SpeedSlowest = 0x1F
)

// Parse errors
var (
	// ErrReplyLength indicates a status reply that is not exactly 14 bytes.
	ErrReplyLength = errors.New("status reply must be exactly 14 bytes")

	// ErrChecksumMismatch indicates the reply's trailing checksum does not
	// match the sum of the preceding 13 bytes.
	ErrChecksumMismatch = errors.New("status reply checksum mismatch")
)

// StatusReply is the decoded 14-byte state answer from a LEDENET controller.
//
// Wire layout (one byte per field, in order):
//
//	[0]  head            0x81
//	[1]  device type
//	[2]  power           0x23 on / 0x24 off
//	[3]  preset pattern
//	[4]  color mode      WW(01) WW+CW(02) RGB(03) RGBW(04) RGBWW(05)
//	[5]  speed           0x01 fastest .. 0x1f slowest
//	[6]  red
//	[7]  green
//	[8]  blue
//	[9]  warm white
//	[10] firmware version
//	[11] cool white
//	[12] write mask      0xf0 colors / 0x0f whites / 0x00 all
//	[13] checksum        sum of bytes 0..12 mod 256
type StatusReply struct {
	Head          byte
	DeviceType    byte
	Power         byte
	PresetPattern byte
	ColorMode     byte
	Speed         byte
	Red           byte
	Green         byte
	Blue          byte
	WarmWhite     byte
	Version       byte
	CoolWhite     byte
	WriteMask     byte
	Checksum      byte
	Raw           []byte // Original reply bytes
}

// DeviceState is the caller-facing projection of a status reply: power plus
// the three color channels. Callers that need white channels, pattern, or
// mode work with the full StatusReply instead.
type DeviceState struct {
	On    bool
	Red   uint8
	Green uint8
	Blue  uint8
}

// ParseStatusReply decodes a raw status reply into its named fields.
//
// The input must be exactly StatusReplyLength bytes; anything shorter or
// longer fails with ErrReplyLength. The embedded checksum is NOT verified
// here - controllers in the field occasionally ship firmware that sums
// wrong, so strict verification is a separate opt-in step (VerifyChecksum).
func ParseStatusReply(data []byte) (*StatusReply, error) {
	if len(data) != StatusReplyLength {
		return nil, fmt.Errorf("%w: got %d", ErrReplyLength, len(data))
	}

	return &StatusReply{
		Head:          data[0],
		DeviceType:    data[1],
		Power:         data[2],
		PresetPattern: data[3],
		ColorMode:     data[4],
		Speed:         data[5],
		Red:           data[6],
		Green:         data[7],
		Blue:          data[8],
		WarmWhite:     data[9],
		Version:       data[10],
		CoolWhite:     data[11],
		WriteMask:     data[12],
		Checksum:      data[13],
		Raw:           data,
	}, nil
}

// VerifyChecksum recomputes the checksum over the first 13 reply bytes and
// compares it against the transmitted trailer byte.
func (r *StatusReply) VerifyChecksum() error {
	want := Checksum(r.Raw[:StatusReplyLength-1])
	if want != r.Checksum {
		return fmt.Errorf("%w: got 0x%02x, want 0x%02x", ErrChecksumMismatch, r.Checksum, want)
	}
	return nil
}

// On reports whether the controller considers itself powered on. Anything
// other than the explicit off byte counts as on.
func (r *StatusReply) On() bool {
	return r.Power != PowerOff
}

// DeviceState projects the reply down to power plus RGB.
func (r *StatusReply) DeviceState() DeviceState {
	return DeviceState{
		On:    r.On(),
		Red:   r.Red,
		Green: r.Green,
		Blue:  r.Blue,
	}
}

// String returns a human-readable representation of the reply
func (r *StatusReply) String() string {
	return fmt.Sprintf("Status{power=%s, mode=%s, pattern=0x%02x, speed=%d, rgb=(%d,%d,%d), ww=%d, cw=%d, mask=%s, ver=0x%02x}",
		PowerStateName(r.Power), ColorModeName(r.ColorMode), r.PresetPattern, r.Speed,
		r.Red, r.Green, r.Blue, r.WarmWhite, r.CoolWhite, WriteMaskName(r.WriteMask), r.Version)
}

// String returns a human-readable representation of the state
func (s DeviceState) String() string {
	power := "off"
	if s.On {
		power = "on"
	}
	return fmt.Sprintf("State{power=%s, rgb=(%d,%d,%d)}", power, s.Red, s.Green, s.Blue)
}

// PowerStateName returns a human-readable name for a power byte
func PowerStateName(power byte) string {
	switch power {
	case PowerOn:
		return "on"
	case PowerOff:
		return "off"
	default:
		// Some firmwares report transitional values; treated as on by On()
		return fmt.Sprintf("on(0x%02x)", power)
	}
}

// ColorModeName returns a human-readable name for a color mode byte
func ColorModeName(mode byte) string {
	switch mode {
	case ColorModeWW:
		return "WW"
	case ColorModeWWCW:
		return "WW+CW"
	case ColorModeRGB:
		return "RGB"
	case ColorModeRGBW:
		return "RGBW"
	case ColorModeRGBWW:
		return "RGBWW"
	default:
		return fmt.Sprintf("unknown(0x%02x)", mode)
	}
}

// WriteMaskName returns a human-readable name for a write mask byte
func WriteMaskName(mask byte) string {
	switch mask {
	case MaskColors:
		return "colors"
	case MaskWhites:
		return "whites"
	case MaskAll:
		return "all"
	default:
		return fmt.Sprintf("unknown(0x%02x)", mask)
	}
}
