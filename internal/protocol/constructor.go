package protocol

// Frame constructor library for building command frames to send to a
// LEDENET controller. Every frame is the fixed command bytes followed by a
// single trailing checksum byte.

// RemoteTerminator closes color and power command frames. 0x0f marks the
// command as coming from a remote client (the official app uses 0xf0 for
// the local hardware remote).
const RemoteTerminator = 0x0F

// Checksum sums all bytes and truncates to the low 8 bits. The accumulator
// is 64-bit so intermediate sums never wrap before truncation. The checksum
// of an empty slice is 0.
func Checksum(data []byte) uint8 {
	var sum uint64
	for _, b := range data {
		sum += uint64(b)
	}
	return uint8(sum)
}

// appendChecksum appends the checksum of the frame so far. The checksum byte
// never includes itself in the computation.
func appendChecksum(frame []byte) []byte {
	return append(frame, Checksum(frame))
}

// BuildStateQuery constructs the 4-byte state query frame.
//
// Frame layout:
//
//	[0]  0x81   Command head (CmdStateQuery)
//	[1]  0x8a   Query argument
//	[2]  0x8b   Query argument
//	[3]  chk    Checksum of bytes 0..2
//
// The controller answers with a 14-byte status reply (see StatusReply).
func BuildStateQuery() []byte {
	frame := []byte{CmdStateQuery, QueryArg1, QueryArg2}
	return appendChecksum(frame)
}

// BuildColorSet constructs the 8-byte RGB color command frame.
//
// Frame layout:
//
//	[0]  0x31   Command head (CmdColorSet)
//	[1]  r
//	[2]  g
//	[3]  b
//	[4]  0x00   White channel slot, always zero for RGB-only writes
//	[5]  0xf0   Write mask: apply color channels only (MaskColors)
//	[6]  0x0f   Remote terminator
//	[7]  chk    Checksum of bytes 0..6
//
// The controller sends no reply; delivery is confirmed only by the absence
// of a transport error.
func BuildColorSet(r, g, b uint8) []byte {
	frame := []byte{CmdColorSet, r, g, b, ColorSetFiller, MaskColors, RemoteTerminator}
	return appendChecksum(frame)
}

// BuildPowerSet constructs the 4-byte power command frame.
//
// Frame layout:
//
//	[0]  0x71   Command head (CmdPowerSet)
//	[1]  p      0x23 on / 0x24 off
//	[2]  0x0f   Remote terminator
//	[3]  chk    Checksum of bytes 0..2
//
// The power byte is an absolute target, not a toggle: sending "on" to a
// controller that is already on is a no-op on the device side.
func BuildPowerSet(on bool) []byte {
	power := byte(PowerOff)
	if on {
		power = PowerOn
	}
	frame := []byte{CmdPowerSet, power, RemoteTerminator}
	return appendChecksum(frame)
}
