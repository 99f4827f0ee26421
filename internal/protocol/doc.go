// Package protocol implements the LEDENET binary control protocol.
//
// This package handles construction and parsing of the fixed-format byte
// frames spoken by "Magic Home" / LEDENET-style Wi-Fi RGB(W) LED controllers
// over a raw TCP connection (port 5577).
//
// # Protocol Overview
//
// Every outgoing command is a short fixed-shape frame terminated by a single
// checksum byte, where the checksum is the sum of all preceding frame bytes
// truncated to 8 bits:
//
//	81 8a 8b <chk>             State query
//	31 R G B 00 f0 0f <chk>    Set RGB color (white channels untouched)
//	71 23 0f <chk>             Power on
//	71 24 0f <chk>             Power off
//
// The state query is the only request/response exchange; color and power
// commands are fire-and-forget. The controller answers a query with a fixed
// 14-byte status reply:
//
//	pos  0  1  2  3  4  5  6  7  8  9 10 11 12 13
//	    81 25 23 61 21 06 38 05 06 f9 01 00 0f 9d
//	     |  |  |  |  |  |  |  |  |  |  |  |  |  checksum
//	     |  |  |  |  |  |  |  |  |  |  |  |  write mask
//	     |  |  |  |  |  |  |  |  |  |  |  cool white
//	     |  |  |  |  |  |  |  |  |  |  firmware version
//	     |  |  |  |  |  |  |  |  |  warm white
//	     |  |  |  |  |  |  |  |  blue
//	     |  |  |  |  |  |  |  green
//	     |  |  |  |  |  |  red
//	     |  |  |  |  |  speed (01 fastest .. 1f slowest)
//	     |  |  |  |  color mode (WW/WW+CW/RGB/RGBW/RGBWW)
//	     |  |  |  preset pattern
//	     |  |  power (23 on / 24 off)
//	     |  device type
//	     head
//
// # Usage Example - Construction
//
//	frame := protocol.BuildColorSet(0xff, 0x00, 0x80)
//	_, err := conn.Write(frame)
//
// # Usage Example - Parsing
//
//	reply, err := protocol.ParseStatusReply(buf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	state := reply.DeviceState()
//	fmt.Printf("power=%v rgb=(%d,%d,%d)\n", state.On, state.Red, state.Green, state.Blue)
//
// # Error Handling
//
// ParseStatusReply only enforces the fixed reply length (ErrReplyLength).
// Checksum verification is a stricter opt-in layer via
// StatusReply.VerifyChecksum (ErrChecksumMismatch), because some firmware
// revisions in the field compute the reply checksum incorrectly.
//
// # Thread Safety
//
// All construction and parsing functions are stateless and safe for
// concurrent use.
package protocol
