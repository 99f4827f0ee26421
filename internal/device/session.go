package device

import (
	"fmt"
	"io"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/tikitko/magichome/internal/logging"
	"github.com/tikitko/magichome/internal/protocol"
)

const (
	// DefaultPort is the TCP control port LEDENET controllers listen on
	DefaultPort = 5577

	// DefaultTimeout is the default per-operation I/O deadline
	DefaultTimeout = 5 * time.Second
)

// Session manages the TCP connection to a single LEDENET controller and
// sequences protocol frames against it.
//
// A session owns at most one stream. It starts disconnected; Connect opens
// the stream and probes the controller, Close releases it. Commands issued
// while disconnected fail with a not-connected error - never a silent no-op.
//
// Sessions are NOT safe for concurrent use. A caller that issues commands
// from multiple goroutines must serialize access externally.
//
// Usage:
//
//	sess := device.NewSession()
//	if err := sess.Connect("192.168.1.42:5577"); err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close()
//
//	state, err := sess.State()
type Session struct {
	// Timeout is the read/write deadline applied per operation.
	// Zero disables deadlines entirely (a hung controller then blocks forever).
	Timeout time.Duration

	// StrictDecode enables checksum verification of status replies.
	// Off by default: some firmware revisions sum the reply wrong.
	StrictDecode bool

	// addr is the controller address of the current connection.
	addr string

	// conn is the active TCP connection; nil while disconnected.
	conn net.Conn
}

// NewSession creates a new disconnected session with default settings.
func NewSession() *Session {
	return &Session{
		Timeout: DefaultTimeout,
	}
}

// Connect dials the controller and performs a state-query round trip to
// confirm the peer speaks the protocol. The probe reply is discarded.
//
// On any failure (dial, write, short read) the socket is closed and the
// session stays disconnected; no partial state is retained.
func (s *Session) Connect(addr string) error {
	if s.conn != nil {
		// Re-connect replaces the existing stream
		_ = s.conn.Close()
		s.conn = nil
	}

	logging.Debug("Dialing controller", zap.String("addr", addr))

	conn, err := net.DialTimeout("tcp", addr, s.dialTimeout())
	if err != nil {
		return ClassifyNetworkError("failed to connect to controller", err, addr)
	}

	// Liveness probe: the controller must answer a state query before the
	// session is considered connected.
	if _, err := s.exchangeStateQuery(conn, addr); err != nil {
		_ = conn.Close()
		return err
	}

	s.addr = addr
	s.conn = conn
	logging.LogConnection(addr, "connected")
	return nil
}

// IsConnected reports whether the session holds an open stream.
func (s *Session) IsConnected() bool {
	return s.conn != nil
}

// Addr returns the controller address of the current connection, or the
// empty string while disconnected.
func (s *Session) Addr() string {
	if s.conn == nil {
		return ""
	}
	return s.addr
}

// Close releases the underlying stream. Closing a disconnected session is a no-op.
func (s *Session) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	logging.LogConnection(s.addr, "closed")
	if err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

// Status performs a state-query round trip and returns the full decoded
// status reply. Replies are never cached; every call hits the controller.
func (s *Session) Status() (*protocol.StatusReply, error) {
	if s.conn == nil {
		return nil, NewNotConnectedError(s.addr)
	}

	raw, err := s.exchangeStateQuery(s.conn, s.addr)
	if err != nil {
		return nil, err
	}

	reply, err := protocol.ParseStatusReply(raw)
	if err != nil {
		return nil, NewDecodeError("failed to decode status reply", err)
	}

	if s.StrictDecode {
		if err := reply.VerifyChecksum(); err != nil {
			return nil, NewDecodeError("status reply failed checksum verification", err)
		}
	}

	logging.Debug("Status received", zap.String("addr", s.addr), zap.String("status", reply.String()))
	return reply, nil
}

// State performs a state-query round trip and returns the power/RGB projection.
func (s *Session) State() (protocol.DeviceState, error) {
	reply, err := s.Status()
	if err != nil {
		return protocol.DeviceState{}, err
	}
	return reply.DeviceState(), nil
}

// SetColor sends an RGB color command. The white channels are untouched.
//
// The controller sends no acknowledgement; absence of a transport error is
// the only confirmation.
func (s *Session) SetColor(r, g, b uint8) error {
	if s.conn == nil {
		return NewNotConnectedError(s.addr)
	}

	frame := protocol.BuildColorSet(r, g, b)
	if err := s.writeFrame(s.conn, frame); err != nil {
		return ClassifyNetworkError("failed to send color command", err, s.addr)
	}

	logging.Debug("Color set",
		zap.String("addr", s.addr),
		zap.Uint8("red", r), zap.Uint8("green", g), zap.Uint8("blue", b),
	)
	return nil
}

// SetPower sends a power command with an absolute target state. It is not a
// toggle: the controller ignores a target it is already in.
//
// Fire-and-forget like SetColor; no reply is read.
func (s *Session) SetPower(on bool) error {
	if s.conn == nil {
		return NewNotConnectedError(s.addr)
	}

	frame := protocol.BuildPowerSet(on)
	if err := s.writeFrame(s.conn, frame); err != nil {
		return ClassifyNetworkError("failed to send power command", err, s.addr)
	}

	logging.Debug("Power set", zap.String("addr", s.addr), zap.Bool("on", on))
	return nil
}

// Toggle reads the current power state and sends the opposite target.
// Returns the new target state. Costs one extra round trip compared to
// SetPower, and races with anything else controlling the device.
func (s *Session) Toggle() (bool, error) {
	state, err := s.State()
	if err != nil {
		return false, err
	}

	target := !state.On
	if err := s.SetPower(target); err != nil {
		return false, err
	}
	return target, nil
}

// exchangeStateQuery writes a state query and reads back exactly one raw
// 14-byte reply. A short read is a transport error, never a success.
func (s *Session) exchangeStateQuery(conn net.Conn, addr string) ([]byte, error) {
	frame := protocol.BuildStateQuery()
	if err := s.writeFrame(conn, frame); err != nil {
		return nil, ClassifyNetworkError("failed to send state query", err, addr)
	}

	if s.Timeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.Timeout)); err != nil {
			return nil, ClassifyNetworkError("failed to set read deadline", err, addr)
		}
	}

	reply := make([]byte, protocol.StatusReplyLength)
	if _, err := io.ReadFull(conn, reply); err != nil {
		return nil, ClassifyNetworkError("failed to read status reply", err, addr)
	}

	logging.LogFrame(addr, "received", reply)
	return reply, nil
}

// writeFrame writes a complete frame to the stream. net.Conn.Write only
// returns short on error, so the error check covers partial transfers.
func (s *Session) writeFrame(conn net.Conn, frame []byte) error {
	if s.Timeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(s.Timeout)); err != nil {
			return err
		}
	}

	n, err := conn.Write(frame)
	if err != nil {
		return err
	}
	if n != len(frame) {
		return fmt.Errorf("short write: %d of %d bytes", n, len(frame))
	}

	logging.LogFrame(conn.RemoteAddr().String(), "sent", frame)
	return nil
}

// dialTimeout returns the timeout for the initial TCP dial. Falls back to
// the default so a zero Timeout (no I/O deadlines) still bounds the dial.
func (s *Session) dialTimeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}
