// Package device manages sessions with LEDENET Wi-Fi LED controllers.
//
// A Session wraps a single TCP connection to one controller and sequences
// protocol frames against it: state queries (the only request/response
// exchange) and the fire-and-forget color and power commands.
//
// # Lifecycle
//
// A session starts disconnected. Connect dials the controller and performs a
// state-query round trip as a liveness probe before the session is
// considered connected; any failure leaves it disconnected. Every command
// issued while disconnected fails with a typed not-connected error.
//
//	sess := device.NewSession()
//	if err := sess.Connect("192.168.1.42:5577"); err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close()
//
//	if err := sess.SetColor(0xff, 0x00, 0x80); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// All failures are typed SessionError values: not-connected, transport
// (network/timeout/refused), or decode. Failed operations never mutate
// session state - a failed State() call does not disconnect the session and
// the caller may retry.
//
// # Thread Safety
//
// Sessions provide no internal locking. Callers issuing commands from
// multiple goroutines must serialize access externally.
package device
