// Package tui implements the interactive terminal controller.
//
// The controller is a single-screen Bubble Tea application showing the
// live device state (power, current color) above three RGB channel
// sliders. Channel edits are staged locally and only sent to the device
// when applied, so stepping through values never floods the connection.
//
// # Screen Layout
//
//	MAGICHOME CONTROLLER
//
//	┌──────────────────────────────────┐
//	│ Device:  192.168.1.42:5577       │
//	│ Power:   ● ON                    │
//	│ Color:   ████████  #FF8800       │
//	└──────────────────────────────────┘
//
//	→ R ████████████░░░░░░ 255 *
//	  G ██████░░░░░░░░░░░░ 136
//	  B ░░░░░░░░░░░░░░░░░░   0
//
// # Keys
//
// Arrow keys select a channel and adjust its value (page up/down for
// coarse steps of 16), enter applies the staged color, space toggles
// power, r re-reads the device state, q quits.
//
// Session operations run as tea.Cmd closures off the update loop. The
// model ignores command keys while an operation is in flight because
// the underlying session is not safe for concurrent use.
package tui
