package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// DefaultControlPort is the TCP port LEDENET controllers listen on.
const DefaultControlPort = 5577

// Registry represents the entire user configuration file.
// This stores user-defined metadata for controllers and application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by user-chosen name
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents user-defined metadata for a single LED controller.
// This is keyed by the user-chosen name in the Registry.
type Device struct {
	Address  string    `yaml:"address"`             // host or host:port of the controller
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last successful connection time
	Notes    string    `yaml:"notes,omitempty"`     // Free-form user notes (e.g., "living room strip")
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultDevice  string `yaml:"default_device,omitempty"` // Device name used when --device is omitted
	TimeoutSeconds int    `yaml:"timeout_seconds"`          // Per-operation I/O timeout
	StrictDecode   bool   `yaml:"strict_decode"`            // Verify status reply checksums
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			TimeoutSeconds: 5,
		},
	}
}

// GetDevice returns the device entry for a name, or nil if unknown.
func (r *Registry) GetDevice(name string) *Device {
	return r.Devices[name]
}

// EnsureDevice returns the device entry for a name, creating it if needed.
func (r *Registry) EnsureDevice(name string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}
	device, ok := r.Devices[name]
	if !ok {
		device = &Device{}
		r.Devices[name] = device
	}
	return device
}

// SetDeviceAddress records the address for a named controller.
func (r *Registry) SetDeviceAddress(name, address string) {
	r.EnsureDevice(name).Address = address
}

// RemoveDevice deletes a named controller. Removing an unknown name is a no-op.
// If the removed device was the default, the default preference is cleared.
func (r *Registry) RemoveDevice(name string) {
	delete(r.Devices, name)
	if r.Preferences != nil && r.Preferences.DefaultDevice == name {
		r.Preferences.DefaultDevice = ""
	}
}

// MarkDeviceSeen records a successful connection time for a named controller.
func (r *Registry) MarkDeviceSeen(name string) {
	r.EnsureDevice(name).LastSeen = time.Now()
}

// Resolve maps a device reference to a dialable host:port address.
//
// The reference is looked up as a registry name first; otherwise it is
// treated as a literal host or host:port. An empty reference resolves to the
// default device preference. The default control port is appended when the
// reference carries none.
func (r *Registry) Resolve(ref string) (string, error) {
	if ref == "" {
		if r.Preferences == nil || r.Preferences.DefaultDevice == "" {
			return "", fmt.Errorf("no device given and no default device configured")
		}
		ref = r.Preferences.DefaultDevice
	}

	if device := r.GetDevice(ref); device != nil {
		if device.Address == "" {
			return "", fmt.Errorf("device %q has no address configured", ref)
		}
		return withDefaultPort(device.Address), nil
	}

	return withDefaultPort(ref), nil
}

// withDefaultPort appends the default control port to a bare host.
func withDefaultPort(address string) string {
	if _, _, err := net.SplitHostPort(address); err == nil {
		return address
	}
	return net.JoinHostPort(address, strconv.Itoa(DefaultControlPort))
}
