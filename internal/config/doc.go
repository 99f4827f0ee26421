// Package config provides user configuration management for the magichome project.
//
// This package manages a YAML-based configuration file that stores named LED
// controllers (nickname to network address) and application preferences. The
// configuration follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/magichome/config.yaml or $HOME/.config/magichome/config.yaml
//   - macOS: $HOME/.config/magichome/config.yaml
//   - Windows: %LOCALAPPDATA%\magichome\config.yaml
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Register a controller and make it the default
//	registry.SetDeviceAddress("living-room", "192.168.1.42")
//	registry.Preferences.DefaultDevice = "living-room"
//
//	// Resolve a device reference (name or literal address) to host:port
//	addr, err := registry.Resolve("living-room")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
