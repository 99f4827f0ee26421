package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, appName) {
		t.Errorf("GetConfigDir() = %v, should contain %q", configDir, appName)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != configFile {
		t.Errorf("GetConfigPath() should end with %q, got: %v", configFile, configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.Devices == nil {
		t.Error("NewRegistry().Devices should not be nil")
	}
	if reg.Preferences == nil {
		t.Fatal("NewRegistry().Preferences should not be nil")
	}
	if reg.Preferences.TimeoutSeconds != 5 {
		t.Errorf("NewRegistry().Preferences.TimeoutSeconds = %v, want 5", reg.Preferences.TimeoutSeconds)
	}
	if reg.Preferences.StrictDecode {
		t.Error("NewRegistry().Preferences.StrictDecode should default to false")
	}
}

func TestRegistryEnsureDevice(t *testing.T) {
	reg := NewRegistry()

	// First call should create device
	device1 := reg.EnsureDevice("living-room")
	if device1 == nil {
		t.Fatal("EnsureDevice() returned nil")
	}

	// Second call should return same device
	device2 := reg.EnsureDevice("living-room")
	if device1 != device2 {
		t.Error("EnsureDevice() should return same instance for same name")
	}

	// Different name should create new device
	device3 := reg.EnsureDevice("bedroom")
	if device1 == device3 {
		t.Error("EnsureDevice() should create new instance for different name")
	}
}

func TestRegistrySetDeviceAddress(t *testing.T) {
	reg := NewRegistry()

	reg.SetDeviceAddress("living-room", "192.168.1.42")

	device := reg.GetDevice("living-room")
	if device == nil {
		t.Fatal("Device should exist after SetDeviceAddress()")
	}
	if device.Address != "192.168.1.42" {
		t.Errorf("Address = %v, want 192.168.1.42", device.Address)
	}
}

func TestRegistryRemoveDevice(t *testing.T) {
	reg := NewRegistry()
	reg.SetDeviceAddress("living-room", "192.168.1.42")
	reg.Preferences.DefaultDevice = "living-room"

	reg.RemoveDevice("living-room")

	if reg.GetDevice("living-room") != nil {
		t.Error("Device should be gone after RemoveDevice()")
	}
	if reg.Preferences.DefaultDevice != "" {
		t.Error("Removing the default device should clear the default preference")
	}

	// Removing an unknown name is a no-op
	reg.RemoveDevice("never-existed")
}

func TestRegistryMarkDeviceSeen(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.MarkDeviceSeen("living-room")
	after := time.Now()

	device := reg.GetDevice("living-room")
	if device == nil {
		t.Fatal("Device should exist after MarkDeviceSeen()")
	}
	if device.LastSeen.Before(before) || device.LastSeen.After(after) {
		t.Errorf("LastSeen = %v, should be between %v and %v", device.LastSeen, before, after)
	}
}

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry()
	reg.SetDeviceAddress("living-room", "192.168.1.42")
	reg.SetDeviceAddress("bedroom", "192.168.1.43:5578")
	reg.Preferences.DefaultDevice = "living-room"

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr bool
	}{
		{
			name: "registered name gets default port",
			ref:  "living-room",
			want: "192.168.1.42:5577",
		},
		{
			name: "registered name keeps explicit port",
			ref:  "bedroom",
			want: "192.168.1.43:5578",
		},
		{
			name: "literal host gets default port",
			ref:  "10.0.0.7",
			want: "10.0.0.7:5577",
		},
		{
			name: "literal host:port passes through",
			ref:  "10.0.0.7:1234",
			want: "10.0.0.7:1234",
		},
		{
			name: "ipv6 literal gets bracketed",
			ref:  "fe80::1",
			want: "[fe80::1]:5577",
		},
		{
			name: "empty falls back to default device",
			ref:  "",
			want: "192.168.1.42:5577",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Resolve(tt.ref)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.ref, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestRegistryResolveErrors(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.Resolve(""); err == nil {
		t.Error("Resolve(\"\") without a default device should fail")
	}

	reg.EnsureDevice("no-address")
	if _, err := reg.Resolve("no-address"); err == nil {
		t.Error("Resolve of a device without address should fail")
	}
}

func TestRegistrySaveAndLoadRoundTrip(t *testing.T) {
	testConfigPath := filepath.Join(t.TempDir(), configFile)

	reg := NewRegistry()
	reg.SetDeviceAddress("living-room", "192.168.1.42")
	reg.EnsureDevice("living-room").Notes = "strip behind the TV"
	reg.MarkDeviceSeen("living-room")
	reg.Preferences.DefaultDevice = "living-room"
	reg.Preferences.StrictDecode = true

	if err := saveRegistryToFile(reg, testConfigPath); err != nil {
		t.Fatalf("saveRegistryToFile() error = %v", err)
	}

	loaded, err := loadRegistryFromFile(testConfigPath)
	if err != nil {
		t.Fatalf("loadRegistryFromFile() error = %v", err)
	}

	device := loaded.GetDevice("living-room")
	if device == nil {
		t.Fatal("Device should exist in loaded registry")
	}
	if device.Address != "192.168.1.42" {
		t.Errorf("Loaded address = %v, want 192.168.1.42", device.Address)
	}
	if device.Notes != "strip behind the TV" {
		t.Errorf("Loaded notes = %v, want 'strip behind the TV'", device.Notes)
	}
	if device.LastSeen.IsZero() {
		t.Error("Loaded LastSeen should not be zero")
	}
	if loaded.Preferences.DefaultDevice != "living-room" {
		t.Errorf("Loaded default device = %v, want living-room", loaded.Preferences.DefaultDevice)
	}
	if !loaded.Preferences.StrictDecode {
		t.Error("Loaded StrictDecode should be true")
	}
}

func TestLoadRegistryMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	reg, err := loadRegistryFromFile(path)
	if err != nil {
		t.Fatalf("loadRegistryFromFile() error = %v", err)
	}
	if reg.Version != 1 {
		t.Errorf("Version = %v, want 1", reg.Version)
	}
	if len(reg.Devices) != 0 {
		t.Errorf("Devices should be empty, got %d entries", len(reg.Devices))
	}
}

func TestLoadRegistryRejectsBadVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFile)
	if err := saveRegistryToFile(&Registry{Version: 2}, path); err != nil {
		t.Fatalf("saveRegistryToFile() error = %v", err)
	}

	if _, err := loadRegistryFromFile(path); err == nil {
		t.Error("loading a config with an unsupported version should fail")
	}
}
