package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tikitko/magichome/internal/config"
	"github.com/tikitko/magichome/internal/device"
	"github.com/tikitko/magichome/internal/protocol"
	"github.com/tikitko/magichome/internal/tui"
)

// Command flags
var (
	deviceRef      string
	timeoutSeconds int
	strictDecode   bool
	outputFormat   string
	setDefault     bool
	deviceNotes    string
)

func init() {
	// Common flags for device commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&deviceRef, "device", "", "Device name or host[:port] (default: configured default device)")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 0, "I/O timeout in seconds (0 uses the configured preference)")
	rootCmd.PersistentFlags().BoolVar(&strictDecode, "strict", false, "Reject status replies with bad checksums")

	// Add subcommands directly to root
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(onCmd)
	rootCmd.AddCommand(offCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(colorCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(controllerCmd)
}

// statusCmd queries and displays the device state
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show device status",
	Long: `Query a controller and display its current state.

This command connects to the device, sends a state query, and decodes
the status reply: power, color channels, white channels, the active
mode, and firmware version.`,
	Example: `  # Status of the default device
  magichome-ctl status

  # Status of a specific controller
  magichome-ctl status --device 192.168.1.42

  # JSON output for scripting
  magichome-ctl status --device bedroom --format json`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, json)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	sess, reply, name, err := connectAndQuery()
	if err != nil {
		return err
	}
	defer sess.Close()

	switch outputFormat {
	case "compact":
		fmt.Println(reply.String())
	case "json":
		data, err := json.MarshalIndent(statusDocument(sess.Addr(), reply), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	case "detailed":
		fallthrough
	default:
		printDetailedStatus(sess.Addr(), name, reply)
	}

	return nil
}

// statusDocument shapes a status reply for JSON output.
func statusDocument(addr string, reply *protocol.StatusReply) map[string]any {
	return map[string]any{
		"address":        addr,
		"power":          reply.On(),
		"red":            reply.Red,
		"green":          reply.Green,
		"blue":           reply.Blue,
		"warm_white":     reply.WarmWhite,
		"cool_white":     reply.CoolWhite,
		"color_mode":     protocol.ColorModeName(reply.ColorMode),
		"preset_pattern": reply.PresetPattern,
		"speed":          reply.Speed,
		"device_type":    reply.DeviceType,
		"firmware":       reply.Version,
	}
}

func printDetailedStatus(addr, name string, reply *protocol.StatusReply) {
	label := addr
	if name != "" {
		label = fmt.Sprintf("%s (%s)", name, addr)
	}

	fmt.Printf("Device:      %s\n", label)
	fmt.Printf("Power:       %s\n", protocol.PowerStateName(reply.Power))
	fmt.Printf("Color:       #%02X%02X%02X (R:%d G:%d B:%d)\n",
		reply.Red, reply.Green, reply.Blue, reply.Red, reply.Green, reply.Blue)
	fmt.Printf("White:       warm %d / cool %d\n", reply.WarmWhite, reply.CoolWhite)
	fmt.Printf("Mode:        %s\n", protocol.ColorModeName(reply.ColorMode))
	fmt.Printf("Pattern:     0x%02x (speed 0x%02x)\n", reply.PresetPattern, reply.Speed)
	fmt.Printf("Device type: 0x%02x\n", reply.DeviceType)
	fmt.Printf("Firmware:    0x%02x\n", reply.Version)
}

// onCmd turns the device on
var onCmd = &cobra.Command{
	Use:   "on",
	Short: "Turn the device on",
	Example: `  # Turn on the default device
  magichome-ctl on

  # Turn on a specific controller
  magichome-ctl on --device 192.168.1.42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetPower(true)
	},
}

// offCmd turns the device off
var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Turn the device off",
	Example: `  # Turn off the default device
  magichome-ctl off

  # Turn off a saved device by name
  magichome-ctl off --device bedroom`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetPower(false)
	},
}

func runSetPower(on bool) error {
	sess, name, err := connectSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.SetPower(on); err != nil {
		return fmt.Errorf("failed to set power: %w", err)
	}

	markSeen(name)

	if on {
		fmt.Printf("✓ %s is on\n", sess.Addr())
	} else {
		fmt.Printf("✓ %s is off\n", sess.Addr())
	}
	return nil
}

// toggleCmd flips the device power state
var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle the device power state",
	Long: `Toggle the device power state.

The current state is read from the device and the opposite absolute
power command is sent, so a toggle never desynchronizes with manual
changes made through the vendor app or remote.`,
	Example: `  magichome-ctl toggle --device 192.168.1.42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, name, err := connectSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		on, err := sess.Toggle()
		if err != nil {
			return fmt.Errorf("failed to toggle power: %w", err)
		}

		markSeen(name)

		if on {
			fmt.Printf("✓ %s is now on\n", sess.Addr())
		} else {
			fmt.Printf("✓ %s is now off\n", sess.Addr())
		}
		return nil
	},
}

// colorCmd sets a static RGB color
var colorCmd = &cobra.Command{
	Use:   "color <r> <g> <b> | <#rrggbb>",
	Short: "Set a static RGB color",
	Long: `Set the device to a static RGB color.

Channels are given either as three decimal values (0-255) or as a
single hex color. White channels are left untouched; the controller
switches to static color mode.`,
	Example: `  # Warm orange, decimal channels
  magichome-ctl color 255 136 0 --device 192.168.1.42

  # Same color as hex
  magichome-ctl color '#FF8800' --device 192.168.1.42

  # Black (channels off, device stays powered)
  magichome-ctl color 0 0 0`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runColor,
}

func runColor(cmd *cobra.Command, args []string) error {
	r, g, b, err := parseColorArgs(args)
	if err != nil {
		return err
	}

	sess, name, err := connectSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.SetColor(r, g, b); err != nil {
		return fmt.Errorf("failed to set color: %w", err)
	}

	markSeen(name)

	fmt.Printf("✓ %s set to #%02X%02X%02X\n", sess.Addr(), r, g, b)
	return nil
}

// parseColorArgs accepts "r g b" decimal triplets or a single hex color.
func parseColorArgs(args []string) (uint8, uint8, uint8, error) {
	if len(args) == 1 {
		hex := strings.TrimPrefix(args[0], "#")
		if len(hex) != 6 {
			return 0, 0, 0, fmt.Errorf("invalid hex color %q (expected #rrggbb)", args[0])
		}
		value, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", args[0], err)
		}
		return uint8(value >> 16), uint8(value >> 8), uint8(value), nil
	}

	if len(args) != 3 {
		return 0, 0, 0, fmt.Errorf("expected three channel values or one hex color")
	}

	var channels [3]uint8
	for i, arg := range args {
		value, err := strconv.ParseUint(arg, 10, 8)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid channel value %q (expected 0-255)", arg)
		}
		channels[i] = uint8(value)
	}
	return channels[0], channels[1], channels[2], nil
}

// controllerCmd launches the interactive TUI controller
var controllerCmd = &cobra.Command{
	Use:   "controller",
	Short: "Launch the interactive controller",
	Long: `Launch an interactive TUI controller for a device.

The controller shows the live device state and provides RGB channel
sliders and a power toggle. This is the recommended way to experiment
with colors.`,
	Example: `  # Launch the controller for the default device
  magichome-ctl controller
  # Or simply (controller is default):
  magichome-ctl

  # Launch for a specific device
  magichome-ctl controller --device 192.168.1.42
  magichome-ctl --device 192.168.1.42`,
	RunE: runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return err
	}

	addr, err := registry.Resolve(deviceRef)
	if err != nil {
		return err
	}

	return tui.Run(newSession(registry), addr)
}

// devicesCmd manages the saved device registry
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Manage saved devices",
	Long: `Manage the local registry of saved devices.

Saved devices map friendly names to controller addresses so commands
can use --device bedroom instead of an IP address. One device can be
marked as the default and is used when --device is omitted.`,
}

func init() {
	devicesCmd.AddCommand(devicesListCmd)
	devicesCmd.AddCommand(devicesAddCmd)
	devicesCmd.AddCommand(devicesRemoveCmd)
	devicesCmd.AddCommand(devicesDefaultCmd)

	devicesAddCmd.Flags().BoolVar(&setDefault, "default", false, "Make this the default device")
	devicesAddCmd.Flags().StringVar(&deviceNotes, "notes", "", "Free-form notes for the device")
}

var devicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}

		if len(registry.Devices) == 0 {
			fmt.Println("No saved devices.")
			fmt.Println("\nUse 'magichome-ctl devices add <name> <address>' to save one.")
			return nil
		}

		names := make([]string, 0, len(registry.Devices))
		for name := range registry.Devices {
			names = append(names, name)
		}
		sort.Strings(names)

		defaultName := ""
		if registry.Preferences != nil {
			defaultName = registry.Preferences.DefaultDevice
		}

		for _, name := range names {
			entry := registry.Devices[name]
			marker := " "
			if name == defaultName {
				marker = "*"
			}
			fmt.Printf("%s %-16s %s\n", marker, name, entry.Address)
			if entry.Notes != "" {
				fmt.Printf("    %s\n", entry.Notes)
			}
			if !entry.LastSeen.IsZero() {
				fmt.Printf("    last seen %s\n", entry.LastSeen.Format(time.RFC3339))
			}
		}
		return nil
	},
}

var devicesAddCmd = &cobra.Command{
	Use:   "add <name> <host[:port]>",
	Short: "Save a device under a friendly name",
	Example: `  # Save a controller and make it the default
  magichome-ctl devices add bedroom 192.168.1.42 --default

  # Save with a non-standard port and a note
  magichome-ctl devices add desk 10.0.0.7:5577 --notes "desk strip"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, address := args[0], args[1]

		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}

		registry.SetDeviceAddress(name, address)
		if deviceNotes != "" {
			registry.EnsureDevice(name).Notes = deviceNotes
		}
		if setDefault || registry.Preferences.DefaultDevice == "" {
			registry.Preferences.DefaultDevice = name
		}

		if err := registry.Save(); err != nil {
			return err
		}

		fmt.Printf("✓ Saved %s (%s)\n", name, address)
		if registry.Preferences.DefaultDevice == name {
			fmt.Println("  This is now the default device.")
		}
		return nil
	},
}

var devicesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a saved device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}

		if registry.GetDevice(name) == nil {
			return fmt.Errorf("no saved device named %q", name)
		}

		registry.RemoveDevice(name)
		if err := registry.Save(); err != nil {
			return err
		}

		fmt.Printf("✓ Removed %s\n", name)
		return nil
	},
}

var devicesDefaultCmd = &cobra.Command{
	Use:   "default <name>",
	Short: "Set the default device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}

		if registry.GetDevice(name) == nil {
			return fmt.Errorf("no saved device named %q", name)
		}

		registry.Preferences.DefaultDevice = name
		if err := registry.Save(); err != nil {
			return err
		}

		fmt.Printf("✓ Default device is now %s\n", name)
		return nil
	},
}

// newSession builds a session from flags and registry preferences.
func newSession(registry *config.Registry) *device.Session {
	sess := device.NewSession()

	switch {
	case timeoutSeconds > 0:
		sess.Timeout = time.Duration(timeoutSeconds) * time.Second
	case registry.Preferences != nil && registry.Preferences.TimeoutSeconds > 0:
		sess.Timeout = time.Duration(registry.Preferences.TimeoutSeconds) * time.Second
	}

	if strictDecode || (registry.Preferences != nil && registry.Preferences.StrictDecode) {
		sess.StrictDecode = true
	}

	return sess
}

// connectSession resolves the device reference from the registry and
// connects to it. It returns the registry name when the reference was a
// saved device so callers can stamp last-seen on success.
func connectSession() (*device.Session, string, error) {
	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, "", err
	}

	addr, err := registry.Resolve(deviceRef)
	if err != nil {
		return nil, "", err
	}

	name := savedDeviceName(registry, deviceRef)

	sess := newSession(registry)
	if err := sess.Connect(addr); err != nil {
		return nil, "", fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	return sess, name, nil
}

// connectAndQuery connects and performs a status round trip.
func connectAndQuery() (*device.Session, *protocol.StatusReply, string, error) {
	sess, name, err := connectSession()
	if err != nil {
		return nil, nil, "", err
	}

	reply, err := sess.Status()
	if err != nil {
		sess.Close()
		return nil, nil, "", fmt.Errorf("failed to query status: %w", err)
	}

	markSeen(name)

	return sess, reply, name, nil
}

// savedDeviceName maps a device reference back to its registry name.
func savedDeviceName(registry *config.Registry, ref string) string {
	if ref == "" && registry.Preferences != nil {
		ref = registry.Preferences.DefaultDevice
	}
	if registry.GetDevice(ref) != nil {
		return ref
	}
	return ""
}

// markSeen stamps the last-seen time for a saved device. Registry save
// failures are ignored here; a stale timestamp never blocks a command.
func markSeen(name string) {
	if name == "" {
		return
	}
	registry, err := config.LoadRegistry()
	if err != nil {
		return
	}
	registry.MarkDeviceSeen(name)
	_ = registry.Save()
}
