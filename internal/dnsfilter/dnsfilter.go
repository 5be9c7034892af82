// Package dnsfilter points the active network interface at OpenDNS FamilyShield and back.
package dnsfilter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	"github.com/julianstephens/lifetrack/internal/logger"
)

const (
	PrimaryDNS   = "208.67.222.123"
	SecondaryDNS = "208.67.220.123"

	// DefaultInterface is used when no connected interface can be detected.
	DefaultInterface = "Wi-Fi"
)

var (
	ErrUnsupportedOS = errors.New("automatic configuration is currently only supported on Windows")
	ErrNotAdmin      = errors.New("run this command as Administrator")
)

var interfaceName = regexp.MustCompile(`Configuration for interface "([^"]+)"`)

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands through os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

type Toggler struct {
	Run  Runner
	GOOS string
	Out  io.Writer
}

func New(out io.Writer) *Toggler {
	return &Toggler{Run: ExecRunner, GOOS: runtime.GOOS, Out: out}
}

func (t *Toggler) printf(format string, args ...any) {
	if t.Out != nil {
		fmt.Fprintf(t.Out, format, args...)
	}
}

// ActiveInterface returns the first interface that has an address and is not disconnected.
func (t *Toggler) ActiveInterface(ctx context.Context) string {
	out, err := t.Run(ctx, "netsh", "interface", "ip", "show", "config")
	if err != nil {
		logger.Warn("Failed to detect network interface", "error", err)
		return DefaultInterface
	}
	return parseActiveInterface(string(out))
}

func parseActiveInterface(output string) string {
	output = strings.ReplaceAll(output, "\r\n", "\n")
	for _, section := range strings.Split(output, "\n\n") {
		if !strings.Contains(section, "IP Address") || strings.Contains(section, "Disconnected") {
			continue
		}
		if m := interfaceName.FindStringSubmatch(section); m != nil {
			return m[1]
		}
	}
	return DefaultInterface
}

// Enable sets the interface's DNS servers to FamilyShield.
func (t *Toggler) Enable(ctx context.Context) error {
	t.printf("🛡️  Enabling OpenDNS FamilyShield...\n")
	if t.GOOS != "windows" {
		t.printf("⚠️  Automatic configuration is currently only supported on Windows.\n")
		t.printf("Please manually set DNS to %s and %s\n", PrimaryDNS, SecondaryDNS)
		return ErrUnsupportedOS
	}

	name := t.ActiveInterface(ctx)
	t.printf("Targeting interface: %q\n", name)

	if out, err := t.Run(ctx, "netsh", "interface", "ip", "set", "dns", "name="+name, "static", PrimaryDNS); err != nil {
		logger.Error("Failed to set DNS", "interface", name, "error", err, "output", string(out))
		t.printf("❌ Failed to set DNS. Please run this command as Administrator.\n")
		return fmt.Errorf("failed to set primary DNS: %w", ErrNotAdmin)
	}
	// Already present is not a failure.
	if _, err := t.Run(ctx, "netsh", "interface", "ip", "add", "dns", "name="+name, SecondaryDNS, "index=2"); err != nil {
		logger.Debug("Secondary DNS not added", "interface", name, "error", err)
	}

	t.printf("✅ DNS successfully set to OpenDNS.\n")
	t.printf("   Primary: %s\n", PrimaryDNS)
	t.printf("   Secondary: %s\n", SecondaryDNS)
	t.printf("\n⚠️  You may need to run \"ipconfig /flushdns\" for changes to take effect immediately.\n")
	return nil
}

// Disable reverts the interface to DHCP-assigned DNS.
func (t *Toggler) Disable(ctx context.Context) error {
	t.printf("🔓 Disabling DNS Filter (Reverting to DHCP)...\n")
	if t.GOOS != "windows" {
		t.printf("⚠️  Automatic configuration is currently only supported on Windows.\n")
		return ErrUnsupportedOS
	}

	name := t.ActiveInterface(ctx)
	t.printf("Targeting interface: %q\n", name)

	if out, err := t.Run(ctx, "netsh", "interface", "ip", "set", "dns", "name="+name, "source=dhcp"); err != nil {
		logger.Error("Failed to reset DNS", "interface", name, "error", err, "output", string(out))
		t.printf("❌ Failed to reset DNS. Please run this command as Administrator.\n")
		return fmt.Errorf("failed to reset DNS: %w", ErrNotAdmin)
	}

	t.printf("✅ DNS reverted to automatic (DHCP).\n")
	t.printf("\n⚠️  You may need to run \"ipconfig /flushdns\" for changes to take effect immediately.\n")
	return nil
}
