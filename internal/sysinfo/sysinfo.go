// Package sysinfo gathers the host details shown next to the workspace
// indicator: hostname, uptime and the machine's network addresses.
package sysinfo

import (
	"context"
	"fmt"
	"net/netip"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v4/host"
	psnet "github.com/shirou/gopsutil/v4/net"
)

// Info is a point-in-time view of the host.
type Info struct {
	Hostname string        `json:"hostname"`
	Platform string        `json:"platform,omitempty"`
	Uptime   time.Duration `json:"uptime"`
	IPv4     []string      `json:"ipv4,omitempty"`
	IPv6     []string      `json:"ipv6,omitempty"`
}

// Collect queries the host. Address lookup failures are returned alongside
// whatever host details were gathered.
func Collect(ctx context.Context) (*Info, error) {
	info := &Info{}

	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		return info, fmt.Errorf("host info: %w", err)
	}
	info.Hostname = hi.Hostname
	info.Platform = hi.Platform
	info.Uptime = time.Duration(hi.Uptime) * time.Second

	ifaces, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return info, fmt.Errorf("network interfaces: %w", err)
	}
	info.IPv4, info.IPv6 = addresses(ifaces)
	return info, nil
}

// PrimaryIPv4 returns the first IPv4 address, or "".
func (i *Info) PrimaryIPv4() string {
	if i == nil || len(i.IPv4) == 0 {
		return ""
	}
	return i.IPv4[0]
}

// PrimaryIPv6 returns the first IPv6 address, or "".
func (i *Info) PrimaryIPv6() string {
	if i == nil || len(i.IPv6) == 0 {
		return ""
	}
	return i.IPv6[0]
}

// addresses splits the routable addresses of interfaces that are up into
// IPv4 and IPv6, each sorted. Loopback and link-local addresses are skipped.
func addresses(ifaces []psnet.InterfaceStat) (v4, v6 []string) {
	for _, iface := range ifaces {
		if !hasFlag(iface.Flags, "up") || hasFlag(iface.Flags, "loopback") {
			continue
		}
		for _, a := range iface.Addrs {
			addr, ok := parseAddr(a.Addr)
			if !ok || addr.IsLoopback() || addr.IsLinkLocalUnicast() || addr.IsUnspecified() {
				continue
			}
			if addr.Is4() {
				v4 = append(v4, addr.String())
			} else {
				v6 = append(v6, addr.String())
			}
		}
	}
	sort.Strings(v4)
	sort.Strings(v6)
	return v4, v6
}

// parseAddr accepts both "10.0.0.2/24" and a bare address.
func parseAddr(s string) (netip.Addr, bool) {
	if p, err := netip.ParsePrefix(s); err == nil {
		return p.Addr().Unmap(), true
	}
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return a.Unmap(), true
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}
