//
//Copyright [2016] [SnapRoute Inc]
//
//Licensed under the Apache License, Version 2.0 (the "License");
//you may not use this file except in compliance with the License.
//You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//	 Unless required by applicable law or agreed to in writing, software
//	 distributed under the License is distributed on an "AS IS" BASIS,
//	 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//	 See the License for the specific language governing permissions and
//	 limitations under the License.
//
// _______  __       __________   ___      _______.____    __    ____  __  .___________.  ______  __    __
// |   ____||  |     |   ____\  \ /  /     /       |\   \  /  \  /   / |  | |           | /      ||  |  |  |
// |  |__   |  |     |  |__   \  V  /     |   (----` \   \/    \/   /  |  | `---|  |----`|  ,----'|  |__|  |
// |   __|  |  |     |   __|   >   <       \   \      \            /   |  |     |  |     |  |     |   __   |
// |  |     |  `----.|  |____ /  .  \  .----)   |      \    /\    /    |  |     |  |     |  `----.|  |  |  |
// |__|     |_______||_______/__/ \__\ |_______/        \__/  \__/     |__|     |__|      \______||__|  |__|

// Package hwswitch is the hardware-switch collaborator interface: the
// surface the RIB/neighbor cores call to ask whether an address is
// live (IsHit), size an ECMP group, manage ACL counters, or loop a port
// back for diagnostics. A real ASIC driver is out of scope (spec.md
// Non-goals); this package's local/dev implementation works against the
// kernel's neighbor table and link state instead (it does not program
// routes), grounded on
// arp/server/arpLinux.go's deleteLinuxArp/FlushLinuxArpCache style
// /proc/net/arp scraping, reimplemented over
// github.com/vishvananda/netlink (see DESIGN.md for why netlink
// replaces the teacher's os/exec + /proc parsing).
package hwswitch

import (
	"net/netip"
	"sync"

	"github.com/vishvananda/netlink"

	"github.com/snaproute/fboss-agent/route"
)

// Switch is the interface the two cores and the neighbor cache depend
// on. Production ASIC programming stays out of scope; DevSwitch below
// is the only implementation this repo ships.
type Switch interface {
	IsHit(ip netip.Addr) bool
	ECMPSize() int
	AttachACLCounter(name string) error
	DetachACLCounter(name string) error
	DestroyACLCounter(name string) error
	SetPortLoopback(intf route.InterfaceID, enabled bool) error
}

// DevSwitch is a local/dev-mode Switch backed by the host kernel's
// neighbor table and link state via netlink, for use outside of real ASIC hardware
// (local testing, CI, a single-box lab topology).
type DevSwitch struct {
	mu       sync.Mutex
	linkByIf map[route.InterfaceID]string // interface name, set by the caller at startup
	counters map[string]struct{}
	ecmpSize int
}

// NewDevSwitch constructs a DevSwitch. linkByIf maps this agent's
// abstract interface IDs to host link names for the netlink calls
// below.
func NewDevSwitch(linkByIf map[route.InterfaceID]string, ecmpSize int) *DevSwitch {
	return &DevSwitch{
		linkByIf: linkByIf,
		counters: make(map[string]struct{}),
		ecmpSize: ecmpSize,
	}
}

// IsHit reports whether the kernel's neighbor table shows ip as
// REACHABLE or in any "recently confirmed" state, standing in for the
// ASIC's hit-bit the way the teacher's GetLinuxArpCache scrape stood in
// for a hardware ARP table read.
func (d *DevSwitch) IsHit(ip netip.Addr) bool {
	neighs, err := netlink.NeighList(0, familyOf(ip))
	if err != nil {
		return false
	}
	for _, n := range neighs {
		addr, ok := netip.AddrFromSlice(n.IP)
		if !ok || !addr.Unmap().Is4() && !addr.Unmap().Is6() {
			continue
		}
		if addr.Unmap() != ip.Unmap() {
			continue
		}
		switch n.State {
		case netlink.NUD_REACHABLE, netlink.NUD_PERMANENT, netlink.NUD_NOARP:
			return true
		}
	}
	return false
}

// ECMPSize reports the hardware's maximum ECMP group width.
func (d *DevSwitch) ECMPSize() int {
	if d.ecmpSize <= 0 {
		return 1
	}
	return d.ecmpSize
}

// AttachACLCounter, DetachACLCounter, DestroyACLCounter track ACL
// counter names in memory; a dev box has no ASIC counter block to
// program.
func (d *DevSwitch) AttachACLCounter(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.counters[name] = struct{}{}
	return nil
}

func (d *DevSwitch) DetachACLCounter(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.counters, name)
	return nil
}

func (d *DevSwitch) DestroyACLCounter(name string) error {
	return d.DetachACLCounter(name)
}

// SetPortLoopback brings the mapped link up when enabled is true and
// down when it is false; it does not put the link into loopback mode.
// An interface with no link mapping is a no-op, and the underlying
// netlink error is returned unwrapped.
func (d *DevSwitch) SetPortLoopback(intf route.InterfaceID, enabled bool) error {
	name, ok := d.linkByIf[intf]
	if !ok {
		return nil
	}
	link, err := netlink.LinkByName(name)
	if err != nil {
		return err
	}
	if enabled {
		return netlink.LinkSetUp(link)
	}
	return netlink.LinkSetDown(link)
}

// FlushNeighbor deletes the kernel neighbor entry for ip on intf,
// grounded directly on arpLinux.go's deleteLinuxArp: where the teacher
// shelled out to `arp -d`, this calls netlink.NeighDel.
func (d *DevSwitch) FlushNeighbor(ip netip.Addr, intf route.InterfaceID) error {
	name, ok := d.linkByIf[intf]
	if !ok {
		return nil
	}
	link, err := netlink.LinkByName(name)
	if err != nil {
		return err
	}
	neigh := &netlink.Neigh{
		LinkIndex: link.Attrs().Index,
		IP:        ip.AsSlice(),
	}
	return netlink.NeighDel(neigh)
}

func familyOf(ip netip.Addr) int {
	if ip.Is4() || ip.Is4In6() {
		return netlink.FAMILY_V4
	}
	return netlink.FAMILY_V6
}
