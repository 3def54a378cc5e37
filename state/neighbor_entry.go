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
package state

import (
	"net"
	"net/netip"

	"github.com/snaproute/fboss-agent/route"
)

// NeighborEntry is the published, immutable snapshot of one neighbor
// cache entry as it appears in SwitchState. It is authored exclusively
// by the owning neighbor.Cache; nothing else may write into a VLAN's
// ARP/NDP tables.
type NeighborEntry struct {
	IP   netip.Addr
	MAC  net.HardwareAddr
	Port PortID
	Intf route.InterfaceID
}

// NeighborTable is an immutable map of IP -> *NeighborEntry, copy-on-
// write at the single-entry granularity the cache publishes at. Its
// fields are unexported; VLAN.ARP/NDP expose it so callers outside this
// package can only read it through ForEach/Len, never mutate it.
type NeighborTable struct {
	entries map[netip.Addr]*NeighborEntry
}

func newNeighborTable() *NeighborTable {
	return &NeighborTable{entries: make(map[netip.Addr]*NeighborEntry)}
}

func (t *NeighborTable) get(ip netip.Addr) (*NeighborEntry, bool) {
	if t == nil {
		return nil, false
	}
	e, ok := t.entries[ip]
	return e, ok
}

// withEntry returns a clone of t with ip mapped to entry (or removed, if
// entry is nil), preserving identity of every other entry.
func (t *NeighborTable) withEntry(ip netip.Addr, entry *NeighborEntry) *NeighborTable {
	next := &NeighborTable{entries: make(map[netip.Addr]*NeighborEntry, len(t.entries)+1)}
	for k, v := range t.entries {
		next.entries[k] = v
	}
	if entry == nil {
		delete(next.entries, ip)
	} else {
		next.entries[ip] = entry
	}
	return next
}

// ForEach walks entries in unspecified order (callers needing a
// deterministic order sort by IP themselves).
func (t *NeighborTable) ForEach(fn func(*NeighborEntry)) {
	if t == nil {
		return
	}
	for _, e := range t.entries {
		fn(e)
	}
}

func (t *NeighborTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
