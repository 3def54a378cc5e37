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
	"net/netip"

	"github.com/snaproute/fboss-agent/route"
)

// SwitchState is the immutable root of the copy-on-write tree. Every
// mutation clones the root and the one child map entry on the path being
// changed; every other entry keeps its previous pointer, so two roots
// are comparable by identity at every node and identity equality implies
// semantic equality.
type SwitchState struct {
	FIBs           map[VRFID]*FIBContainer
	VLANs          map[VLANID]*VLAN
	Ports          map[PortID]*Port
	AggregatePorts map[AggregatePortID]*AggregatePort
}

// New returns an empty SwitchState with no VRFs, VLANs, or ports.
func New() *SwitchState {
	return &SwitchState{
		FIBs:           map[VRFID]*FIBContainer{},
		VLANs:          map[VLANID]*VLAN{},
		Ports:          map[PortID]*Port{},
		AggregatePorts: map[AggregatePortID]*AggregatePort{},
	}
}

func (s *SwitchState) clone() *SwitchState {
	next := &SwitchState{
		FIBs:           make(map[VRFID]*FIBContainer, len(s.FIBs)),
		VLANs:          make(map[VLANID]*VLAN, len(s.VLANs)),
		Ports:          make(map[PortID]*Port, len(s.Ports)),
		AggregatePorts: make(map[AggregatePortID]*AggregatePort, len(s.AggregatePorts)),
	}
	for k, v := range s.FIBs {
		next.FIBs[k] = v
	}
	for k, v := range s.VLANs {
		next.VLANs[k] = v
	}
	for k, v := range s.Ports {
		next.Ports[k] = v
	}
	for k, v := range s.AggregatePorts {
		next.AggregatePorts[k] = v
	}
	return next
}

// FIBContainer returns the VRF's FIB container, or nil if the VRF is
// unknown.
func (s *SwitchState) FIBContainer(vrf VRFID) (*FIBContainer, bool) {
	c, ok := s.FIBs[vrf]
	return c, ok
}

// WithFIBContainer returns a new SwitchState with vrf's FIBContainer
// replaced by c, sharing every other branch with s unchanged. Returns s
// itself (no clone) if c is already the installed container, preserving
// identity for no-op updates.
func (s *SwitchState) WithFIBContainer(vrf VRFID, c *FIBContainer) *SwitchState {
	if existing, ok := s.FIBs[vrf]; ok && existing == c {
		return s
	}
	next := s.clone()
	next.FIBs[vrf] = c
	return next
}

// EnsureVRF returns a SwitchState guaranteed to have an (initially empty)
// FIBContainer for vrf, creating one via copy-on-write if absent.
func (s *SwitchState) EnsureVRF(vrf VRFID) *SwitchState {
	if _, ok := s.FIBs[vrf]; ok {
		return s
	}
	next := s.clone()
	next.FIBs[vrf] = newFIBContainer(vrf)
	return next
}

// VLAN returns the VLAN's state, or nil if unknown.
func (s *SwitchState) VLAN(id VLANID) (*VLAN, bool) {
	v, ok := s.VLANs[id]
	return v, ok
}

// WithVLAN returns a new SwitchState with VLAN v installed, sharing every
// other branch unchanged.
func (s *SwitchState) WithVLAN(v *VLAN) *SwitchState {
	next := s.clone()
	next.VLANs[v.ID] = v
	return next
}

// WithoutVLAN removes a VLAN entirely (used when a VLAN is deleted; the
// neighbor updater destroys the owning caches when it sees the removal
// in the published delta).
func (s *SwitchState) WithoutVLAN(id VLANID) *SwitchState {
	if _, ok := s.VLANs[id]; !ok {
		return s
	}
	next := s.clone()
	delete(next.VLANs, id)
	return next
}

// AddVLAN creates a new, empty VLAN with the given attached interfaces.
func (s *SwitchState) AddVLAN(id VLANID, interfaces []route.InterfaceID) *SwitchState {
	return s.WithVLAN(newVLAN(id, interfaces))
}

// Port returns a port's state, or nil if unknown.
func (s *SwitchState) Port(id PortID) (*Port, bool) {
	p, ok := s.Ports[id]
	return p, ok
}

// WithPort installs or replaces a port.
func (s *SwitchState) WithPort(p *Port) *SwitchState {
	next := s.clone()
	next.Ports[p.ID] = p
	return next
}

// WithoutPort removes a port (port-removed event).
func (s *SwitchState) WithoutPort(id PortID) *SwitchState {
	if _, ok := s.Ports[id]; !ok {
		return s
	}
	next := s.clone()
	delete(next.Ports, id)
	return next
}

// AggregatePort returns an aggregate port's state, or nil if unknown.
func (s *SwitchState) AggregatePort(id AggregatePortID) (*AggregatePort, bool) {
	a, ok := s.AggregatePorts[id]
	return a, ok
}

// WithAggregatePort installs or replaces an aggregate port.
func (s *SwitchState) WithAggregatePort(a *AggregatePort) *SwitchState {
	next := s.clone()
	next.AggregatePorts[a.ID] = a
	return next
}

// WithNeighborEntry publishes a single ARP or NDP entry into vlan's
// table, returning a new SwitchState. family selects which table;
// entry == nil removes ip from the table. This is the only path by
// which VLAN neighbor tables change — the neighbor cache is their sole
// author.
func (s *SwitchState) WithNeighborEntry(vlan VLANID, family route.Family, ip netip.Addr, entry *NeighborEntry) *SwitchState {
	v, ok := s.VLANs[vlan]
	if !ok {
		return s
	}
	var newVLAN *VLAN
	switch family {
	case route.FamilyV4:
		newVLAN = v.withARP(v.arp.withEntry(ip, entry))
	default:
		newVLAN = v.withNDP(v.ndp.withEntry(ip, entry))
	}
	return s.WithVLAN(newVLAN)
}
