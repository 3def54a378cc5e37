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
package neighbor

import (
	"math/rand"
	"net"
	"net/netip"
	"sync"
	"time"

	"github.com/snaproute/fboss-agent/route"
	"github.com/snaproute/fboss-agent/state"
)

// ProbeSender hands outgoing ARP requests / NDP solicitations to the
// packet I/O collaborator (package pktio). A Cache never encodes or
// sends a frame itself.
type ProbeSender interface {
	SendArpRequest(ip netip.Addr, intf route.InterfaceID) error
	SendNdpSolicitation(ip netip.Addr, intf route.InterfaceID) error
}

// HitChecker reports whether the hardware has observed traffic from an
// address recently — the ASIC's hit-bit, surfaced by package hwswitch.
type HitChecker interface {
	IsHit(ip netip.Addr) bool
}

// Publisher is the subset of state.Publisher a Cache needs: the ability
// to enqueue a copy-on-write mutation on the update thread. Declared
// here so tests can supply a fake without spinning up a real Publisher
// goroutine.
type Publisher interface {
	Update(fn func(*state.SwitchState) *state.SwitchState) *state.SwitchState
}

// Recorder observes neighbor removals for operator-visible history,
// independent of the live SwitchState a Publisher carries. package
// evtstore's *Store satisfies this directly. A nil Recorder disables
// recording, matching Publisher's own nil-is-a-no-op convention.
type Recorder interface {
	NeighborRemoved(ip string, reason string)
}

// Cache is one per (VLAN, family): a map of IP to Entry guarded by a
// single mutex, per spec.md §4.5. All mutation of SwitchState flows
// through Publisher.Update; the Cache never holds a state pointer it
// mutates in place.
type Cache struct {
	mu     sync.Mutex
	vlan   state.VLANID
	family route.Family
	cfg    Config

	entries map[netip.Addr]*Entry

	probes ProbeSender
	hit    HitChecker
	pub    Publisher
	rec    Recorder
	rng    *rand.Rand
}

// NewCache constructs an empty cache for one VLAN/family pair.
func NewCache(vlan state.VLANID, family route.Family, cfg Config, probes ProbeSender, hit HitChecker, pub Publisher, rec Recorder) *Cache {
	return &Cache{
		vlan:    vlan,
		family:  family,
		cfg:     cfg,
		entries: make(map[netip.Addr]*Entry),
		probes:  probes,
		hit:     hit,
		pub:     pub,
		rec:     rec,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *Cache) drawLifetime(base time.Duration) time.Duration {
	// Uniform over [base/2, base + base/2), per RFC 4861 §6.3.2.
	half := base / 2
	jitter := time.Duration(c.rng.Int63n(int64(base)))
	return half + jitter
}

// Lookup returns a copy of the entry for ip, if present.
func (c *Cache) Lookup(ip netip.Addr) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[ip]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// ReceiveSolicitation records that resolution for ip has begun: if no
// entry exists yet, creates one INCOMPLETE, sends the first probe, and
// arms a ProbeInterval timer. An existing entry is left untouched — a
// solicitation does not itself confirm a binding.
func (c *Cache) ReceiveSolicitation(ip netip.Addr, intf route.InterfaceID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[ip]; ok {
		return
	}
	e := NewIncompleteEntry(ip, intf, c.cfg.MaxProbes)
	c.entries[ip] = e
	c.sendProbe(e)
	e.ArmTimer(c.cfg.ProbeInterval, func() { c.processEntry(ip) })
}

// ReceiveAdvertisement records a confirmed (ip, mac, port, intf)
// binding: creates a REACHABLE entry if none exists, or transitions an
// existing non-EXPIRED entry to REACHABLE per the external-update row of
// the transition table, then publishes the binding into SwitchState.
func (c *Cache) ReceiveAdvertisement(ip netip.Addr, mac []byte, port state.PortID, intf route.InterfaceID) {
	c.mu.Lock()
	e, existed := c.entries[ip]
	if !existed {
		e = NewReachableEntry(ip, mac, port, intf, c.cfg.MaxProbes)
		c.entries[ip] = e
		e.ArmTimer(c.drawLifetime(c.cfg.ReachableBase), func() { c.processEntry(ip) })
	} else {
		action := e.ApplyExternalUpdate(c.cfg, mac, port, intf, c.drawLifetime)
		e.ArmTimer(action.Reschedule, func() { c.processEntry(ip) })
	}
	c.mu.Unlock()

	c.publishEntry(ip, e)
}

// processEntry runs one timer-driven step for ip. It must only be
// invoked from an Entry's own timer callback (the time.AfterFunc
// goroutine calls it directly), never called
// synchronously from within another Cache method while the mutex is
// already held, per the re-entrancy rule in spec.md §4.4.
func (c *Cache) processEntry(ip netip.Addr) {
	c.mu.Lock()
	e, ok := c.entries[ip]
	if !ok {
		c.mu.Unlock()
		return
	}
	hit := c.hit != nil && c.hit.IsHit(ip)
	action := e.Tick(c.cfg, hit, c.drawLifetime)
	if action.EmitProbe {
		c.sendProbe(e)
	}
	if action.Remove {
		e.CancelTimer()
		delete(c.entries, ip)
	} else {
		e.ArmTimer(action.Reschedule, func() { c.processEntry(ip) })
	}
	c.mu.Unlock()

	if action.Remove {
		c.publishRemoval(ip)
		c.recordRemoval(ip, "expired")
	}
	// A probe retry (STALE->PROBE, PROBE->PROBE, INCOMPLETE->INCOMPLETE)
	// has no forwarding-state change to publish until a confirmation
	// arrives.
}

func (c *Cache) sendProbe(e *Entry) {
	if c.probes == nil {
		return
	}
	if c.family == route.FamilyV4 {
		_ = c.probes.SendArpRequest(e.IP, e.Intf)
	} else {
		_ = c.probes.SendNdpSolicitation(e.IP, e.Intf)
	}
}

// Flush removes ip's entry immediately, cancelling its timer, and
// publishes the removal. A no-op if ip has no entry.
func (c *Cache) Flush(ip netip.Addr) {
	c.mu.Lock()
	e, ok := c.entries[ip]
	if ok {
		e.CancelTimer()
		delete(c.entries, ip)
	}
	c.mu.Unlock()
	if ok {
		c.publishRemoval(ip)
		c.recordRemoval(ip, "flush")
	}
}

// FlushByPort removes every entry bound to port, so that no entry
// references a port that has gone down or been removed, per spec.md
// §4.6's Neighbor Updater responsibilities.
func (c *Cache) FlushByPort(port state.PortID) {
	c.mu.Lock()
	var ips []netip.Addr
	for ip, e := range c.entries {
		if e.Port == port {
			e.CancelTimer()
			delete(c.entries, ip)
			ips = append(ips, ip)
		}
	}
	c.mu.Unlock()
	for _, ip := range ips {
		c.publishRemoval(ip)
		c.recordRemoval(ip, "port-down")
	}
}

// FlushAll removes every entry, cancelling all timers, and publishes
// one SwitchState update covering every removal.
func (c *Cache) FlushAll() {
	c.mu.Lock()
	ips := make([]netip.Addr, 0, len(c.entries))
	for ip, e := range c.entries {
		e.CancelTimer()
		ips = append(ips, ip)
	}
	c.entries = make(map[netip.Addr]*Entry)
	c.mu.Unlock()

	if len(ips) == 0 {
		return
	}
	if c.pub != nil {
		c.pub.Update(func(s *state.SwitchState) *state.SwitchState {
			next := s
			for _, ip := range ips {
				next = next.WithNeighborEntry(c.vlan, c.family, ip, nil)
			}
			return next
		})
	}
	for _, ip := range ips {
		c.recordRemoval(ip, "vlan-removed")
	}
}

func (c *Cache) publishEntry(ip netip.Addr, e *Entry) {
	if c.pub == nil {
		return
	}
	snapshot := &state.NeighborEntry{
		IP:   e.IP,
		MAC:  net.HardwareAddr(append([]byte(nil), e.MAC...)),
		Port: e.Port,
		Intf: e.Intf,
	}
	c.pub.Update(func(s *state.SwitchState) *state.SwitchState {
		return s.WithNeighborEntry(c.vlan, c.family, ip, snapshot)
	})
}

func (c *Cache) publishRemoval(ip netip.Addr) {
	if c.pub == nil {
		return
	}
	c.pub.Update(func(s *state.SwitchState) *state.SwitchState {
		return s.WithNeighborEntry(c.vlan, c.family, ip, nil)
	})
}

func (c *Cache) recordRemoval(ip netip.Addr, reason string) {
	if c.rec == nil {
		return
	}
	c.rec.NeighborRemoved(ip.String(), reason)
}
