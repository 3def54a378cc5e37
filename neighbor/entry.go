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
// Package neighbor implements the unified ARP/NDPv6 neighbor cache: a
// per-(VLAN, family) map of IP to a timer-driven liveness state machine,
// and an updater that wires caches to VLAN/port lifecycle events carried
// on state.StateDelta.
//
// Grounded on original_source/fboss/agent/NeighborCacheEntry.h (the FBOSS
// RFC 4861-style FSM) and cross-checked against the teacher's arp aging
// loop (arp/server/arpCache.go) and NDP timer set (ndp/server/timers.go).
package neighbor

import (
	"net/netip"
	"time"

	"github.com/snaproute/fboss-agent/agenterr"
	"github.com/snaproute/fboss-agent/route"
	"github.com/snaproute/fboss-agent/state"
)

// State is one of the entry lifecycle states. Delay and Uninitialized
// are kept as enum tags for protocol completeness (spec.md §9) but are
// never produced by Tick; reaching either from this package's own code
// is a programmer error.
type State uint8

const (
	StateUninitialized State = iota
	StateIncomplete
	StateDelay
	StateProbe
	StateStale
	StateReachable
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateIncomplete:
		return "INCOMPLETE"
	case StateDelay:
		return "DELAY"
	case StateProbe:
		return "PROBE"
	case StateStale:
		return "STALE"
	case StateReachable:
		return "REACHABLE"
	case StateExpired:
		return "EXPIRED"
	default:
		return "UNKNOWN"
	}
}

// Config holds the timing knobs that drive every entry owned by one
// cache.
type Config struct {
	MaxProbes     uint8
	ReachableBase time.Duration
	StaleInterval time.Duration
	ProbeInterval time.Duration
}

// Entry is one neighbor cache adjacency. It is owned exclusively by its
// Cache and must only be touched while the cache's mutex is held; the
// entry itself never reaches back into the cache; the cache's timer
// callback drives it through processEntry, which queries the
// HitChecker and calls sendProbe on the entry's behalf.
type Entry struct {
	IP         netip.Addr
	MAC        []byte // zero length iff Pending
	Port       state.PortID
	Intf       route.InterfaceID
	State      State
	ProbesLeft uint8
	Pending    bool

	timer *time.Timer
}

// NewReachableEntry creates an entry with a full, confirmed binding:
// REACHABLE, lifetime timer scheduled by the caller.
func NewReachableEntry(ip netip.Addr, mac []byte, port state.PortID, intf route.InterfaceID, maxProbes uint8) *Entry {
	return &Entry{
		IP:         ip,
		MAC:        append([]byte(nil), mac...),
		Port:       port,
		Intf:       intf,
		State:      StateReachable,
		ProbesLeft: maxProbes,
		Pending:    false,
	}
}

// NewIncompleteEntry creates an entry known only by IP and interface: a
// resolution is in flight and no MAC has been learned yet. The caller
// (the cache) emits the entry's first solicitation and arms a
// ProbeInterval timer; this constructor only sets up the
// post-first-probe count.
func NewIncompleteEntry(ip netip.Addr, intf route.InterfaceID, maxProbes uint8) *Entry {
	return &Entry{
		IP:         ip,
		Intf:       intf,
		State:      StateIncomplete,
		ProbesLeft: maxProbes - 1,
		Pending:    true,
	}
}

// Action reports what the cache must do after a Tick or
// ApplyExternalUpdate call: reschedule the entry's timer, emit a probe,
// and/or remove the entry (EXPIRED).
type Action struct {
	Reschedule time.Duration // 0 means "do not rearm the timer"
	EmitProbe  bool
	Remove     bool
}

// Tick runs one timer-driven state machine step. hit reports whether
// the hardware collaborator observed traffic from this neighbor since
// the last tick (the cache queries its HitChecker before calling Tick).
// drawLifetime draws a jittered REACHABLE lifetime in [base/2, 3*base/2)
// per RFC 4861 §6.3.2; it is injected so tests can supply a
// deterministic draw.
func (e *Entry) Tick(cfg Config, hit bool, drawLifetime func(base time.Duration) time.Duration) Action {
	switch e.State {
	case StateReachable:
		// "schedule staleInterval; immediately run state machine":
		// the REACHABLE->STALE transition has nothing further to
		// evaluate this tick beyond arming the stale timer.
		e.State = StateStale
		return Action{Reschedule: cfg.StaleInterval}

	case StateStale:
		if hit {
			e.State = StateProbe
			e.ProbesLeft--
			return Action{EmitProbe: true, Reschedule: cfg.ProbeInterval}
		}
		return Action{Reschedule: cfg.StaleInterval}

	case StateProbe:
		if e.ProbesLeft > 0 {
			e.ProbesLeft--
			return Action{EmitProbe: true, Reschedule: cfg.ProbeInterval}
		}
		e.State = StateExpired
		return Action{Remove: true}

	case StateIncomplete:
		if e.ProbesLeft > 0 {
			e.ProbesLeft--
			return Action{EmitProbe: true, Reschedule: cfg.ProbeInterval}
		}
		e.State = StateExpired
		return Action{Remove: true}

	default:
		panic(agenterr.ErrInvalidStateTransition)
	}
}

// ApplyExternalUpdate handles a confirmed binding arriving from an
// advertisement or a solicited reply: any non-EXPIRED state transitions
// to REACHABLE, resetting probesLeft and the lifetime timer. Per the
// idempotence rule, a REACHABLE entry that already carries the same
// (mac, port, intf) is a no-op on forwarding state but still resets
// probesLeft and reschedules.
func (e *Entry) ApplyExternalUpdate(cfg Config, mac []byte, port state.PortID, intf route.InterfaceID, drawLifetime func(base time.Duration) time.Duration) Action {
	if e.State == StateExpired {
		panic(agenterr.ErrInvalidStateTransition)
	}
	e.MAC = append([]byte(nil), mac...)
	e.Port = port
	e.Intf = intf
	e.State = StateReachable
	e.ProbesLeft = cfg.MaxProbes
	e.Pending = false
	return Action{Reschedule: drawLifetime(cfg.ReachableBase)}
}

// ArmTimer schedules fn to run after d, cancelling any timer already
// running for this entry.
func (e *Entry) ArmTimer(d time.Duration, fn func()) {
	if e.timer != nil {
		e.timer.Stop()
	}
	if d <= 0 {
		e.timer = nil
		return
	}
	e.timer = time.AfterFunc(d, fn)
}

// CancelTimer stops the entry's timer, if any. Called by the cache when
// an entry is flushed or the cache itself is destroyed, guaranteeing no
// further processEntry calls fire for a removed entry.
func (e *Entry) CancelTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}
