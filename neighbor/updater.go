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
	"sync"

	"github.com/snaproute/fboss-agent/route"
	"github.com/snaproute/fboss-agent/state"
)

// vlanCaches is the ARP+NDP cache pair owned by one VLAN.
type vlanCaches struct {
	arp *Cache
	ndp *Cache
}

// Updater subscribes to state.Publisher's delta stream and keeps the
// set of neighbor caches in sync with VLAN and port lifecycle, per
// spec.md §4.6. Grounded on
// original_source/fboss/agent/NeighborUpdater.h, whose macro-generated
// one-off forwarding methods are replaced here by a single Cache lookup
// that returns the owning cache; callers invoke the cache's own methods
// directly.
type Updater struct {
	publisher *state.Publisher
	cfg       Config
	probes    ProbeSender
	hit       HitChecker
	rec       Recorder

	mu     sync.Mutex
	caches map[state.VLANID]*vlanCaches
}

// NewUpdater constructs an Updater bound to publisher. Call Run to begin
// consuming deltas. rec may be nil, disabling neighbor-removal recording.
func NewUpdater(publisher *state.Publisher, cfg Config, probes ProbeSender, hit HitChecker, rec Recorder) *Updater {
	return &Updater{
		publisher: publisher,
		cfg:       cfg,
		probes:    probes,
		hit:       hit,
		rec:       rec,
		caches:    make(map[state.VLANID]*vlanCaches),
	}
}

// Run consumes state deltas until stop is closed. It is intended to run
// on its own goroutine — the event-loop thread of spec.md §5 that owns
// cache lifecycle alongside the caches' own per-entry timers.
func (u *Updater) Run(stop <-chan struct{}) {
	deltas := u.publisher.Subscribe(16)
	for {
		select {
		case pair := <-deltas:
			u.handleDelta(pair[0], pair[1])
		case <-stop:
			return
		}
	}
}

func (u *Updater) handleDelta(old, new *state.SwitchState) {
	if old == new {
		return
	}
	delta := state.NewStateDelta(old, new)
	_ = delta.ForEachChangedVLAN(func(vd state.VLANDelta) error {
		switch {
		case vd.OldVLAN == nil && vd.NewVLAN != nil:
			u.createCaches(vd.ID)
		case vd.OldVLAN != nil && vd.NewVLAN == nil:
			u.destroyCaches(vd.ID)
		}
		// A VLAN present in both snapshots but with a changed pointer
		// is, for this updater's purposes, an arp/ndp subtree change:
		// those are self-authored by the owning cache and must not
		// round-trip back into cache creation, per the doc comment on
		// NeighborUpdater.h this is grounded on.
		return nil
	})
	u.handlePortChanges(old, new)
}

// createCaches creates an empty ARP and NDP cache pair for a newly
// added VLAN. The caches are not seeded from the VLAN's configured
// interfaces or static neighbors; entries appear only through later
// solicitations and advertisements.
func (u *Updater) createCaches(vlan state.VLANID) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.caches[vlan]; ok {
		return
	}
	u.caches[vlan] = &vlanCaches{
		arp: NewCache(vlan, route.FamilyV4, u.cfg, u.probes, u.hit, u.publisher, u.rec),
		ndp: NewCache(vlan, route.FamilyV6, u.cfg, u.probes, u.hit, u.publisher, u.rec),
	}
}

// destroyCaches tears down a removed VLAN's cache pair, cancelling
// every entry's timer before releasing the caches.
func (u *Updater) destroyCaches(vlan state.VLANID) {
	u.mu.Lock()
	vc, ok := u.caches[vlan]
	if ok {
		delete(u.caches, vlan)
	}
	u.mu.Unlock()
	if !ok {
		return
	}
	vc.arp.FlushAll()
	vc.ndp.FlushAll()
}

// handlePortChanges flushes any entry bound to a port that went down,
// was removed, or fell out of an aggregate port's membership, so that
// no surviving entry ever references a non-existent port.
func (u *Updater) handlePortChanges(old, new *state.SwitchState) {
	affected := map[state.PortID]struct{}{}

	for id, oldPort := range old.Ports {
		newPort, ok := new.Ports[id]
		if !ok {
			affected[id] = struct{}{}
			continue
		}
		if oldPort.AdminUp && !newPort.AdminUp {
			affected[id] = struct{}{}
		}
	}

	for id, oldAgg := range old.AggregatePorts {
		newAgg, ok := new.AggregatePorts[id]
		if !ok {
			for _, member := range oldAgg.Members {
				affected[member] = struct{}{}
			}
			continue
		}
		if !sameMembers(oldAgg.Members, newAgg.Members) {
			removed := diffMembers(oldAgg.Members, newAgg.Members)
			for _, member := range removed {
				affected[member] = struct{}{}
			}
		}
	}

	if len(affected) == 0 {
		return
	}

	u.mu.Lock()
	caches := make([]*vlanCaches, 0, len(u.caches))
	for _, vc := range u.caches {
		caches = append(caches, vc)
	}
	u.mu.Unlock()

	for port := range affected {
		for _, vc := range caches {
			vc.arp.FlushByPort(port)
			vc.ndp.FlushByPort(port)
		}
	}
}

func sameMembers(a, b []state.PortID) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[state.PortID]struct{}, len(a))
	for _, p := range a {
		set[p] = struct{}{}
	}
	for _, p := range b {
		if _, ok := set[p]; !ok {
			return false
		}
	}
	return true
}

// diffMembers returns the ports present in a but not in b.
func diffMembers(a, b []state.PortID) []state.PortID {
	set := make(map[state.PortID]struct{}, len(b))
	for _, p := range b {
		set[p] = struct{}{}
	}
	var out []state.PortID
	for _, p := range a {
		if _, ok := set[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// Cache returns the ARP or NDP cache for vlan, if the VLAN exists.
// External neighbor operations reach the owning cache through this
// lookup, standing in for spec.md §4.6's "perfect-forwarded" routing.
// Outside the package's tests, nothing in this repo calls it.
func (u *Updater) Cache(vlan state.VLANID, family route.Family) (*Cache, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	vc, ok := u.caches[vlan]
	if !ok {
		return nil, false
	}
	if family == route.FamilyV4 {
		return vc.arp, true
	}
	return vc.ndp, true
}
