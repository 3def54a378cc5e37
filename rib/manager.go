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
package rib

import (
	"net/netip"
	"sync"

	"github.com/snaproute/fboss-agent/agenterr"
	"github.com/snaproute/fboss-agent/route"
	"github.com/snaproute/fboss-agent/state"
)

// RouteAddition is one client-contributed route to add or replace during
// an Update call.
type RouteAddition struct {
	Prefix route.Prefix
	Entry  route.ClientRouteEntry
}

// UpdateStats summarizes one Update call, returned on success for the
// caller (typically rpcsvc or config-seeding code) to log or export.
type UpdateStats struct {
	Added     int
	Removed   int
	Resolved  int
	Unresolved int
}

// vrfTables holds the two per-family unresolved tables for one VRF,
// guarded by its own mutex so concurrent Update calls on different VRFs
// never contend, matching the teacher's per-VRF channel-serialized
// critical section (ribdServer.go) without the channel-message
// indirection.
type vrfTables struct {
	mu  sync.Mutex
	v4  *table
	v6  *table
	seq uint64 // monotonic insertion sequence, for best-client tie-break
}

func newVRFTables() *vrfTables {
	return &vrfTables{v4: newTable(route.FamilyV4), v6: newTable(route.FamilyV6)}
}

func (vt *vrfTables) tableFor(family route.Family) *table {
	if family == route.FamilyV4 {
		return vt.v4
	}
	return vt.v6
}

// Manager owns every VRF's unresolved RIB tables and drives resolution
// plus FIB projection on each Update. It is the package's single
// exported entry point, grounded on ribdServer.go's per-VRF request
// serialization collapsed into a lock-protected container instead of an
// untyped channel-message dispatch loop.
type Manager struct {
	mu   sync.Mutex
	vrfs map[route.VRFID]*vrfTables
	rec  FailureRecorder
}

// FailureRecorder observes per-prefix resolution failures for
// operator-visible history, per spec.md §7's "failed resolutions trigger
// an event observable to operators." package evtstore's *Store satisfies
// this directly. A nil FailureRecorder disables recording.
type FailureRecorder interface {
	RouteResolutionFailed(vrf uint32, prefix string)
}

// NewManager returns an empty Manager with no VRFs registered.
func NewManager() *Manager {
	return &Manager{vrfs: make(map[route.VRFID]*vrfTables)}
}

// SetRecorder installs rec as the Manager's FailureRecorder. Not
// goroutine-safe against concurrent Update calls; call once at startup
// before the Manager is handed to any other goroutine.
func (m *Manager) SetRecorder(rec FailureRecorder) {
	m.rec = rec
}

// RegisterVRF makes vrf known to the Manager, creating its (empty) v4/v6
// tables if this is the first time vrf has been seen. Update rejects any
// VRF that has not gone through RegisterVRF first; callers register every
// configured VRF at startup (cmd/switchagent/main.go) before driving any
// Update calls against it.
func (m *Manager) RegisterVRF(vrf route.VRFID) {
	m.vrfTablesFor(vrf, true)
}

func (m *Manager) vrfTablesFor(vrf route.VRFID, create bool) (*vrfTables, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	vt, ok := m.vrfs[vrf]
	if !ok && create {
		vt = newVRFTables()
		m.vrfs[vrf] = vt
	}
	return vt, ok || create
}

// Update applies additions and deletions for one client within one VRF
// and address family, re-resolves the VRF's full table for that family,
// and projects the result into current's FIB, returning the new
// SwitchState. On error the RIB and the returned state are left exactly
// as current — Update is all-or-nothing, per spec.md §7's propagation
// policy. vrf must have been registered with RegisterVRF first; an
// unregistered VRF fails with agenterr.ErrVRFUnknown rather than being
// silently created.
func (m *Manager) Update(
	current *state.SwitchState,
	vrf route.VRFID,
	family route.Family,
	client route.ClientID,
	additions []RouteAddition,
	deletions []route.Prefix,
) (*state.SwitchState, UpdateStats, error) {
	vt, ok := m.vrfTablesFor(vrf, false)
	if !ok {
		return current, UpdateStats{}, agenterr.ErrVRFUnknown
	}
	vt.mu.Lock()
	defer vt.mu.Unlock()

	t := vt.tableFor(family)

	for _, a := range additions {
		if _, err := a.Prefix.Masked(); err != nil {
			return current, UpdateStats{}, agenterr.ErrPrefixMalformed
		}
	}

	// Stage the mutation on a shadow copy of the route list so a
	// validation failure never touches the live table.
	staged := &table{family: t.family, routes: append([]*route.Route(nil), t.routes...)}
	for _, p := range deletions {
		staged.removeClient(p, client)
	}
	for _, a := range additions {
		vt.seq++
		staged.getOrCreate(a.Prefix).SetClient(client, a.Entry, vt.seq)
	}
	// Drop routes left with no contributing client.
	staged.pruneEmpty()

	stats, err := resolveAll(staged)
	if err != nil {
		return current, UpdateStats{}, err
	}
	stats.Added = len(additions)
	stats.Removed = len(deletions)

	if m.rec != nil {
		for _, r := range staged.routes {
			if !r.Resolved {
				m.rec.RouteResolutionFailed(uint32(vrf), r.Prefix.String())
			}
		}
	}

	*t = *staged

	next := buildFIB(current, vrf, family, t.snapshot())
	return next, stats, nil
}

// removeClient withdraws client's contribution to the route at prefix.
// The route itself stays in the table; pruneEmpty later drops it once it
// has no remaining clients and no directly-connected status.
func (t *table) removeClient(prefix route.Prefix, client route.ClientID) {
	r, ok := t.get(prefix)
	if !ok {
		return
	}
	r.RemoveClient(client)
}

func (t *table) pruneEmpty() {
	kept := t.routes[:0]
	for _, r := range t.routes {
		if r.NumClients() > 0 || r.Connected {
			kept = append(kept, r)
		}
	}
	t.routes = kept
}

// ExactMatch looks up prefix within vrf/family, with no longest-prefix
// fallback.
func (m *Manager) ExactMatch(vrf route.VRFID, family route.Family, prefix route.Prefix) (*route.Route, bool) {
	vt, ok := m.vrfTablesFor(vrf, false)
	if !ok {
		return nil, false
	}
	vt.mu.Lock()
	defer vt.mu.Unlock()
	return vt.tableFor(family).exactMatch(prefix)
}

// LongestMatch looks up the most specific route covering addr within
// vrf.
func (m *Manager) LongestMatch(vrf route.VRFID, addr netip.Addr) (*route.Route, bool) {
	family := route.FamilyV4
	if addr.Is6() && !addr.Is4In6() {
		family = route.FamilyV6
	}
	vt, ok := m.vrfTablesFor(vrf, false)
	if !ok {
		return nil, false
	}
	vt.mu.Lock()
	defer vt.mu.Unlock()
	return vt.tableFor(family).longestMatch(addr)
}

// ForEach walks every route in vrf/family in ascending prefix order,
// stopping and propagating the first error returned by f, per spec.md
// §4.3's "errors halt the walk" policy applied uniformly across the
// package's walkers.
func (m *Manager) ForEach(vrf route.VRFID, family route.Family, f func(*route.Route) error) error {
	vt, ok := m.vrfTablesFor(vrf, false)
	if !ok {
		return nil
	}
	vt.mu.Lock()
	defer vt.mu.Unlock()
	for _, r := range vt.tableFor(family).snapshot() {
		if err := f(r); err != nil {
			return err
		}
	}
	return nil
}
