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
// Package rib holds the unresolved RIB per VRF and address family, runs
// the recursive next-hop resolution pass, and projects the resolved
// result into the FIB held by state.SwitchState.
//
// The teacher splits this by family (ribdv4RouteProcessApis.go /
// ribdv6RouteProcessApis.go); this package collapses that split into one
// implementation keyed by route.Family, since Go generics are avoided
// here (see DESIGN.md) in favor of a runtime family tag plus the uniform
// netip.Addr representation.
package rib

import (
	"net/netip"

	"github.com/snaproute/fboss-agent/route"
)

// table is an ordered, mutable, prefix-sorted slice of *route.Route for
// one VRF and address family. It stands in for the teacher's
// utils/patriciaDB trie: same external contract (ordered iteration,
// exact and longest-prefix match, no two entries sharing a prefix), a
// binary-searched slice instead of a trie.
type table struct {
	family route.Family
	routes []*route.Route
}

func newTable(family route.Family) *table {
	return &table{family: family}
}

func (t *table) search(prefix route.Prefix) (int, bool) {
	lo, hi := 0, len(t.routes)
	for lo < hi {
		mid := (lo + hi) / 2
		if t.routes[mid].Prefix.Less(prefix) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(t.routes) && t.routes[lo].Prefix.Equal(prefix) {
		return lo, true
	}
	return lo, false
}

func (t *table) get(prefix route.Prefix) (*route.Route, bool) {
	idx, found := t.search(prefix)
	if !found {
		return nil, false
	}
	return t.routes[idx], true
}

// getOrCreate returns the existing route at prefix, or inserts and
// returns a new empty one, preserving sort order.
func (t *table) getOrCreate(prefix route.Prefix) *route.Route {
	idx, found := t.search(prefix)
	if found {
		return t.routes[idx]
	}
	r := route.NewRoute(prefix)
	t.routes = append(t.routes, nil)
	copy(t.routes[idx+1:], t.routes[idx:])
	t.routes[idx] = r
	return r
}

func (t *table) remove(prefix route.Prefix) {
	idx, found := t.search(prefix)
	if !found {
		return
	}
	t.routes = append(t.routes[:idx], t.routes[idx+1:]...)
}

// snapshot returns the current prefix-sorted slice. Callers must not
// mutate it; it is shared with the FIB updater for identity comparison.
func (t *table) snapshot() []*route.Route {
	return t.routes
}

// exactMatch performs the ExactMatch lookup by address and mask.
func (t *table) exactMatch(prefix route.Prefix) (*route.Route, bool) {
	return t.get(prefix)
}

// longestMatch returns the route with the longest mask whose prefix
// contains addr. Since routes are kept sorted ascending by (network,
// mask), and containing prefixes are not guaranteed to be adjacent, the
// search scans every route linearly; VRFs in this agent are sized for control-
// plane route counts, not full Internet tables, so a linear scan trades
// a small constant for trie-free simplicity.
func (t *table) longestMatch(addr netip.Addr) (*route.Route, bool) {
	var best *route.Route
	for _, r := range t.routes {
		if !r.Prefix.Contains(addr) {
			continue
		}
		if best == nil || r.Prefix.Mask > best.Prefix.Mask {
			best = r
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}
