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

import "github.com/snaproute/fboss-agent/route"

// FIB is an ordered, immutable map of prefix -> route for one address
// family within one VRF. Every contained route satisfies
// route.Resolved == true and ForwardInfo is one of
// {Drop, ToCPU, NextHops(non-empty)}. A FIB is created once by the FIB
// updater and never mutated afterward; it is replaced wholesale in its
// parent FIBContainer.
//
// Routes are kept prefix-sorted so iteration and the delta walker both
// see a stable, deterministic order.
type FIB struct {
	family route.Family
	routes []*route.Route
}

// NewFIB builds a FIB from a slice already sorted ascending by Prefix.
// Callers (the FIB updater) are responsible for the sort; NewFIB does not
// re-sort so that identity of unchanged *route.Route entries is
// preserved verbatim.
func NewFIB(family route.Family, sortedRoutes []*route.Route) *FIB {
	return &FIB{family: family, routes: sortedRoutes}
}

func (f *FIB) Family() route.Family {
	if f == nil {
		return route.FamilyV4
	}
	return f.family
}

// Len reports how many routes are installed.
func (f *FIB) Len() int {
	if f == nil {
		return 0
	}
	return len(f.routes)
}

// Get performs an exact-match lookup.
func (f *FIB) Get(prefix route.Prefix) (*route.Route, bool) {
	if f == nil {
		return nil, false
	}
	idx, found := f.search(prefix)
	if !found {
		return nil, false
	}
	return f.routes[idx], true
}

// ForEach walks routes in ascending prefix order.
func (f *FIB) ForEach(fn func(*route.Route) error) error {
	if f == nil {
		return nil
	}
	for _, r := range f.routes {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

// Routes exposes the backing slice for read-only iteration by the delta
// walker. Callers must not mutate it.
func (f *FIB) Routes() []*route.Route {
	if f == nil {
		return nil
	}
	return f.routes
}

func (f *FIB) search(prefix route.Prefix) (int, bool) {
	lo, hi := 0, len(f.routes)
	for lo < hi {
		mid := (lo + hi) / 2
		if f.routes[mid].Prefix.Less(prefix) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(f.routes) && f.routes[lo].Prefix.Equal(prefix) {
		return lo, true
	}
	return lo, false
}

// FIBContainer holds the per-VRF pair of address-family FIBs. Both FIBs
// are replaced atomically as a unit when either changes, since they
// share one parent node in the SwitchState tree.
type FIBContainer struct {
	VRF  VRFID
	FIBV4 *FIB
	FIBV6 *FIB
}

func newFIBContainer(vrf VRFID) *FIBContainer {
	return &FIBContainer{VRF: vrf}
}
