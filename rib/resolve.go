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
	"sort"

	"github.com/snaproute/fboss-agent/route"
)

// maxResolutionDepth bounds the recursive via-route chase. A generous
// but finite bound: real VRFs never legitimately chain this deep, so
// hitting it means a cycle slipped past the in-progress check, or a
// pathological (but not truly cyclic) chain — either way the route is
// marked unresolved rather than aborting the whole batch.
const maxResolutionDepth = 64

// resolveAll resolves every route in t against t itself (next-hops
// resolve within the same VRF and address family), clearing each
// route's resolution-pass scratch state first so a retried Update call
// starts clean. It never fails the batch: unresolvable routes are
// marked Resolved == false instead, per spec.md §4.1.
func resolveAll(t *table) (UpdateStats, error) {
	for _, r := range t.routes {
		r.SetInProgress(false)
		r.SetSettled(false)
	}
	for _, r := range t.routes {
		resolveRoute(t, r, 0)
	}
	var stats UpdateStats
	for _, r := range t.routes {
		if r.Resolved {
			stats.Resolved++
		} else {
			stats.Unresolved++
		}
	}
	return stats, nil
}

// resolveRoute computes r's ForwardInfo, recursively resolving any
// gateway that is not Connected (i.e. not directly interface-bound) by
// looking up the best route to that gateway's address within t. Cycle
// detection uses InProgress; a cycle or a depth-bound breach marks r
// unresolved.
func resolveRoute(t *table, r *route.Route, depth int) {
	if r.Settled() {
		return
	}
	if r.InProgress() {
		r.Resolved = false
		return
	}
	if depth > maxResolutionDepth {
		r.Resolved = false
		r.SetSettled(true)
		return
	}
	r.SetInProgress(true)
	defer r.SetInProgress(false)

	if r.Connected {
		r.Resolved = true
		r.SetSettled(true)
		return
	}

	_, best, found := r.BestClient()
	if !found {
		r.Resolved = false
		r.SetSettled(true)
		return
	}

	r.ClassID = route.ClassID(best.AdminDistance)

	if best.Action != route.ActionNextHops {
		r.ForwardInfo = route.NextHopEntry{Action: best.Action, AdminDistance: best.AdminDistance}
		r.Resolved = true
		r.SetSettled(true)
		return
	}

	resolved, ok := resolveGateways(t, best.Gateways, depth)
	if !ok || len(resolved) == 0 {
		r.Resolved = false
		r.SetSettled(true)
		return
	}

	r.ForwardInfo = route.NextHopEntry{
		Action:        route.ActionNextHops,
		NextHops:      resolved,
		AdminDistance: best.AdminDistance,
	}
	r.Resolved = true
	r.SetSettled(true)
}

// resolveGateways expands every gateway in gws into zero or more
// resolved next-hops, multiplying weights along recursive chains and
// deduplicating by (addr, intf) with summed weights; the result is
// sorted by (addr, intf). Returns ok=false
// if any gateway fails to resolve — its via-route has no covering
// prefix, is itself unresolved, or itself resolves to Drop/ToCPU
// (treated as unreachable; see DESIGN.md for this edge-case decision).
func resolveGateways(t *table, gws []route.Gateway, depth int) ([]route.ResolvedNextHop, bool) {
	type key struct {
		addr netip.Addr
		intf route.InterfaceID
	}
	order := make([]key, 0, len(gws))
	weights := make(map[key]uint32, len(gws))

	for _, gw := range gws {
		if gw.Connected {
			k := key{gw.Addr, gw.Intf}
			if _, seen := weights[k]; !seen {
				order = append(order, k)
			}
			weights[k] += gw.Weight
			continue
		}

		via, ok := t.longestMatch(gw.Addr)
		if !ok {
			return nil, false
		}
		resolveRoute(t, via, depth+1)
		if !via.Resolved || via.ForwardInfo.Action != route.ActionNextHops {
			return nil, false
		}
		for _, sub := range via.ForwardInfo.NextHops {
			k := key{sub.Addr, sub.Intf}
			if _, seen := weights[k]; !seen {
				order = append(order, k)
			}
			weights[k] += sub.Weight * maxUint32(gw.Weight, 1)
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if c := order[i].addr.Compare(order[j].addr); c != 0 {
			return c < 0
		}
		return order[i].intf < order[j].intf
	})
	out := make([]route.ResolvedNextHop, 0, len(order))
	for _, k := range order {
		out = append(out, route.ResolvedNextHop{Addr: k.addr, Intf: k.intf, Weight: weights[k]})
	}
	return out, true
}

func maxUint32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
