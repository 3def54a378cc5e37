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

// StateDelta is a zipper over two SwitchState snapshots: it never
// allocates a diff tree up front, it walks both roots side by side and
// reports only the branches whose pointers differ. Identity equality at
// any node (map value or slice-backed FIB) is a short circuit: when the
// two pointers are equal, nothing under that node is visited.
type StateDelta struct {
	Old *SwitchState
	New *SwitchState
}

// NewStateDelta pairs an old and a new snapshot for comparison.
func NewStateDelta(old, new *SwitchState) *StateDelta {
	return &StateDelta{Old: old, New: new}
}

// VLANDelta describes one VLAN whose pointer changed between Old and
// New. OldVLAN or NewVLAN is nil if the VLAN was added or removed.
type VLANDelta struct {
	ID      VLANID
	OldVLAN *VLAN
	NewVLAN *VLAN
}

// ForEachChangedVLAN visits every VLAN whose pointer differs between Old
// and New, in ascending VLANID order.
func (d *StateDelta) ForEachChangedVLAN(fn func(VLANDelta) error) error {
	ids := make(map[VLANID]struct{}, len(d.Old.VLANs)+len(d.New.VLANs))
	for id := range d.Old.VLANs {
		ids[id] = struct{}{}
	}
	for id := range d.New.VLANs {
		ids[id] = struct{}{}
	}
	for _, id := range sortedVLANIDs(ids) {
		oldV := d.Old.VLANs[id]
		newV := d.New.VLANs[id]
		if oldV == newV {
			continue
		}
		if err := fn(VLANDelta{ID: id, OldVLAN: oldV, NewVLAN: newV}); err != nil {
			return err
		}
	}
	return nil
}

func sortedVLANIDs(set map[VLANID]struct{}) []VLANID {
	out := make([]VLANID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// RouteDelta describes one route whose prefix was added, removed, or
// whose FIB entry changed identity between Old and New.
type RouteDelta struct {
	VRF      VRFID
	Family   route.Family
	Prefix   route.Prefix
	OldRoute *route.Route // nil if the route was added
	NewRoute *route.Route // nil if the route was removed
}

// ForEachChangedRoute walks the FIBs of a single VRF/family pair,
// reporting added, removed, and changed routes in ascending prefix
// order. Both FIBs are prefix-sorted slices, so the walk is a linear
// merge; routes present in both with identical *route.Route pointers
// are skipped without visiting their contents.
func (d *StateDelta) ForEachChangedRoute(vrf VRFID, family route.Family, fn func(RouteDelta) error) error {
	oldFIB := fibFor(d.Old, vrf, family)
	newFIB := fibFor(d.New, vrf, family)
	if oldFIB == newFIB {
		return nil
	}
	oldRoutes := oldFIB.Routes()
	newRoutes := newFIB.Routes()
	i, j := 0, 0
	for i < len(oldRoutes) && j < len(newRoutes) {
		o, n := oldRoutes[i], newRoutes[j]
		switch {
		case o.Prefix.Equal(n.Prefix):
			if o != n {
				if err := fn(RouteDelta{VRF: vrf, Family: family, Prefix: o.Prefix, OldRoute: o, NewRoute: n}); err != nil {
					return err
				}
			}
			i++
			j++
		case o.Prefix.Less(n.Prefix):
			if err := fn(RouteDelta{VRF: vrf, Family: family, Prefix: o.Prefix, OldRoute: o, NewRoute: nil}); err != nil {
				return err
			}
			i++
		default:
			if err := fn(RouteDelta{VRF: vrf, Family: family, Prefix: n.Prefix, OldRoute: nil, NewRoute: n}); err != nil {
				return err
			}
			j++
		}
	}
	for ; i < len(oldRoutes); i++ {
		o := oldRoutes[i]
		if err := fn(RouteDelta{VRF: vrf, Family: family, Prefix: o.Prefix, OldRoute: o, NewRoute: nil}); err != nil {
			return err
		}
	}
	for ; j < len(newRoutes); j++ {
		n := newRoutes[j]
		if err := fn(RouteDelta{VRF: vrf, Family: family, Prefix: n.Prefix, OldRoute: nil, NewRoute: n}); err != nil {
			return err
		}
	}
	return nil
}

// ForEachChangedRouteAll walks every VRF present in either snapshot,
// both address families, in ascending VRFID then family order (V4
// before V6).
func (d *StateDelta) ForEachChangedRouteAll(fn func(RouteDelta) error) error {
	vrfs := make(map[VRFID]struct{}, len(d.Old.FIBs)+len(d.New.FIBs))
	for id := range d.Old.FIBs {
		vrfs[id] = struct{}{}
	}
	for id := range d.New.FIBs {
		vrfs[id] = struct{}{}
	}
	for _, vrf := range sortedVRFIDs(vrfs) {
		if err := d.ForEachChangedRoute(vrf, route.FamilyV4, fn); err != nil {
			return err
		}
		if err := d.ForEachChangedRoute(vrf, route.FamilyV6, fn); err != nil {
			return err
		}
	}
	return nil
}

func sortedVRFIDs(set map[VRFID]struct{}) []VRFID {
	out := make([]VRFID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func fibFor(s *SwitchState, vrf VRFID, family route.Family) *FIB {
	c, ok := s.FIBs[vrf]
	if !ok {
		return nil
	}
	if family == route.FamilyV4 {
		return c.FIBV4
	}
	return c.FIBV6
}
