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
	"github.com/snaproute/fboss-agent/route"
	"github.com/snaproute/fboss-agent/state"
)

// buildFIB projects resolvedRoutes (the RIB's current prefix-sorted
// table snapshot for vrf/family, post-resolution) into current's FIB,
// grounded directly on
// original_source/fboss/agent/rib/ForwardingInformationBaseUpdater.cpp's
// createUpdatedFib: a prior FIB route is reused by pointer identity when
// its ClassID and byte-equal ForwardInfo match the resolved route;
// otherwise a clone-and-rewrite produces a new *route.Route carrying the
// new forwarding decision over the prior's retained fields. Only
// resolved routes are projected — an unresolved route has no meaningful
// ForwardInfo to publish and is simply absent from the FIB, matching the
// data model's invariant that ForwardInfo is only valid when Resolved.
//
// If nothing changed, buildFIB returns current itself unchanged, so a
// caller comparing old and new SwitchState pointers sees identity
// equality and can skip the delta walk entirely.
func buildFIB(current *state.SwitchState, vrf route.VRFID, family route.Family, resolvedRoutes []*route.Route) *state.SwitchState {
	var prior *state.FIB
	if c, ok := current.FIBContainer(vrf); ok {
		if family == route.FamilyV4 {
			prior = c.FIBV4
		} else {
			prior = c.FIBV6
		}
	}

	next := make([]*route.Route, 0, len(resolvedRoutes))
	for _, r := range resolvedRoutes {
		if !r.Resolved {
			continue
		}
		next = append(next, projectRoute(prior, r))
	}

	if prior != nil && prior.Len() == len(next) {
		identical := true
		for i, r := range next {
			if prior.Routes()[i] != r {
				identical = false
				break
			}
		}
		if identical {
			return current
		}
	} else if prior == nil && len(next) == 0 {
		return current
	}

	newFIB := state.NewFIB(family, next)

	withVRF := current.EnsureVRF(vrf)
	container, _ := withVRF.FIBContainer(vrf)
	var newContainer *state.FIBContainer
	if family == route.FamilyV4 {
		newContainer = containerWithFIBs(container, newFIB, nil)
	} else {
		newContainer = containerWithFIBs(container, nil, newFIB)
	}
	return withVRF.WithFIBContainer(vrf, newContainer)
}

// projectRoute returns the *route.Route to publish into the FIB for
// resolved, reusing the identical prior FIB entry when its ClassID and
// ForwardInfo already match.
func projectRoute(prior *state.FIB, resolved *route.Route) *route.Route {
	if prior != nil {
		if existing, ok := prior.Get(resolved.Prefix); ok {
			if existing.ClassID == resolved.ClassID && existing.ForwardInfo.Equal(resolved.ForwardInfo) {
				return existing
			}
			clone := existing.Clone()
			clone.ForwardInfo = resolved.ForwardInfo
			clone.ClassID = resolved.ClassID
			clone.Connected = resolved.Connected
			clone.Resolved = true
			return clone
		}
	}
	clone := resolved.Clone()
	return clone
}

// containerWithFIBs builds a replacement FIBContainer from c's exported
// fields (FIBContainer has no substitution method of its own),
// substituting whichever of v4/v6 is non-nil and keeping c's FIB for the
// family this call did not touch.
func containerWithFIBs(c *state.FIBContainer, v4, v6 *state.FIB) *state.FIBContainer {
	result := &state.FIBContainer{VRF: c.VRF, FIBV4: c.FIBV4, FIBV6: c.FIBV6}
	if v4 != nil {
		result.FIBV4 = v4
	}
	if v6 != nil {
		result.FIBV6 = v6
	}
	return result
}
