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
package route

import "net/netip"

// Action is the disposition a resolved NextHopEntry carries: drop the
// packet, punt it to the CPU, or forward it out a resolved next-hop set.
type Action uint8

const (
	ActionDrop Action = iota
	ActionToCPU
	ActionNextHops
)

func (a Action) String() string {
	switch a {
	case ActionDrop:
		return "DROP"
	case ActionToCPU:
		return "TO_CPU"
	case ActionNextHops:
		return "NEXTHOPS"
	default:
		return "UNKNOWN"
	}
}

// ResolvedNextHop is a single fully-resolved ECMP/UCMP member: an address
// reachable via a local interface, with a load-sharing weight.
type ResolvedNextHop struct {
	Addr   netip.Addr
	Intf   InterfaceID
	Weight uint32
}

// NextHopEntry is the tagged variant { DROP | TO_CPU | NEXTHOPS(set) }
// plus the admin distance of the client that contributed it. It is the
// type of both a RIB route's resolved forwarding decision and a FIB
// route's installed forwarding decision.
type NextHopEntry struct {
	Action        Action
	NextHops      []ResolvedNextHop // meaningful iff Action == ActionNextHops; sorted by (Addr, Intf)
	AdminDistance uint8
}

// Equal is a byte-equal comparison used by the FIB updater to decide
// whether a prior FIB route can be reused unchanged.
func (e NextHopEntry) Equal(o NextHopEntry) bool {
	if e.Action != o.Action || e.AdminDistance != o.AdminDistance {
		return false
	}
	if e.Action != ActionNextHops {
		return true
	}
	if len(e.NextHops) != len(o.NextHops) {
		return false
	}
	for i := range e.NextHops {
		if e.NextHops[i] != o.NextHops[i] {
			return false
		}
	}
	return true
}

// Gateway is one client-contributed next-hop before resolution. Connected
// gateways (directly attached, interface-bound) are usable as-is; non-
// connected gateways name an address that must be recursively resolved
// to a connected or interface-bound route within the same VRF.
type Gateway struct {
	Addr      netip.Addr // the address to recurse on; used as the next-hop address as-is when Connected
	Intf      InterfaceID
	Weight    uint32
	Connected bool
}

// ClientRouteEntry is one client's contribution to a route: either a
// terminal action (drop/to-cpu) or a set of gateways to resolve.
type ClientRouteEntry struct {
	Action        Action
	Gateways      []Gateway // meaningful iff Action == ActionNextHops
	AdminDistance uint8
}
