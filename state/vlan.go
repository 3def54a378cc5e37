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

// VLAN is a broadcast domain: its attached L3 interfaces plus the ARP
// (v4) and NDP (v6) neighbor tables the neighbor caches publish into.
type VLAN struct {
	ID         VLANID
	Interfaces []route.InterfaceID
	arp        *NeighborTable
	ndp        *NeighborTable
}

func newVLAN(id VLANID, interfaces []route.InterfaceID) *VLAN {
	return &VLAN{
		ID:         id,
		Interfaces: append([]route.InterfaceID(nil), interfaces...),
		arp:        newNeighborTable(),
		ndp:        newNeighborTable(),
	}
}

// ARP returns the VLAN's published ARP (IPv4 neighbor) table.
func (v *VLAN) ARP() *NeighborTable { return v.arp }

// NDP returns the VLAN's published NDP (IPv6 neighbor) table.
func (v *VLAN) NDP() *NeighborTable { return v.ndp }

func (v *VLAN) withARP(t *NeighborTable) *VLAN {
	clone := *v
	clone.arp = t
	return &clone
}

func (v *VLAN) withNDP(t *NeighborTable) *VLAN {
	clone := *v
	clone.ndp = t
	return &clone
}
