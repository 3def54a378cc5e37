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
// Package state owns the immutable, structurally-shared SwitchState tree:
// the FIB, VLAN, port, and aggregate-port state a host process publishes
// and every collaborator reads. Updates produce a new root via
// copy-on-write clones of the modified path; two roots are comparable by
// pointer identity at every node, and identity implies semantic equality.
package state

import "github.com/snaproute/fboss-agent/route"

type VRFID = route.VRFID

// VLANID names a broadcast domain; each VLAN owns one ARP cache and one
// NDP cache.
type VLANID uint16

// PortID names a physical switch port.
type PortID int32

// AggregatePortID names a LAG/port-channel spanning multiple PortIDs.
type AggregatePortID int32
