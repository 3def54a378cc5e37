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
// Package agenterr enumerates the sentinel error kinds the two cores and
// their collaborators raise, per spec.md §7. Callers match them with
// errors.Is; none of them carry a concrete type name beyond what is
// needed to distinguish kinds.
package agenterr

import "errors"

var (
	// ErrVRFUnknown is returned by RIB operations addressing a VRF that
	// has not been registered with rib.Manager.RegisterVRF.
	ErrVRFUnknown = errors.New("rib: unknown vrf")

	// ErrPrefixMalformed is returned when a RoutePrefix's network/mask
	// pair cannot be canonicalized (mask out of range for the address
	// family). Non-zero host bits are not an error; they are zeroed.
	ErrPrefixMalformed = errors.New("rib: malformed prefix")

	// ErrNextHopUnreachable marks a next-hop whose recursive resolution
	// could not find any route to chase within the VRF.
	ErrNextHopUnreachable = errors.New("rib: next-hop unreachable")

	// ErrNextHopCycle marks a next-hop resolution chain that revisited a
	// route already being resolved in the same pass.
	ErrNextHopCycle = errors.New("rib: next-hop resolution cycle")

	// ErrInvalidStateTransition is raised (and, per spec.md §7, allowed
	// to crash the agent) when a neighbor cache entry is driven into the
	// unreachable Delay or Uninitialized states.
	ErrInvalidStateTransition = errors.New("neighbor: invalid state transition")

	// ErrI2C is surfaced by the transceiver adapter; neither core raises
	// it directly.
	ErrI2C = errors.New("transceiver: i2c error")

	// ErrTimerAlreadyScheduled is a programmer-error assertion: an entry
	// attempted to schedule a second timer while one was already
	// outstanding. Never user-visible.
	ErrTimerAlreadyScheduled = errors.New("neighbor: timer already scheduled")
)
