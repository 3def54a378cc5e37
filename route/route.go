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

// Route carries client-contributed next-hops keyed by client id, plus the
// selected forwarding decision once resolved. ForwardInfo is meaningful
// iff Resolved is true — callers must not read one without the other.
//
// A Route is mutable while owned by the resolution pass (clientSeq tracks
// insertion order for deterministic tie-breaking) and is frozen once
// projected into the FIB.
type Route struct {
	Prefix Prefix

	clients   map[ClientID]ClientRouteEntry
	clientSeq map[ClientID]uint64 // monotonic insertion order, for tie-break among equal admin distance

	ForwardInfo NextHopEntry
	ClassID     ClassID
	Connected   bool
	Resolved    bool

	// resolution-pass scratch state; never observed outside rib package.
	inProgress bool
	settled    bool
}

// NewRoute constructs an empty route for prefix, ready to receive
// client contributions via SetClient.
func NewRoute(prefix Prefix) *Route {
	return &Route{
		Prefix:    prefix,
		clients:   make(map[ClientID]ClientRouteEntry),
		clientSeq: make(map[ClientID]uint64),
	}
}

// Clone returns a shallow copy of r suitable for mutating independently
// (used by the FIB updater when it needs to retain unrelated fields from
// a prior FIB route while rewriting the forwarding decision).
func (r *Route) Clone() *Route {
	c := &Route{
		Prefix:      r.Prefix,
		ForwardInfo: r.ForwardInfo,
		ClassID:     r.ClassID,
		Connected:   r.Connected,
		Resolved:    r.Resolved,
	}
	if r.clients != nil {
		c.clients = make(map[ClientID]ClientRouteEntry, len(r.clients))
		for k, v := range r.clients {
			c.clients[k] = v
		}
	}
	if r.clientSeq != nil {
		c.clientSeq = make(map[ClientID]uint64, len(r.clientSeq))
		for k, v := range r.clientSeq {
			c.clientSeq[k] = v
		}
	}
	return c
}

// SetClient installs or replaces client's contribution, recording seq as
// its insertion order for tie-break purposes.
func (r *Route) SetClient(client ClientID, entry ClientRouteEntry, seq uint64) {
	r.clients[client] = entry
	r.clientSeq[client] = seq
}

// RemoveClient withdraws client's contribution. It reports whether no
// client contribution remains.
func (r *Route) RemoveClient(client ClientID) (empty bool) {
	delete(r.clients, client)
	delete(r.clientSeq, client)
	return len(r.clients) == 0
}

// NumClients reports how many clients currently contribute to r.
func (r *Route) NumClients() int {
	return len(r.clients)
}

// InProgress reports whether the resolution pass has this route on its
// current call stack (cycle detection).
func (r *Route) InProgress() bool { return r.inProgress }

// SetInProgress marks or clears r's cycle-detection flag.
func (r *Route) SetInProgress(v bool) { r.inProgress = v }

// Settled reports whether the resolution pass has already produced a
// final ForwardInfo for r during the current pass.
func (r *Route) Settled() bool { return r.settled }

// SetSettled marks or clears r's already-resolved-this-pass flag.
func (r *Route) SetSettled(v bool) { r.settled = v }

// BestClient selects the client contribution that should drive
// resolution: lowest AdminDistance wins; ties broken by the
// most-recently-inserted client, matching spec.md §4.1's determinism
// requirement.
func (r *Route) BestClient() (ClientID, ClientRouteEntry, bool) {
	var (
		bestID    ClientID
		bestEntry ClientRouteEntry
		bestSeq   uint64
		found     bool
	)
	for id, entry := range r.clients {
		seq := r.clientSeq[id]
		switch {
		case !found:
			bestID, bestEntry, bestSeq, found = id, entry, seq, true
		case entry.AdminDistance < bestEntry.AdminDistance:
			bestID, bestEntry, bestSeq = id, entry, seq
		case entry.AdminDistance == bestEntry.AdminDistance && seq > bestSeq:
			bestID, bestEntry, bestSeq = id, entry, seq
		}
	}
	return bestID, bestEntry, found
}
