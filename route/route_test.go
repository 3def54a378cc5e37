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

import "testing"

func TestBestClientTieBreakByAdminDistance(t *testing.T) {
	r := NewRoute(Prefix{})
	r.SetClient(1, ClientRouteEntry{AdminDistance: 10}, 1)
	r.SetClient(2, ClientRouteEntry{AdminDistance: 5}, 2)
	id, entry, ok := r.BestClient()
	if !ok {
		t.Fatalf("expected a best client")
	}
	if id != 2 || entry.AdminDistance != 5 {
		t.Fatalf("expected client 2 (lowest admin distance), got %d (%d)", id, entry.AdminDistance)
	}
}

func TestBestClientTieBreakByRecency(t *testing.T) {
	r := NewRoute(Prefix{})
	r.SetClient(1, ClientRouteEntry{AdminDistance: 5}, 1)
	r.SetClient(2, ClientRouteEntry{AdminDistance: 5}, 2)
	id, _, ok := r.BestClient()
	if !ok || id != 2 {
		t.Fatalf("expected the most-recently-inserted client (2) to win the tie, got %d", id)
	}
}

func TestBestClientEmpty(t *testing.T) {
	r := NewRoute(Prefix{})
	if _, _, ok := r.BestClient(); ok {
		t.Fatalf("expected no best client on an empty route")
	}
}

func TestRemoveClientReportsEmpty(t *testing.T) {
	r := NewRoute(Prefix{})
	r.SetClient(1, ClientRouteEntry{}, 1)
	if empty := r.RemoveClient(1); !empty {
		t.Fatalf("expected route to be empty after removing its only client")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := NewRoute(Prefix{})
	r.SetClient(1, ClientRouteEntry{AdminDistance: 1}, 1)
	c := r.Clone()
	c.SetClient(2, ClientRouteEntry{AdminDistance: 2}, 2)
	if r.NumClients() != 1 {
		t.Fatalf("expected original route untouched by mutating its clone, got %d clients", r.NumClients())
	}
	if c.NumClients() != 2 {
		t.Fatalf("expected clone to have both clients, got %d", c.NumClients())
	}
}

func TestInProgressAndSettledFlags(t *testing.T) {
	r := NewRoute(Prefix{})
	if r.InProgress() || r.Settled() {
		t.Fatalf("expected a new route to start with both scratch flags clear")
	}
	r.SetInProgress(true)
	if !r.InProgress() {
		t.Fatalf("expected InProgress to report true after SetInProgress(true)")
	}
	r.SetSettled(true)
	if !r.Settled() {
		t.Fatalf("expected Settled to report true after SetSettled(true)")
	}
}
