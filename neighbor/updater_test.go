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

package neighbor

import (
	"net/netip"
	"testing"

	"github.com/snaproute/fboss-agent/route"
	"github.com/snaproute/fboss-agent/state"
)

func TestUpdaterCreatesCachesOnVLANAdded(t *testing.T) {
	pub := state.NewPublisher(nil)
	defer pub.Close()
	u := NewUpdater(pub, testConfig(), nil, nil, nil)

	old := pub.Current()
	next := pub.Update(func(s *state.SwitchState) *state.SwitchState { return s.AddVLAN(10, nil) })
	u.handleDelta(old, next)

	if _, ok := u.Cache(10, route.FamilyV4); !ok {
		t.Fatalf("expected an ARP cache to exist for the newly added VLAN")
	}
	if _, ok := u.Cache(10, route.FamilyV6); !ok {
		t.Fatalf("expected an NDP cache to exist for the newly added VLAN")
	}
}

func TestUpdaterDestroysCachesOnVLANRemoved(t *testing.T) {
	pub := state.NewPublisher(nil)
	defer pub.Close()
	u := NewUpdater(pub, testConfig(), nil, nil, nil)

	old := pub.Current()
	withVLAN := pub.Update(func(s *state.SwitchState) *state.SwitchState { return s.AddVLAN(10, nil) })
	u.handleDelta(old, withVLAN)

	withoutVLAN := pub.Update(func(s *state.SwitchState) *state.SwitchState { return s.WithoutVLAN(10) })
	u.handleDelta(withVLAN, withoutVLAN)

	if _, ok := u.Cache(10, route.FamilyV4); ok {
		t.Fatalf("expected the VLAN's caches to be torn down once the VLAN is removed")
	}
}

func TestUpdaterSelfAuthoredEntryChangeDoesNotRecreateCaches(t *testing.T) {
	pub := state.NewPublisher(nil)
	defer pub.Close()
	u := NewUpdater(pub, testConfig(), nil, nil, nil)

	old := pub.Current()
	withVLAN := pub.Update(func(s *state.SwitchState) *state.SwitchState { return s.AddVLAN(10, nil) })
	u.handleDelta(old, withVLAN)

	arpCache, _ := u.Cache(10, route.FamilyV4)
	arpCache.ReceiveAdvertisement(netip.MustParseAddr("10.0.0.5"), []byte{1, 2, 3, 4, 5, 6}, 1, 1)
	afterEntry := pub.Current()

	u.handleDelta(withVLAN, afterEntry)

	again, ok := u.Cache(10, route.FamilyV4)
	if !ok || again != arpCache {
		t.Fatalf("expected the VLAN's own entry publication to leave the cache pair untouched")
	}
}

func TestUpdaterFlushesEntriesWhenPortGoesDown(t *testing.T) {
	pub := state.NewPublisher(nil)
	defer pub.Close()
	u := NewUpdater(pub, testConfig(), nil, nil, nil)

	old := pub.Current()
	withVLAN := pub.Update(func(s *state.SwitchState) *state.SwitchState {
		return s.AddVLAN(10, nil).WithPort(&state.Port{ID: 5, Name: "eth5", AdminUp: true})
	})
	u.handleDelta(old, withVLAN)

	arpCache, _ := u.Cache(10, route.FamilyV4)
	ip := netip.MustParseAddr("10.0.0.5")
	arpCache.ReceiveAdvertisement(ip, []byte{1, 2, 3, 4, 5, 6}, 5, 1)

	portDown := pub.Update(func(s *state.SwitchState) *state.SwitchState {
		return s.WithPort(&state.Port{ID: 5, Name: "eth5", AdminUp: false})
	})
	u.handlePortChanges(withVLAN, portDown)

	if _, ok := arpCache.Lookup(ip); ok {
		t.Fatalf("expected the entry bound to the downed port to be flushed")
	}
}

func TestUpdaterFlushesEntriesWhenAggregateMemberRemoved(t *testing.T) {
	pub := state.NewPublisher(nil)
	defer pub.Close()
	u := NewUpdater(pub, testConfig(), nil, nil, nil)

	old := pub.Current()
	withVLAN := pub.Update(func(s *state.SwitchState) *state.SwitchState {
		return s.AddVLAN(10, nil).WithAggregatePort(&state.AggregatePort{ID: 1, Members: []state.PortID{5, 6}})
	})
	u.handleDelta(old, withVLAN)

	arpCache, _ := u.Cache(10, route.FamilyV4)
	ip := netip.MustParseAddr("10.0.0.5")
	arpCache.ReceiveAdvertisement(ip, []byte{1, 2, 3, 4, 5, 6}, 5, 1)

	removedMember := pub.Update(func(s *state.SwitchState) *state.SwitchState {
		return s.WithAggregatePort(&state.AggregatePort{ID: 1, Members: []state.PortID{6}})
	})
	u.handlePortChanges(withVLAN, removedMember)

	if _, ok := arpCache.Lookup(ip); ok {
		t.Fatalf("expected the entry bound to the dropped LAG member to be flushed")
	}
}
