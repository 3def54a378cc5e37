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

import (
	"net/netip"
	"testing"
)

func mustPrefix(t *testing.T, s string, mask uint8) Prefix {
	t.Helper()
	addr, err := netip.ParseAddr(s)
	if err != nil {
		t.Fatalf("parsing %s: %v", s, err)
	}
	return Prefix{Network: addr, Mask: mask}
}

func TestPrefixLess(t *testing.T) {
	a := mustPrefix(t, "10.0.0.0", 24)
	b := mustPrefix(t, "10.0.0.0", 25)
	c := mustPrefix(t, "10.0.1.0", 24)

	if !a.Less(b) {
		t.Fatalf("expected %s < %s (same network, shorter mask first)", a, b)
	}
	if !a.Less(c) {
		t.Fatalf("expected %s < %s", a, c)
	}
	if c.Less(a) {
		t.Fatalf("did not expect %s < %s", c, a)
	}
}

func TestPrefixContains(t *testing.T) {
	p := mustPrefix(t, "10.0.0.0", 24)
	inside, _ := netip.ParseAddr("10.0.0.42")
	outside, _ := netip.ParseAddr("10.0.1.42")
	if !p.Contains(inside) {
		t.Fatalf("expected %s to contain %s", p, inside)
	}
	if p.Contains(outside) {
		t.Fatalf("did not expect %s to contain %s", p, outside)
	}
}

func TestPrefixMaskedRejectsMalformed(t *testing.T) {
	p := mustPrefix(t, "10.0.0.0", 99)
	if _, err := p.Masked(); err == nil {
		t.Fatalf("expected an error masking a /99 prefix")
	}
}

func TestPrefixJSONRoundTrip(t *testing.T) {
	p := mustPrefix(t, "192.168.1.0", 24)
	data, err := p.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Prefix
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Equal(p) {
		t.Fatalf("round-trip mismatch: got %s, want %s", got, p)
	}
}

func TestPrefixFamily(t *testing.T) {
	v4 := mustPrefix(t, "10.0.0.0", 8)
	v6 := mustPrefix(t, "2001:db8::", 32)
	if v4.Family() != FamilyV4 {
		t.Fatalf("expected FamilyV4 for %s", v4)
	}
	if v6.Family() != FamilyV6 {
		t.Fatalf("expected FamilyV6 for %s", v6)
	}
}
