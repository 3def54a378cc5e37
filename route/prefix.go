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
// Package route defines the address-family-parameterized route and
// prefix value types shared by the RIB, the FIB, and the copy-on-write
// switch-state tree.
package route

import (
	"encoding/json"
	"fmt"
	"net/netip"
)

// Family distinguishes an IPv4 routing table from an IPv6 one. Unlike the
// teacher's ribdv4RouteProcessApis.go / ribdv6RouteProcessApis.go split,
// a single Route/Prefix implementation is shared and Family is carried
// as data, not duplicated as a parallel set of types.
type Family uint8

const (
	FamilyV4 Family = iota
	FamilyV6
)

func (f Family) String() string {
	switch f {
	case FamilyV4:
		return "ipv4"
	case FamilyV6:
		return "ipv6"
	default:
		return "unknown"
	}
}

// VRFID names a virtual routing instance. Routes in different VRFs never
// interact during resolution.
type VRFID uint32

// ClientID identifies a routing-protocol client contributing next-hops to
// a route (e.g. one per BGP/static/connected source).
type ClientID int64

// ClassID is an opaque tag carried from RIB route to FIB route, used by
// ACL/QoS classification downstream. The core never interprets it.
type ClassID int32

// InterfaceID identifies a local L3 interface a next-hop egresses on.
type InterfaceID int32

// Prefix is (network, mask), ordered lexicographically by (network, mask).
type Prefix struct {
	Network netip.Addr
	Mask    uint8
}

// Family reports which address family this prefix belongs to.
func (p Prefix) Family() Family {
	if p.Network.Is4() {
		return FamilyV4
	}
	return FamilyV6
}

// Masked returns the canonical network address for p: bits beyond Mask
// are zeroed. Malformed prefixes (e.g. an IPv4 address with a mask above
// 32) return an error.
func (p Prefix) Masked() (Prefix, error) {
	pref, err := p.Network.Prefix(int(p.Mask))
	if err != nil {
		return Prefix{}, fmt.Errorf("route: malformed prefix %s/%d: %w", p.Network, p.Mask, err)
	}
	return Prefix{Network: pref.Masked().Addr(), Mask: p.Mask}, nil
}

// Contains reports whether addr falls within p.
func (p Prefix) Contains(addr netip.Addr) bool {
	pref := netip.PrefixFrom(p.Network, int(p.Mask))
	return pref.IsValid() && pref.Contains(addr)
}

// Less orders prefixes lexicographically by (network, mask), matching the
// RIB's required ordered-iteration contract.
func (p Prefix) Less(o Prefix) bool {
	if c := p.Network.Compare(o.Network); c != 0 {
		return c < 0
	}
	return p.Mask < o.Mask
}

func (p Prefix) Equal(o Prefix) bool {
	return p.Network == o.Network && p.Mask == o.Mask
}

func (p Prefix) String() string {
	return fmt.Sprintf("%s/%d", p.Network, p.Mask)
}

// prefixJSON is the canonical on-disk encoding mentioned in spec.md §6:
// a JSON object of (network, mask). No other persisted format is in
// scope for Prefix.
type prefixJSON struct {
	Network string `json:"network"`
	Mask    uint8  `json:"mask"`
}

func (p Prefix) MarshalJSON() ([]byte, error) {
	return json.Marshal(prefixJSON{Network: p.Network.String(), Mask: p.Mask})
}

func (p *Prefix) UnmarshalJSON(data []byte) error {
	var pj prefixJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}
	addr, err := netip.ParseAddr(pj.Network)
	if err != nil {
		return fmt.Errorf("route: malformed prefix network %q: %w", pj.Network, err)
	}
	p.Network = addr
	p.Mask = pj.Mask
	return nil
}
