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

// Package pktio builds and sends the ARP and ICMPv6 neighbor-discovery
// frames the neighbor cache needs, over gopacket/gopacket-layers/pcap.
// It has no receive or parse path. Grounded directly on
// arp/server/arpTx.go's sendArpReq (ARP-over-pcap send path) and
// ndp/packet/{encode,decode,checksum}.go (ICMPv6 ND frame shape); frames
// are injected through pcap, as the teacher does, rather than a raw
// socket.
package pktio

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"

	"github.com/snaproute/fboss-agent/logging"
	"github.com/snaproute/fboss-agent/route"
)

// InterfaceResolver maps the agent's abstract route.InterfaceID to the
// host NIC name pcap opens and the interface's own (MAC, IP), mirroring
// the teacher's portPropMap lookups in arpTx.go/arpRx.go.
type InterfaceResolver interface {
	IfName(intf route.InterfaceID) (string, bool)
	IfMAC(intf route.InterfaceID) (net.HardwareAddr, bool)
	IfAddr(intf route.InterfaceID, family route.Family) (netip.Addr, bool)
}

// Sender sends ARP requests and NDP solicitations over pcap-injected
// Ethernet frames.
type Sender struct {
	resolver    InterfaceResolver
	logger      logging.Writer
	snapshotLen int32
	promiscuous bool
}

// NewSender constructs a Sender. snapshotLen and promiscuous mirror the
// pcap.OpenLive parameters the teacher's ARPServer carries per-port.
func NewSender(resolver InterfaceResolver, logger logging.Writer) *Sender {
	return &Sender{
		resolver:    resolver,
		logger:      logger,
		snapshotLen: 1600,
		promiscuous: false,
	}
}

func (s *Sender) openLive(ifName string) (*pcap.Handle, error) {
	return pcap.OpenLive(ifName, s.snapshotLen, s.promiscuous, pcap.BlockForever)
}

// SendArpRequest broadcasts an ARP request for target over intf.
func (s *Sender) SendArpRequest(target netip.Addr, intf route.InterfaceID) error {
	ifName, ok := s.resolver.IfName(intf)
	if !ok {
		return fmt.Errorf("pktio: unknown interface %d", intf)
	}
	srcMAC, ok := s.resolver.IfMAC(intf)
	if !ok {
		return fmt.Errorf("pktio: no MAC for interface %d", intf)
	}
	srcIP, ok := s.resolver.IfAddr(intf, route.FamilyV4)
	if !ok {
		return fmt.Errorf("pktio: no IPv4 address for interface %d", intf)
	}

	handle, err := s.openLive(ifName)
	if err != nil {
		s.logger.Err(fmt.Sprintln("pktio: unable to open pcap handle on", ifName, "error:", err))
		return err
	}
	defer handle.Close()

	eth := layers.Ethernet{
		SrcMAC:       srcMAC,
		DstMAC:       net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		EthernetType: layers.EthernetTypeARP,
	}
	arp := layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   srcMAC,
		SourceProtAddress: srcIP.AsSlice(),
		DstHwAddress:      []byte{0, 0, 0, 0, 0, 0},
		DstProtAddress:    target.AsSlice(),
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, &eth, &arp); err != nil {
		return err
	}
	if err := handle.WritePacketData(buf.Bytes()); err != nil {
		s.logger.Err(fmt.Sprintln("pktio: error writing ARP request on", ifName, "error:", err))
		return err
	}
	return nil
}

// SendNdpSolicitation sends an ICMPv6 neighbor solicitation for target
// over intf, using the solicited-node multicast address and the
// corresponding multicast MAC as destination.
func (s *Sender) SendNdpSolicitation(target netip.Addr, intf route.InterfaceID) error {
	ifName, ok := s.resolver.IfName(intf)
	if !ok {
		return fmt.Errorf("pktio: unknown interface %d", intf)
	}
	srcMAC, ok := s.resolver.IfMAC(intf)
	if !ok {
		return fmt.Errorf("pktio: no MAC for interface %d", intf)
	}
	srcIP, ok := s.resolver.IfAddr(intf, route.FamilyV6)
	if !ok {
		return fmt.Errorf("pktio: no IPv6 address for interface %d", intf)
	}

	handle, err := s.openLive(ifName)
	if err != nil {
		s.logger.Err(fmt.Sprintln("pktio: unable to open pcap handle on", ifName, "error:", err))
		return err
	}
	defer handle.Close()

	dstIP := solicitedNodeMulticast(target)
	dstMAC := multicastMAC(dstIP)

	eth := layers.Ethernet{
		SrcMAC:       srcMAC,
		DstMAC:       dstMAC,
		EthernetType: layers.EthernetTypeIPv6,
	}
	ip6 := layers.IPv6{
		Version:    6,
		NextHeader: layers.IPProtocolICMPv6,
		HopLimit:   255,
		SrcIP:      srcIP.AsSlice(),
		DstIP:      dstIP.AsSlice(),
	}
	icmp6 := layers.ICMPv6{
		TypeCode: layers.CreateICMPv6TypeCode(layers.ICMPv6TypeNeighborSolicitation, 0),
	}
	ns := layers.ICMPv6NeighborSolicitation{
		TargetAddress: target.AsSlice(),
		Options: layers.ICMPv6Options{
			{
				Type: layers.ICMPv6OptSourceAddress,
				Data: srcMAC,
			},
		},
	}
	_ = icmp6.SetNetworkLayerForChecksum(&ip6)

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, &eth, &ip6, &icmp6, &ns); err != nil {
		return err
	}
	if err := handle.WritePacketData(buf.Bytes()); err != nil {
		s.logger.Err(fmt.Sprintln("pktio: error writing NDP solicitation on", ifName, "error:", err))
		return err
	}
	return nil
}

// SendPacketSwitched transmits an already-built Ethernet frame out
// intf, for replaying arbitrary switched traffic without going through
// ARP/NDP encoding.
func (s *Sender) SendPacketSwitched(intf route.InterfaceID, frame []byte) error {
	ifName, ok := s.resolver.IfName(intf)
	if !ok {
		return fmt.Errorf("pktio: unknown interface %d", intf)
	}
	handle, err := s.openLive(ifName)
	if err != nil {
		return err
	}
	defer handle.Close()
	return handle.WritePacketData(frame)
}

// solicitedNodeMulticast derives the IPv6 solicited-node multicast
// address ff02::1:ffXX:XXXX for target, per RFC 4861 §7.2.1.
func solicitedNodeMulticast(target netip.Addr) netip.Addr {
	b := target.As16()
	out := [16]byte{0xff, 0x02, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0xff, b[13], b[14], b[15]}
	return netip.AddrFrom16(out)
}

// multicastMAC derives the Ethernet multicast MAC 33:33:xx:xx:xx:xx
// carrying an IPv6 multicast address's low 32 bits, per RFC 2464 §7.
func multicastMAC(ip netip.Addr) net.HardwareAddr {
	b := ip.As16()
	return net.HardwareAddr{0x33, 0x33, b[12], b[13], b[14], b[15]}
}
