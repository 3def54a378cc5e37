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

// Package rpcsvc exposes the agent's thrift RPC surface: transceiver
// introspection/customization and port sync, grounded on the teacher's
// */rpc/listener*.go handler style (one method per file, a handler
// struct embedding the domain server) reimplemented over
// github.com/apache/thrift/lib/go/thrift.
package rpcsvc

import "github.com/snaproute/fboss-agent/route"

// TransceiverInfo is the subset of QSFP/SFP transceiver state this
// agent surfaces over RPC: vendor identity, temperature, and per-lane
// signal strength. Full DOM decoding is out of scope; transceiver.Manager
// owns the hardware I2C bus this agent never models directly.
type TransceiverInfo struct {
	Present     bool
	Vendor      string
	PartNumber  string
	SerialNo    string
	Temperature float64
	TxPowerDBm  []float64
	RxPowerDBm  []float64
}

// RawDOMData is the unparsed DOM (Digital Optical Monitoring) register
// page, returned verbatim for operator tooling that knows how to decode
// vendor-specific pages this agent does not.
type RawDOMData struct {
	Page byte
	Data []byte
}

// Manager is the transceiver I2C collaborator. Its internals (bus
// arbitration, EEPROM paging) are out of scope per spec.md's Non-goals,
// so no implementation ships in this repo; a real one is expected to
// return agenterr.ErrI2C on a bus fault, which Handler propagates to
// the RPC caller unchanged.
type Manager interface {
	GetTransceiverInfo(intf route.InterfaceID) (TransceiverInfo, error)
	CustomizeTransceiver(intf route.InterfaceID, speedMbps uint32) error
	GetRawDOMData(intf route.InterfaceID, page byte) (RawDOMData, error)
}
