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

package rpcsvc

import (
	"fmt"

	"github.com/snaproute/fboss-agent/logging"
	"github.com/snaproute/fboss-agent/route"
	"github.com/snaproute/fboss-agent/state"
)

// Handler implements the agent's thrift service interface. It embeds
// the domain collaborators the way the teacher's ARPHandler/OSPFHandler
// embed their server: one struct, one method per exported RPC, each
// method forwarding into the owning subsystem rather than touching
// state directly.
type Handler struct {
	logger     logging.Writer
	transceiver Manager
	publisher  *state.Publisher
}

// NewHandler constructs a Handler wired to the transceiver manager and
// the agent's state publisher.
func NewHandler(logger logging.Writer, transceiver Manager, publisher *state.Publisher) *Handler {
	return &Handler{logger: logger, transceiver: transceiver, publisher: publisher}
}

// GetTransceiverInfo returns the current transceiver state for intf.
func (h *Handler) GetTransceiverInfo(intf route.InterfaceID) (*TransceiverInfo, error) {
	h.logger.Info(fmt.Sprintln("rpcsvc: GetTransceiverInfo for interface", intf))
	info, err := h.transceiver.GetTransceiverInfo(intf)
	if err != nil {
		h.logger.Err(fmt.Sprintln("rpcsvc: GetTransceiverInfo failed for interface", intf, "error:", err))
		return nil, err
	}
	return &info, nil
}

// CustomizeTransceiver forces a transceiver's electrical/optical
// settings for the given link speed, e.g. after a port speed change.
func (h *Handler) CustomizeTransceiver(intf route.InterfaceID, speedMbps uint32) (bool, error) {
	h.logger.Info(fmt.Sprintln("rpcsvc: CustomizeTransceiver for interface", intf, "speed", speedMbps))
	if err := h.transceiver.CustomizeTransceiver(intf, speedMbps); err != nil {
		h.logger.Err(fmt.Sprintln("rpcsvc: CustomizeTransceiver failed for interface", intf, "error:", err))
		return false, err
	}
	return true, nil
}

// GetRawDOMData returns an undecoded DOM register page for operator
// tooling that understands vendor-specific pages this agent does not.
func (h *Handler) GetRawDOMData(intf route.InterfaceID, page byte) (*RawDOMData, error) {
	h.logger.Info(fmt.Sprintln("rpcsvc: GetRawDOMData for interface", intf, "page", page))
	data, err := h.transceiver.GetRawDOMData(intf, page)
	if err != nil {
		h.logger.Err(fmt.Sprintln("rpcsvc: GetRawDOMData failed for interface", intf, "error:", err))
		return nil, err
	}
	return &data, nil
}

// PortSummary is the subset of Port state SyncPorts reports to callers
// (operator tooling, a paired hardware programmer).
type PortSummary struct {
	ID      uint32
	Name    string
	AdminUp bool
	Intf    int32
}

// SyncPorts returns a full snapshot of every configured port, the RPC
// equivalent of the teacher's GetBulkPortState handlers.
func (h *Handler) SyncPorts() ([]PortSummary, error) {
	current := h.publisher.Current()
	summaries := make([]PortSummary, 0, len(current.Ports))
	for _, p := range current.Ports {
		summaries = append(summaries, PortSummary{
			ID:      uint32(p.ID),
			Name:    p.Name,
			AdminUp: p.AdminUp,
			Intf:    int32(p.Intf),
		})
	}
	return summaries, nil
}
