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
	"errors"
	"testing"

	"github.com/snaproute/fboss-agent/logging"
	"github.com/snaproute/fboss-agent/route"
	"github.com/snaproute/fboss-agent/state"
)

type discardWriter struct{}

func (discardWriter) Debug(args ...interface{})   {}
func (discardWriter) Info(args ...interface{})    {}
func (discardWriter) Warning(args ...interface{}) {}
func (discardWriter) Err(args ...interface{})     {}
func (discardWriter) Alert(args ...interface{})   {}

var _ logging.Writer = discardWriter{}

var errBus = errors.New("i2c bus fault")

type fakeManager struct {
	info    TransceiverInfo
	infoErr error
	custErr error
	dom     RawDOMData
	domErr  error
}

func (f *fakeManager) GetTransceiverInfo(intf route.InterfaceID) (TransceiverInfo, error) {
	return f.info, f.infoErr
}

func (f *fakeManager) CustomizeTransceiver(intf route.InterfaceID, speedMbps uint32) error {
	return f.custErr
}

func (f *fakeManager) GetRawDOMData(intf route.InterfaceID, page byte) (RawDOMData, error) {
	return f.dom, f.domErr
}

func TestGetTransceiverInfoReturnsManagerResult(t *testing.T) {
	mgr := &fakeManager{info: TransceiverInfo{Present: true, Vendor: "Acme"}}
	h := NewHandler(discardWriter{}, mgr, state.NewPublisher(nil))

	got, err := h.GetTransceiverInfo(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Present || got.Vendor != "Acme" {
		t.Fatalf("expected the manager's result forwarded unchanged, got %+v", got)
	}
}

func TestGetTransceiverInfoPropagatesError(t *testing.T) {
	mgr := &fakeManager{infoErr: errBus}
	h := NewHandler(discardWriter{}, mgr, state.NewPublisher(nil))

	if _, err := h.GetTransceiverInfo(1); !errors.Is(err, errBus) {
		t.Fatalf("expected the bus error to propagate, got %v", err)
	}
}

func TestCustomizeTransceiverSuccess(t *testing.T) {
	mgr := &fakeManager{}
	h := NewHandler(discardWriter{}, mgr, state.NewPublisher(nil))

	ok, err := h.CustomizeTransceiver(1, 100000)
	if err != nil || !ok {
		t.Fatalf("expected success, got ok=%v err=%v", ok, err)
	}
}

func TestCustomizeTransceiverFailure(t *testing.T) {
	mgr := &fakeManager{custErr: errBus}
	h := NewHandler(discardWriter{}, mgr, state.NewPublisher(nil))

	ok, err := h.CustomizeTransceiver(1, 100000)
	if ok || !errors.Is(err, errBus) {
		t.Fatalf("expected failure with the bus error, got ok=%v err=%v", ok, err)
	}
}

func TestGetRawDOMDataReturnsPageVerbatim(t *testing.T) {
	mgr := &fakeManager{dom: RawDOMData{Page: 3, Data: []byte{1, 2, 3}}}
	h := NewHandler(discardWriter{}, mgr, state.NewPublisher(nil))

	got, err := h.GetRawDOMData(1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Page != 3 || len(got.Data) != 3 {
		t.Fatalf("expected the DOM page forwarded unchanged, got %+v", got)
	}
}

func TestSyncPortsReportsCurrentSnapshot(t *testing.T) {
	pub := state.NewPublisher(nil)
	defer pub.Close()
	pub.Update(func(s *state.SwitchState) *state.SwitchState {
		return s.WithPort(&state.Port{ID: 1, Name: "eth1", AdminUp: true, Intf: 1})
	})

	h := NewHandler(discardWriter{}, &fakeManager{}, pub)
	summaries, err := h.SyncPorts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected one port summary, got %d", len(summaries))
	}
	if summaries[0].Name != "eth1" || !summaries[0].AdminUp {
		t.Fatalf("expected the published port's fields reflected, got %+v", summaries[0])
	}
}
