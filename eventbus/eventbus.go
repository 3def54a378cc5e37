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

// Package eventbus fans every published SwitchState transition out to
// out-of-process subscribers (hardware programmers, operator tooling)
// over a nanomsg pub socket, grounded on ndp/publisher/publisher.go's
// CreateAndBindPubSock/PublishEvents/InitPublisher pattern and
// arp/asicdMgr/notificationMgr.go's notification dispatch, reimplemented
// over github.com/op/go-nanomsg with a JSON Envelope summarizing each
// state.StateDelta as the published payload instead of raw asicd
// notification bytes.
package eventbus

import (
	"encoding/json"
	"syscall"

	"github.com/op/go-nanomsg"

	"github.com/snaproute/fboss-agent/logging"
	"github.com/snaproute/fboss-agent/state"
)

const notificationBufferSize = 100
const pubSocketSendBufferSize = 1024 * 1024

// Envelope is the wire payload one state transition is published as.
// It carries only identifiers, not full SwitchState snapshots, so
// subscribers pull detail (e.g. via rpcsvc or switchagentctl) rather
// than receive a potentially large tree over the bus.
type Envelope struct {
	Sequence    uint64   `json:"sequence"`
	ChangedVLAN []uint16 `json:"changed_vlans,omitempty"`
}

// Bus publishes Envelopes for every SwitchState transition it is handed.
type Bus struct {
	logger  logging.Writer
	sock    *nanomsg.PubSocket
	pending chan []byte
	seq     uint64
}

// NewBus binds a nanomsg pub socket at addr (e.g. "ipc:///tmp/switchagentd_all.ipc" or a tcp:// endpoint)
// and starts the background publish loop.
func NewBus(addr string, logger logging.Writer) (*Bus, error) {
	sock, err := nanomsg.NewPubSocket()
	if err != nil {
		return nil, err
	}
	if _, err := sock.Bind(addr); err != nil {
		return nil, err
	}
	if err := sock.SetSendBuffer(pubSocketSendBufferSize); err != nil {
		return nil, err
	}
	b := &Bus{
		logger:  logger,
		sock:    sock,
		pending: make(chan []byte, notificationBufferSize),
	}
	go b.run()
	return b, nil
}

func (b *Bus) run() {
	for msg := range b.pending {
		if _, rv := b.sock.Send(msg, nanomsg.DontWait); rv == syscall.EAGAIN {
			b.logger.Err("eventbus: failed to publish event, subscriber too slow")
		}
	}
}

// PublishDelta encodes and enqueues one state.StateDelta for publication.
// It never blocks the caller (typically state.Publisher's own
// goroutine) beyond the channel send; when the buffer is full the new
// envelope is dropped and an error logged rather than stalling state
// publication.
func (b *Bus) PublishDelta(delta *state.StateDelta) {
	b.seq++
	env := Envelope{Sequence: b.seq}
	_ = delta.ForEachChangedVLAN(func(vd state.VLANDelta) error {
		env.ChangedVLAN = append(env.ChangedVLAN, uint16(vd.ID))
		return nil
	})
	msg, err := json.Marshal(env)
	if err != nil {
		b.logger.Err("eventbus: failed to encode envelope")
		return
	}
	select {
	case b.pending <- msg:
	default:
		b.logger.Err("eventbus: publish queue full, dropping event")
	}
}

// Close releases the pub socket.
func (b *Bus) Close() error {
	close(b.pending)
	return b.sock.Close()
}
