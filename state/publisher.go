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
package state

// Publisher owns the single update thread: one goroutine draining an
// update queue and serializing every SwitchState publication. All
// mutation of the live root — from the RIB, the neighbor cache, or
// config seeding — goes through Update, never a direct assignment,
// matching spec.md §5's "a dedicated update thread owns all mutations
// of SwitchState".
type Publisher struct {
	current *SwitchState
	reqs    chan publishRequest
	done    chan struct{}
	subs    []chan [2]*SwitchState
}

type publishRequest struct {
	fn   func(*SwitchState) *SwitchState
	resp chan *SwitchState
}

// NewPublisher starts the update-thread goroutine with initial as the
// root state.
func NewPublisher(initial *SwitchState) *Publisher {
	if initial == nil {
		initial = New()
	}
	p := &Publisher{
		current: initial,
		reqs:    make(chan publishRequest),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *Publisher) run() {
	for {
		select {
		case req := <-p.reqs:
			old := p.current
			next := req.fn(old)
			if next == nil {
				next = old
			}
			p.current = next
			if next != old {
				for _, sub := range p.subs {
					select {
					case sub <- [2]*SwitchState{old, next}:
					default:
						// slow subscriber; drop rather than block the
						// update thread, matching the "no operation
						// blocks on I/O while holding a cache mutex"
						// rule extended to the publisher itself.
					}
				}
			}
			if req.resp != nil {
				req.resp <- next
			}
		case <-p.done:
			return
		}
	}
}

// Update enqueues fn to run on the update thread and blocks until it has
// been applied, returning the resulting root. Returning the same
// pointer fn was given is a documented no-op: Publisher will not notify
// subscribers for it.
func (p *Publisher) Update(fn func(*SwitchState) *SwitchState) *SwitchState {
	resp := make(chan *SwitchState, 1)
	p.reqs <- publishRequest{fn: fn, resp: resp}
	return <-resp
}

// Current returns the most recently published root. Safe to call from
// any goroutine; it reflects whatever the update thread last committed,
// not necessarily a pending Update still in flight.
func (p *Publisher) Current() *SwitchState {
	resp := make(chan *SwitchState, 1)
	p.reqs <- publishRequest{fn: func(s *SwitchState) *SwitchState { return s }, resp: resp}
	return <-resp
}

// Subscribe returns a channel delivering every (old, new) pair the
// publisher commits from now on. The channel is buffered; a subscriber
// that falls behind misses notifications rather than stalling the
// update thread.
func (p *Publisher) Subscribe(buffer int) <-chan [2]*SwitchState {
	ch := make(chan [2]*SwitchState, buffer)
	resp := make(chan *SwitchState, 1)
	p.reqs <- publishRequest{
		fn: func(s *SwitchState) *SwitchState {
			p.subs = append(p.subs, ch)
			return s
		},
		resp: resp,
	}
	<-resp
	return ch
}

// Close stops the update thread. No further Update/Current calls may be
// made afterward.
func (p *Publisher) Close() {
	close(p.done)
}
