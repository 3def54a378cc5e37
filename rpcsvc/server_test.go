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
	"context"
	"testing"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/snaproute/fboss-agent/state"
)

func TestDispatchProcessorRespondsUnknownMethod(t *testing.T) {
	h := NewHandler(discardWriter{}, &fakeManager{}, state.NewPublisher(nil))
	d := newDispatchProcessor(h, discardWriter{})

	buf := thrift.NewTMemoryBuffer()
	protoFactory := thrift.NewTBinaryProtocolFactoryConf(&thrift.TConfiguration{})
	proto := protoFactory.GetProtocol(buf)

	ctx := context.Background()
	if err := proto.WriteMessageBegin(ctx, "GetTransceiverInfo", thrift.CALL, 1); err != nil {
		t.Fatalf("failed to write request header: %v", err)
	}
	if err := proto.WriteStructBegin(ctx, "args"); err != nil {
		t.Fatalf("failed to write args struct begin: %v", err)
	}
	if err := proto.WriteFieldStop(ctx); err != nil {
		t.Fatalf("failed to write field stop: %v", err)
	}
	if err := proto.WriteStructEnd(ctx); err != nil {
		t.Fatalf("failed to write args struct end: %v", err)
	}
	if err := proto.WriteMessageEnd(ctx); err != nil {
		t.Fatalf("failed to write request trailer: %v", err)
	}
	if err := proto.Flush(ctx); err != nil {
		t.Fatalf("failed to flush request: %v", err)
	}

	ok, texc := d.Process(ctx, proto, proto)
	if !ok {
		t.Fatalf("expected Process to report the transport as still usable, got texc=%v", texc)
	}

	name, msgType, seqID, err := proto.ReadMessageBegin(ctx)
	if err != nil {
		t.Fatalf("failed to read response header: %v", err)
	}
	if name != "GetTransceiverInfo" || msgType != thrift.EXCEPTION || seqID != 1 {
		t.Fatalf("expected an EXCEPTION response echoing the request name/seq, got name=%s type=%v seq=%d", name, msgType, seqID)
	}

	exc := thrift.NewTApplicationException(0, "")
	if err := exc.Read(ctx, proto); err != nil {
		t.Fatalf("failed to decode the application exception: %v", err)
	}
	if exc.TypeId() != thrift.UNKNOWN_METHOD {
		t.Fatalf("expected UNKNOWN_METHOD, got %v", exc.TypeId())
	}
}
