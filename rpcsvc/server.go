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
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/snaproute/fboss-agent/logging"
)

// Server wraps a thrift.TSimpleServer bound to a Handler. There is no
// .thrift IDL generator in this repo (spec.md's Non-goal), so the
// processor below is hand-written rather than codegen'd; it registers no
// per-RPC TProcessorFunction and answers every incoming call with an
// UNKNOWN_METHOD application exception.
type Server struct {
	handler   *Handler
	logger    logging.Writer
	transport thrift.TServerTransport
	inner     *thrift.TSimpleServer
}

// NewServer binds a thrift socket at addr and wires it to handler.
func NewServer(addr string, handler *Handler, logger logging.Writer) (*Server, error) {
	transport, err := thrift.NewTServerSocket(addr)
	if err != nil {
		return nil, fmt.Errorf("rpcsvc: unable to bind %s: %w", addr, err)
	}
	protoFactory := thrift.NewTBinaryProtocolFactoryConf(&thrift.TConfiguration{})
	transFactory := thrift.NewTTransportFactory()
	processor := newDispatchProcessor(handler, logger)
	inner := thrift.NewTSimpleServer4(processor, transport, transFactory, protoFactory)
	return &Server{handler: handler, logger: logger, transport: transport, inner: inner}, nil
}

// Serve blocks, accepting and servicing RPCs until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.inner.Stop()
	}()
	s.logger.Info("rpcsvc: thrift server listening")
	return s.inner.Serve()
}

// dispatchProcessor implements thrift.TProcessor in place of a real
// IDL-generated processor. It does not call any Handler method.
type dispatchProcessor struct {
	handler *Handler
	logger  logging.Writer
}

func newDispatchProcessor(handler *Handler, logger logging.Writer) *dispatchProcessor {
	return &dispatchProcessor{handler: handler, logger: logger}
}

// ProcessorMap and AddToProcessorMap satisfy thrift.TProcessor's
// extension points; this dispatcher has no sub-processors to add.
func (d *dispatchProcessor) ProcessorMap() map[string]thrift.TProcessorFunction {
	return map[string]thrift.TProcessorFunction{}
}

func (d *dispatchProcessor) AddToProcessorMap(name string, fn thrift.TProcessorFunction) {}

// Process reads one request's message header to learn the RPC name,
// logs it, skips the argument struct, and replies with an UNKNOWN_METHOD
// application exception: the wire argument/result structs are
// IDL-generator output, out of scope per the Non-goal.
// GetTransceiverInfo/CustomizeTransceiver/GetRawDOMData/SyncPorts are
// reachable only by calling the Handler directly in-process.
func (d *dispatchProcessor) Process(ctx context.Context, in, out thrift.TProtocol) (bool, thrift.TException) {
	name, _, seqID, err := in.ReadMessageBegin(ctx)
	if err != nil {
		return false, thrift.NewTApplicationException(thrift.PROTOCOL_ERROR, err.Error())
	}
	d.logger.Debug(fmt.Sprintln("rpcsvc: dispatching", name, "seq", seqID))
	if err := in.Skip(ctx, thrift.STRUCT); err != nil {
		return false, thrift.NewTApplicationException(thrift.PROTOCOL_ERROR, err.Error())
	}
	if err := in.ReadMessageEnd(ctx); err != nil {
		return false, thrift.NewTApplicationException(thrift.PROTOCOL_ERROR, err.Error())
	}

	exc := thrift.NewTApplicationException(thrift.UNKNOWN_METHOD, "rpcsvc: "+name+" has no generated wire stub")
	if err := out.WriteMessageBegin(ctx, name, thrift.EXCEPTION, seqID); err != nil {
		return false, thrift.NewTApplicationException(thrift.PROTOCOL_ERROR, err.Error())
	}
	if err := exc.Write(ctx, out); err != nil {
		return false, thrift.NewTApplicationException(thrift.PROTOCOL_ERROR, err.Error())
	}
	if err := out.WriteMessageEnd(ctx); err != nil {
		return false, thrift.NewTApplicationException(thrift.PROTOCOL_ERROR, err.Error())
	}
	if err := out.Flush(ctx); err != nil {
		return false, thrift.NewTApplicationException(thrift.PROTOCOL_ERROR, err.Error())
	}
	return true, nil
}
