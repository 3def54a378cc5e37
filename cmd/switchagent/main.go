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

// switchagent is the daemon entry point, grounded on bgp/main.go's and
// (the teacher's now-superseded) rib/ribmain.go's startup sequence:
// flag-based params directory, logging.NewLogger, signal handling, and
// a profile.Start() pprof hook -- generalized here to wire the RIB and
// neighbor cores plus every domain-stack collaborator instead of one
// routing protocol's server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/netip"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/davecheney/profile"

	"github.com/snaproute/fboss-agent/config"
	"github.com/snaproute/fboss-agent/eventbus"
	"github.com/snaproute/fboss-agent/evtstore"
	"github.com/snaproute/fboss-agent/hwswitch"
	"github.com/snaproute/fboss-agent/logging"
	"github.com/snaproute/fboss-agent/neighbor"
	"github.com/snaproute/fboss-agent/pktio"
	"github.com/snaproute/fboss-agent/rib"
	"github.com/snaproute/fboss-agent/route"
	"github.com/snaproute/fboss-agent/rpcsvc"
	"github.com/snaproute/fboss-agent/state"
)

// staticResolver is the minimal pktio.InterfaceResolver this daemon
// hands to pktio. main creates it empty and nothing populates it from
// config, so every interface lookup misses; a real deployment would
// instead learn interface->NIC bindings from the hardware collaborator.
type staticResolver struct {
	names map[route.InterfaceID]string
	macs  map[route.InterfaceID][]byte
	addrs map[route.InterfaceID]map[route.Family]netip.Addr
}

func (r *staticResolver) IfName(intf route.InterfaceID) (string, bool) {
	n, ok := r.names[intf]
	return n, ok
}

func (r *staticResolver) IfMAC(intf route.InterfaceID) (mac net.HardwareAddr, ok bool) {
	m, ok := r.macs[intf]
	return m, ok
}

func (r *staticResolver) IfAddr(intf route.InterfaceID, family route.Family) (netip.Addr, bool) {
	byFamily, ok := r.addrs[intf]
	if !ok {
		return netip.Addr{}, false
	}
	a, ok := byFamily[family]
	return a, ok
}

func newStaticResolver() *staticResolver {
	return &staticResolver{
		names: make(map[route.InterfaceID]string),
		macs:  make(map[route.InterfaceID][]byte),
		addrs: make(map[route.InterfaceID]map[route.Family]netip.Addr),
	}
}

func main() {
	defer profile.Start(profile.CPUProfile).Stop()

	fmt.Println("Starting switchagent daemon")
	paramsDir := flag.String("params", "./params", "Params directory")
	flag.Parse()

	logger, err := logging.NewLogger("switchagentd", "AGENT", true)
	if err != nil {
		fmt.Println("Failed to start the logger. Nothing will be logged...")
		os.Exit(1)
	}
	logger.Info("Started the logger successfully.")

	cfg, err := config.Load(filepath.Join(*paramsDir, "switchagent.yaml"))
	if err != nil {
		logger.Err(fmt.Sprintln("Failed to load config:", err))
		os.Exit(1)
	}

	publisher := state.NewPublisher(state.New())
	ribManager := rib.NewManager()
	for _, vrf := range cfg.VRFs {
		ribManager.RegisterVRF(route.VRFID(vrf))
	}

	resolver := newStaticResolver()
	sender := pktio.NewSender(resolver, logger)
	dev := hwswitch.NewDevSwitch(nil, 64)

	var store *evtstore.Store
	if cfg.Endpoints.RedisAddr != "" {
		store = evtstore.NewStore(cfg.Endpoints.RedisAddr, logger)
	}
	// store may be a nil *evtstore.Store; assigning it directly into a
	// neighbor.Recorder would produce a non-nil interface wrapping a nil
	// pointer, so rec is only set from within the non-nil branch.
	var rec neighbor.Recorder
	if store != nil {
		rec = store
		ribManager.SetRecorder(store)
	}

	neighborCfg := neighbor.Config{
		MaxProbes:     cfg.Neighbor.MaxProbes,
		ReachableBase: cfg.Neighbor.ReachableBase,
		StaleInterval: cfg.Neighbor.StaleInterval,
		ProbeInterval: cfg.Neighbor.ProbeInterval,
	}
	updater := neighbor.NewUpdater(publisher, neighborCfg, sender, dev, rec)

	stop := make(chan struct{})
	go updater.Run(stop)

	var bus *eventbus.Bus
	if cfg.Endpoints.NanomsgPubAddr != "" {
		bus, err = eventbus.NewBus(cfg.Endpoints.NanomsgPubAddr, logger)
		if err != nil {
			logger.Err(fmt.Sprintln("Failed to start eventbus:", err))
		} else {
			sub := publisher.Subscribe(16)
			go func() {
				for pair := range sub {
					bus.PublishDelta(state.NewStateDelta(pair[0], pair[1]))
				}
			}()
		}
	}

	var rpcServer *rpcsvc.Server
	if cfg.Endpoints.ThriftListen != "" {
		handler := rpcsvc.NewHandler(logger, nil, publisher)
		rpcServer, err = rpcsvc.NewServer(cfg.Endpoints.ThriftListen, handler, logger)
		if err != nil {
			logger.Err(fmt.Sprintln("Failed to start thrift server:", err))
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go func() {
				if err := rpcServer.Serve(ctx); err != nil {
					logger.Err(fmt.Sprintln("thrift server exited:", err))
				}
			}()
		}
	}

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	go signalHandler(sigChannel, stop, bus, store, logger)

	logger.Info("switchagent daemon running")
	select {}
}

func signalHandler(sigChannel <-chan os.Signal, stop chan<- struct{}, bus *eventbus.Bus, store *evtstore.Store, logger logging.Writer) {
	sig := <-sigChannel
	logger.Info(fmt.Sprintln("switchagent: received signal", sig, "shutting down"))
	close(stop)
	if bus != nil {
		bus.Close()
	}
	if store != nil {
		store.Close()
	}
	os.Exit(0)
}
