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

// Package config loads the switch agent's static configuration: VRF
// list, per-VLAN interfaces and static neighbor seeds, neighbor cache
// timing knobs, and collaborator endpoints. YAML-based, grounded on
// aldrin-isaac-newtron's pkg/settings Load/LoadFrom convention but
// backed by gopkg.in/yaml.v3 rather than encoding/json, per SPEC_FULL's
// domain-stack wiring.
//
// This is operator-facing static config, distinct from the operational
// event persistence evtstore owns — the spec's persistence Non-goal
// concerns the former, not the latter.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// StaticNeighbor seeds a neighbor cache entry at startup, before any
// ARP/NDP traffic has been observed.
type StaticNeighbor struct {
	IP  string `yaml:"ip"`
	MAC string `yaml:"mac"`
}

// VLANConfig describes one configured VLAN: its attached interfaces and
// any statically seeded neighbors.
type VLANConfig struct {
	ID              uint16           `yaml:"id"`
	Interfaces      []int32          `yaml:"interfaces"`
	StaticNeighbors []StaticNeighbor `yaml:"static_neighbors,omitempty"`
}

// NeighborTiming carries the cache-wide knobs spec.md §4.4 parameterizes
// the state machine with.
type NeighborTiming struct {
	MaxProbes         uint8         `yaml:"max_probes"`
	ReachableBase     time.Duration `yaml:"reachable_base"`
	StaleInterval     time.Duration `yaml:"stale_interval"`
	ProbeInterval     time.Duration `yaml:"probe_interval"`
}

// Endpoints carries the addresses of every out-of-process collaborator
// this agent dials or listens on.
type Endpoints struct {
	PcapDevice      string `yaml:"pcap_device"`
	ThriftListen    string `yaml:"thrift_listen"`
	NanomsgPubAddr  string `yaml:"nanomsg_pub_addr"`
	RedisAddr       string `yaml:"redis_addr"`
}

// Config is the switch agent's full static configuration.
type Config struct {
	VRFs      []uint32       `yaml:"vrfs"`
	VLANs     []VLANConfig   `yaml:"vlans"`
	Neighbor  NeighborTiming `yaml:"neighbor"`
	Endpoints Endpoints      `yaml:"endpoints"`
}

// Default returns a Config with the timing knobs spec.md §4.4 and §8
// assume in their examples (30s reachable base, 3 max probes).
func Default() Config {
	return Config{
		Neighbor: NeighborTiming{
			MaxProbes:     3,
			ReachableBase: 30 * time.Second,
			StaleInterval: 10 * time.Second,
			ProbeInterval: 1 * time.Second,
		},
	}
}

// Load reads and parses a YAML config file at path, filling unset
// fields from Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
