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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Default()
	if cfg.Neighbor != want.Neighbor {
		t.Fatalf("expected Load of a missing file to return Default(), got %+v", cfg.Neighbor)
	}
}

func TestLoadParsesYAMLAndFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "switchagent.yaml")
	contents := []byte(`
vrfs: [0, 1]
vlans:
  - id: 10
    interfaces: [1, 2]
    static_neighbors:
      - ip: 10.0.0.1
        mac: "aa:bb:cc:dd:ee:ff"
neighbor:
  max_probes: 5
endpoints:
  redis_addr: "127.0.0.1:6379"
`)
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.VRFs) != 2 || cfg.VRFs[0] != 0 || cfg.VRFs[1] != 1 {
		t.Fatalf("expected two parsed VRFs, got %v", cfg.VRFs)
	}
	if len(cfg.VLANs) != 1 || cfg.VLANs[0].ID != 10 || len(cfg.VLANs[0].Interfaces) != 2 {
		t.Fatalf("expected one parsed VLAN with two interfaces, got %+v", cfg.VLANs)
	}
	if len(cfg.VLANs[0].StaticNeighbors) != 1 || cfg.VLANs[0].StaticNeighbors[0].IP != "10.0.0.1" {
		t.Fatalf("expected one static neighbor seed, got %+v", cfg.VLANs[0].StaticNeighbors)
	}
	if cfg.Neighbor.MaxProbes != 5 {
		t.Fatalf("expected the YAML override of max_probes to take effect, got %d", cfg.Neighbor.MaxProbes)
	}
	if cfg.Endpoints.RedisAddr != "127.0.0.1:6379" {
		t.Fatalf("expected the redis endpoint to be parsed, got %q", cfg.Endpoints.RedisAddr)
	}
}

func TestDefaultTimingMatchesDocumentedValues(t *testing.T) {
	cfg := Default()
	if cfg.Neighbor.MaxProbes != 3 {
		t.Fatalf("expected MaxProbes=3, got %d", cfg.Neighbor.MaxProbes)
	}
	if cfg.Neighbor.ReachableBase != 30*time.Second {
		t.Fatalf("expected ReachableBase=30s, got %v", cfg.Neighbor.ReachableBase)
	}
}
