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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snaproute/fboss-agent/config"
	"github.com/snaproute/fboss-agent/route"
	"github.com/snaproute/fboss-agent/state"
)

var (
	ribVRF    uint32
	ribFamily string
)

var ribCmd = &cobra.Command{
	Use:   "rib",
	Short: "Inspect RIB/FIB state",
}

var ribShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Check that a VRF is configured (offline: reads config, does not dial a running daemon, prints no routes)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(paramsDir + "/switchagent.yaml")
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		found := false
		for _, v := range cfg.VRFs {
			if v == ribVRF {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("vrf %d is not configured", ribVRF)
		}
		family := route.FamilyV4
		if ribFamily == "v6" {
			family = route.FamilyV6
		}
		fmt.Printf("VRF %d (%s): no live daemon connection configured; use rpcsvc.Handler.SyncPorts / a future GetRoutes RPC for live state.\n", ribVRF, familyLabel(family))
		return nil
	},
}

func familyLabel(f route.Family) string {
	if f == route.FamilyV6 {
		return "ipv6"
	}
	return "ipv4"
}

var ribDeltaCmd = &cobra.Command{
	Use:   "delta",
	Short: "Describe what a StateDelta walk reports between two empty states (smoke test of the delta walker wiring)",
	RunE: func(cmd *cobra.Command, args []string) error {
		old := state.New()
		next := state.New()
		delta := state.NewStateDelta(old, next)
		count := 0
		_ = delta.ForEachChangedVLAN(func(vd state.VLANDelta) error {
			count++
			return nil
		})
		fmt.Printf("changed VLANs: %d\n", count)
		return nil
	},
}

func init() {
	ribShowCmd.Flags().Uint32Var(&ribVRF, "vrf", 0, "VRF id")
	ribShowCmd.Flags().StringVar(&ribFamily, "family", "v4", "v4 or v6")
	ribCmd.AddCommand(ribShowCmd)
	ribCmd.AddCommand(ribDeltaCmd)
	rootCmd.AddCommand(ribCmd)
}
