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
	"github.com/snaproute/fboss-agent/evtstore"
	"github.com/snaproute/fboss-agent/logging"
)

var eventsLimit int

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Dump the most recent operational events from evtstore",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := redisAddr
		if addr == "" {
			cfg, err := config.Load(paramsDir + "/switchagent.yaml")
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			addr = cfg.Endpoints.RedisAddr
		}
		if addr == "" {
			return fmt.Errorf("no redis address configured (set --redis or endpoints.redis_addr)")
		}
		logger, err := logging.NewLogger("switchagentctl", "EVENTS", true)
		if err != nil {
			return err
		}
		store := evtstore.NewStore(addr, logger)
		defer store.Close()
		events, err := store.Recent(eventsLimit)
		if err != nil {
			return fmt.Errorf("reading events: %w", err)
		}
		for _, e := range events {
			fmt.Println(e)
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 50, "Maximum number of events to print")
	rootCmd.AddCommand(eventsCmd)
}
