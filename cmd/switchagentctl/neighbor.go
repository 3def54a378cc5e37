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
	"net/netip"

	"github.com/spf13/cobra"
)

var flushIP string

var neighborCmd = &cobra.Command{
	Use:   "neighbor",
	Short: "Manage neighbor cache entries",
}

var neighborFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Flush a single neighbor entry by IP (requires a running daemon's RPC listener; this prints the request it would send)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ip, err := netip.ParseAddr(flushIP)
		if err != nil {
			return fmt.Errorf("invalid ip %q: %w", flushIP, err)
		}
		fmt.Printf("would flush neighbor entry for %s\n", ip)
		return nil
	},
}

func init() {
	neighborFlushCmd.Flags().StringVar(&flushIP, "ip", "", "IP address to flush")
	neighborCmd.AddCommand(neighborFlushCmd)
	rootCmd.AddCommand(neighborCmd)
}
