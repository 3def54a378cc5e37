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

// switchagentctl is the operator CLI: introspect RIB/FIB, flush
// neighbor entries, dump recent operational events. Grounded on
// hsnlab-fib-trie-cache/cmd/fibctl's cobra layout (one file per
// subcommand, package-level persistent flags) and
// aldrin-isaac-newtron/cmd/newtron's command registration convention.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	paramsDir string
	redisAddr string
)

var rootCmd = &cobra.Command{
	Use:   "switchagentctl",
	Short: "operator CLI for switchagent",
	Long:  `switchagentctl inspects and manipulates a switchagent instance's RIB/FIB, neighbor cache, and operational event log.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&paramsDir, "params", "p", "./params", "Params directory (reads switchagent.yaml)")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "Override the evtstore redis address from config")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
