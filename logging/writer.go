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

// Package logging wraps logrus behind the Writer interface, so call
// sites across the agent read exactly like the teacher's
// utils/logging.Writer (server.logger.Err(fmt.Sprintln(...)), ...) while
// the implementation is a real third-party structured logger rather
// than a hand-rolled syslog shim.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Writer is the logging surface every server/cache/updater in this
// agent holds as server.logger / cache.logger.
type Writer interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warning(args ...interface{})
	Err(args ...interface{})
	Alert(args ...interface{})
}

type logrusWriter struct {
	entry *logrus.Entry
}

// NewLogger constructs a Writer tagged with component and module, e.g.
// NewLogger("switchagent", "RIB"). toConsole also attaches a stderr
// hook so local runs see log lines without a syslog collector.
func NewLogger(component, module string, toConsole bool) (Writer, error) {
	base := logrus.New()
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if toConsole {
		base.SetOutput(os.Stderr)
	}
	entry := base.WithFields(logrus.Fields{
		"component": component,
		"module":    module,
	})
	return &logrusWriter{entry: entry}, nil
}

func (w *logrusWriter) Debug(args ...interface{})   { w.entry.Debug(args...) }
func (w *logrusWriter) Info(args ...interface{})    { w.entry.Info(args...) }
func (w *logrusWriter) Warning(args ...interface{}) { w.entry.Warning(args...) }
func (w *logrusWriter) Err(args ...interface{})     { w.entry.Error(args...) }
func (w *logrusWriter) Alert(args ...interface{})   { w.entry.Fatal(args...) }
