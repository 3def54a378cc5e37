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

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerTagsComponentAndModule(t *testing.T) {
	w, err := NewLogger("switchagent", "RIB", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lw, ok := w.(*logrusWriter)
	if !ok {
		t.Fatalf("expected NewLogger to return a *logrusWriter")
	}

	var buf bytes.Buffer
	lw.entry.Logger.SetOutput(&buf)
	lw.entry.Logger.SetLevel(logrus.DebugLevel)

	lw.Info("hello")
	out := buf.String()
	if !strings.Contains(out, "component=switchagent") || !strings.Contains(out, "module=RIB") {
		t.Fatalf("expected the log line to carry component/module fields, got %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected the log line to carry the message, got %q", out)
	}
}

func TestWriterLevelsMapToLogrus(t *testing.T) {
	w, _ := NewLogger("switchagent", "neighbor", false)
	lw := w.(*logrusWriter)

	var buf bytes.Buffer
	lw.entry.Logger.SetOutput(&buf)
	lw.entry.Logger.SetLevel(logrus.DebugLevel)

	lw.Debug("d")
	lw.Warning("w")
	lw.Err("e")

	out := buf.String()
	for _, want := range []string{"level=debug", "level=warning", "level=error"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got %q", want, out)
		}
	}
}
