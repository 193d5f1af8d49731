/*
Copyright 2026 The QueryMesh Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package log is the logging facade used by querymesh binaries and libraries.
//
// Messages go to glog unless --log-fmt is set explicitly, in which case they
// are emitted as structured slog records.
package log

import (
	"github.com/golang/glog"
	"github.com/spf13/pflag"

	"querymesh.io/querymesh/go/qm/utils"
)

// Printf style helpers, always routed to glog.
var (
	Infof    = glog.Infof
	Warningf = glog.Warningf
	Errorf   = glog.Errorf
	Flush    = glog.Flush
)

// V reports whether verbose logging at the given level is enabled.
func V(level glog.Level) glog.Verbose {
	return glog.V(level)
}

// RegisterFlags installs the structured logging flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	utils.SetFlagStringVar(fs, &logFormat, "log-fmt", "json", "format for structured logging output: json, logfmt or console")
	utils.SetFlagStringVar(fs, &logLevel, "log-level", "info", "minimum structured logging level: debug, info, warn or error")
}
