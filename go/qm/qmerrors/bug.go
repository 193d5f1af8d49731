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

package qmerrors

import (
	"errors"
	"fmt"
)

// BugPrefix starts the message of every error created by Bug.
const BugPrefix = "QM13001: [BUG] "

// Bug returns an INTERNAL error describing a programming error in the planner.
func Bug(format string, args ...any) error {
	return New(Internal, BugPrefix+fmt.Sprintf(format, args...))
}

// IsBug reports whether err was created by Bug.
func IsBug(err error) bool {
	var f *fundamental
	if !errors.As(err, &f) {
		return false
	}
	return f.code == Internal && len(f.msg) >= len(BugPrefix) && f.msg[:len(BugPrefix)] == BugPrefix
}

// PanicHandler turns a panic carrying an error back into a returned error.
// It must be deferred directly. Panics with non-error values are re-raised.
func PanicHandler(err *error) {
	r := recover()
	if r == nil {
		return
	}
	badness, ok := r.(error)
	if !ok {
		panic(r)
	}
	*err = badness
}
