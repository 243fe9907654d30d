// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"os"

	riv "github.com/rivecodec/rivec"
	"github.com/rivecodec/rivec/internal/rivlog"
)

func buildContext(strict, exact bool) riv.Context {
	level := rivlog.LevelWarn
	if verbose {
		level = rivlog.LevelDebug
	}
	logger := rivlog.NewHelper(rivlog.NewFilter(rivlog.NewStdLogger(os.Stderr), rivlog.FilterLevel(level))).With("rivcli")
	return riv.Context{Strict: strict, Exact: exact, Logger: logger}
}
