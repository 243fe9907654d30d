// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import (
	"os"

	"github.com/rivecodec/rivec/internal/rivlog"
)

// MaxDefaultRecordsCount bounds the number of records a single chunk will
// decode before the reader refuses to continue, the scene-graph analogue of
// the teacher's MaxDefaultCOFFSymbolsCount / MaxDefaultRelocEntriesCount
// guards against a corrupt length driving unbounded work.
const MaxDefaultRecordsCount = 1 << 20

// Context carries every run-time toggle the codec needs, in place of package
// globals (per the "pass as a context struct" design note). A zero-value
// Context is valid and behaves leniently with a discarding logger.
type Context struct {
	// Strict raises schema violations and unresolved references from
	// warning to error severity in the Report, and makes EOF mid-record
	// fail the decode with a returned error.
	Strict bool

	// Exact enables exact-mode capture on decode and byte-faithful
	// reconstruction on encode.
	Exact bool

	// MaxRecords bounds records decoded per chunk. Zero means
	// MaxDefaultRecordsCount.
	MaxRecords int

	// Logger receives diagnostic output. Nil means a discarding logger.
	Logger *rivlog.Helper
}

// maxRecords returns ctx.MaxRecords or the default when unset.
func (ctx Context) maxRecords() int {
	if ctx.MaxRecords <= 0 {
		return MaxDefaultRecordsCount
	}
	return ctx.MaxRecords
}

// log returns ctx.Logger or a discarding Helper if none was set.
func (ctx Context) log() *rivlog.Helper {
	if ctx.Logger != nil {
		return ctx.Logger
	}
	return rivlog.NewHelper(rivlog.NewFilter(rivlog.NewStdLogger(os.Stderr), rivlog.FilterLevel(rivlog.LevelError+1)))
}

// logIssue emits issue through ctx's logger at a level matching its
// severity, alongside the accumulation onto a Report; decode/validate
// callers that hold a Report already call this right after report.Add.
func logIssue(ctx Context, issue Issue) {
	switch issue.Severity {
	case SeverityError:
		ctx.log().Errorf("%s", issue.String())
	case SeverityWarning:
		ctx.log().Warnf("%s", issue.String())
	default:
		ctx.log().Debugf("%s", issue.String())
	}
}
