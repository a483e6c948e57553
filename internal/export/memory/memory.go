// Package memory is a recording WorkbookWriter for tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"spendlog/internal/export"
)

type Recorder struct {
	mu          sync.Mutex
	workbooks   []export.Workbook
	unavailable bool
}

func New() *Recorder { return &Recorder{} }

// NewUnavailable builds a Recorder whose writes all fail with
// export.ErrUnavailable, for exercising the capability-missing path.
func NewUnavailable() *Recorder { return &Recorder{unavailable: true} }

func (r *Recorder) WriteWorkbook(_ context.Context, wb export.Workbook) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unavailable {
		return nil, export.ErrUnavailable
	}
	r.workbooks = append(r.workbooks, wb)
	return []byte(fmt.Sprintf("wb:%d", len(r.workbooks))), nil
}

// Workbooks returns everything written so far.
func (r *Recorder) Workbooks() []export.Workbook {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]export.Workbook(nil), r.workbooks...)
}
