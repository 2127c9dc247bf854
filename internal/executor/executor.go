// Package executor applies a plan, or merely narrates it.
//
// All three modes iterate the same Plan value; only Execute mode
// touches the filesystem. This is what keeps dry runs honest: there is
// no second code path that could drift from the real one.
package executor

import (
	"fmt"
	"path/filepath"

	"fastsort/internal/fsops"
	"fastsort/internal/logging"
	"fastsort/internal/planner"
)

// Mode selects how a plan is applied.
type Mode string

const (
	// ModePreview renders the plan without logging per-file lines.
	ModePreview Mode = "preview"

	// ModeTest logs every operation as if executing, moving nothing.
	ModeTest Mode = "test"

	// ModeExecute performs the operations.
	ModeExecute Mode = "execute"
)

// OpResult is the outcome of one operation.
type OpResult struct {
	Op planner.PlannedOperation `json:"op"`

	// Err is the failure, empty when the operation succeeded
	Err string `json:"err,omitempty"`
}

// RunResult summarizes an executed (or simulated) plan.
type RunResult struct {
	Mode      Mode       `json:"mode"`
	Completed []OpResult `json:"completed"`
	Failed    []OpResult `json:"failed,omitempty"`
}

// Executor applies plans.
type Executor struct {
	fs  fsops.FS
	log *logging.Logger
}

// New creates an Executor.
func New(filesystem fsops.FS, log *logging.Logger) *Executor {
	return &Executor{fs: filesystem, log: log}
}

// Run applies the plan in the given mode. A failing operation is
// recorded and the run continues; one bad file never aborts the rest.
func (e *Executor) Run(plan *planner.Plan, mode Mode) *RunResult {
	result := &RunResult{Mode: mode}

	for _, op := range plan.Operations {
		if mode != ModeExecute {
			e.narrate(op, mode)
			result.Completed = append(result.Completed, OpResult{Op: op})
			continue
		}

		if err := e.apply(op); err != nil {
			e.log.Error("%s: %v", op.Source, err)
			result.Failed = append(result.Failed, OpResult{Op: op, Err: err.Error()})
			continue
		}
		e.narrate(op, mode)
		result.Completed = append(result.Completed, OpResult{Op: op})
	}

	return result
}

// apply performs one operation for real.
func (e *Executor) apply(op planner.PlannedOperation) error {
	switch op.Kind {
	case planner.OpSkip:
		return nil
	case planner.OpMove:
		if err := e.fs.MkdirAll(filepath.Dir(op.Dest), 0755); err != nil {
			return fmt.Errorf("failed to create destination directory: %w", err)
		}
		// The planner reserved this name; a file appearing here since
		// planning means the world changed under us.
		exists, err := e.fs.Exists(op.Dest)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("destination %s appeared after planning, refusing to overwrite", op.Dest)
		}
		return e.fs.Move(op.Source, op.Dest)
	case planner.OpDeleteDuplicate:
		return e.fs.Remove(op.Source)
	default:
		return fmt.Errorf("unknown operation kind %q", op.Kind)
	}
}

// narrate logs one operation line in the current mode's voice.
func (e *Executor) narrate(op planner.PlannedOperation, mode Mode) {
	if mode == ModePreview {
		return
	}
	prefix := ""
	if mode == ModeTest {
		prefix = "[test] "
	}
	switch op.Kind {
	case planner.OpMove:
		e.log.Info("%smove %s -> %s", prefix, op.Source, op.Dest)
	case planner.OpDeleteDuplicate:
		e.log.Warn("%sdelete %s (%s)", prefix, op.Source, op.Reason)
	case planner.OpSkip:
		e.log.Debug("%sskip %s (%s)", prefix, op.Source, op.Reason)
	}
}
