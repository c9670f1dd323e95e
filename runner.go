package iconpress

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Report aggregates the per-folder outcomes of one conversion pass.
type Report struct {
	Succeeded int
	Failed    int
	Failures  map[string]error
}

// OK reports whether the pass processed at least one folder and none of
// them failed.
func (r *Report) OK() bool {
	return r.Failed == 0 && r.Succeeded > 0
}

// Runner enumerates the icon folders under the icons root and drives the
// folder processor over each of them exactly once. There are no retries; a
// failed folder stays eligible for the next pass through its absence from
// the ledger.
type Runner struct {
	Root      string
	Processor *Processor
	log       *slog.Logger
}

// NewRunner wires a run controller for the given icons root.
func NewRunner(root string, proc *Processor, logger *slog.Logger) *Runner {
	return &Runner{Root: root, Processor: proc, log: logger}
}

// Run performs a single name-sorted pass over the immediate subdirectories
// of the icons root. Folder failures are tallied, never propagated; only an
// unreadable root aborts the pass.
func (r *Runner) Run() (*Report, error) {
	entries, err := os.ReadDir(r.Root)
	if err != nil {
		return nil, &SetupError{Reason: "unable to read the icons root " + r.Root, Err: err}
	}

	var folders []string
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, entry.Name())
		}
	}
	sort.Strings(folders)

	if len(folders) == 0 {
		r.log.Warn("no icon folders found", "root", r.Root)
	}

	report := &Report{Failures: make(map[string]error)}
	for _, name := range folders {
		r.log.Info("processing folder", "folder", name)
		if err := r.Processor.Process(filepath.Join(r.Root, name)); err != nil {
			r.log.Error("folder failed", "folder", name, "error", err)
			report.Failed++
			report.Failures[name] = err
			continue
		}
		report.Succeeded++
	}

	r.log.Info("conversion complete", "successful", report.Succeeded, "failed", report.Failed)
	return report, nil
}
