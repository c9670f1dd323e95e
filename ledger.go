package iconpress

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// LedgerFile is the name of the hidden conversion history file kept inside
// the icons root.
const LedgerFile = ".converted"

// Ledger is the persisted record of icon folders that completed conversion.
// It is the sole cross-run memory of the pipeline: a folder name is present
// iff its last processing attempt materialized the full variant matrix. The
// ledger keys on folder names, not content hashes, so editing a master
// without dropping an update marker does not trigger reconversion.
type Ledger struct {
	path  string
	names map[string]struct{}
	log   *slog.Logger
}

// LoadLedger reads the ledger file inside root. A missing or unreadable file
// yields an empty ledger; conversion history is advisory and must never
// block a run.
func LoadLedger(root string, logger *slog.Logger) *Ledger {
	l := &Ledger{
		path:  filepath.Join(root, LedgerFile),
		names: make(map[string]struct{}),
		log:   logger,
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			l.log.Info("no previous conversion history found")
		} else {
			l.log.Warn("unreadable conversion ledger, treating as empty", "path", l.path, "error", err)
		}
		return l
	}

	for _, line := range strings.Split(string(data), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			l.names[name] = struct{}{}
		}
	}
	l.log.Info("loaded conversion history", "entries", len(l.names))

	return l
}

// Contains reports whether name has a completed conversion on record.
func (l *Ledger) Contains(name string) bool {
	_, ok := l.names[name]
	return ok
}

// Len returns the number of recorded folder names.
func (l *Ledger) Len() int { return len(l.names) }

// Names returns the recorded folder names in sorted order.
func (l *Ledger) Names() []string {
	names := make([]string, 0, len(l.names))
	for name := range l.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Record adds name and persists the ledger immediately. The whole file is
// rewritten sorted rather than appended, keeping the on-disk form
// deterministic and de-duplicated. A write failure is returned to the caller
// so a conversion is never reported successful with an unrecorded ledger.
func (l *Ledger) Record(name string) error {
	l.names[name] = struct{}{}
	return l.save()
}

func (l *Ledger) save() error {
	var sb strings.Builder
	for _, name := range l.Names() {
		sb.WriteString(name)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(l.path, []byte(sb.String()), 0644); err != nil {
		return errors.Wrap(err, "unable to persist the conversion ledger")
	}
	return nil
}
