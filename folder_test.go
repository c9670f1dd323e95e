package iconpress

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

// recordingConfirmer counts acknowledgment pauses instead of blocking.
type recordingConfirmer struct {
	calls []string
}

func (c *recordingConfirmer) Confirm(folder string) {
	c.calls = append(c.calls, folder)
}

type fixture struct {
	root    string
	ledger  *Ledger
	confirm *recordingConfirmer
	proc    *Processor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	ledger := LoadLedger(root, testLogger())
	confirm := &recordingConfirmer{}
	gen := NewGenerator(fakeRenderer{size: RequiredSize}, testLogger())
	proc := NewProcessor(ledger, gen, confirm, testLogger())
	return &fixture{root: root, ledger: ledger, confirm: confirm, proc: proc}
}

// folder creates an icon folder under the fixture root.
func (f *fixture) folder(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(f.root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

// snapshot lists every file under dir with its size, for write detection.
func snapshot(t *testing.T, dir string) map[string]int64 {
	t.Helper()
	files := make(map[string]int64)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files[path] = info.Size()
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return files
}

func variantFiles(t *testing.T, dir, base string) []string {
	t.Helper()
	var out []string
	for _, format := range Formats {
		matches, err := filepath.Glob(filepath.Join(dir, format, base+"_*."+format))
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, matches...)
	}
	return out
}

func TestProcess_FirstConversionSyncsAndRecords(t *testing.T) {
	f := newFixture(t)
	dir := f.folder(t, "arrow")
	writeFile(t, filepath.Join(dir, "arrow.svg"), sampleSVG)

	if err := f.proc.Process(dir); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	// Sync invariant: the XML mirror exists with identical content.
	data, err := os.ReadFile(filepath.Join(dir, "arrow.xml"))
	if err != nil {
		t.Fatalf("Expected the XML mirror to be synthesized: %v", err)
	}
	if string(data) != sampleSVG {
		t.Errorf("XML mirror expected to equal the SVG text. Got %q", string(data))
	}

	// Matrix completeness: 5 sizes x 3 formats.
	if got := len(variantFiles(t, dir, "arrow")); got != 15 {
		t.Errorf("Variant file count expected to be %v. Got %v", 15, got)
	}

	if !f.ledger.Contains("arrow") {
		t.Error("Ledger expected to record the converted folder")
	}
}

func TestProcess_XMLOnlyFolderRestoresSVG(t *testing.T) {
	f := newFixture(t)
	dir := f.folder(t, "house")
	writeFile(t, filepath.Join(dir, "house.xml"), sampleSVG)

	if err := f.proc.Process(dir); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "house.svg"))
	if err != nil {
		t.Fatalf("Expected the SVG master to be synthesized: %v", err)
	}
	if string(data) != sampleSVG {
		t.Errorf("SVG content expected to equal the XML mirror text. Got %q", string(data))
	}
	if got := len(variantFiles(t, dir, "house")); got != 15 {
		t.Errorf("Variant file count expected to be %v. Got %v", 15, got)
	}
}

func TestProcess_LedgeredFolderSkippedWithoutWrites(t *testing.T) {
	f := newFixture(t)
	dir := f.folder(t, "arrow")
	writeFile(t, filepath.Join(dir, "arrow.svg"), sampleSVG)
	if err := f.ledger.Record("arrow"); err != nil {
		t.Fatal(err)
	}

	before := snapshot(t, f.root)
	if err := f.proc.Process(dir); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	after := snapshot(t, f.root)

	if !reflect.DeepEqual(before, after) {
		t.Errorf("Skip expected to leave the tree untouched.\nBefore: %v\nAfter: %v", before, after)
	}
}

func TestProcess_RepeatedRunIsIdempotent(t *testing.T) {
	f := newFixture(t)
	dir := f.folder(t, "arrow")
	writeFile(t, filepath.Join(dir, "arrow.svg"), sampleSVG)

	if err := f.proc.Process(dir); err != nil {
		t.Fatalf("First run returned error: %v", err)
	}
	before := snapshot(t, f.root)

	if err := f.proc.Process(dir); err != nil {
		t.Fatalf("Second run returned error: %v", err)
	}
	after := snapshot(t, f.root)

	if !reflect.DeepEqual(before, after) {
		t.Errorf("Second run expected to change nothing on disk.\nBefore: %v\nAfter: %v", before, after)
	}
}

func TestProcess_EmptyFolderFails(t *testing.T) {
	f := newFixture(t)
	dir := f.folder(t, "empty")

	err := f.proc.Process(dir)

	var srcErr *SourceMissingError
	if !errors.As(err, &srcErr) {
		t.Errorf("Expected a SourceMissingError for an empty folder. Got %v", err)
	}
	if f.ledger.Contains("empty") {
		t.Error("A failed folder must not be recorded in the ledger")
	}
}

func TestProcess_SizeGateBlocksGeneration(t *testing.T) {
	f := newFixture(t)
	dir := f.folder(t, "small")
	writeFile(t, filepath.Join(dir, "small.svg"), svgMarkup("500", "500"))

	err := f.proc.Process(dir)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected a ValidationError. Got %v", err)
	}
	if got := len(variantFiles(t, dir, "small")); got != 0 {
		t.Errorf("No variants expected after a size gate failure. Got %v files", got)
	}
	if len(f.confirm.calls) != 1 || f.confirm.calls[0] != "small" {
		t.Errorf("Confirmer expected to be called once for %q. Got %v", "small", f.confirm.calls)
	}
	if f.ledger.Contains("small") {
		t.Error("A failed folder must not be recorded in the ledger")
	}
}

func TestProcess_SizeGateRejectsNonSquare(t *testing.T) {
	f := newFixture(t)
	dir := f.folder(t, "wide")
	writeFile(t, filepath.Join(dir, "wide.svg"), svgMarkup("800", "500"))

	if err := f.proc.Process(dir); err == nil {
		t.Error("Expected an 800x500 master to fail the size gate")
	}
	if got := len(variantFiles(t, dir, "wide")); got != 0 {
		t.Errorf("No variants expected after a size gate failure. Got %v files", got)
	}
}

func TestProcess_UnledgeredMarkerSkipped(t *testing.T) {
	f := newFixture(t)
	dir := f.folder(t, "arrow")
	writeFile(t, filepath.Join(dir, "arrow.svg"), sampleSVG)
	writeFile(t, filepath.Join(dir, "arrow.updatexml"), "")

	before := snapshot(t, f.root)
	if err := f.proc.Process(dir); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	after := snapshot(t, f.root)

	if !reflect.DeepEqual(before, after) {
		t.Error("An unledgered marker folder must be left untouched")
	}
	if f.ledger.Contains("arrow") {
		t.Error("An unledgered marker folder must stay out of the ledger")
	}
}

func TestProcess_UpdateSVGMarkerConsumed(t *testing.T) {
	f := newFixture(t)
	dir := f.folder(t, "arrow")
	staleSVG := svgMarkup("800", "800")
	freshXML := sampleSVG // differs from staleSVG, proves restoration
	writeFile(t, filepath.Join(dir, "arrow.svg"), staleSVG)
	writeFile(t, filepath.Join(dir, "arrow.xml"), freshXML)
	writeFile(t, filepath.Join(dir, "arrow.updatesvg"), "")
	// Stale variants from the previous conversion.
	for _, format := range Formats {
		outDir := filepath.Join(dir, format)
		if err := os.MkdirAll(outDir, 0755); err != nil {
			t.Fatal(err)
		}
		writeFile(t, filepath.Join(outDir, fmt.Sprintf("arrow_64.%s", format)), "stale")
	}
	if err := f.ledger.Record("arrow"); err != nil {
		t.Fatal(err)
	}

	if err := f.proc.Process(dir); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "arrow.updatesvg")); !os.IsNotExist(err) {
		t.Error("The marker file expected to be consumed")
	}

	data, err := os.ReadFile(filepath.Join(dir, "arrow.svg"))
	if err != nil {
		t.Fatalf("Expected the SVG master to be restored: %v", err)
	}
	if string(data) != freshXML {
		t.Errorf("Restored SVG expected to equal the XML mirror. Got %q", string(data))
	}

	// The stale 64px variants were deleted and the full matrix rebuilt.
	if got := len(variantFiles(t, dir, "arrow")); got != 15 {
		t.Errorf("Variant file count expected to be %v. Got %v", 15, got)
	}
	stale, err := os.ReadFile(filepath.Join(dir, FormatPNG, "arrow_64.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(stale) == "stale" {
		t.Error("The stale variant expected to be replaced")
	}

	if names := f.ledger.Names(); len(names) != 1 || names[0] != "arrow" {
		t.Errorf("Ledger expected to keep exactly one entry for arrow. Got %v", names)
	}
}

func TestProcess_UpdateXMLMarkerConsumed(t *testing.T) {
	f := newFixture(t)
	dir := f.folder(t, "house")
	writeFile(t, filepath.Join(dir, "house.svg"), sampleSVG)
	writeFile(t, filepath.Join(dir, "house.xml"), "stale mirror")
	writeFile(t, filepath.Join(dir, "house.updatexml"), "")
	if err := f.ledger.Record("house"); err != nil {
		t.Fatal(err)
	}

	if err := f.proc.Process(dir); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "house.updatexml")); !os.IsNotExist(err) {
		t.Error("The marker file expected to be consumed")
	}
	data, err := os.ReadFile(filepath.Join(dir, "house.xml"))
	if err != nil {
		t.Fatalf("Expected the XML mirror to be rebuilt: %v", err)
	}
	if string(data) != sampleSVG {
		t.Errorf("Rebuilt XML expected to equal the SVG master. Got %q", string(data))
	}
	if got := len(variantFiles(t, dir, "house")); got != 15 {
		t.Errorf("Variant file count expected to be %v. Got %v", 15, got)
	}
}

func TestProcess_MarkerWithoutStaleSourceFails(t *testing.T) {
	f := newFixture(t)
	dir := f.folder(t, "arrow")
	writeFile(t, filepath.Join(dir, "arrow.updatesvg"), "")
	if err := f.ledger.Record("arrow"); err != nil {
		t.Fatal(err)
	}

	err := f.proc.Process(dir)

	var srcErr *SourceMissingError
	if !errors.As(err, &srcErr) {
		t.Errorf("Expected a SourceMissingError. Got %v", err)
	}
}

func TestProcess_MarkerWithoutMirrorFails(t *testing.T) {
	f := newFixture(t)
	dir := f.folder(t, "arrow")
	writeFile(t, filepath.Join(dir, "arrow.svg"), sampleSVG)
	writeFile(t, filepath.Join(dir, "arrow.updatesvg"), "")
	if err := f.ledger.Record("arrow"); err != nil {
		t.Fatal(err)
	}

	err := f.proc.Process(dir)

	var srcErr *SourceMissingError
	if !errors.As(err, &srcErr) {
		t.Fatalf("Expected a SourceMissingError. Got %v", err)
	}

	// The stale master and the marker are consumed even though the
	// regeneration could not proceed.
	if _, err := os.Stat(filepath.Join(dir, "arrow.svg")); !os.IsNotExist(err) {
		t.Error("The stale SVG expected to be deleted")
	}
	if _, err := os.Stat(filepath.Join(dir, "arrow.updatesvg")); !os.IsNotExist(err) {
		t.Error("The marker file expected to be deleted")
	}
}

func TestProcess_BothMarkersHandledSequentially(t *testing.T) {
	f := newFixture(t)
	dir := f.folder(t, "arrow")
	writeFile(t, filepath.Join(dir, "arrow.svg"), sampleSVG)
	writeFile(t, filepath.Join(dir, "arrow.xml"), sampleSVG)
	writeFile(t, filepath.Join(dir, "arrow.updatesvg"), "")
	writeFile(t, filepath.Join(dir, "arrow.updatexml"), "")
	if err := f.ledger.Record("arrow"); err != nil {
		t.Fatal(err)
	}

	if err := f.proc.Process(dir); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	for _, marker := range []string{"arrow.updatesvg", "arrow.updatexml"} {
		if _, err := os.Stat(filepath.Join(dir, marker)); !os.IsNotExist(err) {
			t.Errorf("Marker %s expected to be consumed", marker)
		}
	}
	for _, src := range []string{"arrow.svg", "arrow.xml"} {
		data, err := os.ReadFile(filepath.Join(dir, src))
		if err != nil {
			t.Fatalf("Expected %s to exist after regeneration: %v", src, err)
		}
		if string(data) != sampleSVG {
			t.Errorf("%s expected to carry the synchronized content", src)
		}
	}
	if got := len(variantFiles(t, dir, "arrow")); got != 15 {
		t.Errorf("Variant file count expected to be %v. Got %v", 15, got)
	}
}
