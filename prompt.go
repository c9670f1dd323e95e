package iconpress

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/tberndt/iconpress/utils"
)

// Confirmer solicits operator acknowledgment when a folder fails its size
// validation. The run blocks on Confirm until the pause is dismissed; the
// folder is reported failed either way.
type Confirmer interface {
	Confirm(folder string)
}

// StdinConfirmer pauses the whole run until the operator presses enter. A
// non-terminal stdin dismisses immediately so piped or scripted runs never
// hang.
type StdinConfirmer struct {
	In  *os.File
	Out io.Writer
}

func (c *StdinConfirmer) Confirm(folder string) {
	frame := strings.Repeat("=", 60)
	fmt.Fprintf(c.Out, "\n%s\n", frame)
	fmt.Fprintf(c.Out, "%s\n", utils.DecorateText("processing paused for: "+folder, utils.ErrorMessage))
	fmt.Fprintf(c.Out, "%s\n", frame)

	if !term.IsTerminal(int(c.In.Fd())) {
		return
	}

	fmt.Fprint(c.Out, "Press enter to continue...")
	// An interrupted or closed stdin counts as a dismissal.
	_, _ = bufio.NewReader(c.In).ReadString('\n')
}

// AutoConfirmer dismisses every pause without blocking, for headless runs.
type AutoConfirmer struct {
	Log *slog.Logger
}

func (c AutoConfirmer) Confirm(folder string) {
	c.Log.Warn("validation pause auto-dismissed", "folder", folder)
}
