package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	drawout "github.com/Aquid0/Prompt-Heatmap/internal/modules/draw/port/out"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/vault"
)

type OSNoteOpener struct {
	fs *vault.FS
}

func NewOSNoteOpener(fs *vault.FS) drawout.NoteOpener {
	return &OSNoteOpener{fs: fs}
}

func (o *OSNoteOpener) Open(_ context.Context, rel string) error {
	target, err := o.fs.Abs(rel)
	if err != nil {
		return err
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("opening notes is not supported on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", rel, err)
	}
	return nil
}
