package flow

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
)

// SystemOpener opens URIs with the platform's default handler.
type SystemOpener struct{}

func (SystemOpener) Open(ctx context.Context, uri string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", uri)
	case "linux", "freebsd", "openbsd":
		cmd = exec.CommandContext(ctx, "xdg-open", uri)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", uri)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}

// PrintOpener writes URIs to a writer instead of opening them.
type PrintOpener struct {
	W io.Writer
}

func (o PrintOpener) Open(ctx context.Context, uri string) error {
	_, err := fmt.Fprintln(o.W, uri)
	return err
}
