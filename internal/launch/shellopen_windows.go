//go:build windows

package launch

import (
	"context"

	"golang.org/x/sys/windows"
)

// shellOpen hands ref to the shell's "open" verb, the same path the Start
// Menu uses. It accepts paths, shortcuts, and shell: references.
func shellOpen(ctx context.Context, _ Runner, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(ref)
	if err != nil {
		return err
	}
	return windows.ShellExecute(0, verb, file, nil, nil, windows.SW_SHOWNORMAL)
}
