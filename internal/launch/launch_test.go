package launch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"summon-cli/internal/target"
)

// fakeRunner records every invocation and fails those whose command line
// contains a configured fragment.
type fakeRunner struct {
	calls []string
	fail  []string
}

func (r *fakeRunner) record(name string, args []string) error {
	line := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, line)
	for _, f := range r.fail {
		if strings.Contains(line, f) {
			return errors.New("forced failure")
		}
	}
	return nil
}

func (r *fakeRunner) Run(_ context.Context, _ time.Duration, name string, args ...string) error {
	return r.record(name, args)
}

func (r *fakeRunner) Start(_ context.Context, name string, args ...string) error {
	return r.record(name, args)
}

func newLauncher(goos string, r Runner) *Launcher {
	return New(Options{GOOS: goos, Runner: r, Timeout: time.Second})
}

func appTarget(name, desc string) target.Target {
	return target.New(name, target.KindApplication, target.ParseDescriptor(desc))
}

func TestLaunch_DarwinFallbackOrder(t *testing.T) {
	r := &fakeRunner{fail: []string{"open -a"}}
	l := newLauncher("darwin", r)

	res, err := l.Launch(context.Background(), appTarget("Safari", "/Applications/Safari.app"))
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if res.Method != "open path" {
		t.Fatalf("expected fallback to succeed, got method %q", res.Method)
	}
	if len(res.Attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(res.Attempts))
	}
	if res.Attempts[0].Method != "open -a" || res.Attempts[0].Err == nil {
		t.Fatalf("first attempt must be the recorded failure: %+v", res.Attempts[0])
	}
}

func TestLaunch_LinuxChainOrder(t *testing.T) {
	r := &fakeRunner{}
	l := newLauncher("linux", r)

	res, err := l.Launch(context.Background(), appTarget("gimp", "command:gimp"))
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if res.Method != "gtk-launch" {
		t.Fatalf("first method must win when it succeeds, got %q", res.Method)
	}
	if len(r.calls) != 1 || !strings.HasPrefix(r.calls[0], "gtk-launch") {
		t.Fatalf("unexpected calls: %v", r.calls)
	}
}

func TestLaunch_AllMethodsExhausted(t *testing.T) {
	r := &fakeRunner{fail: []string{"gimp"}}
	l := newLauncher("linux", r)

	_, err := l.Launch(context.Background(), appTarget("gimp", "command:gimp"))
	var allFailed *AllFailedError
	if !errors.As(err, &allFailed) {
		t.Fatalf("expected AllFailedError, got %v", err)
	}
	if len(allFailed.Attempts) != 3 {
		t.Fatalf("expected 3 attempts (gtk-launch, direct, detached), got %d", len(allFailed.Attempts))
	}
	if allFailed.Target != "gimp" {
		t.Fatalf("error must carry the target name, got %q", allFailed.Target)
	}
}

func TestLaunch_LinuxFolderUsesXdgOpen(t *testing.T) {
	r := &fakeRunner{}
	l := newLauncher("linux", r)

	folder := target.New("downloads", target.KindFolder, target.LaunchDescriptor{Kind: target.DescPath, Value: "/home/u/Downloads"})
	res, err := l.Launch(context.Background(), folder)
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if res.Method != "xdg-open" {
		t.Fatalf("folders must open via xdg-open, got %q", res.Method)
	}
}

func TestLaunch_WindowsAppIDChain(t *testing.T) {
	r := &fakeRunner{fail: []string{"powershell"}}
	l := newLauncher("windows", r)

	res, err := l.Launch(context.Background(), appTarget("Calculator", "appid:Microsoft.WindowsCalculator_8wekyb3d8bbwe!App"))
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if res.Method != "explorer appsFolder" {
		t.Fatalf("expected explorer fallback, got %q", res.Method)
	}
	if !strings.Contains(r.calls[0], `shell:appsFolder\Microsoft.WindowsCalculator`) {
		t.Fatalf("appsFolder reference missing: %v", r.calls)
	}
}

func TestLaunch_WindowsAppIDDrivePathIsDirect(t *testing.T) {
	r := &fakeRunner{}
	l := newLauncher("windows", r)

	res, err := l.Launch(context.Background(), appTarget("Notepad++", `appid:C:\Program Files\Notepad++\notepad++.exe`))
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if res.Method != "direct executable" {
		t.Fatalf("drive-path app IDs must start directly, got %q", res.Method)
	}
}

func TestLaunch_WindowsPackageFamily(t *testing.T) {
	r := &fakeRunner{}
	l := newLauncher("windows", r)

	res, err := l.Launch(context.Background(), appTarget("Paint", "package:Microsoft.Paint_8wekyb3d8bbwe"))
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if res.Method != "powershell uwp activation" {
		t.Fatalf("unexpected method: %q", res.Method)
	}
	if !strings.Contains(r.calls[0], `Microsoft.Paint_8wekyb3d8bbwe!App`) {
		t.Fatalf("UWP activation reference missing: %v", r.calls)
	}
}

func TestLaunch_WindowsShortcut(t *testing.T) {
	r := &fakeRunner{}
	l := newLauncher("windows", r)

	res, err := l.Launch(context.Background(), appTarget("Firefox", `shortcut:C:\ProgramData\Firefox.lnk`))
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if res.Method != "cmd start shortcut" {
		t.Fatalf("unexpected method: %q", res.Method)
	}
}

func TestLaunch_UnsupportedPlatform(t *testing.T) {
	l := newLauncher("plan9", &fakeRunner{})
	_, err := l.Launch(context.Background(), appTarget("gimp", "/usr/bin/gimp"))
	var allFailed *AllFailedError
	if !errors.As(err, &allFailed) {
		t.Fatalf("expected AllFailedError, got %v", err)
	}
}

func TestLaunch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := newLauncher("linux", &fakeRunner{})
	if _, err := l.Launch(ctx, appTarget("gimp", "command:gimp")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPickExecutable(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"unins000.exe", "setup.exe", "gimp-2.10.exe", "helper.exe"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	exe, ok := pickExecutable(dir, "gimp")
	if !ok {
		t.Fatal("expected an executable to be picked")
	}
	if filepath.Base(exe) != "gimp-2.10.exe" {
		t.Fatalf("token overlap must prefer the matching binary, got %q", exe)
	}
}

func TestPickExecutable_AllInstallers(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"setup.exe", "updater.exe"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if _, ok := pickExecutable(dir, "thing"); ok {
		t.Fatal("installer-named binaries must never be picked")
	}
}
