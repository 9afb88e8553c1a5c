package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"summon-cli/internal/target"
)

// windowsProvider prefers structured PowerShell enumeration (Start apps and
// packaged apps) and falls back to scanning Start Menu shortcuts when the
// structured queries produce nothing.
type windowsProvider struct {
	opts Options
}

func (p *windowsProvider) Applications(ctx context.Context) ([]Raw, []SourceError) {
	var raws []Raw
	var errs []SourceError

	structured := 0

	out, err := runCommand(ctx, p.opts.timeout(), "powershell", "-Command",
		"Get-StartApps | ConvertTo-Json")
	if err != nil {
		p.opts.logger().Warn("Get-StartApps enumeration failed", "err", err)
		errs = append(errs, SourceError{Source: "Get-StartApps", Err: err})
	} else {
		apps, perr := parseStartApps(out)
		if perr != nil {
			errs = append(errs, SourceError{Source: "Get-StartApps", Err: perr})
		} else {
			raws = append(raws, apps...)
			structured += len(apps)
		}
	}

	out, err = runCommand(ctx, p.opts.timeout(), "powershell", "-Command",
		"Get-AppxPackage | Where-Object {$_.Name -notlike '*Microsoft.VCLibs*' -and $_.Name -notlike '*Microsoft.NET*'} | Select-Object Name, PackageFamilyName | ConvertTo-Json")
	if err != nil {
		p.opts.logger().Warn("Get-AppxPackage enumeration failed", "err", err)
		errs = append(errs, SourceError{Source: "Get-AppxPackage", Err: err})
	} else {
		pkgs, perr := parseAppxPackages(out)
		if perr != nil {
			errs = append(errs, SourceError{Source: "Get-AppxPackage", Err: perr})
		} else {
			raws = append(raws, pkgs...)
			structured += len(pkgs)
		}
	}

	// Shortcut scan runs as fallback when the structured queries came up
	// empty; dedup order keeps structured results authoritative otherwise.
	if structured == 0 {
		shortcuts, serrs := scanStartMenu(startMenuDirs(), p.newShortcutResolver(ctx))
		raws = append(raws, shortcuts...)
		errs = append(errs, serrs...)
	}

	return raws, errs
}

func (p *windowsProvider) Folders(ctx context.Context) ([]Raw, []SourceError) {
	return wellKnownFolders(p.opts)
}

// parseStartApps decodes `Get-StartApps | ConvertTo-Json` output. PowerShell
// emits a bare object instead of an array when there is a single result.
func parseStartApps(data []byte) ([]Raw, error) {
	type startApp struct {
		Name  string `json:"Name"`
		AppID string `json:"AppID"`
	}
	apps, err := decodeObjectOrArray[startApp](data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse Get-StartApps output: %w", err)
	}

	var out []Raw
	for _, a := range apps {
		name := strings.TrimSpace(a.Name)
		id := strings.TrimSpace(a.AppID)
		if len(name) <= 1 || id == "" {
			continue
		}
		out = append(out, Raw{
			Name:       name,
			Kind:       target.KindApplication,
			Descriptor: target.LaunchDescriptor{Kind: target.DescAppID, Value: id},
		})
	}
	return out, nil
}

// parseAppxPackages decodes `Get-AppxPackage ... | ConvertTo-Json` output.
// The display name is the last dot-segment of the package name, which is the
// readable part of identifiers like "Microsoft.WindowsCalculator".
func parseAppxPackages(data []byte) ([]Raw, error) {
	type appxPackage struct {
		Name              string `json:"Name"`
		PackageFamilyName string `json:"PackageFamilyName"`
	}
	pkgs, err := decodeObjectOrArray[appxPackage](data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse Get-AppxPackage output: %w", err)
	}

	var out []Raw
	for _, p := range pkgs {
		family := strings.TrimSpace(p.PackageFamilyName)
		name := strings.TrimSpace(p.Name)
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
		if len(name) <= 1 || family == "" {
			continue
		}
		out = append(out, Raw{
			Name:       name,
			Kind:       target.KindApplication,
			Descriptor: target.LaunchDescriptor{Kind: target.DescPackageFamily, Value: family},
		})
	}
	return out, nil
}

func decodeObjectOrArray[T any](data []byte) ([]T, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []T
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var one T
	if err := json.Unmarshal([]byte(trimmed), &one); err != nil {
		return nil, err
	}
	return []T{one}, nil
}

func startMenuDirs() []string {
	var dirs []string
	if appData := os.Getenv("APPDATA"); appData != "" {
		dirs = append(dirs, filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs"))
	}
	if programData := os.Getenv("ProgramData"); programData != "" {
		dirs = append(dirs, filepath.Join(programData, "Microsoft", "Windows", "Start Menu", "Programs"))
	} else {
		dirs = append(dirs, `C:\ProgramData\Microsoft\Windows\Start Menu\Programs`)
	}
	return dirs
}

// shortcutResolver maps a .lnk path to its target path, or "" when the
// shortcut cannot be resolved.
type shortcutResolver func(path string) string

// newShortcutResolver reads shortcut targets through WScript.Shell. The
// provider already shells out to PowerShell for enumeration, so resolution
// reuses the same subprocess path.
func (p *windowsProvider) newShortcutResolver(ctx context.Context) shortcutResolver {
	return func(path string) string {
		out, err := runCommand(ctx, p.opts.timeout(), "powershell", "-Command",
			fmt.Sprintf(`(New-Object -ComObject WScript.Shell).CreateShortcut(%q).TargetPath`, path))
		if err != nil {
			p.opts.logger().Warn("cannot resolve shortcut", "path", path, "err", err)
			return ""
		}
		return strings.TrimSpace(string(out))
	}
}

// shortcutDescriptor prefers the resolved executable path so its base name
// feeds alias derivation ("chrome" from Google Chrome.lnk -> chrome.exe).
// Shortcuts that resolve to anything other than an .exe launch via the .lnk
// itself.
func shortcutDescriptor(lnk, resolved string) target.LaunchDescriptor {
	if resolved != "" && strings.EqualFold(filepath.Ext(resolved), ".exe") {
		return target.LaunchDescriptor{Kind: target.DescPath, Value: resolved}
	}
	return target.LaunchDescriptor{Kind: target.DescShortcut, Value: lnk}
}

// scanStartMenu walks the Start Menu trees for .lnk shortcuts. A malformed
// entry or unreadable subtree is skipped, not fatal.
func scanStartMenu(dirs []string, resolve shortcutResolver) ([]Raw, []SourceError) {
	var out []Raw
	var errs []SourceError
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // unreadable subtree, keep walking siblings
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".lnk") {
				return nil
			}
			stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			if len(stem) <= 1 {
				return nil
			}
			var resolved string
			if resolve != nil {
				resolved = resolve(path)
			}
			out = append(out, Raw{
				Name:       stem,
				Kind:       target.KindApplication,
				Descriptor: shortcutDescriptor(path, resolved),
			})
			return nil
		})
		if walkErr != nil {
			errs = append(errs, SourceError{Source: dir, Err: walkErr})
		}
	}
	return out, errs
}
