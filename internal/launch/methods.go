package launch

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"summon-cli/internal/target"
)

// darwinMethods: "open" resolves applications by display name; a bundle
// path or folder opens directly.
func (l *Launcher) darwinMethods(t target.Target) []method {
	var out []method
	if t.Kind == target.KindApplication {
		name := t.Name
		out = append(out, method{
			name: "open -a",
			run: func(ctx context.Context) error {
				return l.runner.Run(ctx, l.timeout, "open", "-a", name)
			},
		})
	}
	if t.Descriptor.Kind == target.DescPath {
		path := t.Descriptor.Value
		out = append(out, method{
			name: "open path",
			run: func(ctx context.Context) error {
				return l.runner.Run(ctx, l.timeout, "open", path)
			},
		})
	}
	return out
}

// linuxMethods: desktop-launcher helper first, then the identifier as a
// direct command, then detached. Folders and files go through xdg-open.
func (l *Launcher) linuxMethods(t target.Target) []method {
	if t.Kind != target.KindApplication {
		path := t.Descriptor.Value
		return []method{{
			name: "xdg-open",
			run: func(ctx context.Context) error {
				return l.runner.Run(ctx, l.timeout, "xdg-open", path)
			},
		}}
	}

	id := t.Descriptor.Value
	return []method{
		{
			name: "gtk-launch",
			run: func(ctx context.Context) error {
				return l.runner.Run(ctx, l.timeout, "gtk-launch", id)
			},
		},
		{
			name: "direct command",
			run: func(ctx context.Context) error {
				return l.runner.Run(ctx, l.timeout, id)
			},
		},
		{
			name: "detached command",
			run: func(ctx context.Context) error {
				return l.runner.Start(ctx, id)
			},
		},
	}
}

// windowsMethods branches on the descriptor variant; every branch ends in
// the general-purpose shell handler so a resolvable target always has a
// final fallback.
func (l *Launcher) windowsMethods(t target.Target) []method {
	var out []method
	d := t.Descriptor

	switch d.Kind {
	case target.DescAppID:
		if isDrivePath(d.Value) {
			exe := d.Value
			out = append(out, method{
				name: "direct executable",
				run:  func(ctx context.Context) error { return l.runner.Start(ctx, exe) },
			})
		} else {
			ref := `shell:appsFolder\` + d.Value
			out = append(out,
				method{
					name: "powershell appsFolder",
					run: func(ctx context.Context) error {
						return l.runner.Run(ctx, l.timeout, "powershell", "-Command", `Start-Process "`+ref+`"`)
					},
				},
				method{
					name: "explorer appsFolder",
					run:  func(ctx context.Context) error { return l.runner.Start(ctx, "explorer", ref) },
				},
			)
		}

	case target.DescPackageFamily:
		ref := `shell:appsFolder\` + d.Value + `!App`
		out = append(out, method{
			name: "powershell uwp activation",
			run: func(ctx context.Context) error {
				return l.runner.Run(ctx, l.timeout, "powershell", "-Command", `Start-Process "`+ref+`"`)
			},
		})

	case target.DescShortcut:
		lnk := d.Value
		out = append(out, method{
			name: "cmd start shortcut",
			run: func(ctx context.Context) error {
				return l.runner.Run(ctx, l.timeout, "cmd", "/c", "start", "", lnk)
			},
		})

	case target.DescPath:
		path := d.Value
		switch {
		case strings.EqualFold(filepath.Ext(path), ".exe"):
			out = append(out, method{
				name: "direct executable",
				run:  func(ctx context.Context) error { return l.runner.Start(ctx, path) },
			})
		case isDir(path):
			prefer := t.BaseName
			if prefer == "" {
				prefer = t.Name
			}
			if exe, ok := pickExecutable(path, prefer); ok {
				out = append(out, method{
					name: "directory executable",
					run:  func(ctx context.Context) error { return l.runner.Start(ctx, exe) },
				})
			}
		}
	}

	// General-purpose shell handler opens whatever is left: folders, files,
	// and paths none of the specific methods could start.
	if ref := shellFallbackRef(d); ref != "" {
		out = append(out, method{
			name: "shell open",
			run:  func(ctx context.Context) error { return shellOpen(ctx, l.runner, ref) },
		})
	}
	return out
}

func shellFallbackRef(d target.LaunchDescriptor) string {
	switch d.Kind {
	case target.DescPath, target.DescShortcut:
		return d.Value
	case target.DescAppID:
		if isDrivePath(d.Value) {
			return d.Value
		}
		return `shell:appsFolder\` + d.Value
	default:
		return ""
	}
}

func isDrivePath(s string) bool {
	return len(s) >= 3 && s[1] == ':' && (s[2] == '\\' || s[2] == '/')
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

var installerNameRE = regexp.MustCompile(`(?i)(uninstall|setup|update|installer)`)

// pickExecutable searches dir one level deep for a plausible .exe, skipping
// installer/updater-named binaries and preferring files whose name tokens
// overlap preferName.
func pickExecutable(dir, preferName string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	preferTokens := target.Tokenize(target.Normalize(preferName))

	best := ""
	bestScore := -1
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".exe") {
			continue
		}
		if installerNameRE.MatchString(e.Name()) {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		score := 0
		for _, tok := range target.Tokenize(target.Normalize(stem)) {
			if target.HasToken(preferTokens, tok) {
				score++
			}
		}
		if score > bestScore {
			best = filepath.Join(dir, e.Name())
			bestScore = score
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
