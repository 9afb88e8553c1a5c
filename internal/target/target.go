// Package target defines the resolvable entities summon works with: the
// Target record, its launch descriptor, and the alias/token derivation used
// by the scoring engine.
package target

import (
	"fmt"
	"strings"
)

// Kind classifies what a Target resolves to.
type Kind string

const (
	KindApplication Kind = "app"
	KindFolder      Kind = "folder"
	KindFile        Kind = "file"
)

// DescriptorKind identifies how a launch descriptor must be interpreted.
type DescriptorKind string

const (
	// DescPath is an absolute filesystem path (app bundle, executable,
	// desktop entry, directory, or plain file).
	DescPath DescriptorKind = "path"
	// DescAppID is an opaque Windows Start-Apps identifier.
	DescAppID DescriptorKind = "appid"
	// DescPackageFamily is a Windows packaged-app family name.
	DescPackageFamily DescriptorKind = "package"
	// DescShortcut is a Windows .lnk shortcut path.
	DescShortcut DescriptorKind = "shortcut"
	// DescCommand is a bare command name resolvable on PATH.
	DescCommand DescriptorKind = "command"
)

// LaunchDescriptor is the opaque payload needed to invoke a Target. It is
// never interpreted outside the launch package.
type LaunchDescriptor struct {
	Kind  DescriptorKind `json:"kind"`
	Value string         `json:"value"`
}

// String renders the descriptor in the prefixed form used by the on-disk
// cache, e.g. "appid:Microsoft.WindowsCalculator_8wekyb3d8bbwe!App".
func (d LaunchDescriptor) String() string {
	if d.Kind == DescPath || d.Kind == "" {
		return d.Value
	}
	return string(d.Kind) + ":" + d.Value
}

// ParseDescriptor is the inverse of LaunchDescriptor.String. Unprefixed
// strings are treated as paths.
func ParseDescriptor(s string) LaunchDescriptor {
	for _, k := range []DescriptorKind{DescAppID, DescPackageFamily, DescShortcut, DescCommand} {
		prefix := string(k) + ":"
		if strings.HasPrefix(s, prefix) {
			return LaunchDescriptor{Kind: k, Value: s[len(prefix):]}
		}
	}
	return LaunchDescriptor{Kind: DescPath, Value: s}
}

// Target is one resolvable, launchable entity.
type Target struct {
	ID         string
	Name       string // normalized display name
	Kind       Kind
	Descriptor LaunchDescriptor
	Aliases    []string // always contains Name; order is stable
	Tokens     []string // \w+ runs of Name
	// BaseName is the normalized executable or file base name without
	// extension, when the descriptor carries one. Used as a match key and
	// for picking executables inside directories.
	BaseName string
}

// New builds a Target from a raw display name. The name is normalized and
// the alias set derived: the name itself, the base name, no-space variants
// of both, and every name token longer than one rune.
func New(name string, kind Kind, desc LaunchDescriptor) Target {
	norm := Normalize(name)
	base := descriptorBaseName(desc)

	t := Target{
		ID:         norm,
		Name:       norm,
		Kind:       kind,
		Descriptor: desc,
		Tokens:     Tokenize(norm),
		BaseName:   base,
	}

	seen := map[string]bool{}
	add := func(a string) {
		if a == "" || seen[a] {
			return
		}
		seen[a] = true
		t.Aliases = append(t.Aliases, a)
	}

	add(norm)
	add(base)
	add(strings.ReplaceAll(norm, " ", ""))
	add(strings.ReplaceAll(base, " ", ""))
	for _, tok := range t.Tokens {
		if len(tok) > 1 {
			add(tok)
		}
	}
	return t
}

// descriptorBaseName extracts a normalized base name (no extension) from
// path-like descriptors. AppID and package-family values are opaque and
// yield no base name.
func descriptorBaseName(d LaunchDescriptor) string {
	switch d.Kind {
	case DescPath, DescShortcut, DescCommand:
	default:
		return ""
	}
	v := d.Value
	if i := strings.LastIndexAny(v, `/\`); i >= 0 {
		v = v[i+1:]
	}
	if i := strings.LastIndex(v, "."); i > 0 {
		v = v[:i]
	}
	return Normalize(v)
}

// Query is one resolution request.
type Query struct {
	Raw    string
	Text   string // normalized form of Raw
	Tokens []string
	// Embedding is set by the resolver when semantic scoring is enabled.
	Embedding []float32
}

// NewQuery normalizes and tokenizes raw free text.
func NewQuery(raw string) Query {
	text := Normalize(raw)
	return Query{Raw: raw, Text: text, Tokens: Tokenize(text)}
}

// Empty reports whether the query holds no usable text.
func (q Query) Empty() bool { return q.Text == "" }

func (t Target) String() string {
	return fmt.Sprintf("%s (%s) -> %s", t.Name, t.Kind, t.Descriptor)
}
