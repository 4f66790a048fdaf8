package installer

import (
	"log/slog"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/corral-labs/corral/internal/plugin"
)

// scmPattern recognizes source-control URL references in the declared
// plugins map. Anything else is treated as a registry package name.
var scmPattern = regexp.MustCompile(`^(git\+)?https?://`)

// defaultBranch is used when an SCM reference declares no branch.
const defaultBranch = "main"

// Installer invokes the external package manager for the declared
// plugins and triggers package-scan discovery on success. The
// subprocess call is blocking and synchronous with no timeout, and no
// failure is retried — all failure handling is log-and-return.
type Installer struct {
	Catalog *plugin.Catalog
	Scanner *plugin.Scanner
	Source  plugin.PackageSource

	// Command is the package manager argv prefix, e.g. ["pip", "install"].
	Command []string

	// run executes the assembled argv; replaced in tests.
	run func(argv []string) ([]byte, error)
}

// New returns an Installer wired to the given catalog, scanner, and
// discovery source.
func New(cat *plugin.Catalog, scanner *plugin.Scanner, source plugin.PackageSource, command []string) *Installer {
	return &Installer{
		Catalog: cat,
		Scanner: scanner,
		Source:  source,
		Command: command,
		run:     runCommand,
	}
}

// Install builds the install argument list from the declared plugins
// and invokes the package manager. With nothing declared it warns and
// returns without a subprocess call. On non-zero exit the captured
// output is logged as an error and discovery is not triggered; the
// caller detects failure by the absence of expected catalog entries.
func (i *Installer) Install(quiet bool) {
	declared := i.Catalog.Declared
	if len(declared) == 0 {
		slog.Warn("no plugins declared, nothing to install")
		return
	}

	argv := append([]string{}, i.Command...)
	argv = append(argv, InstallArgs(declared)...)
	if quiet {
		argv = append(argv, "--quiet")
	}

	out, err := i.run(argv)
	if err != nil {
		slog.Error("plugin installation failed", "command", strings.Join(argv, " "),
			"output", strings.TrimSpace(string(out)), "error", err)
		return
	}
	slog.Info("plugins installed", "count", len(declared))

	// Newly installed packages become queryable immediately.
	if i.Scanner != nil && i.Source != nil {
		if err := i.Scanner.ScanPackages(i.Source); err != nil {
			slog.Error("post-install discovery failed", "error", err)
		}
	}
}

// InstallArgs converts the declared-plugins map into package manager
// arguments, sorted by source for determinism. SCM URL references are
// pinned to a branch; registry packages are pinned to a version. A
// version pin that is not valid semver is still passed through, with a
// warning.
func InstallArgs(declared map[string]string) []string {
	sources := sortedSources(declared)
	args := make([]string, 0, len(sources))
	for _, source := range sources {
		args = append(args, installArg(source, declared[source]))
	}
	return args
}

func installArg(source, pin string) string {
	if IsSCM(source) {
		url := source
		if !strings.HasPrefix(url, "git+") {
			url = "git+" + url
		}
		branch := pin
		if branch == "" {
			branch = defaultBranch
		}
		return url + "@" + branch
	}

	if pin == "" {
		return source
	}
	if _, err := semver.NewVersion(strings.TrimPrefix(pin, "v")); err != nil {
		slog.Warn("declared plugin version is not valid semver", "package", source, "version", pin)
	}
	return source + "==" + pin
}

// IsSCM reports whether a declared plugin source is a source-control
// URL reference rather than a registry package name.
func IsSCM(source string) bool {
	return scmPattern.MatchString(source)
}

// PackageNameFromURL derives the package name from an SCM URL: the
// last path segment with any extension stripped.
func PackageNameFromURL(url string) string {
	name := url
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.Index(name, "."); idx >= 0 {
		name = name[:idx]
	}
	return name
}

func runCommand(argv []string) ([]byte, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	return cmd.CombinedOutput()
}
