package installer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WritePluginsFile writes the declared plugins to path in requirements
// format, one plugin per line. SCM references are written as
// "<package> @ git+<url>@<branch>"; registry packages as "name==version"
// or a bare name. The parent directory is created if missing.
func WritePluginsFile(path string, declared map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating plugins file directory: %w", err)
	}

	var b strings.Builder
	for _, source := range sortedSources(declared) {
		line := pluginsFileLine(source, declared[source])
		b.WriteString(line)
		b.WriteByte('\n')
		slog.Debug("plugin written to file", "line", line, "path", path)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing plugins file: %w", err)
	}
	return nil
}

func pluginsFileLine(source, pin string) string {
	if IsSCM(source) {
		url := source
		if !strings.HasPrefix(url, "git+") {
			url = "git+" + url
		}
		branch := pin
		if branch == "" {
			branch = defaultBranch
		}
		return PackageNameFromURL(source) + " @ " + url + "@" + branch
	}
	if pin != "" {
		return source + "==" + pin
	}
	return source
}

// ReadPluginsFile parses a requirements-format plugins file back into
// the declared-plugins map. SCM lines map the bare URL to its branch;
// registry lines map the package name to its version pin, or to the
// empty string when unpinned. Blank lines and comments are skipped.
func ReadPluginsFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plugins file: %w", err)
	}

	declared := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.Contains(line, "git+") {
			// "<package> @ git+<url>@<branch>"
			parts := strings.Split(line, "@")
			if len(parts) < 2 {
				slog.Warn("skipping malformed plugins file line", "line", line)
				continue
			}
			url := strings.TrimPrefix(strings.TrimSpace(parts[1]), "git+")
			branch := defaultBranch
			if len(parts) > 2 {
				branch = strings.TrimSpace(parts[2])
			}
			declared[url] = branch
			continue
		}

		if name, version, found := strings.Cut(line, "=="); found {
			declared[strings.TrimSpace(name)] = strings.TrimSpace(version)
			continue
		}
		declared[line] = ""
	}
	return declared, nil
}

func sortedSources(declared map[string]string) []string {
	sources := make([]string, 0, len(declared))
	for source := range declared {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	return sources
}
