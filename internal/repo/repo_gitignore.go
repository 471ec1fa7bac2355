// repo_gitignore.go manages .gitignore entries inside a workspace.
//
// Separated from repo.go to isolate gitignore manipulation logic. A
// workspace can keep its books private (ignored by git) or share them.
//
// Design: We preserve existing gitignore content and formatting, only adding
// or removing specific entries. A header comment marks the private section.

package repo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const privateHeader = "# Private (not committed)"

// parseGitignore reads a gitignore file and returns its lines (trimmed).
func parseGitignore(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines, nil
}

// Ignore adds entry to the workspace .gitignore.
// If dir is empty, the workspace is discovered from the working directory.
func Ignore(entry, dir string) error {
	if dir == "" {
		var err error
		dir, err = Discover()
		if err != nil {
			return err
		}
	}
	gitignore := filepath.Join(dir, ".gitignore")

	lines, err := parseGitignore(gitignore)
	if os.IsNotExist(err) {
		lines, err = nil, nil
	}
	if err != nil {
		return err
	}
	if slices.Contains(lines, entry) {
		return nil
	}

	content, err := os.ReadFile(gitignore)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	s := string(content)
	if !slices.Contains(lines, privateHeader) {
		s += "\n" + privateHeader + "\n"
	}
	s += entry + "\n"
	return os.WriteFile(gitignore, []byte(s), 0644)
}

// Unignore removes entry from the workspace .gitignore.
func Unignore(entry, dir string) error {
	if dir == "" {
		var err error
		dir, err = Discover()
		if err != nil {
			return err
		}
	}
	gitignore := filepath.Join(dir, ".gitignore")

	content, err := os.ReadFile(gitignore)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var out []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == entry {
			continue
		}
		out = append(out, line)
	}
	return os.WriteFile(gitignore, []byte(strings.Join(out, "\n")), 0644)
}

// IsIgnored reports whether entry is listed in the workspace .gitignore.
func IsIgnored(entry, dir string) (bool, error) {
	lines, err := parseGitignore(filepath.Join(dir, ".gitignore"))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return slices.Contains(lines, entry), nil
}
