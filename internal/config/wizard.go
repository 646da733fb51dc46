package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// notesDirCandidates are checked in order when guessing the notes directory.
var notesDirCandidates = []string{"public/notes", "notes", "docs"}

// detectNotesDir returns the first candidate directory that holds markdown
// files, or the default.
func detectNotesDir() string {
	for _, dir := range notesDirCandidates {
		matches, _ := filepath.Glob(filepath.Join(dir, "*.md"))
		if len(matches) > 0 {
			return dir
		}
	}
	return DefaultConfig().NotesDir
}

// RunWizard runs an interactive configuration wizard and saves the result
// to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to notebook! Let's configure your notes.")
	fmt.Println()

	cfg := DefaultConfig()

	notesDir := detectNotesDir()
	if _, err := os.Stat(notesDir); err == nil {
		fmt.Printf("Found notes in %s\n\n", notesDir)
	}

	// 1. Notes directory.
	notesPrompt := promptui.Prompt{
		Label:   "Notes directory",
		Default: notesDir,
	}
	var err error
	if cfg.NotesDir, err = notesPrompt.Run(); err != nil {
		return nil, fmt.Errorf("notes dir: %w", err)
	}

	// 2. Catalog file, next to the notes directory by default.
	outputPrompt := promptui.Prompt{
		Label:   "Catalog file",
		Default: filepath.ToSlash(filepath.Join(filepath.Dir(cfg.NotesDir), "notes-index.json")),
	}
	if cfg.Output, err = outputPrompt.Run(); err != nil {
		return nil, fmt.Errorf("catalog file: %w", err)
	}

	// 3. Site title.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.Site.Title,
	}
	if cfg.Site.Title, err = titlePrompt.Run(); err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}

	// 4. Server port.
	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("port must be a number between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 5. Watch mode.
	watchPrompt := promptui.Select{
		Label: "Rebuild the catalog when notes change?",
		Items: []string{"yes", "no"},
	}
	watchIdx, _, err := watchPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("watch selection: %w", err)
	}
	cfg.Server.Watch = watchIdx == 0

	// 6. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Exclude patterns (comma-separated, leave blank for none)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	cfg.Exclude = splitAndTrim(excludeStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
