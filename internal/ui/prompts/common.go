package prompts

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
)

// PromptInputFile prompts for a path to an existing file.
func PromptInputFile(message string) (string, error) {
	var path string

	err := huh.NewInput().
		Title(message).
		Validate(func(s string) error {
			s = strings.TrimSpace(s)
			if s == "" {
				return fmt.Errorf("file path is required")
			}
			if _, err := os.Stat(s); err != nil {
				return fmt.Errorf("file not found: %s", s)
			}
			return nil
		}).
		Value(&path).
		Run()

	return strings.TrimSpace(path), err
}

// PromptConfirm prompts for yes/no confirmation
func PromptConfirm(message string, defaultValue bool) (bool, error) {
	confirm := defaultValue

	err := huh.NewConfirm().
		Title(message).
		Value(&confirm).
		Affirmative("Yes").
		Negative("No").
		Run()

	return confirm, err
}
