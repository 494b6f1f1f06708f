package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// promptPassword prompts for a password with hidden input.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	password, err := term.ReadPassword(syscall.Stdin)
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(password), nil
}

// promptNewPassword prompts for a new password with confirmation.
func promptNewPassword() (string, error) {
	password, err := promptPassword("Enter password: ")
	if err != nil {
		return "", err
	}
	if len(password) < 8 {
		return "", walleterr.WithSuggestion(
			walleterr.ErrInvalidInput,
			"password must be at least 8 characters",
		)
	}

	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", walleterr.WithSuggestion(
			walleterr.ErrInvalidInput,
			"passwords do not match",
		)
	}
	return password, nil
}

// promptLine reads one line of visible input.
func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptConfirm asks a yes/no question, defaulting to no.
func promptConfirm(prompt string) (bool, error) {
	answer, err := promptLine(prompt + " [y/N]: ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// resolvePassword returns the flag value when set, prompting otherwise.
// Flags keep scripted use non-interactive.
func resolvePassword(flag, prompt string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	return promptPassword(prompt)
}
