package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/desertthunder/watchlist/internal/shared"
)

// readPassword is swapped out in tests so prompts never touch the terminal.
var readPassword = term.ReadPassword

// Admin creates the watchlist user or replaces its login.
func (r *Runner) Admin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	if username == "" {
		var err error
		if username, err = r.promptText("Username"); err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
	}

	password := cmd.String("password")
	if password == "" {
		var err error
		if password, err = r.promptPassword(); err != nil {
			return err
		}
	}

	svc, _, closeDB, err := r.openService(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	owner, err := svc.Owner(ctx)
	if err != nil {
		return err
	}
	if owner != nil {
		r.writePlain("Updating user...\n")
	} else {
		r.writePlain("Creating user...\n")
	}

	if _, _, err := svc.ProvisionAdmin(ctx, username, password); err != nil {
		return err
	}
	return r.writePlain("Done.\n")
}

// promptText prints prompt and reads one trimmed line.
//
// Partial input before EOF is returned as-is.
func (r *Runner) promptText(prompt string) (string, error) {
	if err := r.writePlain("%s: ", prompt); err != nil {
		return "", err
	}
	line, err := r.input.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password twice without echo and requires both entries to match.
func (r *Runner) promptPassword() (string, error) {
	first, err := r.readSecret("Password: ")
	if err != nil {
		return "", err
	}
	second, err := r.readSecret("Repeat for confirmation: ")
	if err != nil {
		return "", err
	}

	if !bytes.Equal(first, second) {
		return "", fmt.Errorf("%w: the two entered values do not match", shared.ErrInvalidArgument)
	}
	return string(first), nil
}

func (r *Runner) readSecret(prompt string) ([]byte, error) {
	if err := r.writePlain("%s", prompt); err != nil {
		return nil, err
	}
	secret, err := readPassword(int(os.Stdin.Fd()))
	r.writePlain("\n")
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return secret, nil
}
