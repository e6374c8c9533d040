// AngelaMos | 2026
// password.go

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var readPassword = term.ReadPassword

var errPasswordMismatch = errors.New("passwords do not match")

// readNewPassword reads one line from stdin when fromStdin is set. Otherwise
// it prompts twice on the terminal without echo.
func readNewPassword(stdin io.Reader, w io.Writer, fromStdin bool) (string, error) {
	if fromStdin {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	first, err := prompt(w, "Password: ")
	if err != nil {
		return "", err
	}
	second, err := prompt(w, "Confirm password: ")
	if err != nil {
		return "", err
	}

	if first != second {
		return "", errPasswordMismatch
	}
	return first, nil
}

func prompt(w io.Writer, label string) (string, error) {
	fmt.Fprint(w, label)
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}
