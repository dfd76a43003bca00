package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/ganfan/internal/timex"
	"golang.org/x/term"
)

// test seams for terminal access.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The line is trimmed. If EOF occurs after some input was read, the partial
// line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(reader)
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPIN asks for a PIN. On a terminal the digits are not echoed; otherwise a
// plain line is read from reader. The caller wipes the returned slice.
func GetPIN(reader *bufio.Reader, prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := readLine(reader)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	pin, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pin, nil
}

// GetMultiline reads lines until an empty one and joins them with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// GetDateTime reads a local date and time such as 2025-02-01T17:05. An empty
// answer returns def; a zero def makes the answer required.
func GetDateTime(reader *bufio.Reader, prompt string, def time.Time, w io.Writer) (time.Time, error) {
	if !def.IsZero() {
		prompt = fmt.Sprintf("%s [%s]", prompt, timex.Format(def, "yyyy-MM-ddTHH:mm"))
	}
	for {
		s, err := GetSimpleText(reader, prompt+" (YYYY-MM-DDTHH:MM)", w)
		if err != nil {
			return time.Time{}, err
		}
		if s == "" && !def.IsZero() {
			return def, nil
		}
		t, err := timex.ParseLocal(s)
		if err == nil {
			return t, nil
		}
		fmt.Fprintln(w, err)
	}
}
