// Package view renders the session screens to a terminal.
package view

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Credentials are what the login view collects
type Credentials struct {
	Username string
	Password string
}

// LoginPrompt asks for a username and password on a line oriented input
type LoginPrompt struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLoginPrompt(in io.Reader, out io.Writer) *LoginPrompt {
	return &LoginPrompt{in: bufio.NewReader(in), out: out}
}

// Prompt prints the login header and reads both fields. Empty fields are allowed; the
// server decides whether they are acceptable.
func (p *LoginPrompt) Prompt(appName string) (Credentials, error) {
	fmt.Fprintf(p.out, "%s Login\n", appName)

	username, err := p.readLine("Username: ")
	if err != nil {
		return Credentials{}, errors.Wrap(err, "read username")
	}
	password, err := p.readLine("Password: ")
	if err != nil {
		return Credentials{}, errors.Wrap(err, "read password")
	}
	return Credentials{Username: username, Password: password}, nil
}

func (p *LoginPrompt) readLine(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
