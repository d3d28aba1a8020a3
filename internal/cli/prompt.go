package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/x3launch/pkg/domain"
	"golang.org/x/term"
)

// ProfileInput holds the connection values given on the command line.
// Empty strings and PortSet=false mark values still to be asked for.
type ProfileInput struct {
	Name    string
	Address string
	Port    int
	PortSet bool
}

func (in ProfileInput) missing() bool {
	return strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Address) == "" || !in.PortSet
}

// Prompter asks for missing profile values on an interactive terminal.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter creates a prompter reading from in. Prompting is only enabled when
// interactive is true; otherwise missing values are reported as errors.
func NewPrompter(in io.Reader, out io.Writer, interactive bool) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, interactive: interactive}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Capture completes input and builds the profile.
func (p *Prompter) Capture(input ProfileInput) (domain.Profile, error) {
	var err error
	if strings.TrimSpace(input.Name) == "" {
		if input.Name, err = p.ask("Name", ""); err != nil {
			return domain.Profile{}, err
		}
	}
	if strings.TrimSpace(input.Address) == "" {
		if input.Address, err = p.ask("Server IP", ""); err != nil {
			return domain.Profile{}, err
		}
	}
	if !input.PortSet {
		raw, err := p.ask("Port", strconv.Itoa(domain.DefaultPort))
		if err != nil {
			return domain.Profile{}, err
		}
		port, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("%w: port %q is not a number", domain.ErrInvalidProfile, raw)
		}
		input.Port = port
	}

	name, err := SanitizeField(input.Name)
	if err != nil {
		return domain.Profile{}, err
	}
	address, err := SanitizeField(input.Address)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.NewProfile(name, address, input.Port)
}

func (p *Prompter) ask(label, def string) (string, error) {
	if !p.interactive {
		if def != "" {
			return def, nil
		}
		return "", fmt.Errorf("%w: %s is required", domain.ErrInvalidProfile, strings.ToLower(label))
	}
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}
