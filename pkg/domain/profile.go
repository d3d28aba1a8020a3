package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Port bounds accepted by NewProfile.
const (
	MinPort = 0
	MaxPort = 65535

	// DefaultPort is the port the X3MP server listens on out of the box.
	DefaultPort = 13337
)

// Profile is the immutable snapshot of the parameters needed to join a session.
// Fields are unexported so a Profile cannot change after NewProfile returns.
type Profile struct {
	displayName string
	address     string
	port        int
}

// NewProfile captures the caller-supplied values into a Profile.
// The address is passed through untouched apart from surrounding whitespace.
func NewProfile(displayName, address string, port int) (Profile, error) {
	displayName = strings.TrimSpace(displayName)
	address = strings.TrimSpace(address)

	if displayName == "" {
		return Profile{}, fmt.Errorf("%w: display name is empty", ErrInvalidProfile)
	}
	if address == "" {
		return Profile{}, fmt.Errorf("%w: address is empty", ErrInvalidProfile)
	}
	if err := checkText("display name", displayName); err != nil {
		return Profile{}, err
	}
	if err := checkText("address", address); err != nil {
		return Profile{}, err
	}
	if port < MinPort || port > MaxPort {
		return Profile{}, fmt.Errorf("%w: port %d out of range [%d, %d]", ErrInvalidProfile, port, MinPort, MaxPort)
	}

	return Profile{
		displayName: displayName,
		address:     address,
		port:        port,
	}, nil
}

// checkText rejects values that cannot be stored verbatim as XML character data:
// invalid UTF-8, control characters (line breaks included, every field is one line)
// and the noncharacters U+FFFE and U+FFFF.
func checkText(field, v string) error {
	if !utf8.ValidString(v) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidProfile, field)
	}
	for _, r := range v {
		if unicode.IsControl(r) || r == 0xFFFE || r == 0xFFFF {
			return fmt.Errorf("%w: %s contains character %U", ErrInvalidProfile, field, r)
		}
	}
	return nil
}

// DisplayName is the identity presented to the remote session.
func (p Profile) DisplayName() string { return p.displayName }

// Address is the server host name or literal IP.
func (p Profile) Address() string { return p.address }

// Port is the server port.
func (p Profile) Port() int { return p.port }

// Local is reserved and always false.
func (p Profile) Local() bool { return false }

// Debug is reserved and always false.
func (p Profile) Debug() bool { return false }

// IsZero reports whether p was never built by NewProfile.
func (p Profile) IsZero() bool {
	return p.displayName == "" && p.address == "" && p.port == 0
}

func (p Profile) String() string {
	return fmt.Sprintf("%s@%s:%d", p.displayName, p.address, p.port)
}
