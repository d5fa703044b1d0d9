package hdwallet

import (
	"strings"

	"github.com/pkg/errors"
)

// DerivationPath is an ordered sequence of child indices, applied left to
// right starting from the master key.
type DerivationPath []ChildIndex

// ParseDerivationPath parses a path of the form "m/44'/0'/0'/0/0". The
// leading "m" is mandatory. The first invalid component aborts the parse;
// a partial path is never returned.
func ParseDerivationPath(s string) (DerivationPath, error) {
	parts := strings.Split(s, "/")
	if parts[0] != "m" {
		return nil, errors.Wrapf(ErrInvalidDerivationPath, "path must start with \"m\", got %q", parts[0])
	}

	path := make(DerivationPath, 0, len(parts)-1)
	for _, part := range parts[1:] {
		index, err := ParseChildIndex(part)
		if err != nil {
			return nil, err
		}
		path = append(path, index)
	}
	return path, nil
}

func (p DerivationPath) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, index := range p {
		sb.WriteString("/")
		sb.WriteString(index.String())
	}
	return sb.String()
}
