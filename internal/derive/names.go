package derive

import (
	"fmt"
	"strings"
)

// Name holds the four RIPS name components.
type Name struct {
	FirstName      string
	SecondName     string
	FirstLastName  string
	SecondLastName string
}

// NameError reports a full name whose token count cannot be mapped.
type NameError struct {
	FullName string
	Tokens   int
}

func (e *NameError) Error() string {
	if e.Tokens < 2 {
		return fmt.Sprintf("name %q has %d token(s); need at least a first name and a last name", e.FullName, e.Tokens)
	}
	return fmt.Sprintf("name %q has %d tokens; at most 4 (two names, two last names) are supported", e.FullName, e.Tokens)
}

// SplitName maps a whitespace-separated full name onto name components by
// token count:
//
//	4 tokens: name, name, last, last
//	3 tokens: name, last, last
//	2 tokens: name, last
//
// Compound surnames are not recognized. Any other token count is a *NameError.
func SplitName(fullName string) (Name, error) {
	t := strings.Fields(fullName)
	switch len(t) {
	case 4:
		return Name{FirstName: t[0], SecondName: t[1], FirstLastName: t[2], SecondLastName: t[3]}, nil
	case 3:
		return Name{FirstName: t[0], FirstLastName: t[1], SecondLastName: t[2]}, nil
	case 2:
		return Name{FirstName: t[0], FirstLastName: t[1]}, nil
	default:
		return Name{}, &NameError{FullName: fullName, Tokens: len(t)}
	}
}
