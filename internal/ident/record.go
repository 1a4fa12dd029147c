package ident

import "fmt"

// Kind is the package type carried by an identification string.
type Kind int

const (
	KindHeader Kind = iota + 1
	KindLibrary
	KindExecutable
	KindDocumentation
)

var kindTokens = map[Kind]string{
	KindHeader:        "HDR",
	KindLibrary:       "LIB",
	KindExecutable:    "EXE",
	KindDocumentation: "DOC",
}

// ParseKind maps a wire token (e.g., "EXE") to its Kind.
func ParseKind(token string) (Kind, error) {
	for k, tok := range kindTokens {
		if tok == token {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown package type %q", token)
}

// Token returns the wire token of k.
func (k Kind) Token() string {
	return kindTokens[k]
}

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "Header"
	case KindLibrary:
		return "Library"
	case KindExecutable:
		return "Executable"
	case KindDocumentation:
		return "Documentation"
	default:
		return "Unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	tok, ok := kindTokens[k]
	if !ok {
		return nil, fmt.Errorf("invalid package type %d", int(k))
	}
	return []byte(tok), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Status is the release status carried by an identification string.
type Status int

const (
	StatusDevelopment Status = iota + 1
	StatusReleaseCandidate
	StatusReleased
)

var statusTokens = map[Status]string{
	StatusDevelopment:      "DEV",
	StatusReleaseCandidate: "RC",
	StatusReleased:         "REL",
}

// ParseStatus maps a wire token (e.g., "REL") to its Status.
func ParseStatus(token string) (Status, error) {
	for s, tok := range statusTokens {
		if tok == token {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown release status %q", token)
}

func (s Status) Token() string {
	return statusTokens[s]
}

func (s Status) String() string {
	switch s {
	case StatusDevelopment:
		return "Development"
	case StatusReleaseCandidate:
		return "ReleaseCandidate"
	case StatusReleased:
		return "Released"
	default:
		return "Unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	tok, ok := statusTokens[s]
	if !ok {
		return nil, fmt.Errorf("invalid release status %d", int(s))
	}
	return []byte(tok), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Record is a recognized identification string. Every field but Other is
// non-empty.
type Record struct {
	Kind      Kind   `json:"type"`
	Status    Status `json:"status"`
	Name      string `json:"name"`
	Version   string `json:"version"`
	Copyright string `json:"copyright"`
	Date      string `json:"date"`
	Other     string `json:"other"`
}

// Unrecognized is a candidate that did not fit the grammar, kept verbatim.
type Unrecognized struct {
	ID string `json:"id"`
}
