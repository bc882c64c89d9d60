package core

import "fmt"

type ErrorKind int

const (
	// KindContainer covers bad magic, truncation and chunk level problems.
	KindContainer ErrorKind = iota + 1
	// KindDecode covers failures inside the entropy, coefficient and plane stages.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// LoadError is what Decode returns on failure. No partial picture is ever
// returned alongside it.
type LoadError struct {
	Kind ErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func containerError(err error) error {
	return &LoadError{Kind: KindContainer, Err: err}
}

func decodeError(err error) error {
	return &LoadError{Kind: KindDecode, Err: err}
}
