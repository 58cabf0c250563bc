// errors.go

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package assembler

import (
	"errors"
	"fmt"
)

// Kind classifies an assembly failure.
type Kind int

const (
	KindFileInclusion Kind = iota + 1
	KindDefinition
	KindUnsupportedDirective
	KindInvalidValue
)

func (k Kind) String() string {
	switch k {
	case KindFileInclusion:
		return "file inclusion error"
	case KindDefinition:
		return "definition error"
	case KindUnsupportedDirective:
		return "unsupported directive"
	case KindInvalidValue:
		return "invalid value"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels for errors.Is. Every *Error matches exactly one of them.
var (
	ErrFileInclusion        = errors.New("file inclusion error")
	ErrDefinition           = errors.New("definition error")
	ErrUnsupportedDirective = errors.New("unsupported directive")
	ErrInvalidValue         = errors.New("invalid value")

	// ErrRelocationRange is returned by Rebase when a recorded slot does not
	// have four bytes of buffer behind it.
	ErrRelocationRange = errors.New("relocation slot out of range")
)

// Error is the single failure type produced while assembling source. File,
// Line and Text locate the offending source line; Line is 0-based. A zero
// File means the failure has not been attributed to a line yet.
//
// Rebase does not assemble anything and reports its one failure,
// ErrRelocationRange, as a plain wrapped error rather than an *Error.
type Error struct {
	Kind Kind
	File string
	Line int
	Text string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.File != "" {
		msg = fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
	}
	if e.Text != "" {
		msg += fmt.Sprintf(" in %q", e.Text)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrFileInclusion:
		return e.Kind == KindFileInclusion
	case ErrDefinition:
		return e.Kind == KindDefinition
	case ErrUnsupportedDirective:
		return e.Kind == KindUnsupportedDirective
	case ErrInvalidValue:
		return e.Kind == KindInvalidValue
	}
	return false
}

func invalidValue(text string) *Error {
	return &Error{Kind: KindInvalidValue, Text: text, Err: fmt.Errorf("%q is not a literal, constant, label or expression", text)}
}

func definitionErr(format string, args ...interface{}) *Error {
	return &Error{Kind: KindDefinition, Err: fmt.Errorf(format, args...)}
}

// located attaches source context to err. Errors that already carry a
// location (failures inside an included file) pass through untouched, and
// bare errors from handlers become DefinitionErrors.
func located(err error, file string, line int, text string) error {
	var ae *Error
	if !errors.As(err, &ae) {
		return &Error{Kind: KindDefinition, File: file, Line: line, Text: text, Err: err}
	}
	if ae.File != "" {
		return err
	}
	return &Error{Kind: ae.Kind, File: file, Line: line, Text: text, Err: ae.Err}
}
