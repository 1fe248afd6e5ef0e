// Package command parses the interactive command line.
//
// Grammar, after surrounding whitespace is trimmed:
//
//	gii=(<path>)   image info
//	fem=(<path>)   Exif metadata
//	is=(<ext>)     scan user directories for an extension
//	help
//	exit
//
// The argument may not be empty or contain parentheses.
package command

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies a command
type Kind int

const (
	KindInfo Kind = iota + 1
	KindExif
	KindScan
	KindHelp
	KindExit
)

// String returns the command keyword
func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "gii"
	case KindExif:
		return "fem"
	case KindScan:
		return "is"
	case KindHelp:
		return "help"
	case KindExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Title returns the task title shown while the command runs
func (k Kind) Title() string {
	switch k {
	case KindInfo:
		return "Get Image Info"
	case KindExif:
		return "Get Image Exif Metadata"
	case KindScan:
		return "Get All Images Sizes And Info"
	default:
		return ""
	}
}

// Command is a parsed command line
type Command struct {
	Kind Kind
	Arg  string // path for info/exif, extension for scan
}

// EmptyInput is how blank input is reported back to the user
const EmptyInput = "~empty~"

// ErrUnknownCommand is matched by every UnknownCommandError
var ErrUnknownCommand = errors.New("unknown command")

// UnknownCommandError carries the rejected input
type UnknownCommandError struct {
	Input string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.Input)
}

func (e *UnknownCommandError) Unwrap() error {
	return ErrUnknownCommand
}

var patterns = []struct {
	kind Kind
	re   *regexp.Regexp
}{
	{KindInfo, regexp.MustCompile(`^gii=\(([^()]+)\)$`)},
	{KindExif, regexp.MustCompile(`^fem=\(([^()]+)\)$`)},
	{KindScan, regexp.MustCompile(`^is=\(([^()]+)\)$`)},
}

// Parse parses one line of input
func Parse(input string) (Command, error) {
	line := strings.TrimSpace(input)

	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(line); m != nil {
			return Command{Kind: p.kind, Arg: m[1]}, nil
		}
	}

	switch line {
	case "help":
		return Command{Kind: KindHelp}, nil
	case "exit":
		return Command{Kind: KindExit}, nil
	case "":
		return Command{}, &UnknownCommandError{Input: EmptyInput}
	}
	return Command{}, &UnknownCommandError{Input: line}
}
