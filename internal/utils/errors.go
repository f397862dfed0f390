package utils

import "errors"

// Failure categories. Concrete errors wrap one of these with %w.
var (
	ErrConnection    = errors.New("connection error")
	ErrProtocolParse = errors.New("protocol parse error")
	ErrShortTransfer = errors.New("short transfer")
	ErrFileIO        = errors.New("file I/O error")
)

var (
	ErrNumberOfArguments = errors.New("incorrect number of arguments")
	ErrBotNotFound       = errors.New("bot not found in known bots list")
	ErrIncorrectArgument = errors.New("incorrect argument")
	ErrNothingSelected   = errors.New("nothing selected")
	ErrSessionClosed     = errors.New("session already closed")
)

const (
	ExitOK = iota
	ExitUsage
	ExitConnection
	ExitProtocolParse
	ExitShortTransfer
	ExitFileIO
)

// ExitCode maps an error to the process exit status for its category.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, ErrNothingSelected):
		return ExitOK
	case errors.Is(err, ErrConnection):
		return ExitConnection
	case errors.Is(err, ErrProtocolParse):
		return ExitProtocolParse
	case errors.Is(err, ErrShortTransfer):
		return ExitShortTransfer
	case errors.Is(err, ErrFileIO):
		return ExitFileIO
	default:
		return ExitUsage
	}
}

// Category returns a short label for the error's category, used in summaries.
func Category(err error) string {
	switch {
	case errors.Is(err, ErrConnection):
		return "connection"
	case errors.Is(err, ErrProtocolParse):
		return "protocol"
	case errors.Is(err, ErrShortTransfer):
		return "short-transfer"
	case errors.Is(err, ErrFileIO):
		return "file-io"
	default:
		return "error"
	}
}
