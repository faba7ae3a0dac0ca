package ofs

import "errors"

// Sentinel errors surfaced to clients as error_message strings. Each
// carries a stable, documented but non-normative numeric code via
// codeFor, mirroring the reference server's error-kind catalogue.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied or invalid session")
	ErrPathNotFound       = errors.New("path not found")
	ErrTraversal          = errors.New("path-component traversal attempt")
	ErrNotADirectory      = errors.New("not a directory")
	ErrDirectoryNotEmpty  = errors.New("directory not empty")
	ErrAlreadyExists      = errors.New("target already exists")
	ErrUserTableFull      = errors.New("user table full")
	ErrDiskFull           = errors.New("disk full")
	ErrUnknownOperation   = errors.New("unknown operation")
	ErrUserNotFound       = errors.New("user not found")
)

var codeFor = map[error]int{
	ErrInvalidCredentials: 1,
	ErrAccessDenied:       2,
	ErrPathNotFound:       3,
	ErrTraversal:          4,
	ErrNotADirectory:      5,
	ErrDirectoryNotEmpty:  6,
	ErrAlreadyExists:      7,
	ErrUserTableFull:      8,
	ErrDiskFull:           9,
	ErrUnknownOperation:   10,
	ErrUserNotFound:       11,
}
