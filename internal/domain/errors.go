package domain

import "errors"

// Failure classes surfaced by the pipeline stages. Stage errors wrap one of
// these so callers can branch with errors.Is.
var (
	ErrFileAccess = errors.New("file access")
	ErrSchema     = errors.New("schema")
	ErrParse      = errors.New("parse")
	ErrRender     = errors.New("render")
)
