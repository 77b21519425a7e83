package client

import "errors"

var (
	ErrNoSession      = errors.New("not logged in")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("invalid usage")
)
