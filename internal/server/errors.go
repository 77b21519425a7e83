package server

import "errors"

// ErrNoListeners is returned by NewServer when the handlers carry no
// transport to listen on.
var ErrNoListeners = errors.New("server has no http or grpc handler to listen with")
