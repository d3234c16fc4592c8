package client

import "errors"

// ErrUnreachable wraps every failure that produced no usable response:
// transport errors and bodies that are not the expected JSON.
var ErrUnreachable = errors.New("remote api unreachable")
