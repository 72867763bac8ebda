package model

import "errors"

// ErrDuplicate returned by stores when a unique constraint rejects a write
var ErrDuplicate = errors.New("duplicate record")
