package errors

import (
	"fmt"
)

var (
	ErrInvalidConfig  = fmt.Errorf("musesummoner: invalid config")
	ErrNotFound       = fmt.Errorf("musesummoner: not found")
	ErrInvalidParams  = fmt.Errorf("musesummoner: invalid params")
	ErrInvalidRequest = fmt.Errorf("musesummoner: invalid request")
	ErrUnauthorized   = fmt.Errorf("musesummoner: unauthorized")
	ErrInternal       = fmt.Errorf("musesummoner: internal error")
)
