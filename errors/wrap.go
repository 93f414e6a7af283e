// Package errors re-exports the stack-carrying pkg/errors helpers the rest
// of the module wraps with, alongside the sentinel values the RPC layer maps
// to wire error codes.
package errors

import (
	pkgerrors "github.com/pkg/errors"
)

var (
	New   = pkgerrors.New
	Wrapf = pkgerrors.Wrapf

	WithStack = pkgerrors.WithStack

	Is = pkgerrors.Is
	As = pkgerrors.As
)
