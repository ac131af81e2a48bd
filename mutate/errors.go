package mutate

import "errors"

// Sentinel errors for refused mutations. Every function in this package is
// total over well-formed trees except for these documented conditions, which
// are reported without any partial mutation: the caller always gets back
// either a fully rebuilt tree or its original input.
var (
	ErrNodeNotFound      = errors.New("node not found")
	ErrTypeMismatch      = errors.New("node variant mismatch")
	ErrNoActiveStack     = errors.New("no active stack on the active path")
	ErrNoActiveTabs      = errors.New("no tabs container on the active path")
	ErrNoActivePanes     = errors.New("no panes container on the active path")
	ErrCannotPop         = errors.New("nothing to pop")
	ErrIllegalCascade    = errors.New("cannot cascade pop across a tabs or panes boundary")
	ErrRoleNotConfigured = errors.New("pane role not configured")
	ErrIndexOutOfRange   = errors.New("tab index out of range")
	ErrRemoveRoot        = errors.New("cannot remove tree root")
)
