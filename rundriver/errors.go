package rundriver

import "errors"

// ErrCancelled is the fail reason text recorded when a Run's context is
// cancelled between subspaces or group emissions.
var ErrCancelled = errors.New("rundriver: run cancelled")
