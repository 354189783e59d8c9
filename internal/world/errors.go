package world

import "errors"

// ErrPatchNotFound is returned by GetExistingPatch when the requested
// patch position has never been materialized. Callers that cannot
// tolerate this should use GetPatchIfExists instead, which never errors.
var ErrPatchNotFound = errors.New("world: requested patch does not exist")
