package follow

import "errors"

// ErrAlreadyFollowing is surfaced by repositories on a duplicate edge
// insert. The service swallows it: a follow that already exists is a
// successful no-op, including when the duplicate comes from a concurrent
// request racing past the existence check.
var ErrAlreadyFollowing = errors.New("already following")
