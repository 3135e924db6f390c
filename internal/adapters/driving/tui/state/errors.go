package state

import "errors"

// ErrBusy is returned when a new search is submitted while a further page
// is still being fetched.
var ErrBusy = errors.New("state: page fetch in progress")
