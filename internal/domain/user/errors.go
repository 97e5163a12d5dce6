package user

import "errors"

var ErrNotLoggedIn = errors.New("please log in to continue")
