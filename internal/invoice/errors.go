package invoice

import "errors"

var ErrNotFound = errors.New("not found")
