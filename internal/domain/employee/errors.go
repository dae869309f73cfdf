package employee

import "errors"

var ErrNotFound = errors.New("employee profile not found")
