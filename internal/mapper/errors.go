package mapper

import "errors"

var errUnparseableModified = errors.New("modified does not match " + ModifiedLayout)
