package insights

import "errors"

// Sentinel errors for the insights service layer.
var (
	ErrNilRepository = errors.New("insights: repository is required")
)
