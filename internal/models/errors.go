package models

import "errors"

// Stable failure kinds surfaced to callers. Handlers map these onto HTTP
// status codes and response envelope codes; nothing is retried here.
var (
	ErrOrgNotFound        = errors.New("organization not found")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrRecordNotFound     = errors.New("record not found")
	ErrDuplicateSlug      = errors.New("slug already exists")
	ErrMalformedConfig    = errors.New("malformed tenant config")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
