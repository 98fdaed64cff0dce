package policyfile

import "errors"

var (
	ErrUnsupportedFormat = errors.New("policyfile.unsupported_format")
	ErrReadFile          = errors.New("policyfile.read_failed")
	ErrInvalidCatalog    = errors.New("policyfile.invalid_catalog")
)
