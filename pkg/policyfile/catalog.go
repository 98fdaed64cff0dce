package policyfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadCatalog reads a route catalog file, choosing the format by extension.
func LoadCatalog(path string) (rbac.RouteCatalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}
	return ParseCatalog(data, format)
}

// ParseCatalog decodes a list of routes and validates every entry: path is
// required and starts with "/", label is required, and no path repeats.
// An entry without a module is valid; such a route is closed to every role.
func ParseCatalog(data []byte, format Format) (rbac.RouteCatalog, error) {
	var catalog rbac.RouteCatalog
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&catalog); err != nil {
			return nil, errors.Join(ErrInvalidCatalog, err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, errors.Join(ErrInvalidCatalog, errors.New("unexpected data after the route list"))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err := dec.Decode(&catalog)
		if err == nil {
			err = singleYAMLDocument(dec)
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Join(ErrInvalidCatalog, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	seen := make(map[string]struct{}, len(catalog))
	for i, route := range catalog {
		if err := validate.Struct(route); err != nil {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("route #%d: %w", i, err))
		}
		if _, dup := seen[route.Path]; dup {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("route #%d: duplicate path %q", i, route.Path))
		}
		seen[route.Path] = struct{}{}
	}
	if catalog == nil {
		catalog = rbac.RouteCatalog{}
	}
	return catalog, nil
}
