package policyfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

// ParseYAML decodes a YAML policy document with the same shape as the JSON
// one. Unknown keys are rejected.
//
//	billing_specialist:
//	  - module: invoices
//	    actions: [create, read, update, delete]
//	super_admin:
//	  - "*": true
func ParseYAML(data []byte) (rbac.PolicyTable, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc rbac.PolicyDocument
	if err := dec.Decode(&doc); err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, errors.Join(rbac.ErrMalformedPolicy, err)
		}
		return doc.Table()
	}
	if err := singleYAMLDocument(dec); err != nil {
		return nil, errors.Join(rbac.ErrMalformedPolicy, err)
	}
	return doc.Table()
}

// singleYAMLDocument fails when the stream holds another document after the
// one already decoded.
func singleYAMLDocument(dec *yaml.Decoder) error {
	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return errors.New("unexpected second YAML document")
	}
}

// EncodeYAML renders the table as a YAML policy document.
func EncodeYAML(t rbac.PolicyTable) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rbac.NewPolicyDocument(t)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse decodes a policy document in the given format.
func Parse(data []byte, format Format) (rbac.PolicyTable, error) {
	switch format {
	case FormatJSON:
		return rbac.ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Encode renders the table in the given format.
func Encode(t rbac.PolicyTable, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return rbac.EncodeJSON(t)
	case FormatYAML:
		return EncodeYAML(t)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Source is a rbac.PolicySource reading a policy file on every Load, so a
// Holder can rebuild from the current file contents.
type Source struct {
	path   string
	format Format
}

// NewSource returns a source for path, choosing the format by extension.
func NewSource(path string) (*Source, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return &Source{path: path, format: format}, nil
}

// Load reads and decodes the file.
func (s *Source) Load(ctx context.Context) (rbac.PolicyTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}
	return Parse(data, s.format)
}

// Path returns the file the source reads.
func (s *Source) Path() string { return s.path }
