package rbac

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// GrantDocument is one element of a role's list in a serialized policy.
// An element is either a grant ({"module": "invoices", "actions": ["read"]})
// or the full-access sentinel ({"*": true}), never both.
type GrantDocument struct {
	Module  string   `json:"module,omitempty" yaml:"module,omitempty"`
	Actions []string `json:"actions,omitempty" yaml:"actions,omitempty"`
	All     bool     `json:"*,omitempty" yaml:"*,omitempty"`
}

// PolicyDocument is the external form of a PolicyTable:
//
//	{"billing_specialist": [{"module": "invoices", "actions": ["read"]}], "super_admin": [{"*": true}]}
//
// It carries both json and yaml tags so any encoding can reuse it.
type PolicyDocument map[string][]GrantDocument

// Table converts the document into a PolicyTable. Structural problems are
// reported as ErrMalformedPolicy; semantic checks are left to NewResolver.
func (d PolicyDocument) Table() (PolicyTable, error) {
	table := make(PolicyTable, len(d))
	for role, items := range d {
		entry := RoleEntry{Grants: make([]Grant, 0, len(items))}
		for i, item := range items {
			switch {
			case item.All && (item.Module != "" || len(item.Actions) > 0):
				return nil, errors.Join(ErrMalformedPolicy,
					fmt.Errorf("role %q: element #%d mixes the full-access sentinel with a grant", role, i))
			case item.All:
				entry.FullAccess = true
			case item.Module == "":
				return nil, errors.Join(ErrMalformedPolicy,
					fmt.Errorf("role %q: element #%d has neither a module nor the full-access sentinel", role, i))
			default:
				actions := make([]Action, len(item.Actions))
				for j, a := range item.Actions {
					actions[j] = Action(a)
				}
				entry.Grants = append(entry.Grants, Grant{Module: Module(item.Module), Actions: actions})
			}
		}
		table[Role(role)] = entry
	}
	return table, nil
}

// NewPolicyDocument converts a table into its external form.
// Full-access roles list the sentinel first.
func NewPolicyDocument(t PolicyTable) PolicyDocument {
	doc := make(PolicyDocument, len(t))
	for role, entry := range t {
		items := make([]GrantDocument, 0, len(entry.Grants)+1)
		if entry.FullAccess {
			items = append(items, GrantDocument{All: true})
		}
		for _, g := range entry.Grants {
			actions := make([]string, len(g.Actions))
			for i, a := range g.Actions {
				actions[i] = string(a)
			}
			items = append(items, GrantDocument{Module: string(g.Module), Actions: actions})
		}
		doc[string(role)] = items
	}
	return doc
}

// ParseJSON decodes a JSON policy document. Unknown fields, repeated role
// keys and trailing values are rejected so no grant is dropped silently.
func ParseJSON(data []byte) (PolicyTable, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	doc, err := decodeDocument(dec)
	if err != nil {
		return nil, errors.Join(ErrMalformedPolicy, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrMalformedPolicy, errors.New("unexpected data after the policy document"))
	}
	return doc.Table()
}

// decodeDocument walks the top-level object key by key, since decoding
// straight into a map keeps only the last value of a repeated key.
func decodeDocument(dec *json.Decoder) (PolicyDocument, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return PolicyDocument{}, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("policy document must be a JSON object, got %v", tok)
	}

	doc := make(PolicyDocument)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		role, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		if _, dup := doc[role]; dup {
			return nil, fmt.Errorf("role %q is defined more than once", role)
		}
		var items []GrantDocument
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("role %q: %w", role, err)
		}
		doc[role] = items
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return doc, nil
}

// EncodeJSON renders the table as an indented JSON policy document.
// Role keys come out sorted, so equal tables encode identically.
func EncodeJSON(t PolicyTable) ([]byte, error) {
	return json.MarshalIndent(NewPolicyDocument(t), "", "  ")
}
