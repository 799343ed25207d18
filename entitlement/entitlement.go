// Package entitlement parses and compares EduPerson entitlement strings in
// the AARC-G002 format (https://aarc-project.eu/guidelines/aarc-g002/).
//
// The wire format is:
//
//	urn:<nid>:<delegated-namespace>(:<subnamespace>)*:group:<group>(:<subgroup>)*(:role=<role>)?#<authority>
//
// with the #<authority> tail optional in lax mode. Values are parsed once
// and never mutated, so they are safe to share across goroutines.
package entitlement

import (
	"fmt"
	"strings"
)

// Entitlement is the decomposed form of an AARC-G002 entitlement string.
//
// A value with an empty Group did not match the grammar; it is "degraded"
// and carries only Raw. Check Conformant before relying on the other
// fields. Role and GroupAuthority use the empty string for "absent" — the
// grammar never produces an empty capture for either.
type Entitlement struct {
	NamespaceID        string
	DelegatedNamespace string
	Subnamespaces      []string
	Group              string
	Subgroups          []string
	Role               string
	GroupAuthority     string

	// Raw is the original (percent-decoded) input, preserved verbatim.
	Raw string
}

// Conformant reports whether the value matched the AARC-G002 grammar.
func (e Entitlement) Conformant() bool { return e.Group != "" }

// Render reconstructs the canonical AARC-G002 string. For any strict-mode
// conformant input s, Render(Parse(s)) == s. Degraded values render their
// raw input verbatim.
func (e Entitlement) Render() string {
	if !e.Conformant() {
		return e.Raw
	}
	var b strings.Builder
	b.WriteString("urn:")
	b.WriteString(e.NamespaceID)
	b.WriteString(":")
	b.WriteString(e.DelegatedNamespace)
	for _, ns := range e.Subnamespaces {
		b.WriteString(":")
		b.WriteString(ns)
	}
	b.WriteString(":group:")
	b.WriteString(e.Group)
	for _, g := range e.Subgroups {
		b.WriteString(":")
		b.WriteString(g)
	}
	if e.Role != "" {
		b.WriteString(":role=")
		b.WriteString(e.Role)
	}
	if e.GroupAuthority != "" {
		b.WriteString("#")
		b.WriteString(e.GroupAuthority)
	}
	return b.String()
}

// String returns a human-readable form. Use Render for the wire format.
func (e Entitlement) String() string {
	if !e.Conformant() {
		return fmt.Sprintf("<entitlement non-conformant raw=%q>", e.Raw)
	}
	group := e.Group
	if len(e.Subgroups) > 0 {
		group += "," + strings.Join(e.Subgroups, ",")
	}
	namespace := e.NamespaceID + ":" + e.DelegatedNamespace
	if len(e.Subnamespaces) > 0 {
		namespace += "," + strings.Join(e.Subnamespaces, ",")
	}
	s := "<entitlement namespace=" + namespace + " group=" + group
	if e.Role != "" {
		s += " role=" + e.Role
	}
	if e.GroupAuthority != "" {
		s += " auth=" + e.GroupAuthority
	}
	return s + ">"
}
