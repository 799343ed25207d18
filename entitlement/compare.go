package entitlement

import "slices"

// Equals reports whether e and other describe the same entitlement.
//
// Group authority is provenance, not scope, and is ignored. Following the
// upstream AARC-G002 semantics, sub-namespaces are compared as a one-way
// subset (every sub-namespace of e must appear in other, extra entries in
// other are fine), so Equals is deliberately not symmetric. Subgroups and
// role must match exactly. Two non-conformant values are equal iff their
// raw texts are byte-identical; a conformant value never equals a
// non-conformant one.
func (e Entitlement) Equals(other Entitlement) bool {
	if !e.Conformant() || !other.Conformant() {
		return !e.Conformant() && !other.Conformant() && e.Raw == other.Raw
	}
	if e.NamespaceID != other.NamespaceID {
		return false
	}
	if e.DelegatedNamespace != other.DelegatedNamespace {
		return false
	}
	for _, ns := range e.Subnamespaces {
		if !slices.Contains(other.Subnamespaces, ns) {
			return false
		}
	}
	if e.Group != other.Group {
		return false
	}
	if !slices.Equal(e.Subgroups, other.Subgroups) {
		return false
	}
	return e.Role == other.Role
}

// IsSatisfiedBy reports whether held grants the capability e requires.
//
// The checks, in order: namespace id, delegated namespace, sub-namespaces
// (subset, order-independent), root group, subgroups (subset,
// order-independent), and — only when e asserts a role — role equality at
// the same deepest group level. Group authority is never consulted. If
// either side is non-conformant, both must be, with byte-identical raw
// texts.
func (e Entitlement) IsSatisfiedBy(held Entitlement) bool {
	if !e.Conformant() || !held.Conformant() {
		return !e.Conformant() && !held.Conformant() && e.Raw == held.Raw
	}
	if e.NamespaceID != held.NamespaceID {
		return false
	}
	if e.DelegatedNamespace != held.DelegatedNamespace {
		return false
	}
	for _, ns := range e.Subnamespaces {
		if !slices.Contains(held.Subnamespaces, ns) {
			return false
		}
	}
	if e.Group != held.Group {
		return false
	}
	for _, g := range e.Subgroups {
		if !slices.Contains(held.Subgroups, g) {
			return false
		}
	}
	if e.Role != "" {
		if e.Role != held.Role {
			return false
		}
		if e.roleLevel() != held.roleLevel() {
			return false
		}
	}
	return true
}

// roleLevel is the deepest group level a role binds to: the last subgroup
// if any, else the root group.
func (e Entitlement) roleLevel() string {
	if n := len(e.Subgroups); n > 0 {
		return e.Subgroups[n-1]
	}
	return e.Group
}
