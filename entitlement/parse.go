package entitlement

import (
	"net/url"
	"strings"
)

const (
	groupToken = "group"
	rolePrefix = "role="
)

type options struct {
	lax     bool
	degrade bool
}

// Option configures parsing.
type Option func(*options)

// Lax makes the #authority tail optional. Under lax mode group, subgroup
// and role values may not contain '#'; the first '#' after the group
// chain always starts the authority.
func Lax() Option {
	return func(o *options) { o.lax = true }
}

// Degrade returns a non-conformant value carrying only the raw input when
// the grammar does not match, instead of a ParseError.
func Degrade() Option {
	return func(o *options) { o.degrade = true }
}

// Parse parses raw as an AARC-G002 entitlement. The default mode is
// strict (authority required) with fail-hard error handling; see Lax and
// Degrade. Parse is a pure function and never substitutes one mode for
// the other on failure.
func Parse(raw string, opts ...Option) (Entitlement, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return parse(raw, o)
}

// ParseEncoded percent-decodes raw before parsing. Entitlement strings
// arriving in HTTP headers or SAML attribute values are commonly
// percent-encoded; the grammar itself operates on decoded text only.
func ParseEncoded(raw string, opts ...Option) (Entitlement, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		if o.degrade {
			return Entitlement{Raw: raw}, nil
		}
		return Entitlement{}, &ParseError{Mode: modeName(o.lax), Input: raw}
	}
	return parse(decoded, o)
}

func parse(raw string, o options) (Entitlement, error) {
	if e, ok := match(raw, o.lax); ok {
		return e, nil
	}
	if o.degrade {
		return Entitlement{Raw: raw}, nil
	}
	return Entitlement{}, &ParseError{Mode: modeName(o.lax), Input: raw}
}

func modeName(lax bool) string {
	if lax {
		return "lax"
	}
	return "strict"
}

// match applies the grammar to the whole of raw, anchored at both ends.
//
// The grammar's sub-namespace repetition is lazy, so the first segment
// equal to "group" anchors the group chain; within an anchor, the strict
// authority split is resolved by greedy backtracking, i.e. the rightmost
// '#' that still lets the remainder parse.
func match(raw string, lax bool) (Entitlement, bool) {
	segs := strings.Split(raw, ":")
	if len(segs) < 5 || segs[0] != "urn" {
		return Entitlement{}, false
	}
	nid, delegated := segs[1], segs[2]
	if nid == "" || delegated == "" {
		return Entitlement{}, false
	}
	for j := 3; j+1 < len(segs); j++ {
		if segs[j] != groupToken {
			if segs[j] == "" {
				// An empty segment can be neither a sub-namespace
				// nor the group anchor; no later anchor can match.
				break
			}
			continue
		}
		tail := strings.Join(segs[j+1:], ":")
		e, ok := matchTail(tail, lax)
		if !ok {
			continue
		}
		e.NamespaceID = nid
		e.DelegatedNamespace = delegated
		e.Subnamespaces = append([]string(nil), segs[3:j]...)
		e.Raw = raw
		return e, true
	}
	return Entitlement{}, false
}

// matchTail parses the group chain plus optional role and authority tail.
func matchTail(tail string, lax bool) (Entitlement, bool) {
	if lax {
		head, auth := tail, ""
		if p := strings.IndexByte(tail, '#'); p >= 0 {
			head, auth = tail[:p], tail[p+1:]
			if auth == "" {
				return Entitlement{}, false
			}
		}
		e, ok := matchGroups(head)
		if !ok {
			return Entitlement{}, false
		}
		e.GroupAuthority = auth
		return e, true
	}
	// Strict: the authority is mandatory and must be non-empty. Group,
	// subgroup and role values may contain '#', so try split points from
	// the right.
	for p := len(tail) - 2; p >= 0; p-- {
		if tail[p] != '#' {
			continue
		}
		e, ok := matchGroups(tail[:p])
		if !ok {
			continue
		}
		e.GroupAuthority = tail[p+1:]
		return e, true
	}
	return Entitlement{}, false
}

// matchGroups parses "<group>(:<subgroup>)*(:role=<role>)?". The role
// binds at the first viable "role=" segment and swallows the rest of the
// chain, colons included; a bare trailing "role=" is an ordinary
// subgroup.
func matchGroups(head string) (Entitlement, bool) {
	segs := strings.Split(head, ":")
	if segs[0] == "" {
		return Entitlement{}, false
	}
	e := Entitlement{Group: segs[0]}
	rest := segs[1:]
	for k, s := range rest {
		if strings.HasPrefix(s, rolePrefix) {
			if role := strings.Join(rest[k:], ":")[len(rolePrefix):]; role != "" {
				e.Role = role
				e.Subgroups = append([]string(nil), rest[:k]...)
				return e, true
			}
		}
		if s == "" {
			return Entitlement{}, false
		}
	}
	e.Subgroups = append([]string(nil), rest...)
	return e, true
}
