package entitlement

import "testing"

func mustParse(t *testing.T, raw string) Entitlement {
	t.Helper()
	e, err := Parse(raw, Lax())
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", raw, err)
	}
	return e
}

// The scenarios the upstream AARC-G002 module ships as its demonstration
// cases, plus their expected outcomes.
func TestIsSatisfiedByScenarios(t *testing.T) {
	tests := []struct {
		name      string
		required  string
		held      string
		satisfied bool
	}{
		{
			name:      "identical",
			required:  "urn:geant:h-df.de:group:aai-admin:role=member#unity.helmholtz-data-federation.de",
			held:      "urn:geant:h-df.de:group:aai-admin:role=member#unity.helmholtz-data-federation.de",
			satisfied: true,
		},
		{
			name:      "different authorities only",
			required:  "urn:geant:h-df.de:group:aai-admin:role=member#unity.helmholtz-data-federation.de",
			held:      "urn:geant:h-df.de:group:aai-admin:role=member#backupserver.used.for.developmt.de",
			satisfied: true,
		},
		{
			name:      "role assigned but not required",
			required:  "urn:geant:h-df.de:group:aai-admin#unity.helmholtz-data-federation.de",
			held:      "urn:geant:h-df.de:group:aai-admin:role=member#backupserver.used.for.developmt.de",
			satisfied: true,
		},
		{
			name:      "role required but not assigned",
			required:  "urn:geant:h-df.de:group:aai-admin:role=member#unity.helmholtz-data-federation.de",
			held:      "urn:geant:h-df.de:group:aai-admin#backupserver.used.for.developmt.de",
			satisfied: false,
		},
		{
			name:      "subgroup required but not held",
			required:  "urn:geant:h-df.de:group:aai-admin:special-admins#unity.helmholtz-data-federation.de",
			held:      "urn:geant:h-df.de:group:aai-admin#backupserver.used.for.developmt.de",
			satisfied: false,
		},
		{
			name:      "user in subgroup, only supergroup required",
			required:  "urn:geant:h-df.de:group:aai-admin#unity.helmholtz-data-federation.de",
			held:      "urn:geant:h-df.de:group:aai-admin:testgroup:special-admins#backupserver.used.for.developmt.de",
			satisfied: true,
		},
		{
			name:      "role required for supergroup, assigned in subgroup",
			required:  "urn:geant:h-df.de:group:aai-admin:role=admin#unity.helmholtz-data-federation.de",
			held:      "urn:geant:h-df.de:group:aai-admin:special-admins:role=admin#backupserver.used.for.developmt.de",
			satisfied: false,
		},
		{
			name:      "different namespace id",
			required:  "urn:mace:h-df.de:group:aai-admin#a",
			held:      "urn:geant:h-df.de:group:aai-admin#a",
			satisfied: false,
		},
		{
			name:      "different delegated namespace",
			required:  "urn:geant:kit.edu:group:aai-admin#a",
			held:      "urn:geant:h-df.de:group:aai-admin#a",
			satisfied: false,
		},
		{
			name:      "different group",
			required:  "urn:geant:h-df.de:group:other#a",
			held:      "urn:geant:h-df.de:group:aai-admin#a",
			satisfied: false,
		},
		{
			name:      "required subnamespace missing",
			required:  "urn:geant:h-df.de:sub:group:aai-admin#a",
			held:      "urn:geant:h-df.de:group:aai-admin#a",
			satisfied: false,
		},
		{
			name:      "extra held subnamespace",
			required:  "urn:geant:h-df.de:group:aai-admin#a",
			held:      "urn:geant:h-df.de:sub:group:aai-admin#a",
			satisfied: true,
		},
		{
			name:      "subgroups matched as a set, not a chain",
			required:  "urn:geant:h-df.de:group:g:a:b#auth",
			held:      "urn:geant:h-df.de:group:g:b:x:a#auth",
			satisfied: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			required := mustParse(t, tc.required)
			held := mustParse(t, tc.held)
			if got := required.IsSatisfiedBy(held); got != tc.satisfied {
				t.Errorf("IsSatisfiedBy = %v, want %v\n required: %s\n held:     %s",
					got, tc.satisfied, tc.required, tc.held)
			}
		})
	}
}

func TestIsSatisfiedByRoleDepth(t *testing.T) {
	// A role at the same depth with the same deepest level satisfies.
	required := mustParse(t, "urn:geant:h-df.de:group:g:sub:role=admin#a")
	held := mustParse(t, "urn:geant:h-df.de:group:g:sub:role=admin#b")
	if !required.IsSatisfiedBy(held) {
		t.Error("same role at same level not satisfied")
	}

	// Same role name, all required subgroups held, but the role is bound
	// to a different deepest level.
	held = mustParse(t, "urn:geant:h-df.de:group:g:sub:deeper:role=admin#b")
	if required.IsSatisfiedBy(held) {
		t.Error("role at different level satisfied")
	}
}

func TestIsSatisfiedByMonotonic(t *testing.T) {
	required := mustParse(t, "urn:geant:h-df.de:sub1:group:g:a#auth")
	held := mustParse(t, "urn:geant:h-df.de:sub1:group:g:a#auth")
	if !required.IsSatisfiedBy(held) {
		t.Fatal("baseline not satisfied")
	}
	// Extra held subgroups and subnamespaces keep satisfaction.
	wider := mustParse(t, "urn:geant:h-df.de:sub1:sub2:group:g:a:b:c#auth")
	if !required.IsSatisfiedBy(wider) {
		t.Error("widening held entitlement broke satisfaction")
	}
	// Removing a required element breaks it.
	narrower := mustParse(t, "urn:geant:h-df.de:sub1:group:g#auth")
	if required.IsSatisfiedBy(narrower) {
		t.Error("narrowed held entitlement still satisfies")
	}
}

func TestIsSatisfiedByDegraded(t *testing.T) {
	degradedA, _ := Parse("free-form text", Degrade())
	degradedB, _ := Parse("free-form text", Degrade())
	degradedC, _ := Parse("other text", Degrade())
	conformant := mustParse(t, "urn:geant:h-df.de:group:g#a")

	if !degradedA.IsSatisfiedBy(degradedB) {
		t.Error("identical degraded values do not satisfy each other")
	}
	if degradedA.IsSatisfiedBy(degradedC) {
		t.Error("distinct degraded values satisfy each other")
	}
	if degradedA.IsSatisfiedBy(conformant) {
		t.Error("conformant value satisfies a degraded requirement")
	}
	if conformant.IsSatisfiedBy(degradedA) {
		t.Error("degraded value satisfies a conformant requirement")
	}
}

func TestEquals(t *testing.T) {
	a := mustParse(t, "urn:geant:h-df.de:group:g:s1:role=member#auth1")
	if !a.Equals(a) {
		t.Error("value not equal to itself")
	}

	// Authority is provenance only.
	b := mustParse(t, "urn:geant:h-df.de:group:g:s1:role=member#auth2")
	if !a.Equals(b) {
		t.Error("authority difference broke equality")
	}

	// Subgroup order matters for equality (unlike containment).
	c := mustParse(t, "urn:geant:h-df.de:group:g:s1:s2:role=member#auth1")
	d := mustParse(t, "urn:geant:h-df.de:group:g:s2:s1:role=member#auth1")
	if c.Equals(d) {
		t.Error("reordered subgroups compare equal")
	}

	// Role must match, including absence.
	e := mustParse(t, "urn:geant:h-df.de:group:g:s1#auth1")
	if a.Equals(e) || e.Equals(a) {
		t.Error("role presence difference compares equal")
	}
}

func TestEqualsSubnamespaceAsymmetry(t *testing.T) {
	narrow := mustParse(t, "urn:geant:h-df.de:group:g#a")
	wide := mustParse(t, "urn:geant:h-df.de:extra:group:g#a")

	if !narrow.Equals(wide) {
		t.Error("subset direction not equal")
	}
	if wide.Equals(narrow) {
		t.Error("superset direction equal, want not equal")
	}
}

func TestEqualsDegraded(t *testing.T) {
	degradedA, _ := Parse("junk", Degrade())
	degradedB, _ := Parse("junk", Degrade())
	degradedC, _ := Parse("other junk", Degrade())
	conformant := mustParse(t, "urn:geant:h-df.de:group:g#a")

	if !degradedA.Equals(degradedB) {
		t.Error("identical degraded values not equal")
	}
	if degradedA.Equals(degradedC) {
		t.Error("distinct degraded values equal")
	}
	if degradedA.Equals(conformant) || conformant.Equals(degradedA) {
		t.Error("degraded and conformant values equal")
	}
}
