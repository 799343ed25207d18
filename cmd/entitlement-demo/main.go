// Command entitlement-demo prints example AARC-G002 entitlement
// comparisons: for each scenario it parses a required and a held
// entitlement and reports whether the held one grants the required one.
package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/open-rails/aarckit/entitlement"
)

type scenario struct {
	title    string
	required string
	held     string
}

var scenarios = []scenario{
	{
		title:    "Simple case: everything identical",
		required: "urn:geant:h-df.de:group:aai-admin:role=member#unity.helmholtz-data-federation.de",
		held:     "urn:geant:h-df.de:group:aai-admin:role=member#unity.helmholtz-data-federation.de",
	},
	{
		title:    "Different authorities, everything else same",
		required: "urn:geant:h-df.de:group:aai-admin:role=member#unity.helmholtz-data-federation.de",
		held:     "urn:geant:h-df.de:group:aai-admin:role=member#backupserver.used.for.developmt.de",
	},
	{
		title:    "Role assigned but not required",
		required: "urn:geant:h-df.de:group:aai-admin#unity.helmholtz-data-federation.de",
		held:     "urn:geant:h-df.de:group:aai-admin:role=member#backupserver.used.for.developmt.de",
	},
	{
		title:    "Role required but not assigned",
		required: "urn:geant:h-df.de:group:aai-admin:role=member#unity.helmholtz-data-federation.de",
		held:     "urn:geant:h-df.de:group:aai-admin#backupserver.used.for.developmt.de",
	},
	{
		title:    "Subgroup required, but not available",
		required: "urn:geant:h-df.de:group:aai-admin:special-admins#unity.helmholtz-data-federation.de",
		held:     "urn:geant:h-df.de:group:aai-admin#backupserver.used.for.developmt.de",
	},
	{
		title:    "Edge case: user in subgroup, but only supergroup required",
		required: "urn:geant:h-df.de:group:aai-admin#unity.helmholtz-data-federation.de",
		held:     "urn:geant:h-df.de:group:aai-admin:testgroup:special-admins#backupserver.used.for.developmt.de",
	},
	{
		title:    "Role required for supergroup but only assigned for subgroup",
		required: "urn:geant:h-df.de:group:aai-admin:role=admin#unity.helmholtz-data-federation.de",
		held:     "urn:geant:h-df.de:group:aai-admin:special-admins:role=admin#backupserver.used.for.developmt.de",
	},
	{
		title:    "Non-conformant input degrades instead of failing",
		required: "any old junk",
		held:     "any old junk",
	},
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	for i, s := range scenarios {
		required, err := entitlement.Parse(s.required, entitlement.Lax(), entitlement.Degrade())
		if err != nil {
			log.WithError(err).Fatal("parsing required entitlement")
		}
		held, err := entitlement.Parse(s.held, entitlement.Lax(), entitlement.Degrade())
		if err != nil {
			log.WithError(err).Fatal("parsing held entitlement")
		}
		if !required.Conformant() {
			log.WithField("entitlement", s.required).
				Warn("input did not match the AARC-G002 grammar")
		}

		fmt.Printf("\n%d: %s\n", i+1, s.title)
		fmt.Printf("    Required: %s\n", s.required)
		fmt.Printf("    Held:     %s\n", s.held)
		fmt.Printf("    is satisfied by => %v\n", required.IsSatisfiedBy(held))
		fmt.Printf("        (are equal  => %v)\n", required.Equals(held))
	}
}
