package scoring

import "github.com/secmon-lab/grcengine/pkg/domain/types"

// OWASPFormID is the ID of the built-in OWASP Risk Rating form
const OWASPFormID types.FormID = "owasp"

func choices(labels map[int]string) [SlotCount]string {
	var out [SlotCount]string
	for slot, label := range labels {
		out[slot] = label
	}
	return out
}

// OWASPForm returns the factor tables of the OWASP Risk Rating Methodology.
// A fresh copy is returned on every call.
func OWASPForm() *Form {
	return &Form{
		ID:   OWASPFormID,
		Name: "OWASP Risk Rating",
		Groups: []FactorGroup{
			{
				ID:        "threat_agent",
				PromptKey: "owasp.threat_agent",
				Category:  types.FactorCategoryLikelihood,
				Factors: []Factor{
					{
						ID:        "skill_level",
						PromptKey: "owasp.threat_agent.skill_level",
						Choices: choices(map[int]string{
							1: "No technical skills",
							3: "Some technical skills",
							5: "Advanced computer user",
							6: "Network and programming skills",
							9: "Security penetration skills",
						}),
					},
					{
						ID:        "motive",
						PromptKey: "owasp.threat_agent.motive",
						Choices: choices(map[int]string{
							1: "Low or no reward",
							4: "Possible reward",
							9: "High reward",
						}),
					},
					{
						ID:        "opportunity",
						PromptKey: "owasp.threat_agent.opportunity",
						Choices: choices(map[int]string{
							0: "Full access or expensive resources required",
							4: "Special access or resources required",
							7: "Some access or resources required",
							9: "No access or resources required",
						}),
					},
					{
						ID:        "size",
						PromptKey: "owasp.threat_agent.size",
						Choices: choices(map[int]string{
							2: "Developers or system administrators",
							4: "Intranet users",
							5: "Partners",
							6: "Authenticated users",
							9: "Anonymous Internet users",
						}),
					},
				},
			},
			{
				ID:        "vulnerability",
				PromptKey: "owasp.vulnerability",
				Category:  types.FactorCategoryLikelihood,
				Factors: []Factor{
					{
						ID:        "ease_of_discovery",
						PromptKey: "owasp.vulnerability.ease_of_discovery",
						Choices: choices(map[int]string{
							1: "Practically impossible",
							3: "Difficult",
							7: "Easy",
							9: "Automated tools available",
						}),
					},
					{
						ID:        "ease_of_exploit",
						PromptKey: "owasp.vulnerability.ease_of_exploit",
						Choices: choices(map[int]string{
							1: "Theoretical",
							3: "Difficult",
							5: "Easy",
							9: "Automated tools available",
						}),
					},
					{
						ID:        "awareness",
						PromptKey: "owasp.vulnerability.awareness",
						Choices: choices(map[int]string{
							1: "Unknown",
							4: "Hidden",
							6: "Obvious",
							9: "Public knowledge",
						}),
					},
					{
						ID:        "intrusion_detection",
						PromptKey: "owasp.vulnerability.intrusion_detection",
						Choices: choices(map[int]string{
							1: "Active detection in application",
							3: "Logged and reviewed",
							8: "Logged without review",
							9: "Not logged",
						}),
					},
				},
			},
			{
				ID:        "technical_impact",
				PromptKey: "owasp.technical_impact",
				Category:  types.FactorCategoryImpact,
				Factors: []Factor{
					{
						ID:        "loss_of_confidentiality",
						PromptKey: "owasp.technical_impact.loss_of_confidentiality",
						Choices: choices(map[int]string{
							2: "Minimal non-sensitive data disclosed",
							6: "Minimal critical data disclosed",
							7: "Extensive critical data disclosed",
							9: "All data disclosed",
						}),
					},
					{
						ID:        "loss_of_integrity",
						PromptKey: "owasp.technical_impact.loss_of_integrity",
						Choices: choices(map[int]string{
							1: "Minimal slightly corrupt data",
							3: "Minimal seriously corrupt data",
							5: "Extensive slightly corrupt data",
							7: "Extensive seriously corrupt data",
							9: "All data totally corrupt",
						}),
					},
					{
						ID:        "loss_of_availability",
						PromptKey: "owasp.technical_impact.loss_of_availability",
						Choices: choices(map[int]string{
							1: "Minimal secondary services interrupted",
							5: "Minimal primary services interrupted",
							7: "Extensive primary services interrupted",
							9: "All services completely lost",
						}),
					},
					{
						ID:        "loss_of_accountability",
						PromptKey: "owasp.technical_impact.loss_of_accountability",
						Choices: choices(map[int]string{
							1: "Fully traceable",
							7: "Possibly traceable",
							9: "Completely anonymous",
						}),
					},
				},
			},
			{
				ID:        "business_impact",
				PromptKey: "owasp.business_impact",
				Category:  types.FactorCategoryImpact,
				Factors: []Factor{
					{
						ID:        "financial_damage",
						PromptKey: "owasp.business_impact.financial_damage",
						Choices: choices(map[int]string{
							1: "Less than the cost to fix the vulnerability",
							3: "Minor effect on annual profit",
							7: "Significant effect on annual profit",
							9: "Bankruptcy",
						}),
					},
					{
						ID:        "reputation_damage",
						PromptKey: "owasp.business_impact.reputation_damage",
						Choices: choices(map[int]string{
							1: "Minimal damage",
							4: "Loss of major accounts",
							5: "Loss of goodwill",
							9: "Brand damage",
						}),
					},
					{
						ID:        "non_compliance",
						PromptKey: "owasp.business_impact.non_compliance",
						Choices: choices(map[int]string{
							2: "Minor violation",
							5: "Clear violation",
							7: "High profile violation",
						}),
					},
					{
						ID:        "privacy_violation",
						PromptKey: "owasp.business_impact.privacy_violation",
						Choices: choices(map[int]string{
							3: "One individual",
							5: "Hundreds of people",
							7: "Thousands of people",
							9: "Millions of people",
						}),
					},
				},
			},
		},
	}
}
