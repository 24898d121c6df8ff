package rules

import "github.com/custodia-labs/marcfields/internal/core/domain"

// Describe lists every rule of rs sorted by format, tag and code.
func Describe(rs *RuleSet) []domain.RuleDescription {
	var out []domain.RuleDescription
	for _, format := range rs.Formats() {
		fr, _ := rs.Format(format)
		for _, tag := range fr.Tags() {
			rule, _ := fr.Tag(tag)
			switch r := rule.(type) {
			case Trigger:
				out = append(out, domain.RuleDescription{Format: format, Tag: tag, Kind: domain.RuleTrigger})
			case SubfieldRules:
				for _, code := range r.Codes() {
					sub, _ := r.Code(code)
					d := domain.RuleDescription{Format: format, Tag: tag, Code: code}
					switch s := sub.(type) {
					case DirectField:
						d.Kind = domain.RuleField
						d.Field = string(s)
					case Callback:
						d.Kind = domain.RuleCallback
					}
					out = append(out, d)
				}
			}
		}
	}
	return out
}
