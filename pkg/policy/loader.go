package policy

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/residency-ops/oncall-scheduler/internal/log"
	"github.com/residency-ops/oncall-scheduler/pkg/domain"
)

// document mirrors the YAML shape of spec §6.2: {rules: [{id, init}]}.
type document struct {
	Rules []struct {
		ID   string         `yaml:"id"`
		Init map[string]any `yaml:"init"`
	} `yaml:"rules"`
}

// LoadYAML parses a policy document, producing an ordered []RuleInstance.
// Unknown class ids are skipped with a logged warning (spec §6.2); a
// malformed document is a fatal configuration error.
func LoadYAML(ctx context.Context, data []byte) ([]RuleInstance, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("policy: malformed document: %w", err)
	}

	var errs error
	var out []RuleInstance
	seenIDs := map[string]bool{}
	for _, entry := range doc.Rules {
		kind := RuleKind(entry.ID)
		if !KnownKinds(kind) {
			log.FromContext(ctx).Warnf("policy: skipping unknown rule class %q", entry.ID)
			continue
		}
		ri, err := parseRuleInstance(kind, entry.Init)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("policy: rule %q: %w", entry.ID, err))
			continue
		}
		if seenIDs[ri.ID()] {
			errs = multierr.Append(errs, fmt.Errorf("policy: duplicate rule id %q", ri.ID()))
			continue
		}
		seenIDs[ri.ID()] = true
		out = append(out, ri)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func parseRuleInstance(kind RuleKind, init map[string]any) (RuleInstance, error) {
	var ruleID string
	var priority *int
	params := Params{}

	if v, ok := init["id"]; ok {
		s, ok := v.(string)
		if !ok {
			return RuleInstance{}, fmt.Errorf("id must be a string")
		}
		ruleID = s
	}
	if v, ok := init["priority"]; ok {
		p, err := toInt(v)
		if err != nil {
			return RuleInstance{}, fmt.Errorf("priority: %w", err)
		}
		priority = &p
	}
	if err := parseFilter(init, &params.Filter); err != nil {
		return RuleInstance{}, err
	}
	if err := params.Filter.Validate(); err != nil {
		return RuleInstance{}, err
	}

	if v, ok := init["ranks"]; ok {
		ranks, err := toRanks(v)
		if err != nil {
			return RuleInstance{}, fmt.Errorf("ranks: %w", err)
		}
		params.Ranks = ranks
	}
	if v, ok := init["types"]; ok {
		types, err := toStrings(v)
		if err != nil {
			return RuleInstance{}, fmt.Errorf("types: %w", err)
		}
		params.Types = types
	}
	if v, ok := init["total"]; ok {
		n, err := toInt(v)
		if err != nil {
			return RuleInstance{}, fmt.Errorf("total: %w", err)
		}
		params.Total = &n
	}
	if v, ok := init["max"]; ok {
		n, err := toInt(v)
		if err != nil {
			return RuleInstance{}, fmt.Errorf("max: %w", err)
		}
		params.Max = &n
	}
	if v, ok := init["m_shifts"]; ok {
		n, err := toInt(v)
		if err != nil {
			return RuleInstance{}, fmt.Errorf("m_shifts: %w", err)
		}
		params.MShifts = &n
	}
	if v, ok := init["n_days"]; ok {
		n, err := toInt(v)
		if err != nil {
			return RuleInstance{}, fmt.Errorf("n_days: %w", err)
		}
		params.NDays = &n
	}

	return NewRuleInstance(kind, ruleID, priority, params), nil
}

func parseFilter(init map[string]any, f *Filter) error {
	var err error
	if v, ok := init["include_ranks"]; ok {
		if f.IncludeRanks, err = toRanks(v); err != nil {
			return fmt.Errorf("include_ranks: %w", err)
		}
	}
	if v, ok := init["exclude_ranks"]; ok {
		if f.ExcludeRanks, err = toRanks(v); err != nil {
			return fmt.Errorf("exclude_ranks: %w", err)
		}
	}
	if v, ok := init["include_names"]; ok {
		if f.IncludeNames, err = toStrings(v); err != nil {
			return fmt.Errorf("include_names: %w", err)
		}
	}
	if v, ok := init["exclude_names"]; ok {
		if f.ExcludeNames, err = toStrings(v); err != nil {
			return fmt.Errorf("exclude_names: %w", err)
		}
	}
	return nil
}

func toStrings(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list")
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected a list of strings")
		}
		out = append(out, s)
	}
	return out, nil
}

func toRanks(v any) ([]domain.Rank, error) {
	strs, err := toStrings(v)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Rank, len(strs))
	for i, s := range strs {
		out[i] = domain.Rank(s)
	}
	return out, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected an integer")
	}
}
