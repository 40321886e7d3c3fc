package config

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/fin-atlas/pkg/services/assessment"
	"github.com/de-tools/fin-atlas/pkg/services/rules"
	"gopkg.in/ini.v1"
)

const (
	DefaultProfile = "default"
	rulePrefix     = "rule."
)

// Registry resolves named scoring profiles into assessment settings.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetSettings(ctx context.Context, profile string) (assessment.Settings, error)
}

type profileRegistry struct {
	settings map[string]assessment.Settings
}

// NewDefaultRegistry serves only the built-in default profile.
func NewDefaultRegistry() Registry {
	return &profileRegistry{
		settings: map[string]assessment.Settings{DefaultProfile: assessment.DefaultSettings()},
	}
}

// NewRegistry loads profiles from an ini file. Each section is a profile that
// overrides the defaults; keys in the unnamed section apply to "default".
// Sections named "rule.<id>" declare extra risk rules:
//
//	[rule.thin_history]
//	profiles       = default, strict
//	expression     = row_count < 3
//	risk           = Too few records for a reliable assessment.
//	recommendation = Upload at least three periods of data.
//
// A rule without profiles applies to every profile. Rules are compiled here,
// so a bad expression fails the load.
func NewRegistry(path string) (Registry, error) {
	if path == "" {
		return NewDefaultRegistry(), nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return newRegistryFromFile(cfg)
}

func newRegistryFromFile(cfg *ini.File) (Registry, error) {
	sections := map[string][]*ini.Section{}
	var ruleSections []*ini.Section

	for _, section := range cfg.Sections() {
		name := section.Name()
		switch {
		case strings.HasPrefix(name, rulePrefix):
			ruleSections = append(ruleSections, section)
		case name == ini.DefaultSection:
			sections[DefaultProfile] = append([]*ini.Section{section}, sections[DefaultProfile]...)
		default:
			sections[name] = append(sections[name], section)
		}
	}
	if _, ok := sections[DefaultProfile]; !ok {
		sections[DefaultProfile] = nil
	}

	ruleDefs, err := parseRules(ruleSections)
	if err != nil {
		return nil, err
	}

	reg := &profileRegistry{settings: make(map[string]assessment.Settings, len(sections))}
	for name, secs := range sections {
		settings := assessment.DefaultSettings()
		for _, sec := range secs {
			if err := applySection(&settings, sec); err != nil {
				return nil, fmt.Errorf("profile %s: %w", name, err)
			}
		}

		set, err := rules.NewSet(rulesFor(name, ruleDefs))
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
		if set.Len() > 0 {
			settings.Rules = set
		}
		reg.settings[name] = settings
	}

	return reg, nil
}

func applySection(s *assessment.Settings, sec *ini.Section) error {
	if sec.HasKey("revenue_keywords") {
		s.RevenueKeywords = sec.Key("revenue_keywords").Strings(",")
	}
	if sec.HasKey("expense_keywords") {
		s.ExpenseKeywords = sec.Key("expense_keywords").Strings(",")
	}
	if sec.HasKey("cashflow_keywords") {
		s.CashflowKeywords = sec.Key("cashflow_keywords").Strings(",")
	}
	if sec.HasKey("low_margin_percent") {
		v, err := sec.Key("low_margin_percent").Float64()
		if err != nil {
			return fmt.Errorf("low_margin_percent: %w", err)
		}
		s.LowMarginPercent = v
	}
	if sec.HasKey("strong_margin_percent") {
		v, err := sec.Key("strong_margin_percent").Float64()
		if err != nil {
			return fmt.Errorf("strong_margin_percent: %w", err)
		}
		s.StrongMarginPercent = v
	}

	if len(s.RevenueKeywords) == 0 || len(s.ExpenseKeywords) == 0 {
		return fmt.Errorf("revenue and expense keywords cannot be empty")
	}
	if s.LowMarginPercent > s.StrongMarginPercent {
		return fmt.Errorf("low_margin_percent (%v) exceeds strong_margin_percent (%v)",
			s.LowMarginPercent, s.StrongMarginPercent)
	}
	return nil
}

type ruleDef struct {
	rule     rules.Rule
	profiles []string
}

func parseRules(sections []*ini.Section) ([]ruleDef, error) {
	defs := make([]ruleDef, 0, len(sections))
	for _, sec := range sections {
		id := strings.TrimPrefix(sec.Name(), rulePrefix)
		if !sec.HasKey("expression") {
			return nil, fmt.Errorf("rule %s: expression is required", id)
		}
		def := ruleDef{
			rule: rules.Rule{
				ID:             id,
				Expression:     sec.Key("expression").String(),
				Risk:           sec.Key("risk").String(),
				Recommendation: sec.Key("recommendation").String(),
			},
		}
		if sec.HasKey("profiles") {
			def.profiles = sec.Key("profiles").Strings(",")
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func rulesFor(profile string, defs []ruleDef) []rules.Rule {
	var out []rules.Rule
	for _, d := range defs {
		if len(d.profiles) == 0 || contains(d.profiles, profile) {
			out = append(out, d.rule)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (r *profileRegistry) GetProfiles(_ context.Context) ([]string, error) {
	profiles := make([]string, 0, len(r.settings))
	for name := range r.settings {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles, nil
}

func (r *profileRegistry) GetSettings(_ context.Context, profile string) (assessment.Settings, error) {
	if profile == "" {
		profile = DefaultProfile
	}
	settings, ok := r.settings[profile]
	if !ok {
		return assessment.Settings{}, fmt.Errorf("%w: %s", ErrProfileNotFound, profile)
	}
	return settings, nil
}
