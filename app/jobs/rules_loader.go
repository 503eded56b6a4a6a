package jobs

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesFile is the optional YAML extension format for the built-in rule
// tables. Entries are appended after the defaults, so extensions can add
// coverage but never shadow a built-in rule.
type RulesFile struct {
	SkillKeywords   []SkillKeyword   `yaml:"skill_keywords"`
	SkillCategories map[string]string `yaml:"skill_categories"`
	CategoryRules   []CategoryRule   `yaml:"category_rules"`
	MetroAliases    []MetroAlias     `yaml:"metro_aliases"`
	TechKeywords    []string         `yaml:"tech_keywords"`
	Buzzwords       []string         `yaml:"buzzwords"`
	RedFlags        []RedFlagGroup   `yaml:"red_flags"`
}

// LoadRulesFile applies extensions from path on top of rules. A missing
// file is not an error; the defaults are used unchanged.
func LoadRulesFile(rules *Ruleset, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("No rules file found, using built-in tables", "path", path)
			return nil
		}
		return fmt.Errorf("failed to read rules file: %w", err)
	}

	var ext RulesFile
	if err := yaml.Unmarshal(data, &ext); err != nil {
		return fmt.Errorf("invalid rules file %s: %w", path, err)
	}

	for _, sk := range ext.SkillKeywords {
		if sk.Keyword == "" || sk.Skill == "" {
			return fmt.Errorf("invalid rules file %s: skill keyword entries need both keyword and skill", path)
		}
	}
	for _, cr := range ext.CategoryRules {
		if cr.Keyword == "" || cr.Category == "" {
			return fmt.Errorf("invalid rules file %s: category rule entries need both keyword and category", path)
		}
	}

	rules.SkillKeywords = append(rules.SkillKeywords, ext.SkillKeywords...)
	rules.CategoryRules = append(rules.CategoryRules, ext.CategoryRules...)
	rules.MetroAliases = append(rules.MetroAliases, ext.MetroAliases...)
	rules.TechKeywords = append(rules.TechKeywords, ext.TechKeywords...)
	rules.Buzzwords = append(rules.Buzzwords, ext.Buzzwords...)
	rules.RedFlags = append(rules.RedFlags, ext.RedFlags...)
	for skill, category := range ext.SkillCategories {
		rules.SkillCategories[skill] = category
	}

	slog.Info("Rules file applied",
		"path", path,
		"extra_skills", len(ext.SkillKeywords),
		"extra_categories", len(ext.CategoryRules),
		"extra_metros", len(ext.MetroAliases))

	return nil
}
