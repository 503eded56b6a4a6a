package jobs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEverySkillHasCategory(t *testing.T) {
	rules := DefaultRuleset()

	for _, sk := range rules.SkillKeywords {
		if _, ok := rules.SkillCategories[sk.Skill]; !ok {
			t.Errorf("Skill %q (keyword %q) has no category mapping", sk.Skill, sk.Keyword)
		}
	}
}

func TestRulesetTablesNonEmpty(t *testing.T) {
	rules := DefaultRuleset()

	if len(rules.CategoryRules) == 0 {
		t.Error("Expected category rules")
	}
	if len(rules.MetroAliases) == 0 {
		t.Error("Expected metro aliases")
	}
	if len(rules.SeniorityLevels) == 0 {
		t.Error("Expected seniority levels")
	}
	if len(rules.RedFlags) == 0 {
		t.Error("Expected red flag groups")
	}

	// Seniority levels resolve top-down from the most senior
	if rules.SeniorityLevels[0].Level != "C-Level" {
		t.Errorf("Expected C-Level checked first, got %q", rules.SeniorityLevels[0].Level)
	}
}

func TestLoadRulesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yml")

	content := `skill_keywords:
  - keyword: "ollama"
    skill: "Ollama"
skill_categories:
  Ollama: "LLM Frameworks"
category_rules:
  - keyword: "evaluation engineer"
    category: "AI/ML Engineer"
metro_aliases:
  - alias: "miami"
    metro: "Miami"
buzzwords:
  - "10x engineer"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}

	rules := DefaultRuleset()
	baseSkills := len(rules.SkillKeywords)
	baseRules := len(rules.CategoryRules)

	if err := LoadRulesFile(rules, path); err != nil {
		t.Fatalf("LoadRulesFile failed: %v", err)
	}

	if len(rules.SkillKeywords) != baseSkills+1 {
		t.Errorf("Expected %d skill keywords, got %d", baseSkills+1, len(rules.SkillKeywords))
	}
	if rules.SkillCategories["Ollama"] != "LLM Frameworks" {
		t.Errorf("Expected Ollama category mapping, got %q", rules.SkillCategories["Ollama"])
	}

	// Extensions append after the defaults, so built-in rules keep priority
	if rules.CategoryRules[baseRules].Keyword != "evaluation engineer" {
		t.Errorf("Expected extension rule appended last, got %q", rules.CategoryRules[baseRules].Keyword)
	}

	e := NewEnricher(rules, 1)
	if got := e.NormalizeMetro("Miami, FL"); got == nil || *got != "Miami" {
		t.Errorf("Expected extension metro alias to apply, got %v", got)
	}
}

func TestLoadRulesFileMissing(t *testing.T) {
	rules := DefaultRuleset()
	if err := LoadRulesFile(rules, filepath.Join(t.TempDir(), "absent.yml")); err != nil {
		t.Errorf("Expected missing file to be ignored, got %v", err)
	}
	if err := LoadRulesFile(rules, ""); err != nil {
		t.Errorf("Expected empty path to be ignored, got %v", err)
	}
}

func TestLoadRulesFileInvalid(t *testing.T) {
	dir := t.TempDir()

	badYAML := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(badYAML, []byte("skill_keywords: {nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadRulesFile(DefaultRuleset(), badYAML); err == nil {
		t.Error("Expected error for malformed YAML")
	}

	incomplete := filepath.Join(dir, "incomplete.yml")
	if err := os.WriteFile(incomplete, []byte("skill_keywords:\n  - keyword: \"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadRulesFile(DefaultRuleset(), incomplete); err == nil {
		t.Error("Expected error for skill keyword without skill name")
	}
}
