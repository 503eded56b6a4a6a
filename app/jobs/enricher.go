package jobs

import (
	"context"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const snippetLength = 500

// Enricher turns raw scraped postings into classified records. It is a
// pure function of its ruleset and the input record: no I/O, no shared
// state, so records can be enriched concurrently.
type Enricher struct {
	rules   *Ruleset
	workers int
	now     func() time.Time
}

func NewEnricher(rules *Ruleset, workers int) *Enricher {
	if workers < 1 {
		workers = 1
	}
	return &Enricher{
		rules:   rules,
		workers: workers,
		now:     time.Now,
	}
}

// Enrich classifies one posting. The second return is false when the
// posting has no title; such records are dropped entirely. Every other
// malformed or missing field degrades to a documented default instead of
// failing.
func (e *Enricher) Enrich(raw RawJob) (EnrichedJob, bool) {
	if strings.TrimSpace(raw.Title) == "" {
		return EnrichedJob{}, false
	}

	salaryMin, salaryMax, salaryType := normalizeSalary(raw.MinAmount, raw.MaxAmount, raw.Interval)

	description := raw.Description
	location := raw.Location
	company := raw.Company
	if company == "" {
		company = "Unknown"
	}

	score := e.dataQualityScore(raw)

	sourceURL := raw.JobURL
	if sourceURL == "" {
		sourceURL = raw.JobURLDirect
	}

	source := raw.Site
	if source == "" {
		source = "indeed"
	}

	var datePosted *string
	if raw.DatePosted != "" {
		d := raw.DatePosted
		if len(d) > 10 {
			d = d[:10]
		}
		datePosted = &d
	}

	today := e.now()
	importDate := today.Format("2006-01-02")

	remoteType := e.DetermineRemoteType(raw.IsRemote, location)

	job := EnrichedJob{
		JobID:    truncate(raw.ID, 12),
		Title:    raw.Title,
		Company:  company,
		Location: location,
		Metro:    e.NormalizeMetro(location),

		RemoteType: remoteType,
		IsRemote:   remoteType == "remote",

		SalaryMin:  salaryMin,
		SalaryMax:  salaryMax,
		MinAmount:  salaryMin,
		MaxAmount:  salaryMax,
		SalaryType: salaryType,

		ExperienceLevel: e.DetermineExperienceLevel(raw.Title, description),
		Seniority:       e.ClassifySeniority(raw.Title),
		JobCategory:     e.CategorizeJob(raw.Title),
		SkillsTags:      e.ExtractSkills(description),
		IsTech:          e.DetectTechCompany(company, description),
		CompanyStage:    e.DetectCompanyStage(description),

		DataQualityScore: score,
		DataQuality:      QualityLabel(score),
		HasDescription:   len(description) > 100,
		HasSalary:        salaryMin != nil || salaryMax != nil,

		RedFlags:  e.ExtractRedFlags(description),
		Buzzwords: e.ExtractBuzzwords(description),

		DatePosted:  datePosted,
		DateScraped: importDate,
		ImportDate:  importDate,
		ImportWeek:  importWeek(today),
		WeekAdded:   importDate,

		Source:       source,
		SourceURL:    sourceURL,
		JobURLDirect: sourceURL,

		Description:        description,
		DescriptionSnippet: truncate(description, snippetLength),
	}

	return job, true
}

// EnrichAll classifies a batch concurrently, preserving input order and
// dropping title-less records. Records are independent, so the only
// coordination is the bounded worker limit; cancelling ctx stops the
// batch and returns the context error.
func (e *Enricher) EnrichAll(ctx context.Context, raws []RawJob) ([]EnrichedJob, error) {
	results := make([]*EnrichedJob, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := range raws {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if job, ok := e.Enrich(raws[i]); ok {
				results[i] = &job
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	enriched := make([]EnrichedJob, 0, len(raws))
	for _, job := range results {
		if job != nil {
			enriched = append(enriched, *job)
		}
	}
	return enriched, nil
}

// CategorizeJob maps a title to a role category, first match wins.
func (e *Enricher) CategorizeJob(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range e.rules.CategoryRules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Category
		}
	}
	return "Other AI Role"
}

// ClassifySeniority maps a title to a seniority level. Levels are checked
// top-down (C-Level first), first matching level wins.
func (e *Enricher) ClassifySeniority(title string) string {
	lower := strings.ToLower(title)
	for _, level := range e.rules.SeniorityLevels {
		for _, kw := range level.Keywords {
			if strings.Contains(lower, kw) {
				return level.Level
			}
		}
	}
	return "Mid"
}

// ExtractSkills collects every canonical skill whose any keyword variant
// appears in the description. Unlike the title classifiers this is
// collect-all, not first-match. The result is deduplicated and sorted.
func (e *Enricher) ExtractSkills(description string) []string {
	if description == "" {
		return []string{}
	}

	lower := strings.ToLower(description)
	found := make(map[string]bool)
	for _, sk := range e.rules.SkillKeywords {
		if strings.Contains(lower, sk.Keyword) {
			found[sk.Skill] = true
		}
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}

// NormalizeMetro maps a free-text location to a canonical metro, first
// matching alias wins. Returns nil when no alias matches.
func (e *Enricher) NormalizeMetro(location string) *string {
	if location == "" {
		return nil
	}

	lower := strings.ToLower(location)
	for _, alias := range e.rules.MetroAliases {
		if strings.Contains(lower, alias.Alias) {
			metro := alias.Metro
			return &metro
		}
	}
	return nil
}

// DetermineRemoteType resolves remote/hybrid/onsite from the scraper's
// remote flag and the location text. The explicit flag wins.
func (e *Enricher) DetermineRemoteType(isRemote *bool, location string) string {
	lower := strings.ToLower(location)
	switch {
	case (isRemote != nil && *isRemote) || strings.Contains(lower, "remote"):
		return "remote"
	case strings.Contains(lower, "hybrid"):
		return "hybrid"
	default:
		return "onsite"
	}
}

// DetermineExperienceLevel derives senior/mid/entry from title plus
// description. It deliberately keeps its own keyword lists instead of
// reusing ClassifySeniority's: the two fields shipped divergent tables and
// downstream consumers read both, so they stay independently maintained.
func (e *Enricher) DetermineExperienceLevel(title, description string) string {
	text := strings.ToLower(title + " " + description)

	for _, kw := range e.rules.SeniorSignals {
		if strings.Contains(text, kw) {
			return "senior"
		}
	}
	for _, kw := range e.rules.JuniorSignals {
		if strings.Contains(text, kw) {
			return "entry"
		}
	}
	return "mid"
}

// DetectTechCompany reports whether the company looks like a tech company
// based on company name plus description text.
func (e *Enricher) DetectTechCompany(company, description string) bool {
	if company == "" {
		return false
	}

	text := strings.ToLower(company + " " + description)
	for _, kw := range e.rules.TechKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// DetectCompanyStage infers the funding stage from description text,
// earliest stage group wins. Defaults to "Unknown".
func (e *Enricher) DetectCompanyStage(description string) string {
	if description == "" {
		return "Unknown"
	}

	lower := strings.ToLower(description)
	for _, stage := range e.rules.CompanyStages {
		for _, kw := range stage.Keywords {
			if strings.Contains(lower, kw) {
				return stage.Stage
			}
		}
	}
	return "Unknown"
}

// ExtractRedFlags collects red-flag categories. A category is flagged at
// most once no matter how many of its phrases match.
func (e *Enricher) ExtractRedFlags(description string) []string {
	flags := []string{}
	if description == "" {
		return flags
	}

	lower := strings.ToLower(description)
	for _, group := range e.rules.RedFlags {
		for _, phrase := range group.Phrases {
			if strings.Contains(lower, phrase) {
				flags = append(flags, group.Flag)
				break
			}
		}
	}
	return flags
}

// ExtractBuzzwords collects every matching buzzword phrase individually.
func (e *Enricher) ExtractBuzzwords(description string) []string {
	found := []string{}
	if description == "" {
		return found
	}

	lower := strings.ToLower(description)
	for _, bw := range e.rules.Buzzwords {
		if strings.Contains(lower, bw) {
			found = append(found, bw)
		}
	}
	return found
}

// dataQualityScore sums four weighted presence checks against the raw
// record: description over 100 chars (+40), any salary bound (+30),
// non-placeholder location (+15), non-placeholder company (+15).
func (e *Enricher) dataQualityScore(raw RawJob) int {
	score := 0

	if len(raw.Description) > 100 {
		score += 40
	}
	if raw.MinAmount != nil || raw.MaxAmount != nil {
		score += 30
	}
	if !isPlaceholder(raw.Location) {
		score += 15
	}
	if !isPlaceholder(raw.Company) && raw.Company != "Unknown" {
		score += 15
	}

	return score
}

// Placeholder values written by the upstream scraper for absent fields.
func isPlaceholder(s string) bool {
	return s == "" || s == "nan" || s == "None"
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
