package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Seniority levels appear in career order, not by count.
var seniorityOrder = []string{"Entry", "Mid", "Senior", "Director", "VP", "C-Level"}

const (
	newsletterTopCategories = 8
	newsletterTopMetros     = 6
	newsletterTopRoles      = 5
)

// RenderNewsletter formats the comp analysis as the newsletter's markdown
// compensation section.
func RenderNewsletter(analysis CompAnalysis, now time.Time) string {
	// en-US digit grouping for dollar amounts ($1,234,567).
	p := message.NewPrinter(language.AmericanEnglish)
	var b strings.Builder

	b.WriteString("# AI Jobs Compensation Report\n\n")
	p.Fprintf(&b, "**Data as of %s** | %d roles with disclosed salary out of %d total (%.1f%% disclosure rate)\n\n",
		now.Format("January 2, 2006"), analysis.RecordsWithSalary, analysis.TotalRecords, analysis.DisclosureRate)

	if analysis.Overall != nil {
		b.WriteString("## Market Overview\n\n")
		p.Fprintf(&b, "- **Average Max Salary**: $%d\n", analysis.Overall.MaxSalaryAvg)
		p.Fprintf(&b, "- **Median Salary**: $%d\n", analysis.Overall.MedianSalary)
		p.Fprintf(&b, "- **75th Percentile**: $%d\n", analysis.Overall.P75)
		p.Fprintf(&b, "- **90th Percentile**: $%d\n\n", analysis.Overall.P90)
	}

	if len(analysis.ByCategory) > 0 {
		b.WriteString("## Compensation by Role Type\n\n")
		for _, key := range sortedByMaxAvg(analysis.ByCategory, newsletterTopCategories) {
			data := analysis.ByCategory[key]
			p.Fprintf(&b, "**%s** (n=%d): $%d-$%d\n\n", key, data.Count, data.MinBaseAvg, data.MaxBaseAvg)
		}
	}

	if len(analysis.BySeniority) > 0 {
		b.WriteString("## Compensation by Seniority\n\n")
		for _, level := range seniorityOrder {
			if data, ok := analysis.BySeniority[level]; ok {
				p.Fprintf(&b, "**%s** (n=%d): $%d-$%d\n\n", level, data.Count, data.MinBaseAvg, data.MaxBaseAvg)
			}
		}
	}

	if len(analysis.ByMetro) > 0 {
		b.WriteString("## Compensation by Location\n\n")
		for _, key := range sortedByMaxAvg(analysis.ByMetro, newsletterTopMetros) {
			data := analysis.ByMetro[key]
			p.Fprintf(&b, "**%s** (n=%d): $%d-$%d\n\n", key, data.Count, data.MinBaseAvg, data.MaxBaseAvg)
		}
	}

	if len(analysis.ByRemote) > 0 {
		b.WriteString("## Remote vs On-site\n\n")
		for _, key := range sortedByMaxAvg(analysis.ByRemote, 0) {
			data := analysis.ByRemote[key]
			p.Fprintf(&b, "**%s** (n=%d): $%d-$%d\n\n", titleCase(key), data.Count, data.MinBaseAvg, data.MaxBaseAvg)
		}
	}

	if len(analysis.TopPayingRoles) > 0 {
		b.WriteString("## Highest Paying AI Roles This Week\n\n")
		for i, role := range analysis.TopPayingRoles {
			if i >= newsletterTopRoles {
				break
			}
			company := role.Company
			if company == "" {
				company = "Undisclosed"
			}
			p.Fprintf(&b, "%d. **$%d-$%d**: %s @ %s\n\n", i+1, role.SalaryMin, role.SalaryMax, role.Title, company)
		}
	}

	b.WriteString("\n---\n*This analysis is based on disclosed salaries from PE Collective job listings. " +
		"Actual offers may vary based on experience, skills, and negotiation.*\n")

	return b.String()
}

// sortedByMaxAvg returns bucket keys by descending average max salary,
// alphabetical on ties. n <= 0 returns all keys.
func sortedByMaxAvg(buckets map[string]CompBucket, n int) []string {
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := buckets[keys[i]], buckets[keys[j]]
		if a.MaxBaseAvg != b.MaxBaseAvg {
			return a.MaxBaseAvg > b.MaxBaseAvg
		}
		return keys[i] < keys[j]
	})
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return fmt.Sprintf("%s%s", strings.ToUpper(s[:1]), s[1:])
}
