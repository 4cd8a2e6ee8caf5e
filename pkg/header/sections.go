package header

import (
	"sort"
	"strings"

	"github.com/quipu-research/quipu/pkg/core"
)

// Static sections shared by every header.
const (
	versionHistory = `
---

## Version History
| Version | Date | Notes |
|---------|------|-------|
| v1.3 | 2025-10-02 | Enhanced professional formatting, comprehensive documentation, interactive visualizations |
| v1.2 | 2024-09-15 | Updated analysis methods, improved data generation algorithms |
| v1.0 | 2024-06-10 | Initial release with core analytical framework |

---
`

	environmentDependencies = `
## Environment Dependencies
- **Python:** 3.8+
- **Core Libraries:** pandas 2.0+, numpy 1.24+, scikit-learn 1.3+
- **Visualization:** plotly 5.0+, matplotlib 3.7+
- **Statistical:** scipy 1.10+, statsmodels 0.14+
- **Development:** jupyter-lab 4.0+, ipywidgets 8.0+

> **Reproducibility Note:** Use requirements.txt or environment.yml for exact dependency matching.

---
`

	dataProvenance = `
## Data Provenance
| Dataset | Source | License | Notes |
|---------|--------|---------|-------|
| Synthetic Data | Generated in-notebook | MIT | Custom algorithms for realistic simulation |
| Statistical Distributions | NumPy/SciPy | BSD-3-Clause | Standard library implementations |
| ML Algorithms | Scikit-learn | BSD-3-Clause | Industry-standard implementations |
| Visualization Schemas | Plotly | MIT | Interactive dashboard frameworks |
`

	disclaimer = `
---

## Disclaimer & Responsible Use
This notebook is provided "as-is" for educational, research, and professional development purposes. Users assume full responsibility for any results, applications, or decisions derived from this analysis.

**Professional Standards:**
- Validate all results against domain expertise and additional data sources
- Respect licensing and attribution requirements for all dependencies
- Follow ethical guidelines for data analysis and algorithmic decision-making
- Credit all methodological sources and derivative frameworks appropriately

**Academic & Commercial Use:**
- Permitted under MIT license with proper attribution
- Suitable for educational curriculum and professional training
- Appropriate for commercial adaptation with citation requirements
- Recommended for reproducible research and transparent analytics
`
)

// sectorRules maps industry sectors to the application keywords that imply them.
var sectorRules = []struct {
	sector   string
	keywords []string
}{
	{"Financial Services", []string{"financial", "credit", "fraud", "banking"}},
	{"Marketing & Sales", []string{"customer", "marketing", "sales", "retail"}},
	{"Manufacturing", []string{"manufacturing", "quality", "production"}},
	{"Healthcare", []string{"healthcare", "medical", "clinical"}},
	{"Cybersecurity", []string{"network", "security", "cyber"}},
}

// inferSectors derives industry sectors from business application phrasing.
// The result is sorted for deterministic output.
func inferSectors(applications []string) []string {
	found := map[string]bool{}
	for _, app := range applications {
		lower := strings.ToLower(app)
		for _, rule := range sectorRules {
			for _, kw := range rule.keywords {
				if strings.Contains(lower, kw) {
					found[rule.sector] = true
					break
				}
			}
		}
	}

	sectors := make([]string, 0, len(found))
	for s := range found {
		sectors = append(sectors, s)
	}
	sort.Strings(sectors)
	return sectors
}

// tierPrerequisites is the progression ladder: each tier assumes the one below.
var tierPrerequisites = map[int]string{
	1: "Basic statistics, Excel proficiency, curiosity about data",
	2: "Tier 1 completion, basic linear algebra, introductory statistics",
	3: "Tier 2 completion, time series concepts, intermediate statistics",
	4: "Tier 3 completion, linear algebra, unsupervised learning basics",
	5: "Tier 4 completion, ensemble methods understanding, advanced ML concepts",
	6: "Tier 5 completion, advanced statistics, domain expertise in target application",
}

// tierKeywords resolves a tier from title phrasing when the registry entry
// has no explicit tier.
var tierKeywords = map[int][]string{
	1: {"tier 1", "descriptive"},
	2: {"tier 2", "regression"},
	3: {"tier 3", "time series"},
	4: {"tier 4", "unsupervised"},
	5: {"tier 5", "ensemble"},
	6: {"tier 6", "advanced"},
}

const defaultPrerequisites = "Appropriate mathematical background for the analytical complexity level"

// prerequisitesFor picks the recommended prerequisites line for a notebook.
// An explicit Tier wins; otherwise the title keywords decide, lowest tier first.
func prerequisitesFor(nb core.Notebook) string {
	if p, ok := tierPrerequisites[nb.Tier]; ok {
		return p
	}

	title := strings.ToLower(nb.Title)
	for tier := 1; tier <= 6; tier++ {
		for _, kw := range tierKeywords[tier] {
			if strings.Contains(title, kw) {
				return tierPrerequisites[tier]
			}
		}
	}
	return defaultPrerequisites
}
