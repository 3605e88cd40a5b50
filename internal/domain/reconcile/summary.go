package reconcile

import "sort"

// SiteCount is the number of daily tickets that resolved to one site.
type SiteCount struct {
	// Site is the extracted site code.
	Site string
	// Tickets is how many daily tickets carried that site code.
	Tickets int
}

// Summary holds the per-status and per-site totals of a reconciliation run.
type Summary struct {
	// Total is the number of daily tickets processed.
	Total int
	// Valid counts tickets whose alarm matched the latest NMS record.
	Valid int
	// Invalid counts tickets whose alarm differed from the latest NMS record.
	Invalid int
	// NotInNMS counts tickets with no matching NMS record.
	NotInNMS int
	// SiteCounts lists ticket counts per extracted site code, busiest
	// first; ties are broken by site name. Tickets without a site code are
	// counted in the status totals only.
	SiteCounts []SiteCount
}

// Summarize computes run totals from classified tickets.
func Summarize(results []Validated) Summary {
	summary := Summary{Total: len(results)}
	perSite := make(map[string]int)

	for _, result := range results {
		switch result.Status {
		case StatusValid:
			summary.Valid++
		case StatusInvalid:
			summary.Invalid++
		case StatusNotInNMS:
			summary.NotInNMS++
		}

		if result.HasSite {
			perSite[result.SiteCode]++
		}
	}

	summary.SiteCounts = make([]SiteCount, 0, len(perSite))
	for site, count := range perSite {
		summary.SiteCounts = append(summary.SiteCounts, SiteCount{
			Site:    site,
			Tickets: count,
		})
	}

	sort.Slice(summary.SiteCounts, func(i, j int) bool {
		if summary.SiteCounts[i].Tickets != summary.SiteCounts[j].Tickets {
			return summary.SiteCounts[i].Tickets > summary.SiteCounts[j].Tickets
		}

		return summary.SiteCounts[i].Site < summary.SiteCounts[j].Site
	})

	return summary
}
