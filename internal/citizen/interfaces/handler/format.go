package handler

import (
	"fmt"
	"strings"

	"Rialto/internal/citizen/domain"
)

// FormatSnapshot 把快照渲染成以公民为第一人称视角的纯文本文档。
// 空字段整段省略，文档长度随公民的处境伸缩。
func FormatSnapshot(snap *domain.Snapshot) string {
	if snap == nil {
		return ""
	}
	var b strings.Builder
	c := snap.Citizen

	fmt.Fprintf(&b, "# %s %s (%s)\n", c.FirstName, c.LastName, c.Username)
	fmt.Fprintf(&b, "Class: %s | Ducats: %.0f | Influence: %.0f\n", c.SocialClass, c.Ducats, c.Influence)
	fmt.Fprintf(&b, "Mood: %s (%d/10) — %s\n", snap.Mood.Label, snap.Mood.Intensity, snap.Mood.Description)

	if snap.AtStructure != nil {
		fmt.Fprintf(&b, "\nCurrently at: %s\n", snap.AtStructure.Name)
	}
	if len(snap.CitizensNearby) > 0 {
		names := make([]string, 0, len(snap.CitizensNearby))
		for _, n := range snap.CitizensNearby {
			names = append(names, n.Username)
		}
		fmt.Fprintf(&b, "Also here: %s\n", strings.Join(names, ", "))
	}
	if snap.Workplace != nil {
		fmt.Fprintf(&b, "Workplace: %s\n", snap.Workplace.Name)
	}
	if snap.Home != nil {
		fmt.Fprintf(&b, "Home: %s\n", snap.Home.Name)
	}
	if snap.Weather != nil {
		fmt.Fprintf(&b, "Weather: %s, %.0f°C\n", snap.Weather.Condition, snap.Weather.TempC)
	}

	if len(snap.OwnedParcels) > 0 {
		b.WriteString("\n## Parcels\n")
		for _, h := range snap.OwnedParcels {
			occ := h.Occupancy
			free := len(occ.FreeBuildingPoints)
			fmt.Fprintf(&b, "- %s (%s): %d/%d building points free\n",
				h.Parcel.HistoricalName, h.Parcel.District, free, occ.TotalBuilding)
		}
	}
	if len(snap.OwnedStructures) > 0 {
		b.WriteString("\n## Structures\n")
		for _, o := range snap.OwnedStructures {
			fmt.Fprintf(&b, "- %s (%s)\n", o.Structure.Name, o.Structure.Type)
			if o.Resources != nil {
				for _, stock := range o.Resources.Stock {
					fmt.Fprintf(&b, "  stock: %s x%.0f\n", stock.Resource, stock.Count)
				}
			}
		}
	}

	if len(snap.Contracts) > 0 {
		b.WriteString("\n## Contracts\n")
		for _, ct := range snap.Contracts {
			fmt.Fprintf(&b, "- %s\n", ct.DescribeFor(c.Username))
		}
	}
	if len(snap.Loans) > 0 {
		b.WriteString("\n## Loans\n")
		for _, l := range snap.Loans {
			fmt.Fprintf(&b, "- %s\n", l.DescribeFor(c.Username))
		}
	}
	if snap.Guild != nil {
		fmt.Fprintf(&b, "\nGuild: %s\n", snap.Guild.Name)
	}

	if len(snap.Relationships) > 0 {
		b.WriteString("\n## Relationships\n")
		for _, r := range snap.Relationships {
			fmt.Fprintf(&b, "- %s (strength %.0f, trust %.0f)\n", r.Other(c.Username), r.Strength, r.Trust)
		}
	}
	if len(snap.Problems) > 0 {
		b.WriteString("\n## Problems\n")
		for _, p := range snap.Problems {
			fmt.Fprintf(&b, "- [%s] %s\n", p.Severity, p.Title)
		}
	}
	if len(snap.Messages) > 0 {
		b.WriteString("\n## Messages\n")
		for _, m := range snap.Messages {
			fmt.Fprintf(&b, "- %s -> %s: %s\n", m.Sender, m.Receiver, m.Content)
		}
	}
	if len(snap.Thoughts) > 0 {
		b.WriteString("\n## Thoughts\n")
		for _, m := range snap.Thoughts {
			fmt.Fprintf(&b, "- %s\n", m.Content)
		}
	}

	if len(snap.ActiveSchemes) > 0 {
		b.WriteString("\n## Active schemes\n")
		for _, s := range snap.ActiveSchemes {
			fmt.Fprintf(&b, "- %s by %s\n", s.Type, s.ExecutedBy)
		}
	}
	if len(snap.PastSchemes) > 0 {
		fmt.Fprintf(&b, "\nPast schemes: %d\n", len(snap.PastSchemes))
	}

	if len(snap.RecentActivities) > 0 {
		b.WriteString("\n## Recent activities\n")
		for _, a := range snap.RecentActivities {
			fmt.Fprintf(&b, "- %s\n", a.Type)
		}
	}
	if len(snap.PlannedActivities) > 0 {
		b.WriteString("\n## Planned activities\n")
		for _, a := range snap.PlannedActivities {
			fmt.Fprintf(&b, "- %s\n", a.Type)
		}
	}

	if snap.Bulletin != nil {
		fmt.Fprintf(&b, "\nBulletin: %s\n", snap.Bulletin.Title)
	}
	if len(snap.TradeReports) > 0 {
		b.WriteString("\n## Trade reports\n")
		for _, r := range snap.TradeReports {
			fmt.Fprintf(&b, "- [%s] %s\n", r.OriginCity, r.Title)
		}
	}

	fmt.Fprintf(&b, "\nGenerated: %s\n", snap.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	return b.String()
}
