package ui

import (
	"fmt"
	"strings"

	"github.com/wlansim/wmedium/internal/topology"
)

// RenderTopology renders a topology snapshot as a station list and a
// directed link table.
func RenderTopology(snap topology.Snapshot) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("TOPOLOGY"))
	b.WriteString("\n")
	b.WriteString(RenderHorizontalDivider(40, "─"))
	b.WriteString("\n")

	if len(snap.Stations) == 0 {
		b.WriteString(KeyStyle.Render("(no stations)"))
		b.WriteString("\n")
		return b.String()
	}

	for _, sta := range snap.Stations {
		b.WriteString(fmt.Sprintf("  %s%s\n",
			KeyStyle.Render(fmt.Sprintf("[%d]", sta.ID)),
			ValueStyle.Render(sta.Addr.String()),
		))
	}

	if len(snap.Links) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("  %-20s %-20s %8s", "FROM", "TO", "SNR")))
	b.WriteString("\n")
	for _, link := range snap.Links {
		b.WriteString(TableCellStyle.Render(fmt.Sprintf("  %-20s %-20s %5d dB",
			link.From.Addr, link.To.Addr, link.SNR)))
		b.WriteString("\n")
	}
	return b.String()
}
