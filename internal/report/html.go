package report

import (
	"html"
	"strconv"
	"strings"
)

// Fixed document fragments. The table header sticks to the top of its
// scrollable div, see https://css-tricks.com/position-sticky-and-table-headers/
const (
	pageTitle = "My Geocache Founds"

	pageHeader = "<!DOCTYPE html>\n<html>\n<head>\n<title>" + pageTitle + "</title>\n\n</head>\n<body>"
	pageFooter = "</body></html>"

	styleAndSectionHeader = `
<div id="gc-logs-analyzed">
<style type="text/css" scoped>
#gc-logs-analyzed {
    font-family: "Arial";
    padding: 10px;
}
table {
    border-spacing: 0px;
    border-collapse: collapse;
    position: relative;
}
th, td {
    padding: 2px;
}
th {
    background-color: #f0f0f0;
}
table, td, th {
    border: 1px solid lightgray;
}
th {
    position: sticky;
    top: 0;
    box-shadow: 0 2px 2px -1px rgba(0, 0, 0, 0.4);
}
div.backlink {
    font-size: 80%;
    margin-bottom: 10px;
}
div.table {
    display: inline-block;
    overflow-y: auto;
    max-height: 500px;
    border: 1px solid #ddd;
}
.tooltip {
    display: inline-block;
    border-bottom: 1px dotted black;
}
.tooltip .tooltiptext {
    visibility: hidden;
    background-color: #eee;
    color: #333;
    text-align: left;
    padding: 6px 6px;
    border-radius: 6px;
    position: absolute;
    z-index: 1;
}
.tooltip:hover .tooltiptext {
    visibility: visible;
}
</style>
`
	styleAndSectionFooter = "</div>"

	tableFooter = "</tbody>\n</table>\n</div>"

	mainAnchor     = "main"
	mainHeadline   = "Geocaching Found Statistics"
	contentsAnchor = "toc"
	contentsTitle  = "Contents"
)

// Link wraps text in an anchor. External links open in a new tab.
func Link(text HTML, url string, blank bool) HTML {
	var sb strings.Builder
	sb.WriteString(`<a href="`)
	sb.WriteString(html.EscapeString(url))
	sb.WriteString(`" `)
	if blank {
		sb.WriteString(`target="_blank"`)
	}
	sb.WriteString(">")
	sb.WriteString(string(text))
	sb.WriteString("</a>")
	return HTML(sb.String())
}

// Headline returns an h<level> element carrying the given id.
func Headline(id string, text HTML, level int) HTML {
	if level < 1 || level > 6 {
		level = 2
	}
	tag := "h" + strconv.Itoa(level)
	return HTML("<" + tag + ` id="` + html.EscapeString(id) + `">` + string(text) + "</" + tag + ">")
}

// TextWithTooltip shows lines in a hover box over text. Lines are escaped.
func TextWithTooltip(text HTML, lines []string) HTML {
	items := make([]string, len(lines))
	for i, line := range lines {
		items[i] = "<nobr>" + html.EscapeString(line) + "</nobr>"
	}
	return HTML(`<div class="tooltip">` + string(text) +
		`<span class="tooltiptext">` + strings.Join(items, "<br>") + "</span></div>")
}

// BackLink jumps back to the main heading.
func BackLink() HTML {
	return HTML(`<div class="backlink">` + string(Link("&uarr; back", "#"+mainAnchor, false)) + "</div>")
}

func tableRow(values []any, header bool) string {
	cell := "td"
	if header {
		cell = "th"
	}

	var sb strings.Builder
	sb.WriteString("<tr>")
	for _, v := range values {
		sb.WriteString("<" + cell + ">")
		sb.WriteString(FormatValue(v))
		sb.WriteString("</" + cell + ">")
	}
	sb.WriteString("</tr>")
	return sb.String()
}

func tableHeader(anchor, headerRow string) string {
	return `<div id="` + html.EscapeString(anchor) + `" class="table">` + "\n<table><thead>" + headerRow + "</thead>\n<tbody>"
}
