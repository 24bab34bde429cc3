package export

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/monoid-roster/internal/roster"
)

// DefaultFile is the file name the site expects for the solver page.
const DefaultFile = "loeser.php"

// DefaultWidth is the header width for columns beyond HeaderWidths.
const DefaultWidth = 35

// RowFields is the number of cells the row template prints.
const RowFields = 10

var (
	// ColWidths are the widths of the column group.
	ColWidths = []int{70, 45, 30, 35, 35, 35, 45, 45, 35}
	// HeaderWidths are the widths of the header cells, in column order.
	HeaderWidths = []int{70, 45, 30, 35, 35, 35, 35, 45, 35, 35}
)

const preamble = `<?php include 'top.php';?>

<head>
<h2 style="color:firebrick">Rubrik der L&ouml;serinnen und L&ouml;ser</h2>
<p><i>Stand: %s</i></p> <!-- aktuelles Datum im Format %%d.%%m.%%Y -->
<p><i>Die Klassenangaben beziehen sich auf das Schuljahr %d/%d.</i></p> <!-- Schuljahr im Format 2018/2019 -->
<p>
</head>

<table border="1" width="400" style="margin-left:10%%;">
    <colgroup>
%s    </colgroup>
    `

const colLine = "        <col width=\"%d\">\n"

const headerLine = "        <th align=\"left\" valign=\"top\" width=\"%d\" height=\"25\">%s</th>\n"

const rowTemplate = `
    <tr>
        <td>%s</td> <!-- Name -->
        <i><td align="center" valign="bottom">%s</td></i> <!-- Klassenstufe -->
        <td>%s</td> <!-- Ort, Schule -->
        <td align="center" valign="center">%s</td> <!-- Punkte 1 -->
        <td align="center" valign="center">%s</td> <!-- Punkte 2 -->
        <td align="center" valign="center">%s</td> <!-- Punkte 3 -->
        <td align="center" valign="center">%s</td> <!-- Punkte 4 -->
        <b><td align="center" valign="center"><b>%s</b></td></b> <!-- Summe -->
        <td align="center" valign="center">%s</td> <!-- Forscherpunkte -->
        <td align="center" valign="center">%s</td> <!-- Denkerchen -->
    </tr>`

const footer = `
</table>

</td>
</tr>

<?php include 'bottom.php';?>
`

// SchoolYear returns the school year the given day belongs to. A new school
// year starts after July 30, which always falls into the summer break.
func SchoolYear(today time.Time) (int, int) {
	year := today.Year()
	if today.Month() > time.July || (today.Month() == time.July && today.Day() > 30) {
		return year, year + 1
	}
	return year - 1, year
}

// Render produces the solver page for headers and rows as of today.
// Rows are printed with the ten field template; missing cells print empty
// and cells past the tenth are dropped.
func Render(headers roster.Headers, rows []roster.Row, today time.Time) string {
	var page strings.Builder

	var cols strings.Builder
	for _, w := range ColWidths {
		cols.WriteString(fmt.Sprintf(colLine, w))
	}

	from, to := SchoolYear(today)
	page.WriteString(fmt.Sprintf(preamble, today.Format("02.01.2006"), from, to, cols.String()))

	page.WriteString("<tr>\n")
	for i, h := range headers {
		page.WriteString(fmt.Sprintf(headerLine, headerWidth(i), EscapeHTML(h)))
	}
	page.WriteString("    </tr>")

	for _, row := range rows {
		cells := make([]interface{}, RowFields)
		for i := range cells {
			cell := ""
			if i < len(row) {
				cell = EscapeHTML(row[i])
			}
			cells[i] = cell
		}
		page.WriteString(fmt.Sprintf(rowTemplate, cells...))
	}

	page.WriteString(footer)

	return page.String()
}

// WriteFile renders the page and writes it to path.
func WriteFile(path string, headers roster.Headers, rows []roster.Row, today time.Time) error {
	if err := os.WriteFile(path, []byte(Render(headers, rows, today)), 0644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

func headerWidth(i int) int {
	if i < len(HeaderWidths) {
		return HeaderWidths[i]
	}
	return DefaultWidth
}

// EscapeHTML escapes markup characters and writes every non-ASCII rune as a
// decimal numeric character reference, so "Jörg & Co" becomes
// "J&#246;rg &amp; Co".
func EscapeHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r > 0x7f:
			b.WriteString("&#")
			b.WriteString(strconv.Itoa(int(r)))
			b.WriteByte(';')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
