package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/the-wheel-must-spin/internal/analysis"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

// RenderOptions controls how much of a report is printed.
type RenderOptions struct {
	// Categories limits the group tables; empty prints every category.
	Categories []model.GroupCategory
	// Verbose prints every per-spin finding instead of the latest few.
	Verbose bool
}

// findingsPerDetector is how many per-spin findings are shown per detector
// unless Verbose is set.
const findingsPerDetector = 3

// RenderReport writes a human-readable report.
func RenderReport(w io.Writer, r *analysis.Report, opts RenderOptions) error {
	rw := &reportWriter{w: w}

	rw.line(FormatTitle(fmt.Sprintf("Spin analysis: %d spin(s)%s", r.Total, describeFilter(r.Filter))))

	if r.NoData {
		rw.line(FormatWarning(r.Notice))
		rw.blank()
		rw.trends(r.Trends)
		return rw.err
	}

	rw.recent(r.Recent)
	rw.hotCold(r.HotCold)
	rw.trends(r.Trends)
	rw.groups(r.Groups, opts.Categories)
	rw.alerts(r.Alerts)
	rw.detectors(r.Detectors, opts.Verbose)
	rw.digitSums(r.DigitSums, r.Total)
	return rw.err
}

// RenderGroupRow writes a single group statistic, such as a neighbour bet.
func RenderGroupRow(w io.Writer, row analysis.GroupRow) error {
	rw := &reportWriter{w: w}
	rw.line(BoldStyle.Render(row.Name))
	rw.line(SubtleStyle.Render("Numbers: " + joinNumbers(row.Numbers)))
	rw.line(fmt.Sprintf("%s  expected %.2f%%  %s", row.Label(), row.Expected, FormatBias(row.Bias)))
	return rw.err
}

// RenderHistory writes outcomes as a table, oldest first.
func RenderHistory(w io.Writer, outcomes []model.Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNUMBER\tCOLOR\tDEALER\tRECORDED")
	for _, o := range outcomes {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n",
			o.ID, o.Number, model.ColorOf(o.Number), o.DealerID, o.RecordedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

// RenderGroupList writes group definitions as a table.
func RenderGroupList(w io.Writer, groups []model.Group) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tNAME\tSIZE\tNUMBERS")
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", g.Category.Title(), g.Name, g.Size(), g.NumbersString())
	}
	return tw.Flush()
}

type reportWriter struct {
	w   io.Writer
	err error
}

func (rw *reportWriter) line(s string) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintln(rw.w, s)
}

func (rw *reportWriter) blank() { rw.line("") }

func (rw *reportWriter) section(title string) {
	rw.blank()
	rw.line(BoldStyle.Render(title))
}

func (rw *reportWriter) recent(recent []int) {
	parts := make([]string, len(recent))
	for i, n := range recent {
		parts[i] = FormatNumber(n)
	}
	rw.line("Latest: " + strings.Join(parts, " "))
}

func (rw *reportWriter) hotCold(hc analysis.HotColdResult) {
	rw.section("Hot and cold numbers")
	rw.line(HotStyle.Render(HotIcon+" Hot: ") + formatCounts(hc.Hot))
	rw.line(ColdStyle.Render(ColdIcon+" Cold: ") + formatCounts(hc.Cold))
}

func (rw *reportWriter) trends(rows []analysis.GroupRow) {
	rw.section("Trends (zero excluded)")
	rw.table(rows)
}

func (rw *reportWriter) groups(rows []analysis.GroupRow, only []model.GroupCategory) {
	var current model.GroupCategory
	var batch []analysis.GroupRow
	flush := func() {
		if len(batch) > 0 {
			rw.section(current.Title())
			rw.table(batch)
		}
		batch = nil
	}

	for _, row := range rows {
		if len(only) > 0 && !containsCategory(only, row.Category) {
			continue
		}
		if row.Category != current {
			flush()
			current = row.Category
		}
		batch = append(batch, row)
	}
	flush()
}

func (rw *reportWriter) table(rows []analysis.GroupRow) {
	if rw.err != nil {
		return
	}
	tw := tabwriter.NewWriter(rw.w, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(tw, "  %s\t%s\t%.2f%%\t%s\n", row.Name, row.Label(), row.Expected, FormatBias(row.Bias))
	}
	rw.err = tw.Flush()
}

func (rw *reportWriter) alerts(alerts []analysis.Alert) {
	if len(alerts) == 0 {
		return
	}
	rw.section("Group alerts")
	for _, a := range alerts {
		rw.line(FormatWarning(fmt.Sprintf("%s holds hot numbers %s", a.Group, joinNumbers(a.HotNumbers))))
	}
}

func (rw *reportWriter) detectors(results []analysis.DetectorResult, verbose bool) {
	rw.section("Patterns")
	for _, res := range results {
		if len(res.Findings) == 0 {
			continue
		}
		rw.line(SubtitleStyle.Render(res.Detector))

		var spins, summaries []analysis.Finding
		for _, f := range res.Findings {
			if f.Index < 0 {
				summaries = append(summaries, f)
			} else {
				spins = append(spins, f)
			}
		}
		if !verbose && len(spins) > findingsPerDetector {
			rw.line(SubtleStyle.Render(fmt.Sprintf("  ... %d earlier finding(s)", len(spins)-findingsPerDetector)))
			spins = spins[len(spins)-findingsPerDetector:]
		}
		for _, f := range spins {
			rw.line("  " + f.Message)
		}
		for _, f := range summaries {
			rw.line("  " + InfoStyle.Render(f.Message))
		}
	}
}

func (rw *reportWriter) digitSums(sums [10]int, total int) {
	rw.section("Digit sums")
	parts := make([]string, 0, len(sums))
	for d, n := range sums {
		if n == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d: %d (%.1f%%)", d, n, float64(n)/float64(total)*100))
	}
	rw.line("  " + strings.Join(parts, "  "))
}

func describeFilter(f analysis.Filter) string {
	var parts []string
	if f.DealerID != "" {
		parts = append(parts, "dealer "+f.DealerID)
	}
	if f.SessionID != "" {
		parts = append(parts, "session "+shortID(f.SessionID))
	}
	if f.Last > 0 {
		parts = append(parts, fmt.Sprintf("last %d", f.Last))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func formatCounts(entries []analysis.NumberCount) string {
	if len(entries) == 0 {
		return SubtleStyle.Render("none")
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s(%d)", FormatNumber(e.Number), e.Count)
	}
	return strings.Join(parts, " ")
}

func joinNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}

func containsCategory(list []model.GroupCategory, c model.GroupCategory) bool {
	for _, item := range list {
		if item == c {
			return true
		}
	}
	return false
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
