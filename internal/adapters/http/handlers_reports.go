package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"clubhouse/internal/application/orchestrators"
	ledgerDomain "clubhouse/internal/domain/ledger"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// handleMonthlyReport handles GET /api/reports/monthly?period=MM-YYYY
// format=json (default), html, or text (download).
func handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	report, err := orchestrators.ExecuteMonthlyReport(r.Context(), orchestrators.MonthlyReportInput{
		Period: r.URL.Query().Get("period"),
		Now:    timeNow().UTC(),
	}, orchestrators.MonthlyReportDeps{Ledger: stores.LedgerStore})
	if err != nil {
		domainError(w, err)
		return
	}

	title := fmt.Sprintf("Income report %s", report.Period.Start.Format("01-2006"))
	switch r.URL.Query().Get("format") {
	case "html":
		renderReportHTML(w, monthlyReportMarkdown(title, report))
	case "text":
		name := fmt.Sprintf("report_%s.txt", report.Period.Start.Format("01-2006"))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		fmt.Fprint(w, monthlyReportText(title, report))
	default:
		writeJSON(w, http.StatusOK, report)
	}
}

// handleLifetimeReport handles GET /api/reports/lifetime
func handleLifetimeReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	report, err := orchestrators.ExecuteLifetimeReport(r.Context(),
		orchestrators.MonthlyReportDeps{Ledger: stores.LedgerStore})
	if err != nil {
		internalError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		var md strings.Builder
		fmt.Fprintf(&md, "# All-time income\n\n")
		writeTotalsMarkdown(&md, report.Totals, report.GrandTotalCents)
		renderReportHTML(w, md.String())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func renderReportHTML(w http.ResponseWriter, md string) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func monthlyReportMarkdown(title string, report orchestrators.MonthlyReport) string {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", title)

	fmt.Fprintf(&md, "## Social fees\n\n")
	writeEntriesMarkdown(&md, report.SocialFees)
	fmt.Fprintf(&md, "\n## Sport fees\n\n")
	writeEntriesMarkdown(&md, report.SportFees)
	fmt.Fprintf(&md, "\n## Totals\n\n")
	writeTotalsMarkdown(&md, report.Totals, report.GrandTotalCents)
	return md.String()
}

func writeEntriesMarkdown(md *strings.Builder, entries []ledgerDomain.Entry) {
	if len(entries) == 0 {
		fmt.Fprintf(md, "No payments recorded.\n")
		return
	}
	fmt.Fprintf(md, "| Date | DNI | Category | Concept | Method | Amount |\n")
	fmt.Fprintf(md, "|---|---|---|---|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(md, "| %s | %s | %s | %s | %s | $%s |\n",
			e.PaymentDate.Format("02/01/2006"), e.DNI, e.PersonKind, e.Kind, e.Method,
			ledgerDomain.FormatAmount(e.AmountCents))
	}
}

func writeTotalsMarkdown(md *strings.Builder, totals []orchestrators.KindTotal, grand int64) {
	fmt.Fprintf(md, "| Concept | Total |\n|---|---|\n")
	for _, kt := range totals {
		fmt.Fprintf(md, "| %s | $%s |\n", kt.Kind, ledgerDomain.FormatAmount(kt.AmountCents))
	}
	fmt.Fprintf(md, "| **Grand total** | **$%s** |\n", ledgerDomain.FormatAmount(grand))
}

func monthlyReportText(title string, report orchestrators.MonthlyReport) string {
	var b strings.Builder
	line := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "%s\n%s\n%s\n\n", line, title, line)

	writeEntriesText(&b, "SOCIAL FEES", report.SocialFees)
	writeEntriesText(&b, "SPORT FEES", report.SportFees)

	fmt.Fprintf(&b, "TOTALS\n------\n")
	for _, kt := range report.Totals {
		fmt.Fprintf(&b, "%-30s $%s\n", kt.Kind, ledgerDomain.FormatAmount(kt.AmountCents))
	}
	fmt.Fprintf(&b, "%-30s $%s\n", "GRAND TOTAL", ledgerDomain.FormatAmount(report.GrandTotalCents))
	return b.String()
}

func writeEntriesText(b *strings.Builder, header string, entries []ledgerDomain.Entry) {
	fmt.Fprintf(b, "%s\n%s\n", header, strings.Repeat("-", len(header)))
	if len(entries) == 0 {
		fmt.Fprintf(b, "No payments recorded.\n\n")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(b, "%s  %-8s  %-10s  %-24s  %-8s  $%s\n",
			e.PaymentDate.Format("02/01/2006"), e.DNI, e.PersonKind, e.Kind, e.Method,
			ledgerDomain.FormatAmount(e.AmountCents))
	}
	fmt.Fprintf(b, "\n")
}
