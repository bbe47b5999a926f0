package main

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pivolan/survey_dashboard/config"
	"github.com/pivolan/survey_dashboard/domain/models"
)

type WebHandlers struct {
	cfg       *config.Config
	refresher *Refresher
}

func NewWebHandlers(cfg *config.Config, refresher *Refresher) *WebHandlers {
	return &WebHandlers{cfg: cfg, refresher: refresher}
}

func (h *WebHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handleDashboard)
	mux.HandleFunc("/charts", h.handleCharts)
	mux.HandleFunc("/export/csv", h.handleExportCSV)
	mux.HandleFunc("/export/xlsx", h.handleExportExcel)
	mux.HandleFunc("/upload", h.handleUpload)
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
{{if .Refresh}}<meta http-equiv="refresh" content="{{.Refresh}}">{{end}}
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
pre { background: #f0f2f6; padding: 1rem; border-radius: 0.5rem; overflow-x: auto; }
.error { color: #b00020; font-weight: bold; }
.metrics span { display: inline-block; margin-right: 2rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .HasData}}
<p class="metrics">
<span>Total responses: <b>{{.TotalResponses}}</b></span>
{{if .Latest}}<span>Latest response: <b>{{.Latest}}</b></span>{{end}}
{{if .AvgRating}}<span>Average rating: <b>{{.AvgRating}}</b></span>{{end}}
<span>Questions: <b>{{.Questions}}</b></span>
<span>Last updated: <b>{{.UpdatedAt}}</b></span>
</p>
<p>
<a href="/charts">Charts</a> |
<a href="/export/csv">Download CSV</a> |
<a href="/export/xlsx">Download Excel</a>
</p>
<h2>Numerical summary</h2>
<pre>{{.SummaryTable}}</pre>
<h2>Categorical summary</h2>
{{range .FrequencyTables}}<pre>{{.}}</pre>{{end}}
{{if .Crosstabs}}<h2>Cross-analysis</h2>{{range .Crosstabs}}<pre>{{.}}</pre>{{end}}{{end}}
{{else}}
<p>No data available yet.</p>
{{end}}
<h2>One-off analysis</h2>
<form action="/upload" method="post" enctype="multipart/form-data">
<input type="file" name="file">
<input type="submit" value="Analyze file">
</form>
<p><small>CSV, optionally gzip, lz4 or zip compressed.</small></p>
</body>
</html>`))

type dashboardPage struct {
	Title           string
	Refresh         int
	Error           string
	HasData         bool
	TotalResponses  int
	Latest          string
	AvgRating       string
	Questions       int
	UpdatedAt       string
	SummaryTable    string
	FrequencyTables []string
	Crosstabs       []string
}

func (h *WebHandlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	snapshot, lastErr := h.refresher.Current()
	page := dashboardPage{
		Title:   h.cfg.Title,
		Refresh: int(h.cfg.RefreshInterval.Seconds()),
	}
	if lastErr != nil {
		page.Error = "Error loading survey data: " + lastErr.Error()
	}
	if snapshot != nil {
		fillDashboardPage(&page, snapshot)
	}

	if err := dashboardTmpl.Execute(w, page); err != nil {
		logger.Error().Err(err).Msg("render dashboard")
	}
}

func fillDashboardPage(page *dashboardPage, snapshot *Snapshot) {
	page.HasData = true
	page.TotalResponses = snapshot.Table.RowCount()
	page.Questions = len(snapshot.Summary.Columns)
	page.UpdatedAt = snapshot.FetchedAt.Format("15:04:05")
	page.Latest = latestTimestamp(snapshot.Table)
	if avg, ok := snapshot.Summary.AverageRating(); ok {
		page.AvgRating = fmt.Sprintf("%.2f", avg)
	}
	page.SummaryTable = GenerateSummaryTable(snapshot.Summary)
	page.FrequencyTables = GenerateFrequencyTables(snapshot.Summary)
	for _, spec := range snapshot.Charts {
		if spec.Kind == models.ChartHeatmap {
			page.Crosstabs = append(page.Crosstabs, GenerateCrosstabTable(spec))
		}
	}
}

func (h *WebHandlers) handleCharts(w http.ResponseWriter, r *http.Request) {
	snapshot, _ := h.refresher.Current()
	if snapshot == nil {
		http.Error(w, "No data available", http.StatusServiceUnavailable)
		return
	}
	if err := RenderChartsPage(w, h.cfg.Title, snapshot.Charts); err != nil {
		logger.Error().Err(err).Msg("render charts page")
	}
}

func (h *WebHandlers) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	snapshot, _ := h.refresher.Current()
	if snapshot == nil {
		http.Error(w, "No data available", http.StatusServiceUnavailable)
		return
	}
	data, err := TableToCSV(snapshot.Table)
	if err != nil {
		http.Error(w, "Error exporting data", http.StatusInternalServerError)
		return
	}
	serveDownload(w, data, "text/csv", exportFilename("csv", time.Now()))
}

func (h *WebHandlers) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	snapshot, _ := h.refresher.Current()
	if snapshot == nil {
		http.Error(w, "No data available", http.StatusServiceUnavailable)
		return
	}
	data, err := TableToExcel(snapshot.Table)
	if err != nil {
		http.Error(w, "Error exporting data", http.StatusInternalServerError)
		return
	}
	serveDownload(w, data,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		exportFilename("xlsx", time.Now()))
}

// handleUpload analyzes an uploaded file once and renders the result with
// the same dashboard template. It does not touch the refresh loop.
func (h *WebHandlers) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error uploading file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Error reading file", http.StatusBadRequest)
		return
	}
	data, err := Decompress(header.Filename, raw)
	if err != nil {
		http.Error(w, "Error unpacking file: "+err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, err := BuildSnapshot(data, h.cfg)
	if err != nil {
		http.Error(w, "Error analyzing file: "+err.Error(), http.StatusBadRequest)
		return
	}

	page := dashboardPage{Title: h.cfg.Title + " - " + header.Filename}
	fillDashboardPage(&page, snapshot)
	if err := dashboardTmpl.Execute(w, page); err != nil {
		logger.Error().Err(err).Msg("render upload result")
	}
}

func serveDownload(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Write(data)
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006 15:04:05",
	"01/02/2006 15:04:05",
	"2006-01-02",
}

// latestTimestamp finds the newest value of a timestamp-named column, if
// the survey has one. Empty string when nothing parses.
func latestTimestamp(t models.Table) string {
	idx := -1
	for i, name := range t.Columns {
		if strings.HasPrefix(strings.ToLower(name), "timestamp") {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ""
	}

	var latest time.Time
	for _, v := range t.Column(idx) {
		v = strings.TrimSpace(v)
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, v); err == nil {
				if ts.After(latest) {
					latest = ts
				}
				break
			}
		}
	}
	if latest.IsZero() {
		return ""
	}
	return latest.Format("02-Jan 15:04")
}
