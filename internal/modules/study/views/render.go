package views

import (
	"errors"
	"html/template"
	"io"
	"io/fs"
)

var studyTmpl *template.Template

// loadTemplatesFromFS loads dashboard templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	studyTmpl, err = template.ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	return nil
}

// LoadTemplates loads embedded dashboard templates. Call during startup
// before serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

var errNotLoaded = errors.New("study templates not loaded: call views.LoadTemplates during startup")

// GroupRow is one school in the overview table.
type GroupRow struct {
	Name      string
	ECTarget  string
	Specimens int
	Color     string
}

// BestEC is the optimal-EC callout, derived from the loaded data.
type BestEC struct {
	Group     string
	ECTarget  string
	AvgWeight string
}

// OverviewData is the view model for the overview page.
type OverviewData struct {
	Rows           []GroupRow
	TotalSpecimens int
	AvgTemperature string
	AvgHumidity    string
	Best           *BestEC
}

// GroupOption is one entry in the group selector.
type GroupOption struct {
	Name     string
	Selected bool
}

// SummaryRow is one school's averaged environment readings.
type SummaryRow struct {
	Group          string
	AvgTemperature string
	AvgHumidity    string
	AvgPH          string
	AvgEC          string
	TargetEC       string
}

// EnvironmentData is the view model for the environment page and partial.
type EnvironmentData struct {
	Groups   []GroupOption
	Selected string // empty means all groups
	Summary  []SummaryRow
}

// GrowthRow is one school's averaged growth measurements.
type GrowthRow struct {
	Group          string
	TargetEC       string
	AvgFreshWeight string
	AvgLeafCount   string
	AvgShootLength string
	Specimens      int
}

// CorrRow is one correlation figure shown under the scatter charts.
type CorrRow struct {
	Label string
	Value string
}

// GrowthData is the view model for the growth page and partial.
type GrowthData struct {
	Summary      []GrowthRow
	Best         *BestEC
	Correlations []CorrRow
}

// UnavailableData is the terminal data-load notice.
type UnavailableData struct {
	Message string
}

func RenderOverview(w io.Writer, data *OverviewData) error {
	if studyTmpl == nil {
		return errNotLoaded
	}
	return studyTmpl.ExecuteTemplate(w, "overview.html", data)
}

func RenderEnvironment(w io.Writer, data *EnvironmentData) error {
	if studyTmpl == nil {
		return errNotLoaded
	}
	return studyTmpl.ExecuteTemplate(w, "environment.html", data)
}

func RenderGrowth(w io.Writer, data *GrowthData) error {
	if studyTmpl == nil {
		return errNotLoaded
	}
	return studyTmpl.ExecuteTemplate(w, "growth.html", data)
}

func RenderUnavailable(w io.Writer, data *UnavailableData) error {
	if studyTmpl == nil {
		return errNotLoaded
	}
	return studyTmpl.ExecuteTemplate(w, "unavailable.html", data)
}

// RenderEnvironmentPartial executes only the environment partial into w.
// Use for HTMX fragment refresh.
func RenderEnvironmentPartial(w io.Writer, data *EnvironmentData) error {
	if studyTmpl == nil {
		return errNotLoaded
	}
	return studyTmpl.ExecuteTemplate(w, "partials/environment.html", data)
}

// RenderGrowthPartial executes only the growth partial into w.
func RenderGrowthPartial(w io.Writer, data *GrowthData) error {
	if studyTmpl == nil {
		return errNotLoaded
	}
	return studyTmpl.ExecuteTemplate(w, "partials/growth.html", data)
}
