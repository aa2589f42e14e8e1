package views

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadTemplates_success(t *testing.T) {
	err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates() = %v; want nil", err)
	}
	if studyTmpl == nil {
		t.Fatal("LoadTemplates() left studyTmpl nil")
	}
}

func TestLoadTemplates_failure_sub(t *testing.T) {
	// Empty FS has no "templates" directory; fs.Sub fails.
	emptyFS := fstest.MapFS{}
	err := loadTemplatesFromFS(emptyFS, "templates")
	if err == nil {
		t.Fatal("loadTemplatesFromFS(emptyFS, \"templates\") = nil; want error")
	}
	t.Cleanup(func() {
		if err := LoadTemplates(); err != nil {
			t.Fatalf("restore templates: %v", err)
		}
	})
}

func TestLoadTemplates_failure_parse(t *testing.T) {
	// FS with invalid template syntax; ParseFS fails.
	badFS := fstest.MapFS{
		"templates/base.html": {Data: []byte("{{ .")},
	}
	err := loadTemplatesFromFS(badFS, "templates")
	if err == nil {
		t.Fatal("loadTemplatesFromFS(badFS, \"templates\") = nil; want error")
	}
	t.Cleanup(func() {
		if err := LoadTemplates(); err != nil {
			t.Fatalf("restore templates: %v", err)
		}
	})
}

func TestRenderOverview_notLoaded(t *testing.T) {
	prev := studyTmpl
	studyTmpl = nil
	t.Cleanup(func() { studyTmpl = prev })

	var buf bytes.Buffer
	err := RenderOverview(&buf, &OverviewData{})
	if err == nil {
		t.Fatal("RenderOverview() = nil; want error when templates not loaded")
	}
	if !strings.Contains(err.Error(), "not loaded") {
		t.Errorf("err = %q; want message containing \"not loaded\"", err.Error())
	}
}

func TestRenderOverview(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	data := OverviewData{
		Rows: []GroupRow{
			{Name: "송도고", ECTarget: "1", Specimens: 12, Color: "#1f77b4"},
		},
		TotalSpecimens: 12,
		AvgTemperature: "18.4",
		AvgHumidity:    "61.0",
		Best:           &BestEC{Group: "송도고", ECTarget: "1", AvgWeight: "1.25"},
	}

	var buf bytes.Buffer
	if err := RenderOverview(&buf, &data); err != nil {
		t.Fatalf("RenderOverview() = %v", err)
	}
	body := buf.String()
	for _, want := range []string{"송도고", "18.4", "최적 EC", "총 개체수"} {
		if !strings.Contains(body, want) {
			t.Errorf("output lacks %q", want)
		}
	}
}

func TestRenderEnvironment(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	data := EnvironmentData{
		Groups:   []GroupOption{{Name: "송도고"}, {Name: "하늘고", Selected: true}},
		Selected: "하늘고",
		Summary: []SummaryRow{
			{Group: "하늘고", AvgTemperature: "19.0", AvgHumidity: "60.1", AvgPH: "6.10", AvgEC: "2.05", TargetEC: "2"},
		},
	}

	var buf bytes.Buffer
	if err := RenderEnvironment(&buf, &data); err != nil {
		t.Fatalf("RenderEnvironment() = %v", err)
	}
	body := buf.String()
	if !strings.Contains(body, "selected") {
		t.Error("selected group option not marked")
	}
	// The template escapes the query value, so match the encoded form.
	// Hex case differs between encoders; compare case-insensitively.
	want := strings.ToLower("env-timeseries.png?group=" + url.QueryEscape("하늘고"))
	if !strings.Contains(strings.ToLower(body), want) {
		t.Error("time-series chart for the selected group missing")
	}
}

func TestRenderGrowthPartial_isFragment(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	data := GrowthData{
		Summary: []GrowthRow{{Group: "송도고", TargetEC: "1", AvgFreshWeight: "1.25", AvgLeafCount: "4.5", AvgShootLength: "30.5", Specimens: 2}},
	}

	var buf bytes.Buffer
	if err := RenderGrowthPartial(&buf, &data); err != nil {
		t.Fatalf("RenderGrowthPartial() = %v", err)
	}
	body := buf.String()
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("partial must not be a full document")
	}
	if !strings.Contains(body, "1.25") {
		t.Error("partial lacks the fresh-weight average")
	}
}

func TestRenderUnavailable(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	var buf bytes.Buffer
	if err := RenderUnavailable(&buf, &UnavailableData{Message: "no qualifying data files"}); err != nil {
		t.Fatalf("RenderUnavailable() = %v", err)
	}
	if !strings.Contains(buf.String(), "no qualifying data files") {
		t.Error("notice lacks the load error detail")
	}
}
