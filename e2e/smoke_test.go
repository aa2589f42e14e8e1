//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

const repoRootRel = ".."   // relative to ./e2e
const mainPkgRel = "./cmd" // main.go lives in cmd/

func TestSmoke_Dashboard(t *testing.T) {
	repoRoot := repoRootPath(t)

	dataDir := writeStudyFixture(t)

	bin := buildBinary(t, repoRoot)
	addr := pickFreeAddr(t)

	cmd := exec.Command(bin)
	cmd.Env = append(os.Environ(),
		"APP_ENV=dev",
		"LOG_LEVEL=info",
		"HTTP_ADDR="+addr,
		"DATA_DIR="+dataDir,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
	})

	client := &http.Client{Timeout: 5 * time.Second}
	base := "http://" + addr

	waitForOK(t, client, base+"/healthz", 5*time.Second)

	t.Run("healthz", func(t *testing.T) {
		resp, err := client.Get(base + "/healthz")
		if err != nil {
			t.Fatalf("GET /healthz: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status=%d want=%d", resp.StatusCode, http.StatusOK)
		}

		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode json: %v", err)
		}
		if body["status"] != "ok" {
			t.Fatalf("body.status=%q want=%q", body["status"], "ok")
		}
	})

	t.Run("overview page", func(t *testing.T) {
		body := getBody(t, client, base+"/")
		if !strings.Contains(body, "송도고") {
			t.Fatalf("overview page lacks the fixture school name:\n%s", body)
		}
	})

	t.Run("summary api", func(t *testing.T) {
		resp, err := client.Get(base + "/api/summary")
		if err != nil {
			t.Fatalf("GET /api/summary: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status=%d want=%d", resp.StatusCode, http.StatusOK)
		}
		var rows []map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
			t.Fatalf("decode json: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("len(rows)=%d want=2", len(rows))
		}
	})

	t.Run("environment csv download", func(t *testing.T) {
		resp, err := client.Get(base + "/download/environment.csv")
		if err != nil {
			t.Fatalf("GET /download/environment.csv: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status=%d want=%d", resp.StatusCode, http.StatusOK)
		}
		if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
			t.Fatalf("Content-Disposition=%q want attachment", cd)
		}
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if !strings.HasPrefix(string(b), "학교,") {
			t.Fatalf("csv does not start with the school column: %q", string(b[:min(len(b), 40)]))
		}
	})

	t.Run("chart png", func(t *testing.T) {
		resp, err := client.Get(base + "/charts/env-temperature.png")
		if err != nil {
			t.Fatalf("GET /charts/env-temperature.png: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status=%d want=%d", resp.StatusCode, http.StatusOK)
		}
		magic := make([]byte, 4)
		if _, err := io.ReadFull(resp.Body, magic); err != nil {
			t.Fatalf("read magic: %v", err)
		}
		if string(magic[1:4]) != "PNG" {
			t.Fatalf("body is not a PNG (magic=%q)", magic)
		}
	})

	stopServer(t, cmd)
}

// writeStudyFixture builds a minimal data directory: two environment CSVs
// and one growth workbook covering the same two schools.
func writeStudyFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	env := "time,temperature,humidity,ph,ec\n" +
		"2025-03-01 10:00:00,20,60,6.1,1.1\n" +
		"2025-03-01 11:00:00,22,64,6.2,1.3\n"
	for _, name := range []string{"송도고_환경데이터.csv", "하늘고_환경데이터.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(env), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	f := excelize.NewFile()
	for i, school := range []string{"송도고", "하늘고"} {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), school); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(school); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		rows := [][]any{
			{"생중량(g)", "잎 수(장)", "지상부 길이(mm)"},
			{1.2, 4, 30.0},
			{1.4, 5, 32.5},
		}
		for r, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(school, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	if err := f.SaveAs(filepath.Join(dir, "생육결과.xlsx")); err != nil {
		t.Fatalf("save workbook: %v", err)
	}

	return dir
}

func getBody(t *testing.T, client *http.Client, url string) string {
	t.Helper()

	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status=%d want=%d", url, resp.StatusCode, http.StatusOK)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func repoRootPath(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	repo := filepath.Clean(filepath.Join(wd, repoRootRel))
	if _, err := os.Stat(filepath.Join(repo, "go.mod")); err != nil {
		t.Fatalf("repo root %q does not contain go.mod: %v", repo, err)
	}

	return repo
}

func buildBinary(t *testing.T, repoRoot string) string {
	t.Helper()

	tmp := t.TempDir()
	out := filepath.Join(tmp, "polargrow-server")

	build := exec.Command("go", "build", "-o", out, mainPkgRel)
	build.Dir = repoRoot
	build.Env = os.Environ()

	b, err := build.CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(b))
	}

	return out
}

func pickFreeAddr(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen :0: %v", err)
	}
	defer ln.Close()

	return ln.Addr().String()
}

func waitForOK(t *testing.T, client *http.Client, url string, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server not healthy after %s: %s", timeout, url)
}

func stopServer(t *testing.T, cmd *exec.Cmd) {
	t.Helper()

	_ = cmd.Process.Signal(syscall.SIGTERM)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		t.Fatalf("server did not exit in time")
	case err := <-done:
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				t.Fatalf("server exited non-zero: %v", err)
			}
			t.Fatalf("server wait error: %v", err)
		}
	}
}
