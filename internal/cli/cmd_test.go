package cli

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/geopark-ops/guidelog/internal/config"
	"github.com/geopark-ops/guidelog/internal/repository"
	"github.com/geopark-ops/guidelog/internal/service"
	"github.com/geopark-ops/guidelog/internal/sheet"
	"github.com/geopark-ops/guidelog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPost = testutil.DefaultPost

// testApp wires a full App over an in-memory store. The clock is fixed in
// March 2025 and the 20th is a configured ferry disruption day.
func testApp(t *testing.T) (*App, *testutil.FailingBackend) {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Backend = config.BackendMemory
	cfg.Disruption.Route = "인천-백령"
	cfg.Disruption.Days = []string{"2025-03-20"}

	backend := testutil.NewFailingBackend(sheet.NewMemoryBackend())
	a, err := NewApp(cfg, sheet.NewStore(backend), nil)
	require.NoError(t, err)
	a.Now = func() time.Time { return time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC) }
	return a, backend
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, out)
	return out
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app, _ := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "guidelog")
	assert.Contains(t, output, "plan")
	assert.Contains(t, output, "serve")
}

// --- plan ---

func TestPlanSubmit_DaysAndList(t *testing.T) {
	app, _ := testApp(t)

	out := mustRun(t, app, "plan", "submit", "--post", testPost, "--person", "Alice", "--days", "3,5-6", "--shift", "오전")
	assert.Contains(t, out, "3건 저장")

	out = mustRun(t, app, "plan", "list")
	assert.Contains(t, out, "근무 계획 (3건)")
	assert.Contains(t, out, "2025-03-05 (수)")
	assert.Contains(t, out, "오전")
	assert.Contains(t, out, "백령도")
}

func TestPlanSubmit_PeriodResubmitReplaces(t *testing.T) {
	app, _ := testApp(t)

	mustRun(t, app, "plan", "submit", "--post", testPost, "--person", "Alice", "--period", "first_half")
	out := mustRun(t, app, "plan", "submit", "--post", testPost, "--person", "Alice", "--period", "전반기")
	assert.Contains(t, out, "15건 저장, 15건 교체")
}

func TestPlanSubmit_Validation(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "plan", "submit", "--post", "없는 안내소", "--person", "Alice", "--days", "3")
	assert.ErrorIs(t, err, service.ErrInvalidRequest)

	_, err = executeCmd(t, app, "plan", "submit", "--post", testPost, "--person", "Alice", "--month", "2025-13")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "plan", "submit", "--interactive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}

func TestPlanCancelAndApprove(t *testing.T) {
	app, _ := testApp(t)
	mustRun(t, app, "plan", "submit", "--post", testPost, "--person", "Alice", "--days", "3,4")
	mustRun(t, app, "plan", "submit", "--post", testPost, "--person", "Bob", "--days", "3")

	out := mustRun(t, app, "plan", "cancel", "--post", testPost, "--date", "2025-03-03", "--person", "Alice,Bob")
	assert.Contains(t, out, "2건 취소")

	out = mustRun(t, app, "plan", "approve", "--post", testPost)
	assert.Contains(t, out, "1건 승인")

	out = mustRun(t, app, "plan", "list")
	assert.Contains(t, out, "근무 계획 (1건)")
	assert.Contains(t, out, "승인완료")
}

func TestPlanList_Empty(t *testing.T) {
	app, _ := testApp(t)

	out := mustRun(t, app, "plan", "list", "--month", "2025-04")
	assert.Contains(t, out, "No plans found.")
}

// --- substitution and report ---

func TestSubstitutionShowsInReport(t *testing.T) {
	app, _ := testApp(t)
	mustRun(t, app, "plan", "submit", "--post", testPost, "--person", "Alice", "--days", "3")

	out := mustRun(t, app, "plan", "substitute", "--post", testPost, "--date", "2025-03-03", "--original", "Alice", "--substitute", "Bob")
	assert.Contains(t, out, "대근 등록")
	assert.Contains(t, out, "Bob")

	mustRun(t, app, "log", "submit", "--post", testPost, "--day", "3", "--person", "Bob", "--visitors", "20")

	out = mustRun(t, app, "report", "show", "--post", testPost, "--period", "first_half", "--note", "기상 양호")
	assert.Contains(t, out, "두무진 안내소 운영일지")
	assert.Contains(t, out, "전반기(1~15일)")
	assert.Contains(t, out, "계획 Alice")
	assert.Contains(t, out, "Bob(8H)")
	assert.Contains(t, out, "특이사항: 기상 양호")
}

func TestPlanSubstitute_RequiresFlags(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "plan", "substitute", "--post", testPost, "--original", "Alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestReportPrint_WritesWorkbook(t *testing.T) {
	app, _ := testApp(t)
	mustRun(t, app, "plan", "submit", "--post", testPost, "--person", "Alice", "--days", "3")
	path := filepath.Join(t.TempDir(), "sheet.xlsx")

	out := mustRun(t, app, "report", "print", "--post", testPost, "--out", path)
	assert.Contains(t, out, path)
	assert.Contains(t, out, "쪽")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestReportPrint_RefusesWhenSourceUnavailable(t *testing.T) {
	app, backend := testApp(t)
	backend.ReadErr = errors.New("sheet offline")
	path := filepath.Join(t.TempDir(), "sheet.xlsx")

	out, err := executeCmd(t, app, "report", "print", "--post", testPost, "--out", path)
	assert.ErrorIs(t, err, service.ErrSourceUnavailable)
	assert.Contains(t, out, "could not be read")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary workbook must be removed")
}

// --- log ---

func TestLogSubmit_CustomHoursPendingApprove(t *testing.T) {
	app, _ := testApp(t)

	out := mustRun(t, app, "log", "submit", "--post", testPost, "--day", "4", "--person", "Alice",
		"--hours", "직접입력", "--custom-hours", "6.5", "--visitors", "7", "--tag", "학생단체")
	assert.Contains(t, out, "1건 저장")

	out = mustRun(t, app, "log", "pending")
	assert.Contains(t, out, "검토 대기 (1건)")
	assert.Contains(t, out, "6.5h")
	assert.Contains(t, out, "학생단체")

	out = mustRun(t, app, "log", "approve")
	assert.Contains(t, out, "1건 승인")

	out = mustRun(t, app, "log", "pending")
	assert.Contains(t, out, "No activity found.")

	out = mustRun(t, app, "log", "mine", "--person", "Alice")
	assert.Contains(t, out, "내 활동 (1건)")
	assert.Contains(t, out, "승인완료")
}

func TestLogSubmit_ZeroCustomHoursSkipped(t *testing.T) {
	app, _ := testApp(t)

	out := mustRun(t, app, "log", "submit", "--post", testPost, "--day", "4", "--person", "Alice", "--hours", "직접입력")
	assert.Contains(t, out, "0건 저장, 1건 제외")

	out = mustRun(t, app, "log", "list")
	assert.Contains(t, out, "No activity found.")
}

func TestLogSubmit_Errors(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "log", "submit", "--post", testPost, "--day", "4", "--person", "Alice", "--hours", "10시간")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown hours option")

	_, err = executeCmd(t, app, "log", "submit", "--post", testPost, "--day", "4", "--person", "Alice", "--visitors=-3")
	assert.ErrorIs(t, err, service.ErrInvalidRequest)

	_, err = executeCmd(t, app, "log", "mine")
	assert.Error(t, err)
}

// --- stats and disruption ---

func TestStats_SplitsDisruptionDays(t *testing.T) {
	app, _ := testApp(t)
	mustRun(t, app, "log", "submit", "--post", testPost, "--day", "20", "--person", "Alice", "--visitors", "13")
	mustRun(t, app, "log", "submit", "--post", testPost, "--day", "21", "--person", "Alice", "--visitors", "5", "--hours", "4시간")

	out := mustRun(t, app, "stats")
	assert.Contains(t, out, "월간 통계 · 2025년 3월")
	assert.Contains(t, out, "두무진 안내소")
	assert.Contains(t, out, "12h")
	assert.Contains(t, out, "결항일 20일: 방문객 13명, 8h")
}

func TestDisruption_AddAndDays(t *testing.T) {
	app, _ := testApp(t)

	out := mustRun(t, app, "disruption", "add", "--date", "2025-03-05", "--scheduled", "2", "--operated", "0")
	assert.Contains(t, out, "결항")

	out = mustRun(t, app, "disruption", "add", "--date", "2025-03-06", "--scheduled", "2", "--operated", "2")
	assert.Contains(t, out, "정상 운항")

	out = mustRun(t, app, "disruption", "days")
	assert.Contains(t, out, "2025년 3월 결항일: 5, 20")

	out = mustRun(t, app, "disruption", "days", "--month", "2025-04")
	assert.Contains(t, out, "No disruption days.")
}

// --- roster ---

func TestRoster_AddListShow(t *testing.T) {
	app, _ := testApp(t)

	out := mustRun(t, app, "roster", "add", "Alice", "Bob", "--island", "백령도", "--role", "조장")
	assert.Contains(t, out, "2명 등록")

	out = mustRun(t, app, "roster", "list", "--island", "백령도")
	assert.Contains(t, out, "해설사 명단 (2명)")
	assert.Contains(t, out, "조장")

	out = mustRun(t, app, "roster", "show", "Alice")
	assert.Contains(t, out, "Alice")

	_, err := executeCmd(t, app, "roster", "show", "Nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = executeCmd(t, app, "roster", "add", "Carol", "--island", "백령도", "--role", "captain")
	assert.Error(t, err)
}

// --- flags ---

func TestMonthValue_Set(t *testing.T) {
	tests := []struct {
		in        string
		wantYear  int
		wantMonth time.Month
		wantErr   bool
	}{
		{"2025-03", 2025, time.March, false},
		{"2025/3", 2025, time.March, false},
		{"2025.11", 2025, time.November, false},
		{"2025-0", 0, 0, true},
		{"March", 0, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var m monthValue
			err := m.Set(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantYear, m.year)
			assert.Equal(t, tc.wantMonth, m.month)
		})
	}
}

func TestParseDays(t *testing.T) {
	days, err := parseDays("10-12, 3,5")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5, 10, 11, 12}, days)

	days, err = parseDays("")
	require.NoError(t, err)
	assert.Empty(t, days)

	_, err = parseDays("5-3")
	assert.Error(t, err)
	_, err = parseDays("x")
	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "x.yaml", ConfigPath([]string{"plan", "list", "--month", "2025-03", "--config", "x.yaml"}))
	assert.Equal(t, "y.yaml", ConfigPath([]string{"--config=y.yaml", "stats"}))
	assert.Empty(t, ConfigPath([]string{"stats", "--island", "백령도"}))
}

// --- serve ---

func TestServe_ServesAPIUntilCancelled(t *testing.T) {
	app, _ := testApp(t)
	mustRun(t, app, "roster", "add", "Alice", "--island", "백령도")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln, &out) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/roster")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
	assert.Contains(t, out.String(), "API stopped")
}
