package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/plantrack/internal/app"
	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/alexanderramin/plantrack/internal/planning"
	"github.com/alexanderramin/plantrack/internal/repository"
	"github.com/alexanderramin/plantrack/internal/service"
	"github.com/alexanderramin/plantrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testAppWithClock wires a full App over the in-memory stores and the
// standard three-user roster. IDs are sequential from 1.
func testAppWithClock(t *testing.T) (*App, *testutil.Clock) {
	t.Helper()

	users, err := repository.NewMemoryUserRepo(testutil.Roster())
	require.NoError(t, err)
	plans := repository.NewMemoryPlanRepo()
	clock := testutil.NewClock(testutil.RefNow)
	mutator := planning.NewMutator(testutil.NewSeqIDs(1), domain.LocaleES)

	return &App{
		Plans:       service.NewPlanService(plans, users, mutator),
		Directory:   service.NewDirectoryService(users),
		Dashboard:   service.NewDashboardService(plans, users, clock.Now, domain.LocaleES),
		Clock:       clock.Now,
		Location:    time.UTC,
		HistoryPath: filepath.Join(t.TempDir(), "shell_history"),
	}, clock
}

func testApp(t *testing.T) *App {
	t.Helper()
	a, _ := testAppWithClock(t)
	return a
}

// seedPlans creates "Q1 Report" (#1, activities #2 and #3, due 31 March) and
// "Onboarding" (#4, activity #5, due 30 April).
func seedPlans(t *testing.T, a *App) {
	t.Helper()
	ctx := context.Background()

	_, err := a.Plans.Create(ctx, app.CreatePlanRequest{
		Name:       "Q1 Report",
		Deadline:   testutil.Q1Deadline,
		Activities: []string{"Gather data", "Write summary"},
	})
	require.NoError(t, err)

	_, err = a.Plans.Create(ctx, app.CreatePlanRequest{
		Name:       "Onboarding",
		Deadline:   time.Date(2024, 4, 30, 23, 59, 59, 0, time.UTC),
		Activities: []string{"Read handbook"},
	})
	require.NoError(t, err)
}

// executeCmd runs one command line against a and returns its output.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	root.SilenceUsage = true
	root.SilenceErrors = true
	err := root.Execute()
	return stripANSI(buf.String()), err
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestLoginWhoAmILogout(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "whoami")
	assert.ErrorIs(t, err, errNotSignedIn)

	out, err := executeCmd(t, a, "login", "supervisor")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Alice Manager (supervisor)")
	require.NotNil(t, a.Session)
	assert.Equal(t, 1, a.Session.ID)

	out, err = executeCmd(t, a, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "@supervisor")

	out, err = executeCmd(t, a, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out Alice Manager")
	assert.Nil(t, a.Session)

	out, err = executeCmd(t, a, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in.")
}

func TestLogin_UnknownUser(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "login", "nobody")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Nil(t, a.Session)
}

func TestAsFlag_SignsIn(t *testing.T) {
	a := testApp(t)
	out, err := executeCmd(t, a, "whoami", "--as", "worker1")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob Worker")
}

func TestRoleGating(t *testing.T) {
	a := testApp(t)
	seedPlans(t, a)

	_, err := executeCmd(t, a, "plan", "list", "--as", "worker1")
	assert.EqualError(t, err, "worker1 is not a supervisor")

	_, err = executeCmd(t, a, "mine", "--as", "supervisor")
	assert.EqualError(t, err, "supervisor is not a worker")

	_, err = executeCmd(t, a, "complete", "1", "2", "x.pdf", "--as", "supervisor")
	assert.EqualError(t, err, "supervisor is not a worker")
}

func TestPlanList_GroupsByMonth(t *testing.T) {
	a := testApp(t)
	seedPlans(t, a)

	out, err := executeCmd(t, a, "plan", "list", "--as", "supervisor")
	require.NoError(t, err)
	assert.Contains(t, out, "PLANS 2024")
	assert.Contains(t, out, "Marzo")
	assert.Contains(t, out, "Abril")
	assert.Contains(t, out, "Q1 Report")
	assert.Contains(t, out, "Onboarding")

	out, err = executeCmd(t, a, "plan", "list", "--year", "2023")
	require.NoError(t, err)
	assert.Contains(t, out, "No plans in 2023.")
}

func TestPlanAdd_FansOutToWorkers(t *testing.T) {
	a := testApp(t)
	seedPlans(t, a)

	out, err := executeCmd(t, a, "plan", "add", "--as", "supervisor",
		"--name", "Budget", "--deadline", "2024-05-31",
		"--activity", "Draft", "--activity", "Review")
	require.NoError(t, err)
	assert.Contains(t, out, "Created plan Budget #6 with 2 activities (mayo de 2024)")

	p, err := a.Plans.GetByID(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC), p.Deadline)
	require.Len(t, p.Activities, 2)
	for _, act := range p.Activities {
		assert.Len(t, act.Completions, 2)
	}
}

func TestPlanAdd_Validation(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "plan", "add", "--as", "supervisor", "--deadline", "2024-05-31")
	assert.Error(t, err)

	_, err = executeCmd(t, a, "plan", "add", "--as", "supervisor", "--name", "Budget", "--deadline", "31/05/2024")
	assert.Error(t, err)

	plans, err := a.Plans.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestPlanShow(t *testing.T) {
	a := testApp(t)
	seedPlans(t, a)

	out, err := executeCmd(t, a, "plan", "show", "#1", "--as", "supervisor")
	require.NoError(t, err)
	assert.Contains(t, out, "Q1 REPORT")
	assert.Contains(t, out, "Gather data")
	assert.Contains(t, out, "Bob Worker")
	assert.Contains(t, out, "Charlie Worker")

	out, err = executeCmd(t, a, "plan", "show", "1", "--search", "charlie")
	require.NoError(t, err)
	assert.NotContains(t, out, "Bob Worker")

	_, err = executeCmd(t, a, "plan", "show", "99")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = executeCmd(t, a, "plan", "show", "abc")
	assert.EqualError(t, err, `invalid plan ID "abc"`)
}

func TestPlanEdit(t *testing.T) {
	a := testApp(t)
	seedPlans(t, a)

	out, err := executeCmd(t, a, "plan", "edit", "1", "--as", "supervisor",
		"--name", "Q1 Final", "--add-activity", "Present")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated plan Q1 Final #1: 31/3/2024, 3 activities")

	out, err = executeCmd(t, a, "plan", "edit", "1", "--deadline", "2024-04-15")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated plan Q1 Final #1: 15/4/2024")

	p, err := a.Plans.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "abril de 2024", p.Month)
	assert.Equal(t, 3, p.MonthIndex)
}

func TestPlanRemove(t *testing.T) {
	a := testApp(t)
	seedPlans(t, a)

	out, err := executeCmd(t, a, "plan", "remove", "1", "--as", "supervisor")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted plan #1 (1 remaining)")

	_, err = executeCmd(t, a, "plan", "remove", "1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestActivityCommands(t *testing.T) {
	a := testApp(t)
	seedPlans(t, a)
	ctx := context.Background()

	out, err := executeCmd(t, a, "activity", "add", "1", "Present", "Archive", "--as", "supervisor")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 2 activities to Q1 Report (4 total)")

	out, err = executeCmd(t, a, "activity", "rename", "1", "#2", "Collect", "data")
	require.NoError(t, err)
	assert.Contains(t, out, "Renamed activity #2 to Collect data")

	p, err := a.Plans.GetByID(ctx, 1)
	require.NoError(t, err)
	act, ok := p.Activity(2)
	require.True(t, ok)
	assert.Equal(t, "Collect data", act.Name)

	out, err = executeCmd(t, a, "activity", "remove", "1", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted activity #3 from Q1 Report")

	_, err = executeCmd(t, a, "activity", "remove", "1", "3")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	out, err = executeCmd(t, a, "activity", "show", "1", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "COLLECT DATA")
	assert.Contains(t, out, "Bob Worker")
}

func TestWorkersAndWorkerShow(t *testing.T) {
	a := testApp(t)
	seedPlans(t, a)

	out, err := executeCmd(t, a, "workers", "--as", "supervisor", "--search", "bob")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob Worker")
	assert.NotContains(t, out, "Charlie Worker")

	out, err = executeCmd(t, a, "worker", "show", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "CHARLIE WORKER")
	assert.Contains(t, out, "Q1 Report")
	assert.Contains(t, out, "Onboarding")

	_, err = executeCmd(t, a, "worker", "show", "1")
	assert.Error(t, err)
}

func TestMineAndComplete(t *testing.T) {
	a := testApp(t)
	seedPlans(t, a)
	ctx := context.Background()

	out, err := executeCmd(t, a, "mine", "--as", "worker1")
	require.NoError(t, err)
	assert.Contains(t, out, "MY PLANS")
	assert.Contains(t, out, "#2 Gather data")

	out, err = executeCmd(t, a, "complete", "1", "2", "evidence.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ Gather data (evidence.pdf)")

	p, err := a.Plans.GetByID(ctx, 1)
	require.NoError(t, err)
	act, _ := p.Activity(2)
	c, ok := act.CompletionFor(2)
	require.True(t, ok)
	assert.True(t, c.IsCompleted())
	assert.Equal(t, "evidence.pdf", c.EvidenceFile)

	other, _ := act.CompletionFor(3)
	assert.False(t, other.IsCompleted())

	_, err = executeCmd(t, a, "complete", "1", "2", "again.pdf")
	assert.True(t, errors.Is(err, domain.ErrInvalidState))

	out, err = executeCmd(t, a, "mine")
	require.NoError(t, err)
	assert.Contains(t, out, "evidence.pdf")
}

func TestComplete_RequiresPDF(t *testing.T) {
	a := testApp(t)
	seedPlans(t, a)

	_, err := executeCmd(t, a, "complete", "1", "2", "notes.txt", "--as", "worker1")
	assert.EqualError(t, err, `evidence must be a PDF file, got "notes.txt"`)

	_, err = executeCmd(t, a, "complete", "1", "2", "REPORT.PDF")
	assert.NoError(t, err)
}

func TestComplete_RejectedAfterDeadline(t *testing.T) {
	a, clock := testAppWithClock(t)
	seedPlans(t, a)
	clock.Set(time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC))

	_, err := executeCmd(t, a, "complete", "1", "2", "late.pdf", "--as", "worker2")
	assert.EqualError(t, err, `the deadline for "Q1 Report" has passed`)

	// The April plan is still open.
	_, err = executeCmd(t, a, "complete", "4", "5", "handbook.pdf")
	assert.NoError(t, err)
}

func TestReport_WritesPDF(t *testing.T) {
	a := testApp(t)
	seedPlans(t, a)
	path := filepath.Join(t.TempDir(), "out.pdf")

	out, err := executeCmd(t, a, "report", "--as", "supervisor", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestCaptureCobraOutput(t *testing.T) {
	a := testApp(t)

	out := stripANSI(captureCobraOutput(a, []string{"login", "supervisor"}))
	assert.Contains(t, out, "Signed in as Alice Manager")

	out = stripANSI(captureCobraOutput(a, []string{"plann"}))
	assert.Contains(t, out, "Error: unknown command")
	assert.Contains(t, out, "Did you mean:")
	assert.Contains(t, out, "plan")
}

func TestSuggestAlternatives_Typos(t *testing.T) {
	a := testApp(t)

	assert.Contains(t, stripANSI(suggestAlternatives(a, "plann")), "plan")
	assert.Contains(t, stripANSI(suggestAlternatives(a, "workrs")), "workers")
	assert.Empty(t, suggestAlternatives(a, "zzzzzzzz"))
}
