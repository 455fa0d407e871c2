package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/cattimer/internal/config"
	"github.com/alexanderramin/cattimer/internal/domain"
	"github.com/alexanderramin/cattimer/internal/repository"
	"github.com/alexanderramin/cattimer/internal/service"
	"github.com/alexanderramin/cattimer/internal/testutil"
	"github.com/alexanderramin/cattimer/internal/timer"
	"github.com/alexanderramin/cattimer/internal/timer/timertest"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// testApp wires an App backed by an in-memory DB, a fixed clock and a
// config that ignores the user's files.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewKVTaskLogRepo(repository.NewSQLiteKVStore(database))

	return &App{
		Logs: service.NewTaskLogService(repo, testutil.NewTestUoW(database)),
		LoadConfig: func(flags *pflag.FlagSet) (config.Config, error) {
			return config.Load("/nonexistent/cattimer.yaml", flags)
		},
		RunID: "test-run",
		Now:   func() time.Time { return testutil.RefNow },
	}
}

// seedLogs records entries oldest first, so the last one ends up at the
// front of the log.
func seedLogs(t *testing.T, app *App, entries ...domain.TaskLog) {
	t.Helper()
	ctx := context.Background()
	for _, e := range entries {
		require.NoError(t, app.Logs.Record(ctx, e))
	}
}

// executeCmd runs the command tree with args and returns combined output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// timerRig is a controller driven by a manual clock and scheduler but
// logging through the real service.
type timerRig struct {
	app   *App
	clock *timertest.Clock
	sched *timertest.Scheduler
}

func newTimerRig(t *testing.T) *timerRig {
	t.Helper()
	return &timerRig{
		app:   testApp(t),
		clock: timertest.NewClock(testutil.RefNow),
		sched: timertest.NewScheduler(),
	}
}

func (r *timerRig) controller(t *testing.T, view timer.View, lengths timer.Lengths, prompt timer.Prompt) *timer.Controller {
	t.Helper()
	ctrl := timer.NewController(timer.Deps{
		View:      view,
		Lengths:   lengths,
		Logs:      r.app.Logs,
		Prompt:    prompt,
		Clock:     r.clock,
		Scheduler: r.sched,
	})
	t.Cleanup(ctrl.Close)
	ctrl.Init(context.Background())
	return ctrl
}
