package report

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/call-analytics/internal/model"
)

func installedTask(id string, fields ...model.CustomField) model.Task {
	return model.Task{ID: id, CustomFields: fields}
}

func TestInstalledSurveys(t *testing.T) {
	cc := &stubClickUp{tasks: map[string][]model.Task{
		"inst-1": {
			installedTask("t1",
				model.CustomField{ID: "f-survey-date", Value: dateMillis(2024, time.January, 3)},
				model.CustomField{ID: "f-install-hours", Value: float64(2.5)},
			),
			installedTask("t2",
				model.CustomField{ID: "f-survey-date", Value: dateMillis(2024, time.January, 3)},
				model.CustomField{ID: "f-install-hours", Value: float64(4)},
			),
			// No hours recorded: surveyed but not installed.
			installedTask("t3",
				model.CustomField{ID: "f-survey-date", Value: dateMillis(2024, time.January, 4)},
			),
			installedTask("t4",
				model.CustomField{ID: "f-survey-date", Value: dateMillis(2024, time.January, 4)},
				model.CustomField{ID: "f-install-hours", Value: float64(0)},
			),
		},
	}}
	svc := testService(&stubZong{}, cc)

	rep, err := svc.InstalledSurveys(context.Background(), "2024-01-07")
	require.NoError(t, err)

	assert.Equal(t, 2, rep.TotalInstalled)
	assert.Equal(t, 6.5, rep.TotalHours)
	require.Len(t, rep.DateWise, 31)

	var jan3 model.InstalledDay
	for _, d := range rep.DateWise {
		if d.Date == model.NewDate(2024, time.January, 3) {
			jan3 = d
		}
	}
	assert.Equal(t, 2, jan3.Count)
	assert.Equal(t, 6.5, jan3.Hours)
}

func TestInstalledSurveys_RequiresDate(t *testing.T) {
	cc := &stubClickUp{}
	svc := testService(&stubZong{}, cc)

	_, err := svc.InstalledSurveys(context.Background(), "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Zero(t, cc.calls)
}

func TestPendingTasks(t *testing.T) {
	created := strconv.FormatInt(int64(dateMillis(2024, time.January, 4)), 10)
	cc := &stubClickUp{tasks: map[string][]model.Task{
		"pend-1": {
			{ID: "t1", Status: model.TaskStatus{Status: "Pending"}, DateCreated: created},
			{ID: "t2", Status: model.TaskStatus{Status: "pending"}, DateCreated: created},
			{ID: "t3", Status: model.TaskStatus{Status: "complete"}, DateCreated: created},
			{ID: "t4", Status: model.TaskStatus{Status: "pending"}, DateCreated: "not millis"},
		},
	}}
	svc := testService(&stubZong{}, cc)

	rep, err := svc.PendingTasks(context.Background(), "2024-01-01", "2024-01-07")
	require.NoError(t, err)

	assert.Equal(t, 2, rep.TotalPending)
	require.Len(t, rep.DateWise, 7)
	assert.Equal(t, 2, rep.DateWise[3].PendingCalls)
	assert.Equal(t, 0, rep.DateWise[0].PendingCalls)

	// The pending query filters on due date server-side.
	require.NotEmpty(t, cc.queries)
	assert.NotNil(t, cc.queries[0].DueDateGT)
	assert.NotNil(t, cc.queries[0].DueDateLT)
}

func TestPaymentsReport(t *testing.T) {
	cc := &stubClickUp{tasks: map[string][]model.Task{
		"inst-1": {
			installedTask("t1",
				model.CustomField{ID: "f-installed-date", Value: dateMillis(2024, time.January, 2)},
				model.CustomField{ID: "f-payable", Value: float64(1000)},
				model.CustomField{ID: "f-received", Value: float64(600)},
			),
			installedTask("t2",
				model.CustomField{ID: "f-installed-date", Value: dateMillis(2024, time.January, 2)},
				model.CustomField{ID: "f-payable", Value: "500"},
				model.CustomField{ID: "f-received", Value: "not money"}, // treated as zero
			),
			// Outside the window: ignored entirely.
			installedTask("t3",
				model.CustomField{ID: "f-installed-date", Value: dateMillis(2024, time.March, 1)},
				model.CustomField{ID: "f-payable", Value: float64(9999)},
			),
		},
	}}
	svc := testService(&stubZong{}, cc)

	rep, err := svc.PaymentsReport(context.Background(), "2024-01-01", "2024-01-05")
	require.NoError(t, err)

	assert.Equal(t, 2, rep.TotalInstallations)
	assert.Equal(t, 1500.0, rep.TotalAmountPayable)
	assert.Equal(t, 600.0, rep.TotalAmountReceived)
	assert.Equal(t, 900.0, rep.TotalAmountRemaining)

	require.Len(t, rep.DailyBreakdown, 5)
	jan2 := rep.DailyBreakdown[1]
	assert.Equal(t, 2, jan2.Installations)
	assert.Equal(t, 1500.0, jan2.TotalPayable)

	// Gap days still carry their date.
	assert.Equal(t, model.NewDate(2024, time.January, 3), rep.DailyBreakdown[2].Date)
	assert.Equal(t, 0, rep.DailyBreakdown[2].Installations)
}
