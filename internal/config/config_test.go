package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Zong: ZongConfig{VPBXID: "vpbx-1", Token: "zt"},
		ClickUp: ClickUpConfig{Token: "ct"},
		Reports: ReportsConfig{
			SurveyLists:   []string{"sv-1"},
			InstalledList: "inst-1",
			PendingList:   "pend-1",
			FeedbackList:  "fb-1",
			Fields: FieldIDs{
				SurveyDate:     "f1",
				InstallHours:   "f2",
				InstalledDate:  "f3",
				AmountPayable:  "f4",
				AmountReceived: "f5",
				FeedbackDate:   "f6",
				FeedbackNPS:    "f7",
			},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_ReportsEveryMissingKey(t *testing.T) {
	cfg := validConfig()
	cfg.Zong.Token = ""
	cfg.Reports.SurveyLists = nil
	cfg.Reports.Fields.FeedbackNPS = "   "

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zong.token")
	assert.Contains(t, err.Error(), "reports.survey_lists")
	assert.Contains(t, err.Error(), "reports.fields.feedback_nps")
	assert.NotContains(t, err.Error(), "clickup.token")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.clickup.com/api/v2", cfg.ClickUp.BaseURL)
	assert.Equal(t, 20, cfg.ClickUp.MaxPages)
	assert.Equal(t, 1000, cfg.ClickUp.MaxTasks)
	assert.Equal(t, 30, cfg.Reports.DefaultDays)
	assert.Equal(t, 60, cfg.Reports.MaxRangeDays)
	assert.Equal(t, "potential b2b", cfg.Reports.B2BTag)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}
