// Package config loads application configuration from an optional
// config.yaml plus CALLANALYTICS_* environment variables. Credentials and
// the deployment-specific list and custom-field IDs are required and
// validated at startup so a misconfigured deployment fails fast instead of
// producing empty reports.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Zong    ZongConfig    `yaml:"zong" mapstructure:"zong"`
	ClickUp ClickUpConfig `yaml:"clickup" mapstructure:"clickup"`
	Reports ReportsConfig `yaml:"reports" mapstructure:"reports"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ZongConfig holds telephony API credentials and connection settings.
type ZongConfig struct {
	BaseURL            string `yaml:"base_url" mapstructure:"base_url"`
	VPBXID             string `yaml:"vpbx_id" mapstructure:"vpbx_id"`
	Token              string `yaml:"token" mapstructure:"token"`
	TimeoutSecs        int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`
}

// ClickUpConfig holds task API credentials and fetch bounds.
type ClickUpConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	Token       string  `yaml:"token" mapstructure:"token"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	MaxPages    int     `yaml:"max_pages" mapstructure:"max_pages"`
	MaxTasks    int     `yaml:"max_tasks" mapstructure:"max_tasks"`
}

// ReportsConfig binds the aggregators to the deployment's lists and windows.
type ReportsConfig struct {
	DefaultDays   int      `yaml:"default_days" mapstructure:"default_days"`
	MaxRangeDays  int      `yaml:"max_range_days" mapstructure:"max_range_days"`
	SurveyLists   []string `yaml:"survey_lists" mapstructure:"survey_lists"`
	InstalledList string   `yaml:"installed_list" mapstructure:"installed_list"`
	PendingList   string   `yaml:"pending_list" mapstructure:"pending_list"`
	FeedbackList  string   `yaml:"feedback_list" mapstructure:"feedback_list"`
	B2BLists      []string `yaml:"b2b_lists" mapstructure:"b2b_lists"`
	B2BTag        string   `yaml:"b2b_tag" mapstructure:"b2b_tag"`
	Fields        FieldIDs `yaml:"fields" mapstructure:"fields"`
}

// FieldIDs maps semantic field names to the deployment's opaque custom-field
// identifiers. A redeployment against a differently configured workspace
// only changes these values, never the extraction code.
type FieldIDs struct {
	SurveyDate       string `yaml:"survey_date" mapstructure:"survey_date"`
	InstallHours     string `yaml:"install_hours" mapstructure:"install_hours"`
	InstalledDate    string `yaml:"installed_date" mapstructure:"installed_date"`
	AmountPayable    string `yaml:"amount_payable" mapstructure:"amount_payable"`
	AmountReceived   string `yaml:"amount_received" mapstructure:"amount_received"`
	FeedbackDate     string `yaml:"feedback_date" mapstructure:"feedback_date"`
	FeedbackStatus   string `yaml:"feedback_status" mapstructure:"feedback_status"`
	FeedbackComments string `yaml:"feedback_comments" mapstructure:"feedback_comments"`
	FeedbackNPS      string `yaml:"feedback_nps" mapstructure:"feedback_nps"`
	FeedbackDoneID   string `yaml:"feedback_done_id" mapstructure:"feedback_done_id"`
	PrimaryPhone     string `yaml:"primary_phone" mapstructure:"primary_phone"`
}

// ServerConfig configures the reporting HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CALLANALYTICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("zong.base_url", "https://cap.zong.com.pk:8444/vpbx-apis/customApi/vpbx-custom-apis")
	v.SetDefault("zong.timeout_secs", 30)
	v.SetDefault("clickup.base_url", "https://api.clickup.com/api/v2")
	v.SetDefault("clickup.timeout_secs", 30)
	v.SetDefault("clickup.rate_per_sec", 5)
	v.SetDefault("clickup.max_pages", 20)
	v.SetDefault("clickup.max_tasks", 1000)
	v.SetDefault("reports.default_days", 30)
	v.SetDefault("reports.max_range_days", 60)
	v.SetDefault("reports.b2b_tag", "potential b2b")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate rejects configurations missing required credentials or IDs.
func (c *Config) Validate() error {
	var missing []string

	require := func(key, val string) {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, key)
		}
	}

	require("zong.vpbx_id", c.Zong.VPBXID)
	require("zong.token", c.Zong.Token)
	require("clickup.token", c.ClickUp.Token)
	require("reports.installed_list", c.Reports.InstalledList)
	require("reports.pending_list", c.Reports.PendingList)
	require("reports.feedback_list", c.Reports.FeedbackList)
	if len(c.Reports.SurveyLists) == 0 {
		missing = append(missing, "reports.survey_lists")
	}
	require("reports.fields.survey_date", c.Reports.Fields.SurveyDate)
	require("reports.fields.install_hours", c.Reports.Fields.InstallHours)
	require("reports.fields.installed_date", c.Reports.Fields.InstalledDate)
	require("reports.fields.amount_payable", c.Reports.Fields.AmountPayable)
	require("reports.fields.amount_received", c.Reports.Fields.AmountReceived)
	require("reports.fields.feedback_date", c.Reports.Fields.FeedbackDate)
	require("reports.fields.feedback_nps", c.Reports.Fields.FeedbackNPS)

	if len(missing) > 0 {
		return eris.Errorf("config: missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
