package report

import (
	"time"

	"github.com/sells-group/call-analytics/internal/config"
	"github.com/sells-group/call-analytics/pkg/clickup"
	"github.com/sells-group/call-analytics/pkg/zong"
)

// Service is the reporting engine. It owns no state across requests beyond
// the upstream clients; every report re-fetches from source.
type Service struct {
	zong    zong.Client
	clickup clickup.Client
	cfg     config.ReportsConfig
	caps    clickup.Caps

	// now is the clock used to resolve default windows; overridable in tests.
	now func() time.Time
}

// New wires the reporting engine to its upstream clients.
func New(zc zong.Client, cc clickup.Client, reports config.ReportsConfig, fetch config.ClickUpConfig) *Service {
	return &Service{
		zong:    zc,
		clickup: cc,
		cfg:     reports,
		caps: clickup.Caps{
			MaxPages: fetch.MaxPages,
			MaxTasks: fetch.MaxTasks,
		},
		now: time.Now,
	}
}

func (s *Service) defaultDays() int {
	if s.cfg.DefaultDays > 0 {
		return s.cfg.DefaultDays
	}
	return 30
}

func (s *Service) window(startStr, endStr string) (Window, error) {
	return ResolveWindow(startStr, endStr, s.defaultDays(), s.now())
}
