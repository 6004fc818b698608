package clickup

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/call-analytics/internal/model"
)

// Caps bounds a full-list fetch against a misbehaving or very large source.
// Hitting a cap is not an error; the result is silently truncated.
type Caps struct {
	MaxPages int
	MaxTasks int
}

// FetchAll drains the list by requesting consecutive pages until a page
// comes back short or empty. Pages are fetched sequentially: each request
// depends on knowing whether the prior page was full. Retry exhaustion on
// any page fails the whole fetch; no partial result is returned.
func FetchAll(ctx context.Context, c Client, listID string, q TaskQuery, caps Caps) ([]model.Task, error) {
	var all []model.Task
	for page := 0; ; page++ {
		if caps.MaxPages > 0 && page >= caps.MaxPages {
			zap.L().Warn("task fetch hit page cap",
				zap.String("list_id", listID),
				zap.Int("max_pages", caps.MaxPages),
			)
			break
		}

		q.Page = page
		tasks, err := c.ListTasks(ctx, listID, q)
		if err != nil {
			return nil, eris.Wrapf(err, "clickup: fetch all from list %s", listID)
		}
		if len(tasks) == 0 {
			break
		}

		all = append(all, tasks...)
		if caps.MaxTasks > 0 && len(all) >= caps.MaxTasks {
			zap.L().Warn("task fetch hit record cap",
				zap.String("list_id", listID),
				zap.Int("max_tasks", caps.MaxTasks),
			)
			all = all[:caps.MaxTasks]
			break
		}
		if len(tasks) < PageSize {
			break
		}
	}
	return all, nil
}
