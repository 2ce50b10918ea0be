package main

import (
	"context"
	"time"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/domain"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/usecase"
	"github.com/DevRickLin/feishu-away-bot/internal/conf"
	"github.com/DevRickLin/feishu-away-bot/internal/data"
	"github.com/DevRickLin/feishu-away-bot/internal/service"
)

// core holds the state-backed usecases shared by every command
type core struct {
	repos       *data.Repositories
	memory      *usecase.MemoryUsecase
	stats       *usecase.StatsUsecase
	categorizer *usecase.CategorizerUsecase
	schedule    *usecase.ScheduleUsecase
	summary     *usecase.SummaryUsecase
	scheduler   *service.SummaryScheduler
}

func openCore(ctx context.Context, cfg *conf.Config) (*core, error) {
	repos, err := data.NewRepositories(cfg.Store.Dir, cfg.Store.Backend)
	if err != nil {
		return nil, err
	}

	c := &core{repos: repos}
	c.memory = usecase.NewMemoryUsecase(ctx, repos.State, domain.MaxHistoryTurns)
	c.stats = usecase.NewStatsUsecase(ctx, repos.State, time.Now())
	c.categorizer = usecase.NewCategorizerUsecase(ctx, repos.State, repos.Resources)
	c.schedule = usecase.NewScheduleUsecase(ctx, repos.State)
	c.summary = usecase.NewSummaryUsecase(c.stats, c.categorizer, repos.Resources)
	c.scheduler = service.NewSummaryScheduler(c.summary)
	return c, nil
}

func (c *core) Close() error {
	return c.repos.Close()
}
