package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DevRickLin/feishu-away-bot/internal/api"
	"github.com/DevRickLin/feishu-away-bot/internal/biz/usecase"
	"github.com/DevRickLin/feishu-away-bot/internal/conf"
	"github.com/DevRickLin/feishu-away-bot/internal/data"
	"github.com/DevRickLin/feishu-away-bot/internal/infra/feishu"
	"github.com/DevRickLin/feishu-away-bot/internal/server"
	"github.com/DevRickLin/feishu-away-bot/internal/service"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect to Feishu and answer private messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := conf.LoadFromEnv()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return run(cmd.Context(), cfg)
		},
	}
}

func run(parent context.Context, cfg *conf.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := openCore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open state: %w", err)
	}
	defer c.Close()
	fmt.Printf("[Bot] State dir: %s (backend=%s)\n", cfg.Store.Dir, cfg.Store.Backend)

	feishuClient := feishu.NewClient(cfg.Feishu.AppID, cfg.Feishu.AppSecret, cfg.Debug)
	messageRepo := data.NewFeishuRepo(feishuClient)
	generation := data.NewGenerationRepo(cfg.Generation.APIKey, cfg.Generation.BaseURL, cfg.Generation.Model)

	prompts := cfg.ToPromptConfig()
	responder := service.NewResponderService(service.ResponderDeps{
		Dedup:       usecase.NewDedupGuard(usecase.DefaultDedupCapacity, usecase.DefaultDedupEvict),
		Limiter:     usecase.NewRateLimiter(cfg.Responder.RateLimit, cfg.Responder.RateWindow),
		Memory:      c.memory,
		Stats:       c.stats,
		Categorizer: c.categorizer,
		Schedule:    c.schedule,
		Selector:    usecase.NewSelectorUsecase(c.repos.Resources, generation, c.memory, prompts),
		Resources:   c.repos.Resources,
		MessageRepo: messageRepo,
		ErrorReply:  prompts.ErrorReply,
	})
	responder.SetDelay(service.RandomDelay(cfg.Responder.ReplyDelayMin, cfg.Responder.ReplyDelayMax))

	var apiServer *api.Server
	if cfg.API.Port > 0 {
		apiServer = api.NewServer(api.Deps{
			Stats:       c.stats,
			Categorizer: c.categorizer,
			Memory:      c.memory,
			Schedule:    c.schedule,
			Resources:   c.repos.Resources,
			Summary:     c.scheduler,
		}, cfg.API.Port)
		go func() {
			if err := apiServer.Start(); err != nil {
				fmt.Printf("[Bot] API server error: %v\n", err)
			}
		}()
	}

	srv := server.NewFeishuServer(feishuClient, responder, c.scheduler)

	go func() {
		<-ctx.Done()
		fmt.Println("\nShutting down...")
		srv.Stop()
		if apiServer != nil {
			apiServer.Stop()
		}
		// The lark websocket client does not return from Start on cancel
		c.Close()
		os.Exit(0)
	}()

	fmt.Printf("[Bot] %s is answering for %s. Total messages so far: %d\n",
		prompts.BotName, prompts.OwnerName, c.stats.Snapshot().TotalMessages)
	if err := srv.Start(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
