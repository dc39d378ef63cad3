package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/jqs7/regex/pkg/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve updates by long polling",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(app.Options{Memory: memory})
		if err != nil {
			return err
		}
		defer func() { _ = a.Logger.Sync() }()

		raw := a.Bot.Raw()
		if _, err := raw.RemoveWebhook(); err != nil {
			return xerrors.Errorf("移除 webhook 失败: %w", err)
		}
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates, err := raw.GetUpdatesChan(u)
		if err != nil {
			return xerrors.Errorf("获取更新失败: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		a.Logger.Info("serving", zap.String("bot", raw.Self.UserName), zap.Bool("memory", memory))
		for {
			select {
			case <-ctx.Done():
				raw.StopReceivingUpdates()
				a.Logger.Info("stopped")
				return nil
			case update := <-updates:
				a.Router.Route(ctx, &update)
			}
		}
	},
}

var hookCmd = &cobra.Command{
	Use:   "hook <url>",
	Short: "Point the bot's webhook at url",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(app.Options{Memory: true})
		if err != nil {
			return err
		}
		if err := a.Bot.SetWebhook(args[0]); err != nil {
			return err
		}
		a.Logger.Info("webhook set", zap.String("url", args[0]))
		return nil
	},
}
