package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jqs7/regex/pkg/app"
	"github.com/jqs7/regex/pkg/config"
	"github.com/jqs7/regex/pkg/model"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	logger, err := app.NewLogger(cfg.Debug)
	if err != nil {
		log.Fatalln("init logger: ", err)
	}
	defer func() { _ = logger.Sync() }()

	a, err := app.New(cfg, logger, app.Options{})
	if err != nil {
		logger.Fatal("init app", zap.Error(err))
	}

	lambda.Start(func(ctx context.Context, req events.SQSEvent) error {
		for _, v := range req.Records {
			msg := model.ExpireMsg{}
			if err := json.Unmarshal([]byte(v.Body), &msg); err != nil {
				logger.Warn("drop undecodable expire msg", zap.String("body", v.Body), zap.Error(err))
				continue
			}
			if err := a.Handler.OnExpire(ctx, msg); err != nil {
				logger.Error("expire session", zap.Int64("chat", msg.ChatID), zap.Int("msg", msg.MsgID), zap.Error(err))
				return err
			}
		}
		return nil
	})
}
