package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jqs7/regex/pkg/app"
	"github.com/jqs7/regex/pkg/config"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

var RespOK = &events.APIGatewayProxyResponse{
	Headers:    map[string]string{},
	StatusCode: http.StatusOK,
	Body:       "True",
}

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

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		switch req.Path {
		case "/":
			a.Router.HandleBody(ctx, []byte(req.Body))
			return RespOK, nil
		case "/hook":
			hookAddr := "https://" + req.Headers["Host"] + "/" + req.RequestContext.Stage
			if err := a.Bot.SetWebhook(hookAddr); err != nil {
				logger.Error("set webhook", zap.String("addr", hookAddr), zap.Error(err))
				return &events.APIGatewayProxyResponse{
					Headers:    map[string]string{},
					StatusCode: http.StatusInternalServerError,
					Body:       fmt.Sprintf("set webhook %s failed: %v", hookAddr, err),
				}, nil
			}
			return RespOK, nil
		default:
			return nil, xerrors.Errorf("path not found: %s", req.Path)
		}
	})
}
