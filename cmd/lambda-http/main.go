package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"resume-builder/internal/bootstrap"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/telemetry"
)

const jsonContentType = "application/json"

var (
	initOnce sync.Once
	proxy    *ginadapter.GinLambdaV2
	initErr  error

	buildApp = bootstrap.Build
)

func initProxy() {
	cfg := config.Load()
	app, err := buildApp(cfg)
	if err != nil {
		initErr = err
		telemetry.Error("lambda.bootstrap_failed", map[string]any{"error": err})
		return
	}
	proxy = ginadapter.NewV2(app.Router)
	telemetry.Info("lambda.bootstrap_ready", map[string]any{
		"env":           cfg.Env,
		"pending_store": cfg.PendingStore,
		"object_store":  cfg.ObjectStoreType,
	})
}

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	initOnce.Do(initProxy)
	if initErr != nil || proxy == nil {
		return errorResponse(http.StatusServiceUnavailable, `{"error":{"code":"unavailable","message":"service failed to start"}}`), nil
	}
	return proxy.ProxyWithContext(ctx, req)
}

func errorResponse(status int, body string) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Body:       body,
		Headers:    map[string]string{"Content-Type": jsonContentType},
	}
}

func main() {
	lambda.Start(handler)
}
