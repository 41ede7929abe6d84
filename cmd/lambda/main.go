package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"elevate-backend/internal/config"
	"elevate-backend/internal/content"
	"elevate-backend/internal/di"
	"elevate-backend/internal/domain"
	"elevate-backend/internal/logging"
)

// settleMargin is kept back from the invocation deadline so the response
// still goes out when queued mutations run long.
const settleMargin = 200 * time.Millisecond

// handler proxies API Gateway events to the chi router. The execution
// environment is frozen once an invocation returns, so every invocation
// drains the mutations it queued before answering.
type handler struct {
	proxy  *chiadapter.ChiLambdaV2
	store  *content.Store
	logger *zap.Logger

	// coldStart tracks whether this is a cold start invocation
	coldStart     bool
	coldStartTime time.Time
}

func newHandler(router *chi.Mux, store *content.Store, logger *zap.Logger, started time.Time) *handler {
	return &handler{
		proxy:         chiadapter.NewV2(router),
		store:         store,
		logger:        logger,
		coldStart:     true,
		coldStartTime: started,
	}
}

// Handle is the Lambda function handler
func (h *handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	resp, err := h.proxy.ProxyWithContextV2(ctx, req)

	h.settle(ctx, req.RequestContext.RequestID)

	if resp.Headers == nil {
		resp.Headers = make(map[string]string)
	}
	if h.coldStart {
		resp.Headers["X-Cold-Start"] = "true"
		resp.Headers["X-Cold-Start-Duration"] = time.Since(h.coldStartTime).String()
		h.coldStart = false
	} else {
		resp.Headers["X-Cold-Start"] = "false"
	}
	resp.Headers["X-Lambda-Request-ID"] = req.RequestContext.RequestID

	if resp.StatusCode >= 500 {
		h.logger.Error("Lambda error response",
			zap.String("method", req.RequestContext.HTTP.Method),
			zap.String("path", req.RequestContext.HTTP.Path),
			zap.String("request_id", req.RequestContext.RequestID),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", resp.Body),
		)
	}

	return resp, err
}

// settle waits for queued mutations, bounded by the invocation deadline.
func (h *handler) settle(ctx context.Context, requestID string) {
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, deadline.Add(-settleMargin))
		defer cancel()
	}
	if err := h.store.Settle(ctx); err != nil {
		fields := []zap.Field{zap.String("request_id", requestID), zap.Error(err)}
		for _, kind := range domain.Kinds() {
			if n := h.store.Pending(kind); n > 0 {
				fields = append(fields, zap.Int(kind.String(), n))
			}
		}
		h.logger.Warn("Mutations still pending when invocation ended", fields...)
	}
}

func setup() *handler {
	started := time.Now()

	// Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	logger := appLogger.Logger

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.BootstrapTimeout)
	defer cancel()

	// Initialize dependency container
	container, err := di.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	if err := container.Bootstrap(ctx); err != nil {
		logger.Warn("Bootstrap incomplete, serving seed content", zap.Error(err))
	}

	// The proxy adapter needs the concrete mux.
	router, ok := container.GetRouter().(*chi.Mux)
	if !ok {
		log.Fatal("Failed to cast handler to chi.Mux")
	}

	logger.Info("Lambda cold start completed",
		zap.Duration("duration", time.Since(started)),
		zap.String("remote_driver", cfg.RemoteDriver()),
		zap.String("media_driver", cfg.MediaDriver()),
	)
	return newHandler(router, container.Store, logger, started)
}

// main is the entry point for the Lambda function
func main() {
	lambda.Start(setup().Handle)
}
