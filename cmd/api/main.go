package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"paymux/internal/client"
	"paymux/internal/conf"
	"paymux/internal/core"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultFrom = "2000-01-01T00:00:00Z"
	defaultTo   = "2100-01-01T00:00:00Z"
)

type api struct {
	pool client.IClientPool
}

func main() {
	cfg, err := conf.LoadApi()
	if err != nil {
		log.Fatal().Err(err).Msg("Error parsing envs")
	}
	setupLogging(cfg.LogLevel)

	pool, err := client.NewClientPool(cfg.ProcessorUdsPath, int32(cfg.ProcessorPoolSize))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build processor pool")
	}
	defer pool.Close()

	a := &api{pool}

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().Str("addr", addr).Msg("paymux api listening")
	if err := fasthttp.ListenAndServe(addr, a.requestHandler); err != nil {
		log.Fatal().Err(err).Msg("Error in ListenAndServe")
	}
}

func (a *api) requestHandler(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/payments":
		a.handlePostPayment(ctx)
	case "/payments-summary":
		a.handleGetPaymentsSummary(ctx)
	case "/purge-payments":
		a.handlePostPurgePayments(ctx)
	default:
		ctx.Error("Unsupported path", fasthttp.StatusNotFound)
	}
}

func (a *api) handlePostPayment(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.Error("Method not allowed", fasthttp.StatusMethodNotAllowed)
		return
	}

	payment := new(core.Payment)
	if err := json.Unmarshal(ctx.PostBody(), payment); err != nil {
		ctx.Error(fmt.Sprintf("Invalid request payload: %v", err), fasthttp.StatusBadRequest)
		return
	}
	if _, err := uuid.Parse(payment.CorrelationId); err != nil {
		ctx.Error("Invalid correlationId", fasthttp.StatusBadRequest)
		return
	}

	resource, err := a.pool.Acquire(ctx)
	if err != nil {
		ctx.Error("Processor unavailable", fasthttp.StatusInternalServerError)
		return
	}
	if err := resource.Value().PutPayment(payment); err != nil {
		resource.Destroy()
		ctx.Error("Processor unavailable", fasthttp.StatusInternalServerError)
		return
	}
	resource.Release()

	ctx.SetStatusCode(fasthttp.StatusCreated)
}

func (a *api) handleGetPaymentsSummary(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.Error("Method not allowed", fasthttp.StatusMethodNotAllowed)
		return
	}

	fromStr := string(ctx.QueryArgs().Peek("from"))
	toStr := string(ctx.QueryArgs().Peek("to"))
	if fromStr == "" {
		fromStr = defaultFrom
	}
	if toStr == "" {
		toStr = defaultTo
	}

	fromTime, err := time.Parse(time.RFC3339Nano, fromStr)
	if err != nil {
		ctx.Error("Invalid date format in 'from' query param", fasthttp.StatusBadRequest)
		return
	}
	toTime, err := time.Parse(time.RFC3339Nano, toStr)
	if err != nil {
		ctx.Error("Invalid date format in 'to' query param", fasthttp.StatusBadRequest)
		return
	}

	resource, err := a.pool.Acquire(ctx)
	if err != nil {
		ctx.Error("Processor unavailable", fasthttp.StatusInternalServerError)
		return
	}
	body, err := resource.Value().GetSummaryRange(fromTime, toTime)
	if err != nil {
		resource.Destroy()
		ctx.Error("Processor unavailable", fasthttp.StatusInternalServerError)
		return
	}
	resource.Release()

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(body)
}

func (a *api) handlePostPurgePayments(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.Error("Method not allowed", fasthttp.StatusMethodNotAllowed)
		return
	}

	resource, err := a.pool.Acquire(ctx)
	if err != nil {
		ctx.Error("Processor unavailable", fasthttp.StatusInternalServerError)
		return
	}
	if err := resource.Value().Purge(); err != nil {
		resource.Destroy()
		ctx.Error("Processor unavailable", fasthttp.StatusInternalServerError)
		return
	}
	resource.Release()

	ctx.SetStatusCode(fasthttp.StatusOK)
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
