package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/kataras/go-events"
	log "github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdk_trace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/zzprice/optionrisk/src/eventmodels"
	"github.com/zzprice/optionrisk/src/eventpubsub"
	"github.com/zzprice/optionrisk/src/pricing"
	"github.com/zzprice/optionrisk/src/refdata"
	"github.com/zzprice/optionrisk/src/riskengine/models"
	riskrouter "github.com/zzprice/optionrisk/src/riskengine/router"
	"github.com/zzprice/optionrisk/src/riskengine/services"
	"github.com/zzprice/optionrisk/src/utils"
)

func main() {
	run()
}

// setupOTelSDK bootstraps the OpenTelemetry pipeline.
// If it does not return an error, make sure to call shutdown for proper cleanup.
func setupOTelSDK(ctx context.Context) (shutdown func(context.Context) error, err error) {
	var shutdownFuncs []func(context.Context) error

	// shutdown calls cleanup functions registered via shutdownFuncs.
	// The errors from the calls are joined.
	// Each registered cleanup will be invoked once.
	shutdown = func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		shutdownFuncs = nil
		return err
	}

	// handleErr calls shutdown for cleanup and makes sure that all errors are returned.
	handleErr := func(inErr error) {
		err = errors.Join(inErr, shutdown(ctx))
	}

	prop := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
	otel.SetTextMapPropagator(prop)

	traceExporter, err := otlptrace.New(ctx, otlptracehttp.NewClient())
	if err != nil {
		handleErr(err)
		return
	}

	res, err := resource.New(ctx, resource.WithAttributes(attribute.String("service.name", "optionrisk")))
	if err != nil {
		handleErr(err)
		return
	}

	tracerProvider := sdk_trace.NewTracerProvider(
		sdk_trace.WithBatcher(traceExporter),
		sdk_trace.WithResource(res),
	)
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	otel.SetTracerProvider(tracerProvider)

	metricExporter, err := otlpmetrichttp.New(ctx)
	if err != nil {
		handleErr(err)
		return
	}

	meterProvider := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(metricExporter)))
	shutdownFuncs = append(shutdownFuncs, meterProvider.Shutdown)
	otel.SetMeterProvider(meterProvider)

	if err = runtime.Start(runtime.WithMinimumReadMemStatsInterval(time.Second)); err != nil {
		handleErr(err)
		return
	}

	return
}

func run() {
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	if err := utils.InitEnvironmentVariables(""); err != nil {
		log.Panic(err)
	}

	eventpubsub.Init()

	// set up logger
	log.SetOutput(os.Stdout)

	log.Infof("Log level set to %v", log.GetLevel())

	configPath, err := utils.GetEnv("RISK_CONFIG")
	if err != nil {
		log.Fatalf("$RISK_CONFIG not set: %v", err)
	}

	// Set up Telemetry
	log.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
		log.PanicLevel,
		log.FatalLevel,
		log.ErrorLevel,
		log.WarnLevel,
		log.InfoLevel,
	)))

	otelShutdown, err := setupOTelSDK(ctx)
	if err != nil {
		log.Fatalf("failed to setup otel sdk: %v", err)
	}

	// Handle shutdown properly so nothing leaks.
	defer func() {
		if shutdownErr := otelShutdown(context.Background()); shutdownErr != nil {
			log.Errorf("otel shutdown: %v", shutdownErr)
		}
	}()

	// Load config
	config, err := eventmodels.NewRiskConfigYAML(configPath)
	if err != nil {
		log.Fatalf("failed to load risk config: %v", err)
	}

	port, err := utils.GetEnv("PORT")
	if err != nil {
		port = fmt.Sprintf("%d", config.HttpPort)
	}

	model, err := pricing.Get(config.PricingModel)
	if err != nil {
		log.Fatalf("failed to resolve pricing model: %v", err)
	}

	portfolio := models.NewPortfolio(config.Portfolio)
	riskService := services.NewRiskService(&wg, portfolio, time.Duration(config.AtmRefreshSeconds)*time.Second)

	events.On(services.EventRiskServiceStarted, func(payload ...interface{}) {
		log.Infof("risk service started: %v", payload)
	})

	events.On(services.EventRiskServiceStopped, func(payload ...interface{}) {
		log.Infof("risk service stopped: %v", payload)
	})

	events.On(services.EventUniverseLoaded, func(payload ...interface{}) {
		log.Infof("universe loaded: %v", payload)
	})

	events.On(services.EventChainActivated, func(payload ...interface{}) {
		log.Infof("chain activated: %v", payload)
	})

	if config.ContractsCSV != "" {
		contracts, loadErr := refdata.LoadContractsCSV(config.ContractsCSV)
		if loadErr != nil {
			log.Fatalf("failed to load contracts: %v", loadErr)
		}

		riskService.LoadUniverse(contracts)
	}

	if err := riskService.ActivateFromConfig(config, model); err != nil {
		log.Fatalf("failed to activate chains: %v", err)
	}

	if err := riskService.Start(ctx); err != nil {
		log.Fatalf("failed to start risk service: %v", err)
	}

	// Setup router
	router := mux.NewRouter()

	// Register pprof handlers
	pprofRouter := router.PathPrefix("/debug/pprof").Subrouter()
	pprofRouter.HandleFunc("/", http.HandlerFunc(pprof.Index))
	pprofRouter.HandleFunc("/cmdline", http.HandlerFunc(pprof.Cmdline))
	pprofRouter.HandleFunc("/profile", http.HandlerFunc(pprof.Profile))
	pprofRouter.HandleFunc("/symbol", http.HandlerFunc(pprof.Symbol))
	pprofRouter.HandleFunc("/trace", http.HandlerFunc(pprof.Trace))
	pprofRouter.Handle("/allocs", pprof.Handler("allocs"))
	pprofRouter.Handle("/block", pprof.Handler("block"))
	pprofRouter.Handle("/goroutine", pprof.Handler("goroutine"))
	pprofRouter.Handle("/heap", pprof.Handler("heap"))
	pprofRouter.Handle("/mutex", pprof.Handler("mutex"))
	pprofRouter.Handle("/threadcreate", pprof.Handler("threadcreate"))

	riskrouter.SetupHandler(router.PathPrefix("/risk").Subrouter(), riskService)

	// Setup web server
	srv := &http.Server{
		Handler: router,
		Addr:    fmt.Sprintf(":%s", port),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	// Start web server
	go func() {
		log.Infof("listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil {
			if err.Error() != "http: Server closed" {
				log.Fatalf("failed to start server: %v", err)
			}
		}
	}()

	// Create channel for shutdown signals.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	signal.Notify(stop, syscall.SIGTERM)

	log.Info("Main: init complete")

	// Block here until program is shut down
	<-stop

	cancel()

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Errorf("server shutdown: %v", err)
	}

	wg.Wait()

	log.Info("Main: gracefully stopped!")
}
