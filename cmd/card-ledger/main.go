package main

import (
	// Go Internal Packages
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	// Local Packages
	config "card-ledger/config"
	mongodb "card-ledger/repositories/mongodb"
	redis "card-ledger/repositories/redis"
	server "card-ledger/server"
	ingestion "card-ledger/services/ingestion"
	reports "card-ledger/services/reports"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	_ "github.com/jsternberg/zap-logfmt"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"go.uber.org/zap"
)

// LoadConfig loads the default configuration and overrides it with the config file
// specified by the path defined in the config flag
func LoadConfig() *koanf.Koanf {
	configPathMsg := "Path to the application config file"
	configPath := kingpin.Flag("config", configPathMsg).Short('c').Default("config.yml").String()

	kingpin.Parse()
	k := koanf.New(".")
	_ = k.Load(rawbytes.Provider(config.DefaultConfig), yaml.Parser())
	if *configPath != "" {
		_ = k.Load(file.Provider(*configPath), yaml.Parser())
	}
	return k
}

func main() {
	k := LoadConfig()
	appKonf := config.Config{}

	// Unmarshalling config into struct
	err := k.Unmarshal("", &appKonf)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Validate the config loaded
	if err = appKonf.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if !appKonf.IsProdMode {
		k.Print()
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	_ = cfg.Level.UnmarshalText([]byte(k.String("logger.level")))
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = appKonf.Application
	cfg.OutputPaths = []string{"stdout"}
	logger, _ := cfg.Build()
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis Connection (the ledger store)
	redisClient, err := redis.Connect(ctx, appKonf.Redis.URI, appKonf.Redis.Password)
	if err != nil {
		logger.Fatal("cannot create redis client", zap.Error(err))
	}

	ledgerRepo := redis.NewLedgerRepository(redisClient, logger)

	// Mongo Connection (optional upload audit trail)
	var uploadsRepo ingestion.UploadsRepository
	if appKonf.Mongo.URI != "" {
		mongoClient, err := mongodb.Connect(ctx, appKonf.Mongo.URI)
		if err != nil {
			logger.Fatal("cannot create mongo client", zap.Error(err))
		}
		uploadsRepo = mongodb.NewUploadsRepository(mongoClient)
	} else {
		logger.Info("upload audit trail disabled, no mongo uri configured")
	}

	processor := ingestion.NewProcessor(logger, ledgerRepo, uploadsRepo, appKonf.Server.UploadsDir)
	builder := reports.NewBuilder(logger, ledgerRepo)

	srv := server.New(server.Config{
		Port:           appKonf.Server.Port,
		MaxUploadBytes: appKonf.Server.MaxUploadBytes,
	}, logger, processor, builder)

	if err := srv.Serve(ctx); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
