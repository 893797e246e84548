package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Paco-Danes/NeurodevKnowledgeGraph/internal/config"
	"github.com/Paco-Danes/NeurodevKnowledgeGraph/internal/util"
	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/graph"
	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/loader"
	csvloader "github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/loader/csv"
	ioloader "github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/loader/io"
	parquetloader "github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/loader/parquet"
	s3loader "github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/loader/s3"
	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/logger"
	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/logger/console"
	neo4jstore "github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/store/neo4j"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: util.GetEnvBool("DEBUG", false),
	})
	log := logger.New(consoleLogger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Could not load configuration", "err", err)
	}

	humanFile, mouseFile, err := buildTableFiles(ctx, cfg)
	if err != nil {
		log.Fatal("Could not create table loaders", "err", err)
	}

	adapter := graph.NewAdapter(graph.NewAdapterParams{
		HumanFile:         humanFile,
		MouseFile:         mouseFile,
		SkipNullEndpoints: cfg.SkipNullEndpoints,
		Logger:            log,
	})

	if err := adapter.Load(ctx); err != nil {
		log.Fatal("Could not load interaction tables", "err", err)
	}

	writer, err := neo4jstore.NewWriter(ctx, neo4jstore.NewWriterParams{
		URI:       cfg.Neo4jURI,
		Username:  cfg.Neo4jUser,
		Password:  cfg.Neo4jPassword,
		Database:  cfg.Neo4jDatabase,
		BatchSize: cfg.Neo4jBatchSize,
		Logger:    log,
	})
	if err != nil {
		log.Fatal("Could not connect to neo4j", "err", err)
	}
	defer writer.Close(ctx)

	if cfg.Neo4jReset {
		log.Warn("Resetting graph database before ingest")
		if err := writer.Reset(ctx); err != nil {
			log.Fatal("Could not reset graph database", "err", err)
		}
	}

	if err := writer.WriteNodes(ctx, adapter.Nodes()); err != nil {
		log.Fatal("Could not write nodes", "err", err)
	}
	if err := writer.WriteEdges(ctx, adapter.Edges()); err != nil {
		log.Fatal("Could not write edges", "err", err)
	}

	log.Info("Graph ingest complete", "database", cfg.Neo4jDatabase)
}

func buildTableFiles(ctx context.Context, cfg *config.Config) (loader.TableFile, loader.TableFile, error) {
	var bytes loader.ByteLoader
	switch cfg.TableSource {
	case "s3":
		s3Loader, err := s3loader.NewS3ByteLoader(ctx, s3loader.NewS3ByteLoaderParams{
			Bucket:    cfg.AWSBucket,
			Endpoint:  cfg.AWSEndpoint,
			Region:    cfg.AWSRegion,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
		})
		if err != nil {
			return loader.TableFile{}, loader.TableFile{}, err
		}
		bytes = s3Loader
	default:
		bytes = ioloader.NewIOByteLoader()
	}

	var tables loader.TableLoader
	newFile := loader.NewCSVTableFile
	if cfg.TableFormat == string(loader.TableFormatParquet) {
		tables = parquetloader.NewParquetTableLoader(bytes)
		newFile = loader.NewParquetTableFile
	} else {
		tables = csvloader.NewCSVTableLoader(bytes)
	}

	human := newFile(loader.NewTableFileParams{
		ID:       graph.SpeciesHuman,
		FilePath: cfg.HumanTablePath,
		Loader:   tables,
	})
	mouse := newFile(loader.NewTableFileParams{
		ID:       graph.SpeciesMouse,
		FilePath: cfg.MouseTablePath,
		Loader:   tables,
	})

	return human, mouse, nil
}
