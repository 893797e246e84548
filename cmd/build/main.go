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
	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/store/admin"
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

	writer, err := admin.NewWriter(admin.NewWriterParams{
		OutputDir: cfg.OutputDir,
		Logger:    log,
	})
	if err != nil {
		log.Fatal("Could not create import writer", "err", err)
	}

	if err := writer.WriteNodes(ctx, adapter.Nodes()); err != nil {
		log.Fatal("Could not write node files", "err", err)
	}
	if err := writer.WriteEdges(ctx, adapter.Edges()); err != nil {
		log.Fatal("Could not write edge files", "err", err)
	}
	if _, err := writer.WriteImportCall(); err != nil {
		log.Fatal("Could not write import call script", "err", err)
	}

	log.Info("Import build complete", "dir", writer.RunDir())
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
