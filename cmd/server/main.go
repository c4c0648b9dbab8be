package main

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pdfchat/internal/chunker"
	"pdfchat/internal/config"
	"pdfchat/internal/index"
	"pdfchat/internal/ingest"
	"pdfchat/internal/llm"
	"pdfchat/internal/rag"
	"pdfchat/internal/server"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	flag.Parse()

	// Credentials come from the environment, optionally seeded by a
	// local .env file.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			log.Error().Str("field", e.Field).Msg(e.Message)
		}
		log.Fatal().Msg("Invalid configuration")
	}

	store, err := index.NewPersistent(cfg.IndexDir())
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening vector index")
	}

	embedder, err := llm.NewEmbedder(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	chatModel, err := llm.NewChatModel(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing chat model")
	}

	pipeline := rag.NewPipeline(embedder, store, chatModel, cfg)
	splitter := chunker.New(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)

	srv := server.New(cfg, ingest.Extractor{}, splitter, pipeline)

	log.Info().Str("addr", cfg.Server.Addr).Str("index", cfg.IndexDir()).Msg("Starting server")
	if err := srv.Router().Run(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("Server exited")
	}
}
