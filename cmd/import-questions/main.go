package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/marinai/marinai-backend/internal/config"
	"github.com/marinai/marinai-backend/internal/database"
	"github.com/marinai/marinai-backend/internal/importer"
	"github.com/marinai/marinai-backend/internal/logger"
	"github.com/marinai/marinai-backend/internal/repository"
	"github.com/marinai/marinai-backend/internal/service"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()

	var root string
	flag.StringVar(&root, "dir", cfg.MediaBasePath, "Root folder holding {license}/{set}/{set}.json files")
	flag.Parse()

	log, _ := logger.Setup(cfg.LogLevel, cfg.LogFormat, "")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	examSetRepo := repository.NewExamSetRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)

	fsys := os.DirFS(root)
	files, missing, err := importer.Find(fsys)
	if err != nil {
		log.Fatal().Err(err).Str("dir", root).Msg("Failed to list exam folders")
	}
	for _, name := range missing {
		log.Warn().Str("file", name).Msg("Question file missing")
	}

	fmt.Printf("=== Importing %d exam sets from %s ===\n", len(files), root)

	imported, total := 0, 0
	for _, name := range files {
		n, err := importFile(ctx, fsys, name, examSetRepo, questionRepo, log)
		if err != nil {
			log.Error().Err(err).Str("file", name).Msg("Import failed")
			continue
		}
		imported++
		total += n
	}

	// Cached CBT pools no longer match the stored questions.
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, CBT pools expire on their own")
	} else {
		defer rdb.Close()
		removed, err := service.NewRedisPoolCache(rdb, cfg.PoolCacheTTL).Flush(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to flush CBT pools")
		} else {
			log.Info().Int("removed", removed).Msg("CBT pools flushed")
		}
	}

	fmt.Printf("\nImport completed! %d/%d exam sets, %d questions.\n", imported, len(files), total)
}

func importFile(
	ctx context.Context,
	fsys fs.FS,
	name string,
	examSets *repository.ExamSetRepository,
	questions *repository.QuestionRepository,
	log zerolog.Logger,
) (int, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	set, qs, err := importer.Parse(f)
	if err != nil {
		return 0, err
	}

	if err := examSets.Upsert(ctx, &set); err != nil {
		return 0, fmt.Errorf("upsert exam set: %w", err)
	}
	n, err := questions.ReplaceForExamSet(ctx, set.ID, qs)
	if err != nil {
		return 0, err
	}

	log.Info().
		Int("exam_set_id", set.ID).
		Str("label", set.Label()).
		Int64("questions", n).
		Msg("Exam set imported")
	return int(n), nil
}
