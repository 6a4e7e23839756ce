package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/siswadata/rapor-backend/internal/config"
	"github.com/siswadata/rapor-backend/internal/database"
	"github.com/siswadata/rapor-backend/internal/logger"
	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/siswadata/rapor-backend/internal/repository"
	"github.com/siswadata/rapor-backend/internal/service"
	"github.com/siswadata/rapor-backend/internal/store"
)

// import-students merges a roster JSON file into the stored roster using
// the same by-ID merge rule as the HTTP import endpoint.
//
// The file holds an array of {id?, name, nis, class_code, gender} rows.
func main() {
	var file string
	flag.StringVar(&file, "file", "students.json", "Path to roster JSON file")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var kv store.Store
	if cfg.StoreBackend == "redis" {
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		kv = store.NewRedisStore(rdb)
	} else {
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		kv = store.NewPostgresStore(pool)
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("Failed to read roster file")
	}

	var rows []model.ImportStudentRequest
	if err := json.Unmarshal(raw, &rows); err != nil {
		log.Fatal().Err(err).Msg("Roster file is not valid JSON")
	}
	if len(rows) == 0 {
		log.Fatal().Msg("Roster file holds no rows")
	}

	studentRepo := repository.NewStudentRepository(kv)
	gradeRepo := repository.NewGradeRepository(kv)
	attendanceRepo := repository.NewAttendanceRepository(kv)
	importService := service.NewImportService(studentRepo, gradeRepo, attendanceRepo, log)

	merged, err := importService.ImportStudents(ctx, rows)
	if err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}

	fmt.Printf("Imported %d rows; roster now holds %d students\n", len(rows), len(merged))
}
