package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"pts_hotel/internal/adapters/observability"
	redisad "pts_hotel/internal/adapters/redis"
	"pts_hotel/internal/app"
	"pts_hotel/internal/domain"
	"pts_hotel/internal/shared"
	mysqlrepo "pts_hotel/internal/storage/mysql"
)

type seedRoom struct {
	RoomNumber string  `json:"roomNumber"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
}

// Bulk-registers rooms from a JSON file so a fresh deployment starts with
// its inventory in place. Duplicates are logged and skipped.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.SeedFile).Msg("read seed file failed")
	}
	var seeds []seedRoom
	if err := json.Unmarshal(raw, &seeds); err != nil {
		log.Fatal().Err(err).Msg("parse seed file failed")
	}
	log.Info().Int("rooms", len(seeds)).Int("workers", cfg.SeedWorkers).Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	rooms := app.NewRoomService(repo, cache, cfg.CacheTTL)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, s := range seeds {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func(s seedRoom) {
			defer wg.Done()
			defer sem.Release(1)

			room, err := rooms.Register(ctx, s.RoomNumber, domain.RoomType(s.Type), s.Price)
			if err != nil {
				log.Warn().Str("room", s.RoomNumber).Err(err).Msg("seed failed")
				return
			}
			log.Info().Str("room", room.RoomNumber).Int64("id", room.ID).Msg("seed ok")
		}(s)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
