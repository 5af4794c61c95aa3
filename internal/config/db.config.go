package config

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectDB(databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		log.Printf("[DB] failed to parse config: %v", err)
		return nil, err
	}

	poolCfg.MaxConns = 20
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Printf("[DB] failed to create pool: %v", err)
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		log.Printf("[DB] failed to ping database: %v", err)
		return nil, err
	}

	log.Println("[DB] connected")
	return pool, nil
}
