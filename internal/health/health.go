package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Checker struct {
	db *pgxpool.Pool
}

type Status struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewChecker(db *pgxpool.Pool) *Checker {
	return &Checker{db: db}
}

func (c *Checker) Check(ctx context.Context) Status {
	dbHealth := c.checkDatabase(ctx)

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return Status{
		Status:   status,
		Database: dbHealth,
	}
}

func (c *Checker) checkDatabase(ctx context.Context) DatabaseHealth {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := c.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	status := "healthy"
	if err != nil {
		status = "unhealthy"
	}
	return DatabaseHealth{
		Status:       status,
		ResponseTime: responseTime,
	}
}
