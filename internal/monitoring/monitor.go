package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Monitor exposes a point-in-time snapshot of host and database health
// for the admin monitoring screen.
type Monitor struct {
	db      *pgxpool.Pool
	started time.Time
}

type Snapshot struct {
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	MemoryUsed        string  `json:"memory_used"`
	MemoryTotal       string  `json:"memory_total"`
	DiskPercent       float64 `json:"disk_percent"`
	DiskUsed          string  `json:"disk_used"`
	DiskTotal         string  `json:"disk_total"`
	ActiveConnections int     `json:"active_connections"`
	DatabaseSize      string  `json:"database_size"`
	Uptime            string  `json:"uptime"`
}

func New(db *pgxpool.Pool) *Monitor {
	return &Monitor{db: db, started: time.Now()}
}

func (m *Monitor) Snapshot(ctx context.Context) Snapshot {
	snap := Snapshot{
		Uptime: time.Since(m.started).Round(time.Second).String(),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		snap.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		snap.MemoryPercent = vm.UsedPercent
		snap.MemoryUsed = formatBytes(vm.Used)
		snap.MemoryTotal = formatBytes(vm.Total)
	}
	if du, err := disk.Usage("/"); err == nil {
		snap.DiskPercent = du.UsedPercent
		snap.DiskUsed = formatBytes(du.Used)
		snap.DiskTotal = formatBytes(du.Total)
	}

	m.db.QueryRow(ctx,
		"SELECT count(*) FROM pg_stat_activity WHERE datname = current_database()").
		Scan(&snap.ActiveConnections)
	m.db.QueryRow(ctx,
		"SELECT pg_size_pretty(pg_database_size(current_database()))").
		Scan(&snap.DatabaseSize)

	return snap
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
