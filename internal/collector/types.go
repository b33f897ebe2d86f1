package collector

// Metrics is one reading of the host signals the score is derived from.
// Every field holds a usable value even when its source failed.
type Metrics struct {
	CPULoad          float64        `json:"cpu_load"`
	MemoryPercent    int            `json:"memory_percent"`
	DiskPercent      int            `json:"disk_percent"`
	AuxServiceActive bool           `json:"auxiliary_service_active"`
	Details          map[string]any `json:"details"`
	CollectedAt      string         `json:"collected_at"`
}

// Detail keys recorded next to the metrics.
const (
	DetailMemoryUsedMB  = "memory_used_mb"
	DetailMemoryTotalMB = "memory_total_mb"
	DetailErrorMemory   = "error_mem"
	DetailErrorLoad     = "error_load"
	DetailErrorDisk     = "error_disk"
)
