package config

import "time"

// Host interfaces and tools hostcheckr reads from or acts upon. These are
// conventional names on the hosting panels hostcheckr targets and are not
// meant to be overridden.
const (
	RootMount = "/"

	DropCachesPath = "/proc/sys/vm/drop_caches"
	// 3 frees pagecache, dentries and inodes.
	DropCachesValue = "3"

	ProcessSearchBin = "pgrep"
	AuxServiceName   = "redis-server"

	DatabaseMaintenanceBin = "mysqlcheck"
	ProcessKillBin         = "killall"
	AppServerProcess       = "lsphp"
	CacheCLIBin            = "redis-cli"
)

const (
	LivenessTimeout   = 5 * time.Second
	SyncTimeout       = 10 * time.Second
	DropCachesTimeout = 5 * time.Second
	DatabaseTimeout   = 60 * time.Second
	AppServerTimeout  = 10 * time.Second
	CacheFlushTimeout = 5 * time.Second
	CollectionTimeout = 15 * time.Second
)
