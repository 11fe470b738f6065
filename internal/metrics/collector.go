package metrics

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// SystemCollector samples process level metrics on an interval.
type SystemCollector struct {
	metrics   *Metrics
	logger    *zap.Logger
	startTime time.Time
	ticker    *time.Ticker
	stopCh    chan struct{}
}

func NewSystemCollector(metrics *Metrics, logger *zap.Logger) *SystemCollector {
	return &SystemCollector{
		metrics:   metrics,
		logger:    logger,
		startTime: time.Now(),
		stopCh:    make(chan struct{}),
	}
}

func (sc *SystemCollector) Start(interval time.Duration, version string) {
	sc.ticker = time.NewTicker(interval)
	sc.metrics.SetServiceVersion(version, "unknown", sc.startTime.Format("2006-01-02"))

	go sc.collectLoop()
	sc.logger.Info("System metrics collector started", zap.Duration("interval", interval))
}

func (sc *SystemCollector) Stop() {
	if sc.ticker != nil {
		sc.ticker.Stop()
	}
	close(sc.stopCh)
	sc.logger.Info("System metrics collector stopped")
}

func (sc *SystemCollector) Uptime() time.Duration {
	return time.Since(sc.startTime)
}

func (sc *SystemCollector) collectLoop() {
	sc.collect()

	for {
		select {
		case <-sc.ticker.C:
			sc.collect()
		case <-sc.stopCh:
			return
		}
	}
}

func (sc *SystemCollector) collect() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	uptime := sc.Uptime()
	sc.metrics.UpdateSystemMetrics(uptime, &memStats)

	sc.logger.Debug("System metrics snapshot",
		zap.Duration("uptime", uptime),
		zap.Int("goroutines", runtime.NumGoroutine()),
		zap.Uint64("allocMB", memStats.Alloc/1024/1024),
		zap.Uint32("gcCount", memStats.NumGC),
	)
}
