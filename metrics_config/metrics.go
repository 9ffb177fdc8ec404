package metrics_config

import (
	"fmt"
	"net/http"
	"os"

	"github.com/AcalaNetwork/bodhi.js-sub002/log"
	"github.com/prometheus/client_golang/prometheus"
	metrics "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

const namespace = "bodhi"

// enabled decides whether collectors are registered. Collectors are always
// returned so callers never need nil checks; when disabled they just count
// into nothing anyone scrapes.
var enabled = true

// Registry holds every collector created through this package.
var Registry = prometheus.NewRegistry()

func EnableMetrics() {
	enabled = true
}

func DisableMetrics() {
	enabled = false
}

func MetricsEnabled() bool {
	return enabled
}

func register(c prometheus.Collector) {
	if !enabled {
		return
	}
	if err := Registry.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			log.Global.WithField("err", err).Error("Failed to register metric")
		}
	}
}

// StartProcessMetrics serves the registry on /metrics at the given port,
// refreshing process gauges on every scrape.
func StartProcessMetrics(port int) {
	// Short circuit if the metrics system is disabled
	if !enabled {
		return
	}

	// System usage metrics.
	gaugesMap := make(map[string]*prometheus.GaugeVec)

	gaugesMap["cpu"] = defineCPUMetrics()
	gaugesMap["mem"] = defineMemMetrics()

	go initializeHttpMetrics(gaugesMap, port)
}

func NewGaugeVec(name string, help string, labels ...string) *prometheus.GaugeVec {
	if len(labels) == 0 {
		labels = []string{"label"}
	}
	gaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
	register(gaugeVec)
	return gaugeVec
}

func NewCounterVec(name string, help string, labels ...string) *prometheus.CounterVec {
	if len(labels) == 0 {
		labels = []string{"label"}
	}
	counterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
	register(counterVec)
	return counterVec
}

func NewCounter(name string, help string) prometheus.Counter {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
	register(counter)
	return counter
}

func initializeHttpMetrics(metricsMap map[string]*prometheus.GaugeVec, port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.InstrumentMetricHandler(
		Registry, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			updateMetrics(metricsMap)
			promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
		}),
	))
	addr := fmt.Sprintf(":%d", port)
	log.Global.WithField("addr", addr).Info("Serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Global.WithField("err", err).Error("Metrics server stopped")
	}
}

func defineCPUMetrics() *metrics.GaugeVec {
	return NewGaugeVec("cpu_usage", "The average CPU usage over the last second", "cpu_type")
}

func defineMemMetrics() *metrics.GaugeVec {
	return NewGaugeVec("mem_usage", "The current memory usage", "mem_type")
}

func updateMetrics(metricsMap map[string]*prometheus.GaugeVec) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		log.Global.WithField("err", err).Error("Failed to get process")
		return
	}

	collectCPUMetrics(metricsMap["cpu"], proc)
	collectMemoryMetrics(metricsMap["mem"], proc)
}

func collectCPUMetrics(cpuGaugeVec *metrics.GaugeVec, proc *process.Process) {
	percent, err := proc.CPUPercent()
	if err != nil {
		log.Global.WithField("err", err).Error("Failed to get CPU percent")
	} else {
		cpuGaugeVec.WithLabelValues("Bodhi").Set(percent)
	}

	usage, err := cpu.Percent(0, false)
	if err != nil || len(usage) == 0 {
		log.Global.WithField("err", err).Error("Failed to get CPU percent")
	} else {
		cpuGaugeVec.WithLabelValues("System").Set(usage[0])
	}

	threads, err := proc.NumThreads()
	if err != nil {
		log.Global.WithField("err", err).Error("Failed to get threads")
	} else {
		cpuGaugeVec.WithLabelValues("Threads").Set(float64(threads))
	}
}

func collectMemoryMetrics(memGaugeVec *metrics.GaugeVec, proc *process.Process) {
	memInfo, err := proc.MemoryInfo()
	if err != nil {
		log.Global.WithField("err", err).Error("Error while getting memory info")
	} else {
		memGaugeVec.WithLabelValues("Used").Set(float64(memInfo.RSS))
		memGaugeVec.WithLabelValues("Swap").Set(float64(memInfo.Swap))
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Global.WithField("err", err).Error("Error while getting system memory")
	} else {
		memGaugeVec.WithLabelValues("SystemUsedPercent").Set(vm.UsedPercent)
	}
}
