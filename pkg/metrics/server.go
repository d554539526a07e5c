package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	klog "k8s.io/klog/v2"
)

// Handler returns the HTTP handler serving the metrics of the global
// registry in Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer(), promhttp.HandlerOpts{
		// a single failing collector must not suppress all other metrics
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// StartServer starts the HTTP server providing the metrics for scraping.
func StartServer(port uint16) {
	go func() {
		serveMux := http.NewServeMux()
		serveMux.Handle("/metrics", Handler())

		for {
			err := http.ListenAndServe(fmt.Sprintf(":%d", port), serveMux)
			if err == http.ErrServerClosed {
				break
			}
			if err != nil {
				klog.ErrorS(err, "metrics server terminated unexpectedly and will be restarted")
			}
		}
	}()
}
