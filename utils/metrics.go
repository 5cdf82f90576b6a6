package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BookingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rentify",
		Name:      "booking_transitions_total",
		Help:      "Booking lifecycle calls by event and outcome.",
	}, []string{"event", "outcome"})

	BookingCleanups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rentify",
		Name:      "booking_cleanup_total",
		Help:      "Abandoned checkout checks by result.",
	}, []string{"result"})

	WalletMovements = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rentify",
		Name:      "wallet_movements_total",
		Help:      "Approved wallet transactions by kind.",
	}, []string{"kind"})

	NotificationsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rentify",
		Name:      "notifications_total",
		Help:      "Notification hand-offs by type and outcome.",
	}, []string{"type", "outcome"})
)

// Outcome labels a metric by whether err is nil or which business kind it carries.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := KindOf(err); kind != "" {
		return string(kind)
	}
	return "error"
}

// MetricsHandler exposes the default registry for scraping.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
