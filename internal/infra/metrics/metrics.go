package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_updates_total",
		Help: "Обработанные апдейты Telegram.",
	})

	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Созданные заявки.",
	})

	OrdersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_completed_total",
		Help: "Выполненные заявки.",
	})

	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_cancelled_total",
		Help: "Отменённые заявки.",
	})

	TransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transactions_total",
		Help: "Записи в журнале движений по типу (in/out).",
	}, []string{"type"})

	NotifyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifications_failed_total",
		Help: "Неотправленные уведомления (получатель заблокировал бота и т.п.).",
	})
)
