package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Group metrics
	GroupsCreated  prometheus.Counter
	MembersJoined  prometheus.Counter
	MembersRemoved prometheus.Counter

	// Expense metrics
	ExpensesCreated *prometheus.CounterVec
	ExpensesDeleted prometheus.Counter
	ExpenseAmount   prometheus.Histogram

	// Settlement metrics
	SettlementsRecorded prometheus.Counter
	SettlementsRejected prometheus.Counter
	SettlementAmount    prometheus.Histogram

	// Engine metrics
	BalanceComputations prometheus.Counter
	BalanceCacheHits    prometheus.Counter
	BalanceCacheMisses  prometheus.Counter
	SimplifiedDebtCount prometheus.Histogram
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		GroupsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evenup_groups_created_total",
			Help: "Total number of groups created",
		}),
		MembersJoined: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evenup_members_joined_total",
			Help: "Total number of members who joined a group",
		}),
		MembersRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evenup_members_removed_total",
			Help: "Total number of members removed from groups",
		}),

		ExpensesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evenup_expenses_created_total",
				Help: "Total number of expenses created by split type",
			},
			[]string{"split_type"},
		),
		ExpensesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evenup_expenses_deleted_total",
			Help: "Total number of expenses deleted",
		}),
		ExpenseAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "evenup_expense_amount",
			Help:    "Expense amounts",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 10000},
		}),

		SettlementsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evenup_settlements_recorded_total",
			Help: "Total number of settlements recorded",
		}),
		SettlementsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evenup_settlements_rejected_total",
			Help: "Total number of settlements rejected by validation",
		}),
		SettlementAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "evenup_settlement_amount",
			Help:    "Settlement amounts",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 10000},
		}),

		BalanceComputations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evenup_balance_computations_total",
			Help: "Total number of balance map computations",
		}),
		BalanceCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evenup_balance_cache_hits_total",
			Help: "Total number of balance cache hits",
		}),
		BalanceCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evenup_balance_cache_misses_total",
			Help: "Total number of balance cache misses",
		}),
		SimplifiedDebtCount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "evenup_simplified_debt_count",
			Help:    "Number of payments produced per debt simplification",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
	}
}
