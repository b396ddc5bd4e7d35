package access

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// verdictTotal считает вынесенные вердикты по уровню проверки.
var verdictTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "access_verdicts_total",
	Help: "Количество вынесенных вердиктов доступа по уровню и вердикту.",
}, []string{"level", "verdict"})

// ObserveList учитывает вердикт уровня списка в метриках.
func ObserveList(d ListDecision) ListDecision {
	verdictTotal.WithLabelValues("list", string(d.Verdict)).Inc()
	return d
}

// ObserveItem учитывает вердикт уровня публикации в метриках.
func ObserveItem(v Verdict) Verdict {
	verdictTotal.WithLabelValues("item", string(v)).Inc()
	return v
}
