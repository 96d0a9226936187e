package broadphase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	dimensionLabel = "dimension"
	kindLabel      = "kind"

	dimension3D = "3d"
	dimension2D = "2d"

	queryKindShape = "shape"
	queryKindRay   = "ray"
)

var (
	broadphaseShapeCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "broadphase_shape_count",
		Help: "The number of shapes indexed in the broadphase.",
	}, []string{dimensionLabel})

	broadphaseCellCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "broadphase_cell_count",
		Help: "The number of non-empty grid cells.",
	}, []string{dimensionLabel})

	broadphaseUpdateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "broadphase_update_total",
		Help: "The total number of index mutations.",
	}, []string{dimensionLabel})

	broadphaseQueryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "broadphase_query_total",
		Help: "The total number of candidate queries.",
	}, []string{dimensionLabel, kindLabel})
)

func instrumentIndexSize(dimension string, shapes, cells int) {
	labels := prometheus.Labels{dimensionLabel: dimension}
	broadphaseShapeCount.With(labels).Set(float64(shapes))
	broadphaseCellCount.With(labels).Set(float64(cells))
}

func instrumentUpdate(dimension string) {
	broadphaseUpdateTotal.
		With(prometheus.Labels{dimensionLabel: dimension}).
		Inc()
}

func instrumentQuery(dimension, kind string) {
	broadphaseQueryTotal.
		With(prometheus.Labels{
			dimensionLabel: dimension,
			kindLabel:      kind,
		}).
		Inc()
}
