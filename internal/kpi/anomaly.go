package kpi

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"pulseboard/domain/table"
)

// Anomaly flags a time bucket whose total sits unusually far from the series
// mean.
type Anomaly struct {
	Key    string  `json:"key"`
	Value  float64 `json:"value"`
	Z      float64 `json:"z"`
	PValue float64 `json:"p_value"`
}

// DefaultZThreshold matches the usual two-sigma screening for daily revenue.
const DefaultZThreshold = 2.0

// DetectAnomalies runs a z-score screen over a bucketized series. Series
// shorter than three points carry too little signal and return nothing.
func DetectAnomalies(series table.TimeSeries, zThreshold float64) []Anomaly {
	if len(series) < 3 {
		return nil
	}
	if zThreshold <= 0 {
		zThreshold = DefaultZThreshold
	}

	data := make(stats.Float64Data, len(series))
	for i, p := range series {
		data[i] = p.Total
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return nil
	}
	stdDev, err := stats.StandardDeviation(data)
	if err != nil || stdDev == 0 {
		return nil
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1}

	var anomalies []Anomaly
	for _, p := range series {
		z := (p.Total - mean) / stdDev
		if z < -zThreshold || z > zThreshold {
			tail := z
			if tail < 0 {
				tail = -tail
			}
			anomalies = append(anomalies, Anomaly{
				Key:    p.Key,
				Value:  p.Total,
				Z:      z,
				PValue: 2 * normal.Survival(tail),
			})
		}
	}
	return anomalies
}
