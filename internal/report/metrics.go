package report

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/marcohefti/singlish-lab/internal/codes"
	"github.com/marcohefti/singlish-lab/internal/schema"
	"github.com/marcohefti/singlish-lab/internal/store"
	"github.com/marcohefti/singlish-lab/internal/trace"
)

// TraceMetrics summarizes an attempt trace. In strict mode a missing or empty trace is an
// error; otherwise it yields zero metrics.
func TraceMetrics(tracePath string, strict bool) (schema.TraceMetricsV1, error) {
	var (
		metrics schema.TraceMetricsV1
		minTS   time.Time
		maxTS   time.Time
		durs    []int64
	)
	metrics.EventsByKind = map[string]int64{}
	metrics.StepFailuresByOp = map[string]int64{}

	err := store.ReadJSONL(tracePath, func(line []byte) error {
		var ev schema.TraceEventV1
		if err := json.Unmarshal(line, &ev); err != nil {
			if strict {
				return err
			}
			return nil
		}
		metrics.EventsTotal++
		metrics.EventsByKind[ev.Kind]++

		switch ev.Kind {
		case trace.KindStep:
			metrics.StepsTotal++
			durs = append(durs, ev.DurationMs)
			if ev.OK != nil && !*ev.OK {
				metrics.StepFailures++
				metrics.StepFailuresByOp[ev.Op]++
			}
		case trace.KindConsole:
			if ev.Op == "error" || ev.Op == "assert" {
				metrics.ConsoleErrors++
			}
		case trace.KindException:
			metrics.Exceptions++
		case trace.KindLoadingFailed:
			metrics.FailedRequests++
		case trace.KindResponse:
			if ev.Status >= 400 {
				metrics.HTTPErrors++
			}
		}

		if ts, err := time.Parse(time.RFC3339Nano, ev.TS); err == nil {
			if minTS.IsZero() || ts.Before(minTS) {
				minTS = ts
			}
			if maxTS.IsZero() || ts.After(maxTS) {
				maxTS = ts
			}
		} else if strict {
			return err
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			if strict {
				return schema.TraceMetricsV1{}, &CliError{Code: codes.MissingArtifact, Message: "missing " + tracePath}
			}
			return schema.TraceMetricsV1{}, nil
		}
		return schema.TraceMetricsV1{}, err
	}

	if metrics.EventsTotal == 0 {
		if strict {
			return schema.TraceMetricsV1{}, &CliError{Code: codes.MissingArtifact, Message: tracePath + " is empty"}
		}
		return schema.TraceMetricsV1{}, nil
	}

	if !minTS.IsZero() && !maxTS.IsZero() {
		metrics.WallTimeMs = maxTS.Sub(minTS).Milliseconds()
	}
	metrics.StepDurationMsTotal, metrics.StepDurationMsMin, metrics.StepDurationMsMax, metrics.StepDurationMsAvg, metrics.StepDurationMsP50, metrics.StepDurationMsP95 = summarizeDurations(durs)

	if len(metrics.EventsByKind) == 0 {
		metrics.EventsByKind = nil
	}
	if len(metrics.StepFailuresByOp) == 0 {
		metrics.StepFailuresByOp = nil
	}
	return metrics, nil
}

func summarizeDurations(durs []int64) (total, min, max, avg, p50, p95 int64) {
	if len(durs) == 0 {
		return 0, 0, 0, 0, 0, 0
	}
	min, max = durs[0], durs[0]
	for _, d := range durs {
		total += d
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	avg = total / int64(len(durs))

	sorted := append([]int64(nil), durs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	p50 = quantileMillis(sorted, 0.50)
	p95 = quantileMillis(sorted, 0.95)
	return total, min, max, avg, p50, p95
}

func quantileMillis(sorted []int64, q float64) int64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}

	// Linear interpolation between closest ranks.
	pos := q * float64(n-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	v := float64(sorted[lo]) + (float64(sorted[hi])-float64(sorted[lo]))*frac
	if v < 0 {
		return 0
	}
	return int64(v + 0.5)
}
