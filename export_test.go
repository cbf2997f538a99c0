package tracefetch

import "time"

var (
	ExtractRunMetadata = extractRunMetadata
	CollectThreadIDs   = collectThreadIDs
	BuildTraceQuery    = buildTraceQuery
	BuildThreadQuery   = buildThreadQuery
)

type RunQuery = runQuery

type TimeWindow = timeWindow

func (w TimeWindow) StartTime(now func() time.Time) (string, error) {
	return w.startTime(now)
}
