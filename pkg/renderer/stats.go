package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	RunID        string // Unique identifier of the render, used to correlate log lines
	TotalPixels  int    // Total number of pixels rendered
	TotalSamples int    // Total number of primary samples taken
	Tiles        int    // Number of tiles completed
	Trace        TraceStats

	Duration        time.Duration
	LuminanceMean   float64
	LuminanceStdDev float64
}

// Add accumulates the per-tile counters of other into the stats
func (rs *RenderStats) Add(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.Tiles += other.Tiles
	rs.Trace.Add(other.Trace)
}

// AverageSamples returns the mean number of samples per pixel
func (rs RenderStats) AverageSamples() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.TotalSamples) / float64(rs.TotalPixels)
}

// TotalRays returns the number of rays of every kind that were cast
func (rs RenderStats) TotalRays() int64 {
	return rs.Trace.PrimaryRays + rs.Trace.SecondaryRays + rs.Trace.ShadowRays
}
