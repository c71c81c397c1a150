package stats

import (
	"fmt"
	"time"

	"github.com/mmynk/lostfound/internal/models"
)

// Bucket is the width of one chart point.
type Bucket string

const (
	BucketDay  Bucket = "day"
	BucketWeek Bucket = "week"
)

// maxChartPoints bounds the series length so a distant since cannot blow up
// the response.
const maxChartPoints = 366

// ChartPoint counts items reported within [Start, Start+width).
type ChartPoint struct {
	Start int64 // Unix seconds, UTC bucket boundary
	Lost  int
	Found int
}

// ChartSeries buckets items by creation time into a contiguous series from
// the bucket containing since to the bucket containing now. Empty buckets are
// included with zero counts. Weeks start on Monday, UTC.
//
// Algorithm:
// - Align since down to its bucket boundary
// - Walk forward one bucket at a time until past now
// - Place each item at (created - start) / width, skipping those outside
func ChartSeries(items []models.Item, bucket Bucket, since, now time.Time) ([]ChartPoint, error) {
	var width time.Duration
	switch bucket {
	case BucketDay:
		width = 24 * time.Hour
	case BucketWeek:
		width = 7 * 24 * time.Hour
	default:
		return nil, fmt.Errorf("unknown bucket %q", bucket)
	}
	if now.Before(since) {
		return nil, fmt.Errorf("since %s is after now %s", since.Format(time.RFC3339), now.Format(time.RFC3339))
	}

	start := alignBucket(since.UTC(), bucket)
	n := int(now.UTC().Sub(start)/width) + 1
	if n > maxChartPoints {
		return nil, fmt.Errorf("range too large: %d %s buckets (max %d)", n, bucket, maxChartPoints)
	}

	points := make([]ChartPoint, n)
	for i := range points {
		points[i].Start = start.Add(time.Duration(i) * width).Unix()
	}

	for _, it := range items {
		created := time.Unix(it.CreatedAt, 0).UTC()
		if created.Before(start) || created.After(now) {
			continue
		}
		idx := int(created.Sub(start) / width)
		if idx >= n {
			continue
		}
		switch it.Kind {
		case models.KindLost:
			points[idx].Lost++
		case models.KindFound:
			points[idx].Found++
		}
	}
	return points, nil
}

func alignBucket(t time.Time, bucket Bucket) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if bucket == BucketWeek {
		// time.Weekday has Sunday as 0
		offset := (int(day.Weekday()) + 6) % 7
		day = day.AddDate(0, 0, -offset)
	}
	return day
}
