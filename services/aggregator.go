package services

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"employee-stats/models"
	"employee-stats/utils"
)

// Aggregator counts normalised records per dimension.
type Aggregator struct {
	normalizer *Normalizer
	logger     *utils.Logger
}

// NewAggregator creates an Aggregator that buckets with normalizer.
func NewAggregator(normalizer *Normalizer, logger *utils.Logger) *Aggregator {
	return &Aggregator{normalizer: normalizer, logger: logger}
}

// Generate normalises records and returns one distribution per dimension.
// It returns nil for an empty record set.
func (a *Aggregator) Generate(records []models.EmployeeRecord) map[models.Dimension]models.Distribution {
	if len(records) == 0 {
		return nil
	}

	normalized := a.normalizer.NormalizeAll(records)
	counters := make(map[models.Dimension]*labelCounter, len(models.Dimensions))
	for _, d := range models.Dimensions {
		counters[d] = newLabelCounter()
	}

	for _, rec := range normalized {
		counters[models.DimensionDepartment].add(a.normalizer.DepartmentBucket(rec))
		counters[models.DimensionSite].add(rec.Site)
		counters[models.DimensionDirectorate].add(rec.Directorate)
		counters[models.DimensionGrouping].add(rec.Grouping)
	}

	total := len(normalized)
	out := make(map[models.Dimension]models.Distribution, len(counters))
	for d, c := range counters {
		out[d] = c.distribution(total)
		a.checkSum(d, out[d])
	}
	return out
}

// checkSum logs when a dimension's percentages drift from 100 beyond rounding.
func (a *Aggregator) checkSum(d models.Dimension, dist models.Distribution) {
	percents := make(stats.Float64Data, len(dist))
	for i, e := range dist {
		percents[i] = e.Percent
	}
	sum, err := percents.Sum()
	if err != nil {
		return
	}
	if tolerance := 0.01 * float64(len(dist)); sum < 100-tolerance || sum > 100+tolerance {
		a.logger.Warn("[aggregator] %s percentages sum to %.2f", d, sum)
	}
}

// labelCounter counts labels and remembers first-seen order.
type labelCounter struct {
	counts map[string]int
	order  []string
}

func newLabelCounter() *labelCounter {
	return &labelCounter{counts: make(map[string]int)}
}

func (c *labelCounter) add(label string) {
	if _, seen := c.counts[label]; !seen {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

func (c *labelCounter) distribution(total int) models.Distribution {
	dist := make(models.Distribution, 0, len(c.order))
	for _, label := range c.order {
		count := c.counts[label]
		pct := float64(count) / float64(total) * 100
		rounded, err := stats.Round(pct, 2)
		if err != nil {
			rounded = pct
		}
		dist = append(dist, models.DistributionEntry{
			Label:      label,
			Count:      count,
			Percentage: fmt.Sprintf("%.2f%%", pct),
			Percent:    rounded,
		})
	}
	return dist
}
