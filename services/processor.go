package services

import (
	"context"

	"employee-stats/models"
	"employee-stats/utils"
)

// StatsProcessor runs parse → resolve → normalise → aggregate.
type StatsProcessor struct {
	parser     *Parser
	resolver   *Resolver
	aggregator *Aggregator
	logger     *utils.Logger
}

// NewStatsProcessor wires the pipeline stages together.
func NewStatsProcessor(parser *Parser, resolver *Resolver, aggregator *Aggregator, logger *utils.Logger) *StatsProcessor {
	return &StatsProcessor{
		parser:     parser,
		resolver:   resolver,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Process builds a fresh StatsResult from pasted text. It holds no state
// between calls; the bulk lookup is its only I/O.
func (p *StatsProcessor) Process(ctx context.Context, text string) (*models.StatsResult, error) {
	table, err := p.parser.Parse(text)
	if err != nil {
		return nil, err
	}
	parsedRows.Observe(float64(len(table.Rows)))

	resolution, err := p.resolver.Resolve(ctx, table.Rows)
	if err != nil {
		p.logger.Error("[processor] %v", err)
		return nil, err
	}
	resolvedRows.Observe(float64(len(resolution.Records)))

	result := &models.StatsResult{
		Winner:            resolution.Winner,
		Distributions:     p.aggregator.Generate(resolution.Records),
		TotalParsedRows:   len(table.Rows),
		TotalResolvedRows: len(resolution.Records),
		Headers:           table.Headers,
		RawRows:           table.Rows,
		Records:           resolution.Records,
		Warnings:          table.Warnings,
	}
	if result.Records == nil {
		result.Records = []models.EmployeeRecord{}
	}

	p.logger.Info("[processor] %d parsed rows, %d resolved records", result.TotalParsedRows, result.TotalResolvedRows)
	return result, nil
}
