// internal/pipeline/pipeline.go

// Package pipeline sequences the batch run: read the three export types,
// merge master data, classify, report, emit the migration. Everything is
// synchronous and single-pass; source order is what makes the downstream
// tie-breaks deterministic.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/wms-classify/internal/classify"
	"github.com/andresuchdata/wms-classify/internal/config"
	"github.com/andresuchdata/wms-classify/internal/domain"
	"github.com/andresuchdata/wms-classify/internal/migration"
	"github.com/andresuchdata/wms-classify/internal/parser"
	"github.com/andresuchdata/wms-classify/internal/report"
	"github.com/andresuchdata/wms-classify/internal/sheet"
)

// ErrMissingSource aborts the run: without the depletion or item view
// export there is nothing to classify.
var ErrMissingSource = errors.New("mandatory source file missing")

// Stats aggregates the degraded-path counters of one run. Dirty rows never
// fail the run; they end up here instead.
type Stats struct {
	SKUs                 int
	ItemsParsed          int
	MasterMatched        int
	MasterUnmatched      []string
	Transactions         int
	FilteredAdjustments  int
	FilteredMoves        int
	EstimatedXYZ         int
	ActivityFilesRead    int
	ActivityFilesMissing int
}

type Pipeline struct {
	cfg      *config.Config
	reporter *report.Reporter
}

func New(cfg *config.Config) *Pipeline {
	return &Pipeline{cfg: cfg, reporter: report.New()}
}

// Run executes one full classification pass and writes the migration file.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	if err := p.checkMandatorySources(); err != nil {
		return nil, err
	}

	normalizer := parser.NewNormalizer()
	stats := &Stats{}

	// Inventory depletion: authoritative for SKU identity.
	log.Info().Str("file", p.cfg.Sources.DepletionFile).Msg("parsing inventory depletion")
	depWB, err := sheet.OpenWorkbook(p.cfg.Sources.DepletionFile)
	if err != nil {
		return nil, fmt.Errorf("depletion source: %w", err)
	}
	depletion := parser.NewDepletionReader(normalizer)
	depletion.ReadSheet(depWB.Active())
	set := depletion.Records()
	stats.SKUs = set.Len()
	log.Info().Int("skus", set.Len()).Msg("depletion parsed")
	p.reporter.DepletionSummary(set)

	// Item view: cost, weight, dimensions.
	log.Info().Str("file", p.cfg.Sources.ItemMasterFile).Msg("parsing item view")
	imWB, err := sheet.OpenWorkbook(p.cfg.Sources.ItemMasterFile)
	if err != nil {
		return nil, fmt.Errorf("item view source: %w", err)
	}
	itemReader := parser.NewItemMasterReader(normalizer)
	itemReader.ReadWorkbook(imWB)
	items := itemReader.Items()
	stats.ItemsParsed = len(items)
	log.Info().Int("items", len(items)).Int("sheets", len(imWB.Sheets)).Msg("item view parsed")
	p.reporter.ItemMasterSummary(items)

	// Activity reports: optional, accumulate into one shared histogram.
	aggregator := parser.NewActivityAggregator()
	p.readActivityFiles(aggregator, stats)

	p.classify(set, items, aggregator.Monthly(), stats)

	p.reporter.MatrixSummary(set)

	emitter := migration.NewEmitter(p.cfg.Classification.SKUSuffix)
	if err := emitter.WriteFile(p.cfg.Output.MigrationFile, set.Records(), domain.DefaultPolicies()); err != nil {
		return nil, err
	}
	log.Info().Str("file", p.cfg.Output.MigrationFile).Msg("migration written")

	return stats, ctx.Err()
}

func (p *Pipeline) checkMandatorySources() error {
	for _, path := range []string{p.cfg.Sources.DepletionFile, p.cfg.Sources.ItemMasterFile} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%w: %s", ErrMissingSource, path)
		}
	}
	return nil
}

func (p *Pipeline) readActivityFiles(aggregator *parser.ActivityAggregator, stats *Stats) {
	for _, path := range p.cfg.Sources.ActivityFiles {
		if _, err := os.Stat(path); err != nil {
			log.Warn().Str("file", path).Msg("activity report missing, skipping")
			stats.ActivityFilesMissing++
			continue
		}
		wb, err := sheet.OpenWorkbook(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("activity report unreadable, skipping")
			stats.ActivityFilesMissing++
			continue
		}
		fs := aggregator.ReadSheet(wb.Active())
		stats.ActivityFilesRead++
		log.Info().Str("file", path).
			Int("transactions", fs.Transactions).
			Int("filtered", fs.Filtered).
			Msg("activity report parsed")
	}

	stats.Transactions = aggregator.Transactions
	stats.FilteredAdjustments = aggregator.FilteredAdjustments
	stats.FilteredMoves = aggregator.FilteredMoves
	log.Info().
		Int("transactions", aggregator.Transactions).
		Int("filtered_adjustments", aggregator.FilteredAdjustments).
		Int("filtered_moves", aggregator.FilteredMoves).
		Msg("activity reports aggregated")
}

// classify runs the merge and both classifiers over the parsed sources.
// Split out from Run so the whole stage chain is testable without files.
func (p *Pipeline) classify(
	set *domain.RecordSet,
	items map[string]*domain.ItemMaster,
	monthly map[string]map[string]float64,
	stats *Stats,
) classify.ABCResult {
	cc := p.cfg.Classification

	merge := classify.MergeMasterData(set, items, cc.SKUSuffix)
	stats.MasterMatched = merge.Matched
	stats.MasterUnmatched = merge.Unmatched
	if len(merge.Unmatched) > 0 {
		log.Warn().Int("count", len(merge.Unmatched)).
			Strs("skus", headOf(merge.Unmatched, 20)).
			Msg("SKUs without item view match")
	}

	abcRes := classify.ClassifyABC(set, items, cc)
	if abcRes.TotalValue <= 0 {
		log.Warn().Msg("total annual consumption value is not positive; all SKUs classed C")
	}
	p.reporter.ABCSummary(abcRes, 10)

	xyzRes := classify.ClassifyXYZ(set, monthly, cc)
	stats.EstimatedXYZ = xyzRes.Estimated
	p.reporter.XYZSummary(xyzRes)

	return abcRes
}

func headOf(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
