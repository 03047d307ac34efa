// Package report builds the herd summary used for reporting: per-animal KPI
// records, traffic-light classifications, herd aggregates and an xlsx export.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/camposur/herdtrack/internal/domain"
	"github.com/camposur/herdtrack/internal/kpi"
	"github.com/camposur/herdtrack/internal/repository"
	"github.com/camposur/herdtrack/internal/scoring"
)

const (
	summarySheet = "Summary"
	animalsSheet = "Animals"
)

// HerdReport bundles everything a summary rendering needs.
type HerdReport struct {
	FarmID          uuid.UUID
	GeneratedAt     time.Time
	Records         []domain.KPIRecord
	Classifications []scoring.Classification
	Summary         scoring.HerdSummary
}

// Service builds herd reports from the repositories.
type Service struct {
	animals    repository.AnimalRepository
	events     repository.ReproEventRepository
	seasons    repository.SeasonRepository
	engine     *kpi.Engine
	thresholds domain.SelectionThresholds

	outputDir string
	now       func() time.Time
	log       *zap.Logger
}

// Option customizes the report service.
type Option func(*Service)

// WithOutputDir sets the directory workbook files are written to.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		if strings.TrimSpace(dir) != "" {
			s.outputDir = filepath.Clean(dir)
		}
	}
}

// WithClock fixes the clock, for tests and reproducible file names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a herd report service.
func NewService(
	animals repository.AnimalRepository,
	events repository.ReproEventRepository,
	seasons repository.SeasonRepository,
	thresholds domain.SelectionThresholds,
	log *zap.Logger,
	opts ...Option,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	service := &Service{
		animals:    animals,
		events:     events,
		seasons:    seasons,
		thresholds: thresholds,
		outputDir:  "./reports",
		now:        time.Now,
		log:        log,
	}
	for _, opt := range opts {
		opt(service)
	}
	service.engine = kpi.NewEngineAt(service.now)
	return service
}

// Build computes KPIs for every female in the farm, classifies each animal
// and aggregates the herd summary. A non-nil seasonID selects the
// season-scoped pregnancy-rate policy using that season's exposure set.
func (s *Service) Build(ctx context.Context, farmID uuid.UUID, seasonID *uuid.UUID) (HerdReport, error) {
	var scope *domain.SeasonScope
	if seasonID != nil {
		season, err := s.seasons.GetByID(ctx, farmID, *seasonID)
		if err != nil {
			return HerdReport{}, fmt.Errorf("resolve season scope: %w", err)
		}
		exposed, err := s.seasons.ExposedAnimalIDs(ctx, season.ID)
		if err != nil {
			return HerdReport{}, fmt.Errorf("load exposures: %w", err)
		}
		scope = &domain.SeasonScope{Season: season, Exposed: exposed}
	}

	females, err := s.animals.ListFemales(ctx, farmID)
	if err != nil {
		return HerdReport{}, fmt.Errorf("list females: %w", err)
	}

	report := HerdReport{FarmID: farmID, GeneratedAt: s.now()}
	for _, animal := range females {
		eventLog, err := s.events.ListByAnimal(ctx, farmID, animal.ID)
		if err != nil {
			return HerdReport{}, fmt.Errorf("load event log for %s: %w", animal.Tag, err)
		}
		record := s.engine.Compute(animal.ID, animal.Tag, eventLog, scope)
		report.Records = append(report.Records, record)
		report.Classifications = append(report.Classifications, scoring.Classify(record, s.thresholds))
	}

	report.Summary = scoring.Aggregate(report.Records, scope, s.thresholds)

	s.log.Info("herd report built",
		zap.String("farm_id", farmID.String()),
		zap.Int("animals", report.Summary.Animals),
		zap.Int("red", report.Summary.RedCount),
	)
	return report, nil
}

// WriteWorkbook renders the report as an xlsx workbook with a herd summary
// sheet and a per-animal sheet, and returns the written file path.
func (s *Service) WriteWorkbook(report HerdReport) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", fmt.Errorf("rename summary sheet: %w", err)
	}
	if _, err := f.NewSheet(animalsSheet); err != nil {
		return "", fmt.Errorf("create animals sheet: %w", err)
	}

	writeSummarySheet(f, report)
	if err := writeAnimalsSheet(f, report); err != nil {
		return "", err
	}

	name := fmt.Sprintf("herd_report_%s_%s.xlsx",
		report.FarmID, report.GeneratedAt.Format("20060102_150405"))
	path := filepath.Join(s.outputDir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	s.log.Info("herd report written", zap.String("path", path))
	return path, nil
}

func writeSummarySheet(f *excelize.File, report HerdReport) {
	rows := [][]any{
		{"Farm", report.FarmID.String()},
		{"Generated", report.GeneratedAt.Format(time.RFC3339)},
		{"Animals", report.Summary.Animals},
		{"Mean days open", optFloat(report.Summary.MeanOpenDays)},
		{"% days open above yellow max", optFloat(report.Summary.PctOpenAboveYellow)},
		{"Mean calving interval", optFloat(report.Summary.MeanCalvingInterval)},
		{"Pregnancy rate", optFloat(report.Summary.PregnancyRate)},
		{"Red / Yellow / Green", fmt.Sprintf("%d / %d / %d",
			report.Summary.RedCount, report.Summary.YellowCount, report.Summary.GreenCount)},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		_ = f.SetSheetRow(summarySheet, cell, &row)
	}

	alertStart := len(rows) + 2
	header := []any{"Top alerts", "Tier", "Reasons"}
	_ = f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", alertStart), &header)
	for i, alert := range report.Summary.TopAlerts {
		row := []any{alert.Tag, string(alert.Tier), strings.Join(alert.Reasons, "; ")}
		_ = f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", alertStart+1+i), &row)
	}
}

func writeAnimalsSheet(f *excelize.File, report HerdReport) error {
	header := []any{
		"Tag", "Tier", "Reasons", "Days open", "Calving interval",
		"Pregnancy rate", "Last calving", "Last pregnancy check",
	}
	if err := f.SetSheetRow(animalsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write animals header: %w", err)
	}

	redStyle, err := tierStyle(f, "FFC7CE")
	if err != nil {
		return err
	}
	yellowStyle, err := tierStyle(f, "FFEB9C")
	if err != nil {
		return err
	}

	for i, record := range report.Records {
		classification := report.Classifications[i]
		row := []any{
			record.Tag,
			string(classification.Tier),
			strings.Join(classification.Reasons, "; "),
			optInt(record.OpenDays),
			optInt(record.IEPDays),
			optFloat(record.PregnancyRate),
			optDate(record.LastCalvingDate),
			optDate(record.LastPregCheck),
		}
		rowIdx := i + 2
		if err := f.SetSheetRow(animalsSheet, fmt.Sprintf("A%d", rowIdx), &row); err != nil {
			return fmt.Errorf("write animal row %d: %w", rowIdx, err)
		}

		tierCell := fmt.Sprintf("B%d", rowIdx)
		switch classification.Tier {
		case scoring.TierRed:
			_ = f.SetCellStyle(animalsSheet, tierCell, tierCell, redStyle)
		case scoring.TierYellow:
			_ = f.SetCellStyle(animalsSheet, tierCell, tierCell, yellowStyle)
		}
	}
	return nil
}

func tierStyle(f *excelize.File, color string) (int, error) {
	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("create tier style: %w", err)
	}
	return style, nil
}

func optInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func optFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func optDate(v *time.Time) any {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02")
}
