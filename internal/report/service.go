package report

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"telcli/internal/config"
	"telcli/internal/dataprocessing"
	apperrors "telcli/internal/errors"
	"telcli/internal/exporter"
	"telcli/internal/infrastructure"
	"telcli/internal/store"
	"telcli/internal/temporal"
	"telcli/internal/validation"
	"telcli/pkg/contracts/domain"
)

// Service orchestrates the ingest and reporting flows: discovering
// incoming workbooks, filing them under their temporal key, and
// assembling per-file or annual outputs.
type Service struct {
	logger          *slog.Logger
	cfg             *config.Config
	store           *store.Store
	inferencer      *temporal.Inferencer
	engine          *dataprocessing.Engine
	excel           *exporter.ExcelWriter
	csv             *exporter.CSVWriter
	fileValidator   *validation.FileValidator
	structValidator *validation.StructValidator
}

// NewService creates a report service using the default logger.
func NewService(cfg *config.Config, st *store.Store) *Service {
	return NewServiceWithLogger(cfg, st, slog.Default())
}

// NewServiceWithLogger creates a report service with a specific logger.
func NewServiceWithLogger(cfg *config.Config, st *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "report"))

	return &Service{
		logger:          logger,
		cfg:             cfg,
		store:           st,
		inferencer:      temporal.NewInferencer(logger),
		engine:          dataprocessing.NewEngine(logger),
		excel:           exporter.NewExcelWriter(logger),
		csv:             exporter.NewCSVWriter(logger),
		fileValidator:   validation.NewFileValidator(logger),
		structValidator: validation.NewStructValidator(),
	}
}

// Store returns the store the service files workbooks into.
func (s *Service) Store() *store.Store {
	return s.store
}

// DefaultAggregationOptions builds engine options from the processing
// section of the configuration. An empty timestamp column switches on
// header auto-detection.
func (s *Service) DefaultAggregationOptions() dataprocessing.Options {
	opts := dataprocessing.Options{
		ValueColumns:    s.cfg.Processing.ValueColumns,
		TimestampColumn: s.cfg.Processing.TimestampColumn,
		SumValues:       s.cfg.Processing.SumValues,
		TagSourceSheet:  true,
		PrefixLength:    s.cfg.Processing.PrefixLength,
	}
	if opts.TimestampColumn == "" {
		opts.AutoTimestamp = true
	}
	return opts
}

// IngestRequest describes one ingest run. Year and Month are optional
// overrides; zero means infer per file. Explicit values still have to
// fall inside the supported range.
type IngestRequest struct {
	SourceDir          string `json:"source_dir" validate:"required"`
	Year               int    `json:"year" validate:"year_range"`
	Month              int    `json:"month" validate:"month_range"`
	Move               bool   `json:"move"`
	ProcessImmediately bool   `json:"process_immediately"`
	Overwrite          bool   `json:"overwrite"`

	// Progress, when set, is called after each file is handled with the
	// running and total counts.
	Progress func(done, total int) `json:"-" validate:"-"`
}

// IngestBatch discovers the spreadsheet files in the request's source
// directory and files each one into the store under its temporal key.
// Caller-supplied year/month values win over inference. Failures of
// individual files are recorded in the report and never abort the batch;
// only an unusable source directory is fatal.
func (s *Service) IngestBatch(ctx context.Context, req IngestRequest) (*domain.BatchReport, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	if err := s.structValidator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := s.fileValidator.ValidateInputDirectory(req.SourceDir); err != nil {
		return nil, err
	}

	files, err := store.FindSpreadsheetFiles(req.SourceDir)
	if err != nil {
		return nil, err
	}

	batch := &domain.BatchReport{
		BatchID:    uuid.New().String(),
		SourceDir:  req.SourceDir,
		TotalFiles: len(files),
		Organized:  []domain.OrganizedFile{},
		Errors:     []domain.BatchError{},
		StartedAt:  time.Now(),
	}

	s.logger.InfoContext(ctx, "Ingest batch started",
		slog.String("batch_id", batch.BatchID),
		slog.String("source_dir", req.SourceDir),
		slog.Int("total_files", len(files)))

	explicit := temporal.Key{Year: req.Year, Month: req.Month}
	for i, file := range files {
		s.ingestOne(ctx, batch, file, explicit, req)
		if req.Progress != nil {
			req.Progress(i+1, len(files))
		}
	}

	batch.CompletedAt = time.Now()
	s.logger.InfoContext(ctx, "Ingest batch completed",
		slog.String("batch_id", batch.BatchID),
		slog.Int("organized", batch.Succeeded()),
		slog.Int("errors", batch.Failed()))
	return batch, nil
}

func (s *Service) ingestOne(ctx context.Context, batch *domain.BatchReport, file store.FileInfo, explicit temporal.Key, req IngestRequest) {
	inferred, _ := s.inferencer.Infer(file.Path)
	key := temporal.Resolve(explicit, inferred)
	if key.Year == 0 || key.Month == 0 {
		batch.Errors = append(batch.Errors, domain.BatchError{
			File:  file.Path,
			Error: fmt.Sprintf("could not determine year or month for %s", file.Name),
		})
		return
	}

	destination, err := s.store.Place(ctx, file.Path, key, store.PlaceOptions{
		Move:      req.Move,
		Overwrite: req.Overwrite,
	})
	if err != nil {
		batch.Errors = append(batch.Errors, domain.BatchError{File: file.Path, Error: err.Error()})
		return
	}

	organized := domain.OrganizedFile{
		Original:    file.Path,
		Destination: destination,
		Year:        key.Year,
		Month:       key.Month,
	}

	if req.ProcessImmediately {
		processedPath, err := s.processStored(ctx, destination)
		if err != nil {
			organized.ProcessingError = err.Error()
			s.logger.WarnContext(ctx, "Immediate processing failed",
				slog.String("file", destination),
				slog.String("error", err.Error()))
		} else {
			organized.Processed = processedPath
		}
	}

	batch.Organized = append(batch.Organized, organized)
}

// processStored runs the raw single-column flow over a freshly stored
// workbook and writes the per-group result next to it. The artifact is
// always xlsx regardless of the source format.
func (s *Service) processStored(ctx context.Context, storedPath string) (string, error) {
	result, err := s.engine.ProcessRawWorkbook(storedPath)
	if err != nil {
		return "", err
	}

	var tables []exporter.NamedTable
	for _, key := range result.Groups.Order {
		table, ok := result.Tables[key]
		if !ok {
			continue
		}
		tables = append(tables, exporter.NamedTable{
			Name:  dataprocessing.SheetName(key),
			Table: table,
		})
	}
	if len(tables) == 0 {
		return "", apperrors.NewParsingError(
			fmt.Sprintf("no processable sheets in %s", filepath.Base(storedPath)), nil)
	}

	artifact := processedArtifactPath(storedPath)
	if err := s.excel.WriteWorkbook(artifact, tables); err != nil {
		return "", err
	}

	s.logger.DebugContext(ctx, "Stored file processed",
		slog.String("source", storedPath),
		slog.String("artifact", artifact))
	return artifact, nil
}

// processedArtifactPath derives the immediate-processing output path for
// a stored workbook: same directory, "processed_" prefix, xlsx extension.
func processedArtifactPath(storedPath string) string {
	base := filepath.Base(storedPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(storedPath), config.ProcessedFilePrefix+stem+".xlsx")
}
