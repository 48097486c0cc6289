package drive

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/invensight/backend-go/internal/domain"
	"github.com/invensight/backend-go/internal/repository"
	"github.com/invensight/backend-go/pkg/logger"
)

// saleDateLayout is the timestamp format POS exports use for the date
// column. A bare date (no time component) is also accepted.
const saleDateLayout = "2006-01-02 15:04:05"

// maxConcurrentIngests caps how many export files are processed in
// parallel during a sync.
const maxConcurrentIngests = 4

type IngestService struct {
	driveService *Service
	saleRepo     repository.SaleRepository
	ingestRepo   repository.IngestRepository
}

func NewIngestService(driveService *Service, saleRepo repository.SaleRepository, ingestRepo repository.IngestRepository) *IngestService {
	return &IngestService{
		driveService: driveService,
		saleRepo:     saleRepo,
		ingestRepo:   ingestRepo,
	}
}

// SyncResult summarizes one folder sync.
type SyncResult struct {
	Processed []string `json:"processed"`
	Skipped   []string `json:"skipped"`
}

// SyncOnce lists the export folder and ingests every CSV file that has
// not been processed before. Already-seen files are skipped by drive
// file id, so re-running a sync is safe.
func (s *IngestService) SyncOnce(ctx context.Context, folderID string) (*SyncResult, error) {
	files, err := s.driveService.ListFiles(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list export folder: %w", err)
	}

	result := &SyncResult{Processed: []string{}, Skipped: []string{}}

	var pending []*File
	for _, f := range files {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			result.Skipped = append(result.Skipped, f.Name)
			continue
		}

		processed, err := s.ingestRepo.IsProcessed(ctx, f.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check file %s: %w", f.Name, err)
		}
		if processed {
			result.Skipped = append(result.Skipped, f.Name)
			continue
		}

		pending = append(pending, f)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentIngests)

	processedNames := make(chan string, len(pending))
	for _, f := range pending {
		file := f
		g.Go(func() error {
			if err := s.IngestFile(gctx, file.ID, file.Name); err != nil {
				return fmt.Errorf("failed to ingest %s: %w", file.Name, err)
			}
			processedNames <- file.Name
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(processedNames)

	for name := range processedNames {
		result.Processed = append(result.Processed, name)
	}
	sort.Strings(result.Processed)

	logger.Log.Info().
		Int("processed", len(result.Processed)).
		Int("skipped", len(result.Skipped)).
		Msg("drive sync completed")

	return result, nil
}

// IngestFile downloads one sales export, parses it and stores the sales
// it contains. The file is marked processed only after a successful
// insert.
func (s *IngestService) IngestFile(ctx context.Context, fileID, fileName string) error {
	pr, pw := io.Pipe()
	go func() {
		err := s.driveService.DownloadFile(fileID, pw)
		pw.CloseWithError(err)
	}()

	sales, err := parseSalesCSV(pr)
	if err != nil {
		return err
	}

	if err := s.saleRepo.InsertSales(ctx, sales); err != nil {
		return fmt.Errorf("failed to store sales: %w", err)
	}

	if err := s.ingestRepo.MarkProcessed(ctx, fileID, fileName); err != nil {
		return fmt.Errorf("failed to mark file processed: %w", err)
	}

	logger.Log.Info().
		Str("file", fileName).
		Int("sales", len(sales)).
		Msg("ingested sales export")

	return nil
}

// parseSalesCSV reads a POS sales export. Each row is one sale line;
// rows sharing a sale_id are grouped into a single sale with multiple
// items.
func parseSalesCSV(r io.Reader) ([]domain.Sale, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"sale_id", "date", "location_id", "product_id", "quantity"} {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	byID := make(map[string]*domain.Sale)
	var order []string

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		getValue := func(colName string) string {
			if idx, ok := colMap[colName]; ok && idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}

		saleID := getValue("sale_id")
		if saleID == "" {
			return nil, fmt.Errorf("line %d: empty sale_id", line)
		}

		qty, err := strconv.Atoi(getValue("quantity"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid quantity: %w", line, err)
		}

		sale, ok := byID[saleID]
		if !ok {
			soldAt, err := parseSaleDate(getValue("date"))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}

			sale = &domain.Sale{
				ID:         saleID,
				LocationID: getValue("location_id"),
				SoldAt:     soldAt,
			}
			byID[saleID] = sale
			order = append(order, saleID)
		}

		sale.Items = append(sale.Items, domain.SaleItem{
			ProductID: getValue("product_id"),
			Quantity:  qty,
		})
	}

	sales := make([]domain.Sale, 0, len(order))
	for _, id := range order {
		sales = append(sales, *byID[id])
	}

	return sales, nil
}

func parseSaleDate(value string) (time.Time, error) {
	if t, err := time.Parse(saleDateLayout, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return t.UTC(), nil
}
