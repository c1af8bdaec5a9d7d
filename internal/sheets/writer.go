package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/common"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/service"
)

// Row backgrounds keyed by the compliance outcome: green for compliant
// memos, red for a single violation category, blue for multiple, gray for
// memos whose dates were missing.
var (
	colorCompliant      = &sheets.Color{Red: 0xC6 / 255.0, Green: 0xEF / 255.0, Blue: 0xCE / 255.0}
	colorOneViolation   = &sheets.Color{Red: 0xFF / 255.0, Green: 0x6B / 255.0, Blue: 0x6B / 255.0}
	colorMultiViolation = &sheets.Color{Red: 0x4A / 255.0, Green: 0x90 / 255.0, Blue: 0xE2 / 255.0}
	colorMissingData    = &sheets.Color{Red: 0xE7 / 255.0, Green: 0xE6 / 255.0, Blue: 0xE6 / 255.0}
)

const detailColumnCount = 12

// Writer implements the ReportWriter interface for Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Write implements the ReportWriter interface.
func (w *Writer) Write(ctx context.Context, batch *model.ValidatedBatch, summary *model.BatchSummary) error {
	w.logger.Info("starting report export",
		"batch_id", batch.ID,
		"records", len(batch.Records))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if clearErr := w.clearSheet(ctx, spreadsheetID); clearErr != nil {
		return fmt.Errorf("failed to clear sheet: %w", clearErr)
	}

	values, detailStart := w.prepareReportData(batch, summary)

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, func() error {
		return w.writeData(ctx, spreadsheetID, values)
	}, retryOpts)

	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return w.applyFormatting(ctx, spreadsheetID, batch, detailStart, len(values))
		}, retryOpts)
		if err != nil {
			// Formatting is cosmetic; the data is already written.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("report export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	switch {
	case config.ServiceAccountPath != "":
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)

	case config.RefreshToken != "":
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)

	default:
		// Interactive OAuth2 with a cached token file.
		token, err := GetOrCreateToken(ctx, OAuth2Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenFile:    config.TokenFile,
		})
		if err != nil {
			return nil, fmt.Errorf("oauth2 authentication failed: %w", err)
		}

		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}
		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet gets an existing spreadsheet or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: "Validation Results",
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// clearSheet clears all data from the sheet.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// prepareReportData builds the sheet rows. It returns the rows and the
// zero-based index of the first memo detail row, which the formatting pass
// needs for per-row coloring.
func (w *Writer) prepareReportData(batch *model.ValidatedBatch, summary *model.BatchSummary) ([][]any, int) {
	estimatedRows := 16 + len(batch.Records)
	values := make([][]any, 0, estimatedRows)

	values = append(values,
		[]any{
			"SOX Validation Report",
			fmt.Sprintf("Batch %s (%s)", batch.ID, batch.CreatedAt.Format("Jan 2, 2006 15:04 MST")),
		},
		[]any{}, // Empty row
		[]any{"Summary"},
		[]any{"Total Memos", summary.TotalRecords},
		[]any{"Compliant", summary.CompliantCount, fmt.Sprintf("%.1f%%", summary.CompliantPercent)},
		[]any{"Violations", summary.ViolationCount, fmt.Sprintf("%.1f%%", summary.ViolationPercent)},
		[]any{"High Risk", summary.HighRiskCount},
		[]any{"Missing Approvals", summary.MissingApprovals},
		[]any{"SLA Exceeded", summary.SLAViolations},
		[]any{"Total Amount", summary.TotalAmount},
		[]any{}, // Empty row
		[]any{"Memo Details"},
		[]any{
			"Row #",
			"Memo ID",
			"Customer",
			"Amount",
			"Memo Date",
			"Approval Date",
			"Business Days",
			"Reason Class",
			"Timeline",
			"Risk",
			"SOX Status",
			"Violation Reason",
		})

	detailStart := len(values)

	for i := range batch.Records {
		record := &batch.Records[i].Record
		verdict := &batch.Records[i].Verdict

		var amount any
		if record.Amount != nil {
			amount = *record.Amount
		}
		var businessDays any
		if verdict.BusinessDaysElapsed != nil {
			businessDays = *verdict.BusinessDaysElapsed
		}

		values = append(values, []any{
			i + 1,
			record.MemoID,
			record.CustomerName,
			amount,
			formatDate(record.MemoDate),
			formatDate(record.ApprovalDate),
			businessDays,
			string(verdict.ReasonClass),
			verdict.TimelineStatus.Display(),
			verdict.RiskLevel.Display(),
			verdict.SOXStatus.Display(),
			verdict.ViolationReason,
		})
	}

	return values, detailStart
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// writeData writes the data to the spreadsheet.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	// Write in batches to avoid API limits
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := i + w.config.BatchSize
		if end > len(values) {
			end = len(values)
		}

		batch := values[i:end]
		valueRange := &sheets.ValueRange{
			Values: batch,
		}

		rangeStr := fmt.Sprintf("A%d", i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()

		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
	}

	return nil
}

// rowColor maps a verdict to its row background.
func rowColor(verdict *model.ValidationVerdict) *sheets.Color {
	if verdict.TimelineStatus == model.TimelineNotApplicable && verdict.ViolationCount == 0 {
		return colorMissingData
	}
	switch {
	case verdict.ViolationCount == 0:
		return colorCompliant
	case verdict.ViolationCount == 1:
		return colorOneViolation
	default:
		return colorMultiViolation
	}
}

// applyFormatting applies header formatting and per-row compliance colors.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, batch *model.ValidatedBatch, detailStart, totalRows int) error {
	requests := []*sheets.Request{
		// Report title
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   2,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold:     true,
							FontSize: 16,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		// Detail header row
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    int64(detailStart - 1),
					EndRowIndex:      int64(detailStart),
					StartColumnIndex: 0,
					EndColumnIndex:   detailColumnCount,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold: true,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		// Amount column as currency
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    int64(detailStart),
					EndRowIndex:      int64(totalRows),
					StartColumnIndex: 3,
					EndColumnIndex:   4,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{
							Type:    "CURRENCY",
							Pattern: "$#,##0.00",
						},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		},
		// Auto-resize columns
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    0,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   detailColumnCount,
				},
			},
		},
		// Freeze the summary plus detail header
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: 0,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: int64(detailStart),
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	requests = append(requests, complianceColorRequests(batch, detailStart)...)

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
	return err
}

// complianceColorRequests builds one RepeatCell request per contiguous run
// of equally-colored detail rows, keeping the request count low for large
// batches.
func complianceColorRequests(batch *model.ValidatedBatch, detailStart int) []*sheets.Request {
	var requests []*sheets.Request

	runStart := 0
	var runColor *sheets.Color

	flush := func(end int) {
		if runColor == nil || end <= runStart {
			return
		}
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    int64(detailStart + runStart),
					EndRowIndex:      int64(detailStart + end),
					StartColumnIndex: 0,
					EndColumnIndex:   detailColumnCount,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor: runColor,
					},
				},
				Fields: "userEnteredFormat.backgroundColor",
			},
		})
	}

	for i := range batch.Records {
		color := rowColor(&batch.Records[i].Verdict)
		if color != runColor {
			flush(i)
			runStart = i
			runColor = color
		}
	}
	flush(len(batch.Records))

	return requests
}
