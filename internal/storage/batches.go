package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/common"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/engine"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/service"
)

const dateLayout = "2006-01-02"

// SaveBatch persists a validated batch and its per-record verdicts in a
// single transaction. The stored batch row carries the aggregate counts so
// listings never need to re-read every memo.
func (s *SQLiteStorage) SaveBatch(ctx context.Context, batch *model.ValidatedBatch) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBatch(batch); err != nil {
		return err
	}

	summary := engine.Aggregate(batch)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO batches (id, created_at, total_records, compliant_count, violation_count, high_risk_count, total_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		batch.ID, batch.CreatedAt.UTC(), summary.TotalRecords, summary.CompliantCount,
		summary.ViolationCount, summary.HighRiskCount, summary.TotalAmount); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("batch %s: %w", batch.ID, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to insert batch %s: %w", batch.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO memos (
			batch_id, position, memo_id, customer_name, created_by, reason_text,
			amount, approval_date, memo_date, approvals,
			reason_class, required_levels, present_levels, missing_levels,
			business_days, timeline_status, violation_count, risk_level,
			sox_status, violation_reason, violation_reasons, warnings,
			duplicate_memo, approval_after_memo, sod_status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare memo insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range batch.Records {
		record := &batch.Records[i].Record
		verdict := &batch.Records[i].Verdict

		approvals, err := json.Marshal(record.Approvals)
		if err != nil {
			return fmt.Errorf("failed to marshal approvals for memo %s: %w", record.MemoID, err)
		}

		if _, err := stmt.ExecContext(ctx,
			batch.ID, i, record.MemoID, record.CustomerName, record.CreatedBy, record.ReasonText,
			nullFloat(record.Amount), nullDate(record.ApprovalDate), nullDate(record.MemoDate), string(approvals),
			string(verdict.ReasonClass), marshalLevels(verdict.RequiredLevels),
			marshalLevels(verdict.PresentLevels), marshalLevels(verdict.MissingLevels),
			nullInt(verdict.BusinessDaysElapsed), string(verdict.TimelineStatus),
			verdict.ViolationCount, string(verdict.RiskLevel), string(verdict.SOXStatus),
			verdict.ViolationReason, marshalStrings(verdict.ViolationReasons), marshalStrings(verdict.Warnings),
			boolInt(verdict.DuplicateMemo), boolInt(verdict.ApprovalAfterMemo), string(verdict.SoD),
		); err != nil {
			return fmt.Errorf("failed to insert memo %s: %w", record.MemoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch %s: %w", batch.ID, err)
	}
	return nil
}

// GetBatch loads a stored validation run by id.
func (s *SQLiteStorage) GetBatch(ctx context.Context, id string) (*model.ValidatedBatch, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	batch := &model.ValidatedBatch{ID: id}
	err := s.db.QueryRowContext(ctx, `SELECT created_at FROM batches WHERE id = ?`, id).
		Scan(&batch.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("batch %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load batch %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT memo_id, customer_name, created_by, reason_text,
			amount, approval_date, memo_date, approvals,
			reason_class, required_levels, present_levels, missing_levels,
			business_days, timeline_status, violation_count, risk_level,
			sox_status, violation_reason, violation_reasons, warnings,
			duplicate_memo, approval_after_memo, sod_status
		FROM memos WHERE batch_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load memos for batch %s: %w", id, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			record            model.CreditMemoRecord
			verdict           model.ValidationVerdict
			amount            sql.NullFloat64
			approvalDate      sql.NullString
			memoDate          sql.NullString
			approvals         string
			reasonClass       string
			required          string
			present           string
			missing           string
			businessDays      sql.NullInt64
			timelineStatus    string
			riskLevel         string
			soxStatus         string
			violationReasons  string
			warnings          string
			duplicateMemo     int
			approvalAfterMemo int
			sodStatus         string
		)

		if err := rows.Scan(&record.MemoID, &record.CustomerName, &record.CreatedBy, &record.ReasonText,
			&amount, &approvalDate, &memoDate, &approvals,
			&reasonClass, &required, &present, &missing,
			&businessDays, &timelineStatus, &verdict.ViolationCount, &riskLevel,
			&soxStatus, &verdict.ViolationReason, &violationReasons, &warnings,
			&duplicateMemo, &approvalAfterMemo, &sodStatus); err != nil {
			return nil, fmt.Errorf("failed to scan memo row: %w", err)
		}

		if amount.Valid {
			v := amount.Float64
			record.Amount = &v
		}
		record.ApprovalDate, err = parseNullDate(approvalDate)
		if err != nil {
			return nil, fmt.Errorf("memo %s: bad approval date: %w", record.MemoID, err)
		}
		record.MemoDate, err = parseNullDate(memoDate)
		if err != nil {
			return nil, fmt.Errorf("memo %s: bad memo date: %w", record.MemoID, err)
		}
		if err := json.Unmarshal([]byte(approvals), &record.Approvals); err != nil {
			return nil, fmt.Errorf("memo %s: bad approvals: %w", record.MemoID, err)
		}

		verdict.ReasonClass = model.ReasonClass(reasonClass)
		verdict.TimelineStatus = model.TimelineStatus(timelineStatus)
		verdict.RiskLevel = model.RiskLevel(riskLevel)
		verdict.SOXStatus = model.SOXStatus(soxStatus)
		verdict.SoD = model.SoDStatus(sodStatus)
		verdict.DuplicateMemo = duplicateMemo != 0
		verdict.ApprovalAfterMemo = approvalAfterMemo != 0
		if businessDays.Valid {
			v := int(businessDays.Int64)
			verdict.BusinessDaysElapsed = &v
		}
		if verdict.RequiredLevels, err = unmarshalLevels(required); err != nil {
			return nil, fmt.Errorf("memo %s: bad required levels: %w", record.MemoID, err)
		}
		if verdict.PresentLevels, err = unmarshalLevels(present); err != nil {
			return nil, fmt.Errorf("memo %s: bad present levels: %w", record.MemoID, err)
		}
		if verdict.MissingLevels, err = unmarshalLevels(missing); err != nil {
			return nil, fmt.Errorf("memo %s: bad missing levels: %w", record.MemoID, err)
		}
		if verdict.ViolationReasons, err = unmarshalStrings(violationReasons); err != nil {
			return nil, fmt.Errorf("memo %s: bad violation reasons: %w", record.MemoID, err)
		}
		if verdict.Warnings, err = unmarshalStrings(warnings); err != nil {
			return nil, fmt.Errorf("memo %s: bad warnings: %w", record.MemoID, err)
		}

		batch.Records = append(batch.Records, model.ValidatedRecord{Record: record, Verdict: verdict})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memos: %w", err)
	}

	return batch, nil
}

// GetLatestBatch loads the most recently stored validation run.
func (s *SQLiteStorage) GetLatestBatch(ctx context.Context) (*model.ValidatedBatch, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM batches ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no stored batches: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest batch: %w", err)
	}
	return s.GetBatch(ctx, id)
}

// ListBatches returns listing entries for all stored runs, newest first.
func (s *SQLiteStorage) ListBatches(ctx context.Context) ([]service.BatchInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, total_records, violation_count, high_risk_count
		FROM batches ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []service.BatchInfo
	for rows.Next() {
		var info service.BatchInfo
		if err := rows.Scan(&info.ID, &info.CreatedAt, &info.TotalRecords,
			&info.ViolationCount, &info.HighRiskCount); err != nil {
			return nil, fmt.Errorf("failed to scan batch row: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate batches: %w", err)
	}
	return infos, nil
}

// DeleteBatch removes a stored run and its memos.
func (s *SQLiteStorage) DeleteBatch(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM batches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete batch %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("batch %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func parseNullDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func marshalLevels(levels []model.ApprovalLevel) string {
	if len(levels) == 0 {
		return "[]"
	}
	data, err := json.Marshal(levels)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalLevels(data string) ([]model.ApprovalLevel, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var levels []model.ApprovalLevel
	if err := json.Unmarshal([]byte(data), &levels); err != nil {
		return nil, err
	}
	return levels, nil
}

func marshalStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalStrings(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, err
	}
	return values, nil
}
