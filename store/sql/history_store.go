package sqlstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/catalyst-wireless/activation/core"
)

const historyTimestampLayout = "2006-01-02 15:04:05"

// HistoryStore records submitted activations and serves the transaction
// history projections.
type HistoryStore struct {
	db    *bun.DB
	repo  repository.Repository[*activationTransactionRecord]
	lines repository.Repository[*activationLineRecord]
}

// RecordedSubmission captures what the gateway accepted for one batch.
type RecordedSubmission struct {
	TransactionID int64
	Carrier       core.CarrierID
	CorpID        string
	FilterGroup   string
	ZipCode       string
	PayloadJSON   string
	SubmittedBy   string
	Lines         []core.ActivationLine
}

func (s *HistoryStore) SaveTransaction(ctx context.Context, sub RecordedSubmission) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: history store is not configured")
	}
	if sub.TransactionID == 0 {
		return fmt.Errorf("sqlstore: transaction id is required")
	}
	now := time.Now().UTC()
	txID := strconv.FormatInt(sub.TransactionID, 10)

	record := &activationTransactionRecord{
		TransactionID:  txID,
		Status:         "pending",
		StartTimestamp: now,
		TotalLines:     len(sub.Lines),
		PendingLines:   len(sub.Lines),
		Carrier:        string(sub.Carrier),
		CorpID:         strings.TrimSpace(sub.CorpID),
		FilterGroup:    sub.FilterGroup,
		ZipCode:        sub.ZipCode,
		PayloadJSON:    sub.PayloadJSON,
		SubmittedBy:    sub.SubmittedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.repo.Create(ctx, record); err != nil {
		return err
	}

	for _, line := range sub.Lines {
		lineRecord := &activationLineRecord{
			TransactionID: txID,
			ICCID:         line.ICCID,
			IMEI:          line.IMEI,
			Nickname:      line.Nickname,
			LineStatus:    "pending",
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if _, err := s.lines.Create(ctx, lineRecord); err != nil {
			return err
		}
	}
	return nil
}

// RecentTransactions returns the latest batches for a corp, newest first,
// with timestamps rendered in the requested timezone. Unknown timezone names
// leave timestamps in the stored zone.
func (s *HistoryStore) RecentTransactions(ctx context.Context, corpID string, timezone string, limit int) ([]core.ActivationTransaction, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: history store is not configured")
	}
	if limit <= 0 {
		limit = 20
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("corp_id", "=", strings.TrimSpace(corpID)),
		repository.OrderBy("start_timestamp DESC"),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Limit(limit)
		}),
	)
	if err != nil {
		return nil, err
	}

	location := resolveLocation(timezone)
	out := make([]core.ActivationTransaction, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain(location))
	}
	return out, nil
}

// TransactionDetails returns the per-line rows for one batch.
func (s *HistoryStore) TransactionDetails(ctx context.Context, transactionID string) ([]core.ActivationTransaction, error) {
	if s == nil || s.repo == nil || s.lines == nil {
		return nil, fmt.Errorf("sqlstore: history store is not configured")
	}
	txID := strings.TrimSpace(transactionID)
	if txID == "" {
		return nil, fmt.Errorf("sqlstore: transaction id is required")
	}
	headers, _, err := s.repo.List(ctx,
		repository.SelectBy("transaction_id", "=", txID),
	)
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, core.ErrInventoryRecordNotFound
	}
	header := headers[0].toDomain(time.UTC)

	lineRecords, _, err := s.lines.List(ctx,
		repository.SelectBy("transaction_id", "=", txID),
		repository.OrderBy("iccid ASC"),
	)
	if err != nil {
		return nil, err
	}
	out := make([]core.ActivationTransaction, 0, len(lineRecords))
	for _, line := range lineRecords {
		row := header
		row.ICCID = line.ICCID
		row.IMEI = line.IMEI
		row.Nickname = line.Nickname
		row.MDN = line.MDN
		row.IP = line.IP
		row.LineStatus = line.LineStatus
		out = append(out, row)
	}
	return out, nil
}

// TransactionCount returns the number of batches submitted by a corp.
func (s *HistoryStore) TransactionCount(ctx context.Context, corpID string) (int, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("sqlstore: history store is not configured")
	}
	return s.db.NewSelect().
		Model((*activationTransactionRecord)(nil)).
		Where("?TableAlias.corp_id = ?", strings.TrimSpace(corpID)).
		Count(ctx)
}

func (r *activationTransactionRecord) toDomain(location *time.Location) core.ActivationTransaction {
	if location == nil {
		location = time.UTC
	}
	return core.ActivationTransaction{
		TransactionID:   r.TransactionID,
		Status:          r.Status,
		StartTimestamp:  r.StartTimestamp.In(location).Format(historyTimestampLayout),
		TotalLines:      r.TotalLines,
		SuccessLines:    r.SuccessLines,
		FailedLines:     r.FailedLines,
		PendingLines:    r.PendingLines,
		Carrier:         r.Carrier,
		CorpID:          r.CorpID,
		CorpDescription: r.CorpDescription,
		FilterGroup:     r.FilterGroup,
		ZipCode:         r.ZipCode,
	}
}

// resolveLocation parses the caller's timezone. An unrecognized name keeps
// timestamps in the stored zone; no substitute timezone is applied.
func resolveLocation(timezone string) *time.Location {
	location, err := time.LoadLocation(strings.TrimSpace(timezone))
	if err != nil {
		return time.UTC
	}
	return location
}
