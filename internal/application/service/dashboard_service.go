package service

import (
	"context"
	"sort"
	"time"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
	"github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// DashboardService provides dashboard statistics
type DashboardService struct {
	uow repository.UnitOfWork
	loc *time.Location
}

// NewDashboardService creates a new dashboard service. Days are cut in loc.
func NewDashboardService(uow repository.UnitOfWork, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{uow: uow, loc: loc}
}

// DashboardSummary covers the completed and voided sales of a date range
type DashboardSummary struct {
	From             string            `json:"from"`
	To               string            `json:"to"`
	TotalSales       decimal.Decimal   `json:"totalSales"`
	TransactionCount int               `json:"transactionCount"`
	AverageSale      decimal.Decimal   `json:"averageSale"`
	VoidCount        int               `json:"voidCount"`
	DailySales       []DailySalesPoint `json:"dailySales"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// Summary aggregates transactions dated from the start of fromDay to the end
// of toDay. Only Completed sales count towards totals.
func (s *DashboardService) Summary(ctx context.Context, fromDay, toDay time.Time) (*DashboardSummary, error) {
	start := startOfDay(fromDay.In(s.loc))
	end := startOfDay(toDay.In(s.loc)).AddDate(0, 0, 1)
	if end.Before(start) {
		return nil, apperror.NewBadRequestError("Date range ends before it starts")
	}

	var transactions []entity.Transaction
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		transactions, err = repos.Transactions.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		From:        start.Format(dayLayout),
		To:          end.AddDate(0, 0, -1).Format(dayLayout),
		TotalSales:  decimal.Zero,
		AverageSale: decimal.Zero,
		DailySales:  []DailySalesPoint{},
	}
	daily := make(map[string]decimal.Decimal)

	for i := range transactions {
		tx := &transactions[i]
		at := tx.DateTime.In(s.loc)
		if at.Before(start) || !at.Before(end) {
			continue
		}

		switch tx.Status {
		case enum.TransactionStatusVoided:
			summary.VoidCount++
		case enum.TransactionStatusCompleted:
			summary.TransactionCount++
			summary.TotalSales = summary.TotalSales.Add(tx.NetAmount)
			key := at.Format(dayLayout)
			daily[key] = daily[key].Add(tx.NetAmount)
		}
	}

	if summary.TransactionCount > 0 {
		summary.AverageSale = summary.TotalSales.Div(decimal.NewFromInt(int64(summary.TransactionCount)))
	}
	for day, total := range daily {
		summary.DailySales = append(summary.DailySales, DailySalesPoint{Date: day, Total: total})
	}
	sort.Slice(summary.DailySales, func(i, j int) bool {
		return summary.DailySales[i].Date < summary.DailySales[j].Date
	})
	return summary, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
