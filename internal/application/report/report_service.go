package report

import (
	"context"
	"sort"

	"github.com/gemledger/backend/internal/domain/finance"
	"github.com/gemledger/backend/internal/domain/inventory"
	"github.com/gemledger/backend/internal/domain/report"
	"github.com/gemledger/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const dimExpenseSubHeads = "expense_sub_heads"

type subHeadLabel struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	HeadName string    `json:"head_name"`
}

type caratLabel struct {
	Name string
}

// ReportService builds aggregate reports. Storage returns grouped rows keyed
// by foreign key; the label join happens here, in memory, against the
// dimension lists. A deleted dimension row leaves the group in the report
// with its label omitted.
type ReportService struct {
	reportRepo  report.Repository
	subHeadRepo finance.ExpenseSubHeadRepository
	headRepo    finance.ExpenseHeadRepository
	caratRepo   inventory.CaratRepository
	cache       *cache.DimensionCache
	collator    *collate.Collator
}

// NewReportService creates a new ReportService. Labels are ordered with
// locale-aware collation under the given language tag.
func NewReportService(
	reportRepo report.Repository,
	subHeadRepo finance.ExpenseSubHeadRepository,
	headRepo finance.ExpenseHeadRepository,
	caratRepo inventory.CaratRepository,
	dimCache *cache.DimensionCache,
	tag language.Tag,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		subHeadRepo: subHeadRepo,
		headRepo:    headRepo,
		caratRepo:   caratRepo,
		cache:       dimCache,
		collator:    collate.New(tag, collate.IgnoreCase),
	}
}

// ExpenseSummary groups expenses by sub-head over the filtered range
func (s *ReportService) ExpenseSummary(ctx context.Context, tenantID uuid.UUID, filter ReportFilter) (*ExpenseSummaryResponse, error) {
	rows, err := s.reportRepo.ExpenseTotalsBySubHead(ctx, filter.ToFilter(tenantID))
	if err != nil {
		return nil, err
	}

	labels, err := s.subHeadLabels(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	groups := lo.Map(rows, func(row report.ExpenseAggregateRow, _ int) report.ExpenseSummaryGroup {
		group := report.ExpenseSummaryGroup{
			SubHeadID: row.SubHeadID,
			Total:     row.Total,
			Count:     row.Count,
		}
		if label, ok := labels[row.SubHeadID]; ok {
			group.SubHeadName = label.Name
			group.HeadName = label.HeadName
		}
		return group
	})
	sort.SliceStable(groups, func(i, j int) bool {
		return s.collator.CompareString(groups[i].SubHeadName, groups[j].SubHeadName) < 0
	})

	response := &ExpenseSummaryResponse{Groups: groups, GrandTotal: decimal.Zero}
	for _, g := range groups {
		response.GrandTotal = response.GrandTotal.Add(g.Total)
		response.Count += g.Count
	}
	return response, nil
}

// JewellerySummary groups jewellery stock by carat
func (s *ReportService) JewellerySummary(ctx context.Context, tenantID uuid.UUID, filter ReportFilter) (*JewellerySummaryResponse, error) {
	rows, err := s.reportRepo.JewelleryStockByCarat(ctx, filter.ToFilter(tenantID))
	if err != nil {
		return nil, err
	}

	labels, err := s.caratLabels(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	groups := lo.Map(rows, func(row report.JewelleryAggregateRow, _ int) report.JewellerySummaryGroup {
		group := report.JewellerySummaryGroup{
			CaratID:     row.CaratID,
			Quantity:    row.Quantity,
			TotalWeight: row.TotalWeight,
		}
		if label, ok := labels[row.CaratID]; ok {
			group.CaratName = label.Name
		}
		return group
	})
	sort.SliceStable(groups, func(i, j int) bool {
		return s.collator.CompareString(groups[i].CaratName, groups[j].CaratName) < 0
	})

	response := &JewellerySummaryResponse{Groups: groups, TotalWeight: decimal.Zero}
	for _, g := range groups {
		response.Quantity += g.Quantity
		response.TotalWeight = response.TotalWeight.Add(g.TotalWeight)
	}
	return response, nil
}

// Receivables totals invoices per status over the filtered range
func (s *ReportService) Receivables(ctx context.Context, tenantID uuid.UUID, filter ReportFilter) (*StatusSummaryResponse, error) {
	totals, err := s.reportRepo.InvoiceTotalsByStatus(ctx, filter.ToFilter(tenantID))
	if err != nil {
		return nil, err
	}
	return sumStatusTotals(totals), nil
}

// Payables totals bills per status over the filtered range
func (s *ReportService) Payables(ctx context.Context, tenantID uuid.UUID, filter ReportFilter) (*StatusSummaryResponse, error) {
	totals, err := s.reportRepo.BillTotalsByStatus(ctx, filter.ToFilter(tenantID))
	if err != nil {
		return nil, err
	}
	return sumStatusTotals(totals), nil
}

func sumStatusTotals(totals []report.StatusTotal) *StatusSummaryResponse {
	response := &StatusSummaryResponse{
		Totals:      totals,
		Amount:      decimal.Zero,
		PaidAmount:  decimal.Zero,
		Outstanding: decimal.Zero,
	}
	for _, t := range totals {
		response.Amount = response.Amount.Add(t.Amount)
		response.PaidAmount = response.PaidAmount.Add(t.PaidAmount)
		response.Outstanding = response.Outstanding.Add(t.Outstanding)
	}
	return response
}

// subHeadLabels fetches the sub-head dimension once, cache-aside, and folds
// in the parent head names.
func (s *ReportService) subHeadLabels(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]subHeadLabel, error) {
	if cached, ok := cache.GetList[subHeadLabel](ctx, s.cache, tenantID, dimExpenseSubHeads+":labels"); ok {
		return lo.SliceToMap(cached, func(l subHeadLabel) (uuid.UUID, subHeadLabel) {
			return l.ID, l
		}), nil
	}

	subHeads, err := s.subHeadRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	heads, err := s.headRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	headNames := lo.SliceToMap(heads, func(h finance.ExpenseHead) (uuid.UUID, string) {
		return h.ID, h.Name
	})
	entries := lo.Map(subHeads, func(sh finance.ExpenseSubHead, _ int) subHeadLabel {
		return subHeadLabel{ID: sh.ID, Name: sh.Name, HeadName: headNames[sh.HeadID]}
	})

	cache.SetList(ctx, s.cache, tenantID, dimExpenseSubHeads+":labels", entries)
	return lo.SliceToMap(entries, func(l subHeadLabel) (uuid.UUID, subHeadLabel) {
		return l.ID, l
	}), nil
}

func (s *ReportService) caratLabels(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]caratLabel, error) {
	carats, err := s.caratRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return lo.SliceToMap(carats, func(c inventory.Carat) (uuid.UUID, caratLabel) {
		return c.ID, caratLabel{Name: c.Name}
	}), nil
}
