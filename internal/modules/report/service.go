package report

import (
	"context"
	"errors"
	"time"

	"assetdesk/internal/domain"
)

var ErrInvalidPeriod = errors.New("invalid report period")

const (
	dashboardTopN = 5
	reportTopN    = 10
)

// Dashboard is the landing-page payload.
type Dashboard struct {
	Stats        DashboardStats   `json:"stats"`
	Categories   []CategoryCount  `json:"categories"`
	Conditions   []ConditionCount `json:"conditions"`
	TopItems     []RankedEntry    `json:"top_items"`
	OverdueItems []OverdueEntry   `json:"overdue_items"`
}

type OverdueEntry struct {
	RequestID    int64     `json:"request_id"`
	ItemID       int64     `json:"item_id"`
	ItemName     string    `json:"item_name"`
	BorrowerID   int64     `json:"borrower_id"`
	BorrowerName string    `json:"borrower_name"`
	DueDate      time.Time `json:"due_date"`
}

// Report is the detailed payload for a chosen period.
type Report struct {
	Period       Period         `json:"period"`
	Since        time.Time      `json:"since"`
	Stats        DashboardStats `json:"stats"`
	AssetValues  AssetValues    `json:"asset_values"`
	TopItems     []RankedEntry  `json:"top_items"`
	TopBorrowers []RankedEntry  `json:"top_borrowers"`
	ActiveUsers  []RankedEntry  `json:"active_users"`
}

type Service struct {
	items    ItemRepository
	requests RequestRepository
	users    UserRepository
	audit    AuditReader
	now      func() time.Time
}

func NewService(items ItemRepository, requests RequestRepository, users UserRepository, audit AuditReader) *Service {
	return &Service{
		items:    items,
		requests: requests,
		users:    users,
		audit:    audit,
		now:      time.Now,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &Dashboard{
		Stats:        ComputeDashboard(items, requests, now),
		Categories:   truncateCategories(CountByCategory(items), dashboardTopN),
		Conditions:   CountByCondition(items),
		TopItems:     TopBorrowedItems(requests, items, dashboardTopN),
		OverdueItems: overdueEntries(requests, items, users, now),
	}, nil
}

func (s *Service) Report(ctx context.Context, period Period) (*Report, error) {
	if !period.Valid() {
		return nil, ErrInvalidPeriod
	}

	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	since := period.Start(now)

	logs, err := s.audit.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}

	windowed := FilterRequestsSince(requests, since)
	return &Report{
		Period:       period,
		Since:        since,
		Stats:        ComputeDashboard(items, windowed, now),
		AssetValues:  ComputeAssetValues(items),
		TopItems:     TopBorrowedItems(windowed, items, reportTopN),
		TopBorrowers: TopBorrowers(windowed, users, reportTopN),
		ActiveUsers:  TopActiveUsers(logs, users, reportTopN),
	}, nil
}

func overdueEntries(requests []domain.BorrowRequest, items []domain.InventoryItem, users []domain.User, now time.Time) []OverdueEntry {
	itemNames := make(map[int64]string, len(items))
	for _, it := range items {
		itemNames[it.ID] = it.Name
	}
	userNames := make(map[int64]string, len(users))
	for _, u := range users {
		userNames[u.ID] = u.Name
	}

	out := []OverdueEntry{}
	for _, r := range requests {
		if !r.IsOverdue(now) {
			continue
		}
		out = append(out, OverdueEntry{
			RequestID:    r.ID,
			ItemID:       r.ItemID,
			ItemName:     itemNames[r.ItemID],
			BorrowerID:   r.BorrowerID,
			BorrowerName: userNames[r.BorrowerID],
			DueDate:      r.ExpectedReturnDate,
		})
	}
	return out
}

func truncateCategories(counts []CategoryCount, n int) []CategoryCount {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}
