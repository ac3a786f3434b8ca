package report

import (
	"sort"
	"time"

	"assetdesk/internal/domain"
)

// DashboardStats summarizes the live state of the inventory and the request
// queue for the landing page.
type DashboardStats struct {
	TotalItems       int     `json:"total_items"`
	AvailableItems   int     `json:"available_items"`
	BorrowedItems    int     `json:"borrowed_items"`
	MaintenanceItems int     `json:"maintenance_items"`
	RetiredItems     int     `json:"retired_items"`
	PendingRequests  int     `json:"pending_requests"`
	ActiveRequests   int     `json:"active_requests"`
	OverdueRequests  int     `json:"overdue_requests"`
	UtilizationRate  float64 `json:"utilization_rate"`
	ApprovalRate     float64 `json:"approval_rate"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type ConditionCount struct {
	Condition string `json:"condition"`
	Count     int    `json:"count"`
}

type CategoryValue struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type AssetValues struct {
	Total      float64         `json:"total"`
	ByCategory []CategoryValue `json:"by_category"`
}

type RankedEntry struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Period names a reporting window ending at now.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	}
	return false
}

// Start returns the beginning of the window for a report generated at now.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	case PeriodQuarter:
		return now.AddDate(0, -3, 0)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	}
	return time.Time{}
}

// ComputeDashboard walks the item and request snapshots once. Overdue is
// derived from the stored status and the deadline, never read from storage.
func ComputeDashboard(items []domain.InventoryItem, requests []domain.BorrowRequest, now time.Time) DashboardStats {
	var st DashboardStats
	st.TotalItems = len(items)

	for _, it := range items {
		switch it.Status {
		case domain.ItemAvailable:
			st.AvailableItems++
		case domain.ItemBorrowed:
			st.BorrowedItems++
		case domain.ItemMaintenance:
			st.MaintenanceItems++
		case domain.ItemRetired:
			st.RetiredItems++
		}
	}

	approved := 0
	for _, r := range requests {
		switch domain.EffectiveStatus(r.Status, r.ExpectedReturnDate, now) {
		case domain.RequestPending:
			st.PendingRequests++
		case domain.RequestActive:
			st.ActiveRequests++
		case domain.RequestOverdue:
			st.ActiveRequests++
			st.OverdueRequests++
		}
		if r.Status == domain.RequestActive || r.Status == domain.RequestReturned {
			approved++
		}
	}

	if st.TotalItems > 0 {
		st.UtilizationRate = float64(st.BorrowedItems) / float64(st.TotalItems)
	}
	if len(requests) > 0 {
		st.ApprovalRate = float64(approved) / float64(len(requests))
	}
	return st
}

func CountByCategory(items []domain.InventoryItem) []CategoryCount {
	counts := map[string]int{}
	order := []string{}
	for _, it := range items {
		if _, seen := counts[it.Category]; !seen {
			order = append(order, it.Category)
		}
		counts[it.Category]++
	}

	out := make([]CategoryCount, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func CountByCondition(items []domain.InventoryItem) []ConditionCount {
	counts := map[domain.ItemCondition]int{}
	for _, it := range items {
		counts[it.Condition]++
	}

	out := []ConditionCount{}
	for _, c := range []domain.ItemCondition{
		domain.ConditionExcellent,
		domain.ConditionGood,
		domain.ConditionFair,
		domain.ConditionPoor,
	} {
		if counts[c] > 0 {
			out = append(out, ConditionCount{Condition: string(c), Count: counts[c]})
		}
	}
	return out
}

// ComputeAssetValues sums purchase prices overall and per category. Items
// without a recorded price contribute zero.
func ComputeAssetValues(items []domain.InventoryItem) AssetValues {
	values := map[string]float64{}
	order := []string{}
	var total float64
	for _, it := range items {
		if _, seen := values[it.Category]; !seen {
			order = append(order, it.Category)
		}
		values[it.Category] += it.PurchasePrice
		total += it.PurchasePrice
	}

	byCat := make([]CategoryValue, 0, len(order))
	for _, c := range order {
		byCat = append(byCat, CategoryValue{Category: c, Value: values[c]})
	}
	sort.SliceStable(byCat, func(i, j int) bool { return byCat[i].Value > byCat[j].Value })
	return AssetValues{Total: total, ByCategory: byCat}
}

// TopBorrowedItems ranks items by how many requests reference them,
// descending, ties kept in first-seen order, truncated to n.
func TopBorrowedItems(requests []domain.BorrowRequest, items []domain.InventoryItem, n int) []RankedEntry {
	names := make(map[int64]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
	}

	counts := map[int64]int{}
	order := []int64{}
	for _, r := range requests {
		if _, seen := counts[r.ItemID]; !seen {
			order = append(order, r.ItemID)
		}
		counts[r.ItemID]++
	}
	return rank(order, counts, names, n)
}

// TopBorrowers ranks users by submitted requests.
func TopBorrowers(requests []domain.BorrowRequest, users []domain.User, n int) []RankedEntry {
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	counts := map[int64]int{}
	order := []int64{}
	for _, r := range requests {
		if _, seen := counts[r.BorrowerID]; !seen {
			order = append(order, r.BorrowerID)
		}
		counts[r.BorrowerID]++
	}
	return rank(order, counts, names, n)
}

// TopActiveUsers ranks users by audit log entries.
func TopActiveUsers(logs []domain.AuditLog, users []domain.User, n int) []RankedEntry {
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	counts := map[int64]int{}
	order := []int64{}
	for _, l := range logs {
		if _, seen := counts[l.UserID]; !seen {
			order = append(order, l.UserID)
		}
		counts[l.UserID]++
	}
	return rank(order, counts, names, n)
}

// FilterRequestsSince keeps requests submitted at or after the cutoff.
func FilterRequestsSince(requests []domain.BorrowRequest, since time.Time) []domain.BorrowRequest {
	out := make([]domain.BorrowRequest, 0, len(requests))
	for _, r := range requests {
		if !r.RequestedDate.Before(since) {
			out = append(out, r)
		}
	}
	return out
}

// FilterLogsSince keeps audit entries recorded at or after the cutoff.
func FilterLogsSince(logs []domain.AuditLog, since time.Time) []domain.AuditLog {
	out := make([]domain.AuditLog, 0, len(logs))
	for _, l := range logs {
		if !l.Timestamp.Before(since) {
			out = append(out, l)
		}
	}
	return out
}

func rank(order []int64, counts map[int64]int, names map[int64]string, n int) []RankedEntry {
	out := make([]RankedEntry, 0, len(order))
	for _, id := range order {
		out = append(out, RankedEntry{ID: id, Label: names[id], Count: counts[id]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
