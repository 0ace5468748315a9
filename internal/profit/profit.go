// Package profit reduces already-fetched apps, participants and transactions
// into profit figures, rankings, history series and monthly winners.
//
// Nothing in this package performs I/O. Dates are compared as calendar days:
// every date is normalised with Day before it is compared.
package profit

import (
	"fmt"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
)

// UnknownName is reported for an app whose owner is not among the participants.
const UnknownName = "Unknown"

// TransactionType is either revenue or expense.
type TransactionType string

const (
	Revenue TransactionType = "revenue"
	Expense TransactionType = "expense"
)

// ParseTransactionType converts a stored or submitted string into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case Revenue, Expense:
		return TransactionType(s), nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Transaction is the part of a stored transaction that contributes to profit.
type Transaction struct {
	Type   TransactionType
	Amount decimal.Decimal
	Date   time.Time
}

// App is an app together with all of its transactions.
type App struct {
	ID           uuid.UUID
	Name         string
	OwnerID      uuid.UUID
	Transactions []Transaction
}

// Participant is the ranking-relevant view of a participant.
type Participant struct {
	ID   uuid.UUID
	Name string
	Role access.Role
}

// BestApp is the most profitable app of one participant.
type BestApp struct {
	AppID   uuid.UUID
	AppName string
	Profit  decimal.Decimal
}

// AppRanking is one row of the system-wide app leaderboard.
type AppRanking struct {
	AppID           uuid.UUID
	AppName         string
	ParticipantID   uuid.UUID
	ParticipantName string
	Profit          decimal.Decimal
}

// ParticipantRanking is one row of the participant leaderboard.
type ParticipantRanking struct {
	ParticipantID   uuid.UUID
	ParticipantName string
	BestAppID       uuid.UUID
	BestAppName     string
	Profit          decimal.Decimal
}

// HistoryPoint is the cumulative profit at the end of a day that had transactions.
type HistoryPoint struct {
	Date             time.Time
	CumulativeProfit decimal.Decimal
}

// Day truncates t to midnight UTC of its own calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// OnOrBefore reports whether the calendar date of t is not after the calendar date of cutoff.
func OnOrBefore(t, cutoff time.Time) bool {
	return !Day(t).After(Day(cutoff))
}

// AppProfit returns revenue minus expenses. With a cutoff only transactions
// dated on or before the cutoff date count.
func AppProfit(transactions []Transaction, cutoff *time.Time) decimal.Decimal {
	revenue := decimal.Zero
	expense := decimal.Zero
	for _, t := range transactions {
		if cutoff != nil && !OnOrBefore(t.Date, *cutoff) {
			continue
		}
		switch t.Type {
		case Revenue:
			revenue = revenue.Add(t.Amount)
		case Expense:
			expense = expense.Add(t.Amount)
		}
	}
	return revenue.Sub(expense)
}

// BestAppProfit returns the app with the highest profit. The first app
// reaching the maximum wins. ok is false when apps is empty.
func BestAppProfit(apps []App, cutoff *time.Time) (best BestApp, ok bool) {
	for _, app := range apps {
		p := AppProfit(app.Transactions, cutoff)
		if !ok || p.GreaterThan(best.Profit) {
			best = BestApp{AppID: app.ID, AppName: app.Name, Profit: p}
			ok = true
		}
	}
	return best, ok
}

// Names indexes participant display names by id.
func Names(participants []Participant) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}
	return names
}

// RankApps ranks every app in the system by profit, highest first.
// Equal profits keep their input order.
func RankApps(apps []App, participantNames map[uuid.UUID]string, cutoff *time.Time) []AppRanking {
	rankings := make([]AppRanking, 0, len(apps))
	for _, app := range apps {
		name, found := participantNames[app.OwnerID]
		if !found {
			name = UnknownName
		}
		rankings = append(rankings, AppRanking{
			AppID:           app.ID,
			AppName:         app.Name,
			ParticipantID:   app.OwnerID,
			ParticipantName: name,
			Profit:          AppProfit(app.Transactions, cutoff),
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Profit.GreaterThan(rankings[j].Profit)
	})
	return rankings
}

// RankParticipants ranks participants by the profit of their best app.
// Admins and participants without apps get no entry.
func RankParticipants(participants []Participant, apps []App, cutoff *time.Time) []ParticipantRanking {
	owned := make(map[uuid.UUID][]App)
	for _, app := range apps {
		owned[app.OwnerID] = append(owned[app.OwnerID], app)
	}

	rankings := make([]ParticipantRanking, 0, len(participants))
	for _, p := range participants {
		if p.Role.IsAdmin() {
			continue
		}
		best, ok := BestAppProfit(owned[p.ID], cutoff)
		if !ok {
			continue
		}
		rankings = append(rankings, ParticipantRanking{
			ParticipantID:   p.ID,
			ParticipantName: p.Name,
			BestAppID:       best.AppID,
			BestAppName:     best.AppName,
			Profit:          best.Profit,
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Profit.GreaterThan(rankings[j].Profit)
	})
	return rankings
}

// ProfitHistory emits one point per distinct transaction date, in ascending
// date order, carrying the running profit. Days without transactions produce
// no point.
func ProfitHistory(transactions []Transaction) []HistoryPoint {
	type bucket struct {
		revenue decimal.Decimal
		expense decimal.Decimal
	}
	buckets := make(map[time.Time]*bucket)
	for _, t := range transactions {
		d := Day(t.Date)
		b, ok := buckets[d]
		if !ok {
			b = &bucket{revenue: decimal.Zero, expense: decimal.Zero}
			buckets[d] = b
		}
		if t.Type == Revenue {
			b.revenue = b.revenue.Add(t.Amount)
		} else {
			b.expense = b.expense.Add(t.Amount)
		}
	}

	dates := make([]time.Time, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	history := make([]HistoryPoint, 0, len(dates))
	cumulative := decimal.Zero
	for _, d := range dates {
		b := buckets[d]
		cumulative = cumulative.Add(b.revenue.Sub(b.expense))
		history = append(history, HistoryPoint{Date: d, CumulativeProfit: cumulative})
	}
	return history
}
