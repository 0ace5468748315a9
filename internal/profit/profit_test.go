package profit

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func revenue(amount string, on time.Time) Transaction {
	return Transaction{Type: Revenue, Amount: dec(amount), Date: on}
}

func expense(amount string, on time.Time) Transaction {
	return Transaction{Type: Expense, Amount: dec(amount), Date: on}
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

func TestAppProfit_Empty(t *testing.T) {
	assert.True(t, AppProfit(nil, nil).IsZero())
	assert.True(t, AppProfit([]Transaction{}, nil).IsZero())
}

func TestAppProfit_OnlyRevenue(t *testing.T) {
	txs := []Transaction{
		revenue("10.10", date(2026, 1, 1)),
		revenue("0.90", date(2026, 1, 2)),
		revenue("89.00", date(2026, 1, 3)),
	}
	assert.True(t, dec("100").Equal(AppProfit(txs, nil)))
}

func TestAppProfit_OnlyExpense(t *testing.T) {
	txs := []Transaction{
		expense("12.34", date(2026, 1, 1)),
		expense("7.66", date(2026, 1, 2)),
	}
	assert.True(t, dec("-20").Equal(AppProfit(txs, nil)))
}

func TestAppProfit_CutoffIsInclusive(t *testing.T) {
	cutoff := date(2026, 3, 10)
	txs := []Transaction{
		revenue("40", date(2026, 3, 9)),
		expense("5", date(2026, 3, 10)),
		revenue("1000", date(2026, 3, 11)),
	}
	assert.True(t, dec("35").Equal(AppProfit(txs, &cutoff)))
	assert.True(t, dec("1035").Equal(AppProfit(txs, nil)))
}

func TestAppProfit_CutoffComparesCalendarDays(t *testing.T) {
	cutoff := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	txs := []Transaction{revenue("5", time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC))}
	assert.True(t, dec("5").Equal(AppProfit(txs, &cutoff)))
}

func TestBestAppProfit(t *testing.T) {
	_, ok := BestAppProfit(nil, nil)
	assert.False(t, ok)

	first := App{ID: newID(), Name: "first", Transactions: []Transaction{revenue("30", date(2026, 1, 1))}}
	second := App{ID: newID(), Name: "second", Transactions: []Transaction{revenue("30", date(2026, 1, 2))}}
	loser := App{ID: newID(), Name: "loser", Transactions: []Transaction{expense("3", date(2026, 1, 2))}}

	best, ok := BestAppProfit([]App{loser, first, second}, nil)
	require.True(t, ok)
	assert.Equal(t, first.ID, best.AppID)
	assert.Equal(t, "first", best.AppName)
	assert.True(t, dec("30").Equal(best.Profit))
}

func TestBestAppProfit_AllNegative(t *testing.T) {
	a := App{ID: newID(), Transactions: []Transaction{expense("3", date(2026, 1, 1))}}
	b := App{ID: newID(), Transactions: []Transaction{expense("1", date(2026, 1, 1))}}

	best, ok := BestAppProfit([]App{a, b}, nil)
	require.True(t, ok)
	assert.Equal(t, b.ID, best.AppID)
	assert.True(t, dec("-1").Equal(best.Profit))
}

func TestRankApps_SortedNonIncreasing(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		apps := make([]App, 0, 15)
		for i := 0; i < 15; i++ {
			var txs []Transaction
			n := rng.Intn(5)
			for j := 0; j < n; j++ {
				amount := decimal.New(rng.Int63n(100000), -2)
				kind := Revenue
				if rng.Intn(2) == 0 {
					kind = Expense
				}
				txs = append(txs, Transaction{Type: kind, Amount: amount, Date: date(2026, 1, 1+rng.Intn(28))})
			}
			apps = append(apps, App{ID: newID(), OwnerID: newID(), Transactions: txs})
		}

		rankings := RankApps(apps, nil, nil)
		require.Len(t, rankings, len(apps))
		for i := 1; i < len(rankings); i++ {
			assert.False(t, rankings[i].Profit.GreaterThan(rankings[i-1].Profit))
		}
	}
}

func TestRankApps_TiesKeepInputOrder(t *testing.T) {
	a := App{ID: newID(), Name: "a"}
	b := App{ID: newID(), Name: "b"}
	c := App{ID: newID(), Name: "c", Transactions: []Transaction{revenue("1", date(2026, 1, 1))}}

	rankings := RankApps([]App{a, b, c}, nil, nil)
	require.Len(t, rankings, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{rankings[0].AppName, rankings[1].AppName, rankings[2].AppName})
}

func TestRankApps_UnknownOwner(t *testing.T) {
	owner := Participant{ID: newID(), Name: "Ada"}
	known := App{ID: newID(), OwnerID: owner.ID, Name: "known"}
	orphan := App{ID: newID(), OwnerID: newID(), Name: "orphan"}

	rankings := RankApps([]App{known, orphan}, Names([]Participant{owner}), nil)
	require.Len(t, rankings, 2)
	assert.Equal(t, "Ada", rankings[0].ParticipantName)
	assert.Equal(t, UnknownName, rankings[1].ParticipantName)
}

func TestRankParticipants_NoAppsAndAdminsExcluded(t *testing.T) {
	withApp := Participant{ID: newID(), Name: "has app", Role: access.RoleParticipant}
	noApps := Participant{ID: newID(), Name: "no apps", Role: access.RoleParticipant}
	admin := Participant{ID: newID(), Name: "admin", Role: access.RoleAdmin}

	apps := []App{
		{ID: newID(), OwnerID: withApp.ID, Name: "small", Transactions: []Transaction{revenue("1", date(2026, 1, 1))}},
		{ID: newID(), OwnerID: admin.ID, Name: "admin app", Transactions: []Transaction{revenue("1000", date(2026, 1, 1))}},
	}

	rankings := RankParticipants([]Participant{noApps, admin, withApp}, apps, nil)
	require.Len(t, rankings, 1)
	assert.Equal(t, withApp.ID, rankings[0].ParticipantID)
	assert.Equal(t, "small", rankings[0].BestAppName)
}

func TestRankParticipants_UsesBestApp(t *testing.T) {
	p := Participant{ID: newID(), Name: "p"}
	worse := App{ID: newID(), OwnerID: p.ID, Name: "worse", Transactions: []Transaction{revenue("5", date(2026, 1, 1))}}
	better := App{ID: newID(), OwnerID: p.ID, Name: "better", Transactions: []Transaction{revenue("9", date(2026, 1, 1))}}

	rankings := RankParticipants([]Participant{p}, []App{worse, better}, nil)
	require.Len(t, rankings, 1)
	assert.Equal(t, better.ID, rankings[0].BestAppID)
	assert.True(t, dec("9").Equal(rankings[0].Profit))
}

func TestProfitHistory_OnePointPerDateAscending(t *testing.T) {
	txs := []Transaction{
		expense("5", date(2026, 2, 3)),
		revenue("10", date(2026, 2, 1)),
		revenue("7", date(2026, 2, 3)),
		revenue("1", time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC)),
	}

	history := ProfitHistory(txs)
	require.Len(t, history, 2)
	assert.Equal(t, date(2026, 2, 1), history[0].Date)
	assert.True(t, dec("11").Equal(history[0].CumulativeProfit))
	assert.Equal(t, date(2026, 2, 3), history[1].Date)
	assert.True(t, dec("13").Equal(history[1].CumulativeProfit))
}

func TestProfitHistory_CumulativeSums(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var txs []Transaction
	net := map[time.Time]decimal.Decimal{}
	for i := 0; i < 60; i++ {
		d := date(2026, 4, 1+rng.Intn(20))
		amount := decimal.New(rng.Int63n(10000), -2)
		if rng.Intn(3) == 0 {
			txs = append(txs, Transaction{Type: Expense, Amount: amount, Date: d})
			net[d] = net[d].Sub(amount)
		} else {
			txs = append(txs, Transaction{Type: Revenue, Amount: amount, Date: d})
			net[d] = net[d].Add(amount)
		}
	}

	history := ProfitHistory(txs)
	require.Len(t, history, len(net))
	running := decimal.Zero
	for i, point := range history {
		if i > 0 {
			assert.True(t, point.Date.After(history[i-1].Date))
		}
		running = running.Add(net[point.Date])
		assert.True(t, running.Equal(point.CumulativeProfit), "point %d", i)
	}
	assert.True(t, AppProfit(txs, nil).Equal(history[len(history)-1].CumulativeProfit))
}

func TestProfitHistory_Empty(t *testing.T) {
	assert.Empty(t, ProfitHistory(nil))
}

// Scenario: revenue then expense on separate days.
func TestScenario_AppProfitAndHistory(t *testing.T) {
	txs := []Transaction{
		revenue("100", date(2026, 2, 1)),
		expense("30", date(2026, 2, 5)),
	}

	assert.True(t, dec("70").Equal(AppProfit(txs, nil)))

	history := ProfitHistory(txs)
	require.Len(t, history, 2)
	assert.Equal(t, date(2026, 2, 1), history[0].Date)
	assert.True(t, dec("100").Equal(history[0].CumulativeProfit))
	assert.Equal(t, date(2026, 2, 5), history[1].Date)
	assert.True(t, dec("70").Equal(history[1].CumulativeProfit))
}

// Scenario: one profitable and one losing app with different owners.
func TestScenario_TwoAppsTwoParticipants(t *testing.T) {
	p1 := Participant{ID: newID(), Name: "one", Role: access.RoleParticipant}
	p2 := Participant{ID: newID(), Name: "two", Role: access.RoleParticipant}
	losing := App{ID: newID(), OwnerID: p2.ID, Name: "losing", Transactions: []Transaction{expense("10", date(2026, 1, 2))}}
	winning := App{ID: newID(), OwnerID: p1.ID, Name: "winning", Transactions: []Transaction{revenue("50", date(2026, 1, 2))}}
	participants := []Participant{p2, p1}
	apps := []App{losing, winning}

	appRankings := RankApps(apps, Names(participants), nil)
	require.Len(t, appRankings, 2)
	assert.Equal(t, winning.ID, appRankings[0].AppID)
	assert.True(t, dec("50").Equal(appRankings[0].Profit))
	assert.Equal(t, "one", appRankings[0].ParticipantName)
	assert.Equal(t, losing.ID, appRankings[1].AppID)
	assert.True(t, dec("-10").Equal(appRankings[1].Profit))

	participantRankings := RankParticipants(participants, apps, nil)
	require.Len(t, participantRankings, 2)
	assert.Equal(t, p1.ID, participantRankings[0].ParticipantID)
	assert.Equal(t, winning.ID, participantRankings[0].BestAppID)
	assert.Equal(t, p2.ID, participantRankings[1].ParticipantID)
	assert.Equal(t, losing.ID, participantRankings[1].BestAppID)
}

// Scenario: a deleted app contributes nothing.
func TestScenario_DeletedAppHasNoProfit(t *testing.T) {
	assert.True(t, AppProfit(nil, nil).IsZero())
	history := ProfitHistory(nil)
	assert.Empty(t, history)
}

func TestParseTransactionType(t *testing.T) {
	got, err := ParseTransactionType("revenue")
	require.NoError(t, err)
	assert.Equal(t, Revenue, got)

	_, err = ParseTransactionType("Revenue")
	assert.Error(t, err)
}
