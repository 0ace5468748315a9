package monthlywinner

import (
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/fields"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

const monthLayout = "2006-01"

// MonthlyWinner is the API response model for a stored monthly award.
type MonthlyWinner struct {
	Month        string `json:"month" doc:"Month in YYYY-MM form"`
	WinnerType   string `json:"winnerType" enum:"app,participant" doc:"Award kind"`
	WinnerID     string `json:"winnerId" doc:"App or participant UUID"`
	WinnerName   string `json:"winnerName" doc:"Name at calculation time"`
	Profit       string `json:"profit" doc:"Profit as of the 10th of the month"`
	CalculatedAt string `json:"calculatedAt" doc:"RFC3339 time of the last calculation"`
}

func fromService(w service.MonthlyWinner) MonthlyWinner {
	return MonthlyWinner{
		Month:        w.Month.Format(monthLayout),
		WinnerType:   w.WinnerType,
		WinnerID:     w.WinnerID.String(),
		WinnerName:   w.WinnerName,
		Profit:       fields.Money(w.Profit),
		CalculatedAt: fields.Timestamp(w.CalculatedAt),
	}
}

func fromServiceList(winners []service.MonthlyWinner) []MonthlyWinner {
	out := make([]MonthlyWinner, len(winners))
	for i, w := range winners {
		out[i] = fromService(w)
	}
	return out
}
