package profit

import (
	"time"
)

// CutoffDay is the day of the month on which monthly winners are decided.
const CutoffDay = 10

// Winners holds the monthly winners. Either may be nil when nobody had a
// positive profit at the cutoff.
type Winners struct {
	Month       time.Time
	Cutoff      time.Time
	App         *AppRanking
	Participant *ParticipantRanking
}

// GrandWinnerResult is the final challenge result shown once the announcement date has passed.
type GrandWinnerResult struct {
	App         AppRanking
	Participant ParticipantRanking
}

// MonthStart returns the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Cutoff returns the 10th of the month containing month.
func Cutoff(month time.Time) time.Time {
	return time.Date(month.Year(), month.Month(), CutoffDay, 0, 0, 0, 0, time.UTC)
}

// MonthlyWinners ranks apps and participants as of the 10th of month and
// returns the leaders whose profit is strictly positive.
func MonthlyWinners(month time.Time, apps []App, participants []Participant) Winners {
	cutoff := Cutoff(month)
	winners := Winners{Month: MonthStart(month), Cutoff: cutoff}

	appRankings := RankApps(apps, Names(participants), &cutoff)
	if len(appRankings) > 0 && appRankings[0].Profit.IsPositive() {
		top := appRankings[0]
		winners.App = &top
	}

	participantRankings := RankParticipants(participants, apps, &cutoff)
	if len(participantRankings) > 0 && participantRankings[0].Profit.IsPositive() {
		top := participantRankings[0]
		winners.Participant = &top
	}

	return winners
}

// MonthsToMaterialize lists the first day of every month from the month of
// challengeStart through the month of now whose cutoff day has been reached.
func MonthsToMaterialize(challengeStart, now time.Time) []time.Time {
	today := Day(now)
	var months []time.Time
	for m := MonthStart(challengeStart); !m.After(today); m = m.AddDate(0, 1, 0) {
		if !Cutoff(m).After(today) {
			months = append(months, m)
		}
	}
	return months
}

// GrandWinner returns the leaders of both rankings once now has reached
// announceDate. It returns nil before that, or when either ranking is empty.
func GrandWinner(now, announceDate time.Time, apps []AppRanking, participants []ParticipantRanking) *GrandWinnerResult {
	if now.Before(announceDate) || len(apps) == 0 || len(participants) == 0 {
		return nil
	}
	return &GrandWinnerResult{App: apps[0], Participant: participants[0]}
}
