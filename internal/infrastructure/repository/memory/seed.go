package memory

import (
	"time"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/match"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/team"
)

const SeedSeason = "2024/2025"

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "lv-talsi", Code: "TAL", Name: "FK Talsi Krauzers"},
		{ID: "lv-kekava", Code: "KEK", Name: "SK Ķekava"},
		{ID: "lv-lielvarde", Code: "LIE", Name: "FBK Lielvārde"},
		{ID: "lv-valmiera", Code: "VAL", Name: "FK Valmiera"},
		{ID: "lv-rubene", Code: "RUB", Name: "Rubene"},
		{ID: "lv-ulbroka", Code: "ULB", Name: "FK Ulbroka"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "lv-g-01", TeamID: "lv-talsi", Name: "Kristaps Egle", Position: player.PositionGoalie, Stats: player.Stats{Games: 14, Saves: 310, GoalsAgainst: 42}, Price: 14, PriceComputed: 14},
		{ID: "lv-g-02", TeamID: "lv-kekava", Name: "Mārtiņš Vītols", Position: player.PositionGoalie, Stats: player.Stats{Games: 12, Saves: 248, GoalsAgainst: 51}, Price: 9, PriceComputed: 9},
		{ID: "lv-d-01", TeamID: "lv-talsi", Name: "Jānis Bērziņš", Position: player.PositionDefender, Stats: player.Stats{Games: 14, Goals: 6, Assists: 11, PenaltyMinutes: 8}, Price: 11, PriceComputed: 11},
		{ID: "lv-d-02", TeamID: "lv-kekava", Name: "Pēteris Ozols", Position: player.PositionDefender, Stats: player.Stats{Games: 13, Goals: 3, Assists: 8, PenaltyMinutes: 12}, Price: 8.5, PriceComputed: 8.5},
		{ID: "lv-d-03", TeamID: "lv-lielvarde", Name: "Andris Kalniņš", Position: player.PositionDefender, Stats: player.Stats{Games: 14, Goals: 2, Assists: 5, PenaltyMinutes: 6}, Price: 6.5, PriceComputed: 6.5},
		{ID: "lv-d-04", TeamID: "lv-valmiera", Name: "Edgars Liepa", Position: player.PositionDefender, Stats: player.Stats{Games: 11, Goals: 1, Assists: 4, PenaltyMinutes: 4}, Price: 5.5, PriceComputed: 5.5},
		{ID: "lv-a-01", TeamID: "lv-talsi", Name: "Roberts Ziemelis", Position: player.PositionAttacker, Stats: player.Stats{Games: 14, Goals: 21, Assists: 14, PenaltyMinutes: 10}, Price: 17.5, PriceComputed: 17.5},
		{ID: "lv-a-02", TeamID: "lv-kekava", Name: "Artūrs Krūmiņš", Position: player.PositionAttacker, Stats: player.Stats{Games: 14, Goals: 17, Assists: 9, PenaltyMinutes: 2}, Price: 15, PriceComputed: 15},
		{ID: "lv-a-03", TeamID: "lv-lielvarde", Name: "Gatis Priede", Position: player.PositionAttacker, Stats: player.Stats{Games: 13, Goals: 12, Assists: 12, PenaltyMinutes: 6}, Price: 13.5, PriceComputed: 13.5},
		{ID: "lv-a-04", TeamID: "lv-valmiera", Name: "Toms Zariņš", Position: player.PositionAttacker, Stats: player.Stats{Games: 14, Goals: 10, Assists: 7, PenaltyMinutes: 14}, Price: 11.5, PriceComputed: 11.5},
		{ID: "lv-a-05", TeamID: "lv-rubene", Name: "Kaspars Ābols", Position: player.PositionAttacker, Stats: player.Stats{Games: 12, Goals: 8, Assists: 5, PenaltyMinutes: 4}, Price: 9.5, PriceComputed: 9.5},
		{ID: "lv-a-06", TeamID: "lv-ulbroka", Name: "Dāvis Strauts", Position: player.PositionAttacker, Stats: player.Stats{Games: 14, Goals: 5, Assists: 6, PenaltyMinutes: 8}, Price: 7.5, PriceComputed: 7.5},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:         "lv-m-001",
			ExternalID: "18311",
			Season:     SeedSeason,
			Date:       time.Date(2024, 9, 14, 16, 0, 0, 0, time.UTC),
			HomeTeamID: "lv-talsi",
			AwayTeamID: "lv-kekava",
			HomeScore:  6,
			AwayScore:  4,
			Status:     match.StatusFinished,
			Venue:      "Talsu sporta halle",
		},
		{
			ID:         "lv-m-002",
			ExternalID: "18312",
			Season:     SeedSeason,
			Date:       time.Date(2024, 9, 14, 19, 0, 0, 0, time.UTC),
			HomeTeamID: "lv-lielvarde",
			AwayTeamID: "lv-valmiera",
			HomeScore:  3,
			AwayScore:  3,
			Status:     match.StatusFinished,
			Venue:      "Lielvārdes sporta centrs",
		},
		{
			ID:         "lv-m-003",
			Season:     SeedSeason,
			Date:       time.Date(2025, 3, 8, 17, 0, 0, 0, time.UTC),
			HomeTeamID: "lv-rubene",
			AwayTeamID: "lv-ulbroka",
			Status:     match.StatusScheduled,
			Venue:      "Kocēnu sporta nams",
		},
	}
}
