package logic

import (
	"testing"

	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
)

func TestReduceProgress(t *testing.T) {
	tests := []struct {
		name          string
		challengeType model.ChallengeType
		values        []float64
		want          float64
	}{
		{
			name:          "cumulative sums all contributions",
			challengeType: model.ChallengeTypeCumulative,
			values:        []float64{40, 35, 30},
			want:          105,
		},
		{
			name:          "collaborative averages all contributions",
			challengeType: model.ChallengeTypeCollaborative,
			values:        []float64{60, 40},
			want:          50,
		},
		{
			name:          "competitive takes the best single contribution",
			challengeType: model.ChallengeTypeCompetitive,
			values:        []float64{40, 90, 35},
			want:          90,
		},
		{
			name:          "unknown type falls back to sum",
			challengeType: model.ChallengeType("mystery"),
			values:        []float64{10, 20},
			want:          30,
		},
		{
			name:          "empty ledger yields zero",
			challengeType: model.ChallengeTypeCumulative,
			values:        nil,
			want:          0,
		},
		{
			name:          "single contribution",
			challengeType: model.ChallengeTypeCollaborative,
			values:        []float64{42},
			want:          42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReduceProgress(tt.challengeType, tt.values)
			if got != tt.want {
				t.Errorf("ReduceProgress() = %v, want %v", got, tt.want)
			}

			// 重算同一份账本必须得到同样的结果
			again := ReduceProgress(tt.challengeType, tt.values)
			if again != got {
				t.Errorf("ReduceProgress() not stable: first %v, second %v", got, again)
			}
		})
	}
}

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		target   float64
		want     float64
	}{
		{"half done", 50, 100, 50},
		{"exactly done", 100, 100, 100},
		{"over target clamps to 100", 150, 100, 100},
		{"negative progress clamps to 0", -10, 100, 0},
		{"zero target yields 0", 50, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionPercentage(tt.progress, tt.target); got != tt.want {
				t.Errorf("CompletionPercentage(%v, %v) = %v, want %v", tt.progress, tt.target, got, tt.want)
			}
		})
	}
}
