package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeScore_WorkedExample(t *testing.T) {
	// 3 platforms, 60K followers, 80% engagement, 85% consistency,
	// 12 conversions, 6 products.
	signals := Signals{
		ConnectedPlatforms: 3,
		TotalFollowers:     60000,
		EngagementScore:    80,
		ConsistencyScore:   85,
		Conversions:        12,
		ProductsInShop:     6,
	}

	total, factors := ComputeScore(signals)

	require.Len(t, factors, 5)
	assert.Equal(t, 850, total)

	assert.Equal(t, "Platform Connections", factors[0].Name)
	assert.Equal(t, 200, factors[0].Score) // min(3*70, 200)
	assert.Equal(t, ImpactPositive, factors[0].Impact)

	assert.Equal(t, "Audience Size", factors[1].Name)
	assert.Equal(t, 120, factors[1].Score) // floor(60000/500)
	assert.Equal(t, ImpactPositive, factors[1].Impact)

	assert.Equal(t, "Engagement Quality", factors[2].Name)
	assert.Equal(t, 160, factors[2].Score)

	assert.Equal(t, "Content Consistency", factors[3].Name)
	assert.Equal(t, 170, factors[3].Score)

	assert.Equal(t, "Affiliate Performance", factors[4].Name)
	assert.Equal(t, 200, factors[4].Score) // min(12*20+6*10, 200)

	assert.Equal(t, TierA, ResolveTier(total))
}

func TestComputeScore_BoundsHoldForExtremeInputs(t *testing.T) {
	cases := []Signals{
		{},
		{ConnectedPlatforms: 1},
		{ConnectedPlatforms: 1000, TotalFollowers: 1 << 40, EngagementScore: 100, ConsistencyScore: 100, Conversions: 100000, ProductsInShop: 100000},
		{TotalFollowers: 499},
		{TotalFollowers: 500},
		{EngagementScore: 100, ConsistencyScore: 100},
		{Conversions: 1, ProductsInShop: 2},
	}

	for _, signals := range cases {
		total, factors := ComputeScore(signals)
		require.Len(t, factors, 5)

		sum := 0
		for _, f := range factors {
			assert.GreaterOrEqual(t, f.Score, 0, "factor %s below zero for %+v", f.Name, signals)
			assert.LessOrEqual(t, f.Score, 200, "factor %s above cap for %+v", f.Name, signals)
			assert.Equal(t, 200, f.MaxScore)
			sum += f.Score
		}
		assert.Equal(t, sum, total)
		assert.GreaterOrEqual(t, total, 0)
		assert.LessOrEqual(t, total, 1000)
	}
}

func TestComputeScore_ClampsOverrangeAnalysisScores(t *testing.T) {
	// The analysis collaborator bounds engagement/consistency to 100,
	// but the calculator no longer trusts that bound.
	total, factors := ComputeScore(Signals{EngagementScore: 150, ConsistencyScore: 999})

	assert.Equal(t, 200, factors[2].Score)
	assert.Equal(t, 200, factors[3].Score)
	assert.Equal(t, 400, total)
}

func TestComputeScore_ImpactLabels(t *testing.T) {
	// Zero signals are negative across the board.
	_, factors := ComputeScore(Signals{})
	for _, f := range factors {
		assert.Equal(t, ImpactNegative, f.Impact, f.Name)
	}

	// A single connection scores 70: below the positive threshold but
	// neutral because at least one platform is connected.
	_, factors = ComputeScore(Signals{ConnectedPlatforms: 1})
	assert.Equal(t, 70, factors[0].Score)
	assert.Equal(t, ImpactNeutral, factors[0].Impact)

	// Performance uses its own neutral threshold of 30.
	_, factors = ComputeScore(Signals{Conversions: 2}) // 40 points
	assert.Equal(t, ImpactNeutral, factors[4].Impact)
	_, factors = ComputeScore(Signals{ProductsInShop: 3}) // 30 points, not above threshold
	assert.Equal(t, ImpactNegative, factors[4].Impact)

	// Audience neutral band is (50, 100].
	_, factors = ComputeScore(Signals{TotalFollowers: 30000}) // 60 points
	assert.Equal(t, ImpactNeutral, factors[1].Impact)
}

func TestComputeScore_Deterministic(t *testing.T) {
	signals := Signals{
		ConnectedPlatforms: 2,
		TotalFollowers:     123456,
		EngagementScore:    47,
		ConsistencyScore:   63,
		Conversions:        7,
		ProductsInShop:     4,
	}

	total1, factors1 := ComputeScore(signals)
	total2, factors2 := ComputeScore(signals)

	assert.Equal(t, total1, total2)
	assert.Equal(t, factors1, factors2)
}
