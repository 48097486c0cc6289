package engine

import (
	"math"
	"sort"
	"time"

	"github.com/invensight/backend-go/internal/domain"
)

const (
	forecastWindowDays  = 30
	historyWindowDays   = 60
	growthSentinel      = 100.0
	highGrowthThreshold = 20.0
	decliningThreshold  = -20.0
	forecastConfidence  = 0.7

	momentumHighGrowth = 1.2
	momentumDeclining  = 0.9
	momentumDefault    = 1.0
)

// GenerateForecasts projects near-term sales for every product from its
// trailing 30/60-day windows. The momentum factor is a fixed per-trend
// multiplier, not a statistical model, and the confidence value is a
// constant placeholder.
func (a *Analyzer) GenerateForecasts(products []domain.Product, sales []domain.Sale) []domain.ProductForecast {
	now := a.clock.Now()
	forecasts := make([]domain.ProductForecast, 0, len(products))

	for _, product := range products {
		forecasts = append(forecasts, a.forecastProduct(product, sales, now))
	}

	sort.SliceStable(forecasts, func(i, j int) bool {
		return forecasts[i].ForecastedSales > forecasts[j].ForecastedSales
	})

	return forecasts
}

func (a *Analyzer) forecastProduct(product domain.Product, sales []domain.Sale, now time.Time) domain.ProductForecast {
	currentStart := now.AddDate(0, 0, -forecastWindowDays)
	previousStart := now.AddDate(0, 0, -historyWindowDays)

	current, previous := 0, 0
	buckets := make(map[string]int)

	for _, sale := range sales {
		if sale.SoldAt.Before(previousStart) || sale.SoldAt.After(now) {
			continue
		}

		qty := 0
		for _, item := range sale.Items {
			if item.ProductID == product.ID {
				qty += item.Quantity
			}
		}
		if qty == 0 {
			continue
		}

		if sale.SoldAt.Before(currentStart) {
			previous += qty
		} else {
			current += qty
		}
		buckets[sale.SoldAt.Format("2006-01-02")] += qty
	}

	growth := growthRate(current, previous)
	trend := classifyTrend(current, previous, growth)

	return domain.ProductForecast{
		ProductID:            product.ID,
		Name:                 product.Name,
		CurrentMonthlySales:  current,
		PreviousMonthlySales: previous,
		GrowthRate:           growth,
		Trend:                trend,
		ForecastedSales:      int(math.Ceil(float64(current) * momentumFactor(trend))),
		Confidence:           forecastConfidence,
		History:              sortedHistory(buckets),
	}
}

// growthRate treats a product with no previous-period activity but
// current sales as "new/exploded" via a fixed sentinel, rather than
// leaving the growth undefined.
func growthRate(current, previous int) float64 {
	switch {
	case previous > 0:
		return float64(current-previous) / float64(previous) * 100
	case current > 0:
		return growthSentinel
	default:
		return 0
	}
}

// classifyTrend gives the New trend priority over the growth thresholds.
func classifyTrend(current, previous int, growth float64) domain.Trend {
	switch {
	case previous == 0 && current > 0:
		return domain.TrendNew
	case growth >= highGrowthThreshold:
		return domain.TrendHighGrowth
	case growth <= decliningThreshold:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

func momentumFactor(trend domain.Trend) float64 {
	switch trend {
	case domain.TrendHighGrowth:
		return momentumHighGrowth
	case domain.TrendDeclining:
		return momentumDeclining
	default:
		return momentumDefault
	}
}

func sortedHistory(buckets map[string]int) []domain.SalesPoint {
	points := make([]domain.SalesPoint, 0, len(buckets))
	for date, value := range buckets {
		points = append(points, domain.SalesPoint{Date: date, Value: value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	return points
}
