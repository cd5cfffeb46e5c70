package kpi

import "github.com/montanaflynn/stats"

// Built-in KPI specs. Keyword lists are priority-ordered: an exact match on
// an earlier keyword beats anything on a later one.
var (
	TotalRevenue = Spec{
		Name:     "Total Revenue",
		Keywords: []string{"revenue", "amount", "price", "total"},
		Reduce:   stats.Sum,
	}

	TotalQuantity = Spec{
		Name:     "Total Quantity",
		Keywords: []string{"quantity", "qty", "units"},
		Reduce:   stats.Sum,
	}

	AverageOrderValue = Spec{
		Name:     "Average Order Value",
		Keywords: []string{"amount", "price", "revenue"},
		Reduce:   stats.Mean,
	}

	MedianOrderValue = Spec{
		Name:     "Median Order Value",
		Keywords: []string{"amount", "price", "revenue"},
		Reduce:   stats.Median,
	}

	// MDARecovery is the received-versus-processed ratio for MDA claims
	// datasets. Datasets without both columns report no-data.
	MDARecovery = RatioSpec{
		Name:              "MDA Recovery %",
		NumeratorKeywords: []string{"received", "recovered"},
		DenominatorKeys:   []string{"processed", "claimed", "mda"},
	}
)

// Defaults lists the single-column specs evaluated for every dataset view.
var Defaults = []Spec{TotalRevenue, TotalQuantity, AverageOrderValue, MedianOrderValue}
