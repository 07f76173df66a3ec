package entities

import "github.com/volatiletech/null/v8"

// Driver is reference data loaded by the external ETL
type Driver struct {
	ID          int64       `json:"id"`
	Position    null.Int    `json:"pos"`
	Name        string      `json:"name"`
	Nationality null.String `json:"nationality"`
	Team        null.String `json:"team"`
	Points      null.Int    `json:"pts"`
	Season      null.Int    `json:"season"`
}

// DriverOption is one entry of the choice list offered for bets.
// Names repeated across seasons collapse to the lowest id.
type DriverOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
