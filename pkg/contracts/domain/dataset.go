package domain

import (
	"sort"
)

// DatasetSource identifies which publisher and file layout a dataset uses
type DatasetSource string

const (
	SourceFRED       DatasetSource = "fred"
	SourceNewYorkFed DatasetSource = "newyorkfed"
	SourceRecessions DatasetSource = "recessions"
)

// Well-known file names inside the data directory
const (
	NewYorkFedWorkbook = "newyorkfed_household_debit_and_credit_report.xlsx"
	RecessionsWorkbook = "List_of_recessions_in_the_United_States.xlsx"
	TrainCSV           = "train.csv"
	TestCSV            = "test.csv"
)

// DatasetSpec describes how to locate and load one named dataset
type DatasetSpec struct {
	Name        string        `json:"name" yaml:"name"`
	Source      DatasetSource `json:"source" yaml:"source"`
	SeriesID    string        `json:"series_id,omitempty" yaml:"series_id,omitempty"`
	Sheet       string        `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	HeaderRow   int           `json:"header_row,omitempty" yaml:"header_row,omitempty"`
	Description string        `json:"description" yaml:"description"`
}

// FileName returns the file the dataset is read from, relative to the data directory
func (s DatasetSpec) FileName() string {
	switch s.Source {
	case SourceFRED:
		return s.SeriesID + ".csv"
	case SourceNewYorkFed:
		return NewYorkFedWorkbook
	case SourceRecessions:
		return RecessionsWorkbook
	default:
		return ""
	}
}

// Catalog lists every dataset the loaders know about
var Catalog = []DatasetSpec{
	{Name: "recessions", Source: SourceRecessions, Description: "List of US recessions gathered from Wikipedia"},

	// St. Louis Fed (FRED) series
	{Name: "treasury_spread", Source: SourceFRED, SeriesID: "T10Y3M", Description: "10-year treasury minus 3-month treasury"},
	{Name: "active_listings", Source: SourceFRED, SeriesID: "ACTLISCOUUS", Description: "Active listing count"},
	{Name: "new_listings", Source: SourceFRED, SeriesID: "NEWLISCOUUS", Description: "New listing count"},
	{Name: "new_house_supply", Source: SourceFRED, SeriesID: "MSACSR", Description: "Monthly supply of new houses"},
	{Name: "new_house_started", Source: SourceFRED, SeriesID: "HOUST", Description: "New privately-owned housing units started"},
	{Name: "unemployment_rate", Source: SourceFRED, SeriesID: "UNRATE", Description: "Unemployment rate"},
	{Name: "median_days_on_market", Source: SourceFRED, SeriesID: "MEDDAYONMARUS", Description: "Median days on market"},
	{Name: "median_house_price", Source: SourceFRED, SeriesID: "MSPUS", Description: "Median sales price of houses sold"},
	{Name: "median_household_income", Source: SourceFRED, SeriesID: "MEHOINUSA672N", Description: "Real median household income"},
	{Name: "case_shiller", Source: SourceFRED, SeriesID: "CSUSHPINSA", Description: "S&P Case-Shiller US national home price index"},
	{Name: "housing_affordability", Source: SourceFRED, SeriesID: "FIXHAI", Description: "Housing affordability index (fixed)"},
	{Name: "avg_mortgage_rates", Source: SourceFRED, SeriesID: "MORTGAGE30US", Description: "30-year fixed rate mortgage average"},

	// New York Fed household debt and credit report
	{Name: "loan_report", Source: SourceNewYorkFed, Sheet: "Page 3 Data", HeaderRow: 3, Description: "Total debt balance and its composition, trillions of $"},
	{Name: "loan_report_by_num_accounts", Source: SourceNewYorkFed, Sheet: "Page 4 Data", HeaderRow: 3, Description: "Number of accounts by loan type, millions"},
	{Name: "mortgage_credit_scores", Source: SourceNewYorkFed, Sheet: "Page 6 Data", HeaderRow: 3, Description: "Credit score at mortgage origination"},
	{Name: "auto_credit_scores", Source: SourceNewYorkFed, Sheet: "Page 8 Data", HeaderRow: 3, Description: "Credit score at auto loan origination"},
	{Name: "delinquent_loans", Source: SourceNewYorkFed, Sheet: "Page 13 Data", HeaderRow: 4, Description: "Percent of balance 90+ days delinquent by loan type"},
	{Name: "foreclosures", Source: SourceNewYorkFed, Sheet: "Page 17 Data", HeaderRow: 3, Description: "Number of consumers with new foreclosures and bankruptcies"},
}

// Lookup finds a dataset by name
func Lookup(name string) (DatasetSpec, bool) {
	for _, spec := range Catalog {
		if spec.Name == name {
			return spec, true
		}
	}
	return DatasetSpec{}, false
}

// Names returns all catalog names in sorted order
func Names() []string {
	names := make([]string, 0, len(Catalog))
	for _, spec := range Catalog {
		names = append(names, spec.Name)
	}
	sort.Strings(names)
	return names
}
