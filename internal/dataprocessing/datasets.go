package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-gota/gota/dataframe"

	apperrors "housingdata/internal/errors"
	"housingdata/internal/infrastructure"
	"housingdata/pkg/contracts/domain"
)

// HousingDatasets loads the housing and economic datasets kept in one data
// directory.
type HousingDatasets struct {
	dataDir string
	metrics *infrastructure.LoaderMetrics
	logger  *slog.Logger
}

// Option configures a HousingDatasets
type Option func(*HousingDatasets)

// WithMetrics records every load in m
func WithMetrics(m *infrastructure.LoaderMetrics) Option {
	return func(h *HousingDatasets) {
		h.metrics = m
	}
}

// WithLogger replaces the default logger
func WithLogger(logger *slog.Logger) Option {
	return func(h *HousingDatasets) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHousingDatasets creates a loader rooted at dataDir
func NewHousingDatasets(dataDir string, opts ...Option) *HousingDatasets {
	h := &HousingDatasets{
		dataDir: dataDir,
		logger:  infrastructure.GetLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(slog.String("component", "housing_datasets"))
	return h
}

// DataDir returns the directory datasets are read from
func (h *HousingDatasets) DataDir() string {
	return h.dataDir
}

// path resolves a file name inside the data directory
func (h *HousingDatasets) path(name string) string {
	return filepath.Join(h.dataDir, name)
}

// Load resolves a catalog name and runs the matching loader
func (h *HousingDatasets) Load(name string) (*domain.Table, error) {
	return h.LoadContext(context.Background(), name)
}

// LoadContext is Load with a context whose trace ID tags the load's log entries
func (h *HousingDatasets) LoadContext(ctx context.Context, name string) (*domain.Table, error) {
	spec, ok := domain.Lookup(name)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("dataset %q", name), nil)
	}
	return h.LoadSpec(ctx, spec)
}

// LoadSpec runs the loader for one dataset description
func (h *HousingDatasets) LoadSpec(ctx context.Context, spec domain.DatasetSpec) (*domain.Table, error) {
	switch spec.Source {
	case domain.SourceFRED:
		return h.observe(ctx, spec.Name, func() (*domain.Table, error) {
			return h.loadFRED(spec.Name, spec.SeriesID)
		})
	case domain.SourceNewYorkFed:
		return h.observe(ctx, spec.Name, func() (*domain.Table, error) {
			return h.loadNewYorkFed(spec.Name, spec.Sheet, spec.HeaderRow)
		})
	case domain.SourceRecessions:
		return h.observe(ctx, spec.Name, h.loadRecessions)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown dataset source %q", spec.Source), nil).
			WithContext("dataset", spec.Name)
	}
}

// observe times a load, logs its outcome and records metrics
func (h *HousingDatasets) observe(ctx context.Context, name string, load func() (*domain.Table, error)) (*domain.Table, error) {
	started := time.Now()
	table, err := load()
	h.metrics.ObserveLoad(name, started, table.Rows(), err)

	if err != nil {
		h.logger.ErrorContext(ctx, "Dataset load failed",
			slog.String("dataset", name),
			slog.String("error", err.Error()))
		return nil, err
	}

	first, last := table.DateRange()
	h.logger.InfoContext(ctx, "Dataset loaded",
		slog.String("dataset", name),
		slog.Int("rows", table.Rows()),
		slog.Int("columns", table.Frame.Ncol()),
		slog.Time("first_date", first),
		slog.Time("last_date", last),
		slog.Duration("elapsed", time.Since(started)))
	return table, nil
}

// LoadRecessions returns the list of US recessions gathered from Wikipedia
func (h *HousingDatasets) LoadRecessions() (*domain.Table, error) {
	return h.Load("recessions")
}

// St. Louis Fed series

// LoadTreasurySpread returns the 10-year minus 3-month Treasury yield spread (T10Y3M)
func (h *HousingDatasets) LoadTreasurySpread() (*domain.Table, error) {
	return h.Load("treasury_spread")
}

// LoadActiveListings returns the active housing listing count (ACTLISCOUUS)
func (h *HousingDatasets) LoadActiveListings() (*domain.Table, error) {
	return h.Load("active_listings")
}

// LoadNewListings returns the new housing listing count (NEWLISCOUUS)
func (h *HousingDatasets) LoadNewListings() (*domain.Table, error) {
	return h.Load("new_listings")
}

// LoadNewHouseSupply returns the monthly supply of new houses (MSACSR)
func (h *HousingDatasets) LoadNewHouseSupply() (*domain.Table, error) {
	return h.Load("new_house_supply")
}

// LoadNewHouseStarted returns new privately-owned housing units started (HOUST)
func (h *HousingDatasets) LoadNewHouseStarted() (*domain.Table, error) {
	return h.Load("new_house_started")
}

// LoadUnemploymentRate returns the civilian unemployment rate (UNRATE)
func (h *HousingDatasets) LoadUnemploymentRate() (*domain.Table, error) {
	return h.Load("unemployment_rate")
}

// LoadMedianDaysOnMarket returns the median days on market of listed houses (MEDDAYONMARUS)
func (h *HousingDatasets) LoadMedianDaysOnMarket() (*domain.Table, error) {
	return h.Load("median_days_on_market")
}

// LoadMedianHousePrice returns the median sales price of houses sold (MSPUS)
func (h *HousingDatasets) LoadMedianHousePrice() (*domain.Table, error) {
	return h.Load("median_house_price")
}

// LoadMedianHouseholdIncome returns real median household income (MEHOINUSA672N)
func (h *HousingDatasets) LoadMedianHouseholdIncome() (*domain.Table, error) {
	return h.Load("median_household_income")
}

// LoadCaseShiller returns the S&P Case-Shiller national home price index (CSUSHPINSA)
func (h *HousingDatasets) LoadCaseShiller() (*domain.Table, error) {
	return h.Load("case_shiller")
}

// LoadHousingAffordability returns the fixed-rate housing affordability index (FIXHAI)
func (h *HousingDatasets) LoadHousingAffordability() (*domain.Table, error) {
	return h.Load("housing_affordability")
}

// LoadAvgMortgageRates returns the average 30-year fixed mortgage rate (MORTGAGE30US)
func (h *HousingDatasets) LoadAvgMortgageRates() (*domain.Table, error) {
	return h.Load("avg_mortgage_rates")
}

// New York Fed household debt and credit report

// LoadLoanReport returns total debt balance and its composition, in trillions of $
func (h *HousingDatasets) LoadLoanReport() (*domain.Table, error) {
	return h.Load("loan_report")
}

// LoadLoanReportByNumAccounts returns the number of accounts by loan type, in millions
func (h *HousingDatasets) LoadLoanReportByNumAccounts() (*domain.Table, error) {
	return h.Load("loan_report_by_num_accounts")
}

// LoadMortgageCreditScores returns mortgage originations by credit score
func (h *HousingDatasets) LoadMortgageCreditScores() (*domain.Table, error) {
	return h.Load("mortgage_credit_scores")
}

// LoadAutoCreditScores returns auto loan originations by credit score
func (h *HousingDatasets) LoadAutoCreditScores() (*domain.Table, error) {
	return h.Load("auto_credit_scores")
}

// LoadDelinquentLoans returns the percent of balance 90+ days delinquent by loan type
func (h *HousingDatasets) LoadDelinquentLoans() (*domain.Table, error) {
	return h.Load("delinquent_loans")
}

// LoadForeclosures returns the number of consumers with new foreclosures and bankruptcies
func (h *HousingDatasets) LoadForeclosures() (*domain.Table, error) {
	return h.Load("foreclosures")
}

// LoadTrainTest reads the train and test frames used by the price models.
// Column types are detected from the data.
func (h *HousingDatasets) LoadTrainTest() (dataframe.DataFrame, dataframe.DataFrame, error) {
	train, err := h.readCSV(domain.TrainCSV, dataframe.DetectTypes(true))
	if err != nil {
		return dataframe.DataFrame{}, dataframe.DataFrame{}, err
	}
	test, err := h.readCSV(domain.TestCSV, dataframe.DetectTypes(true))
	if err != nil {
		return dataframe.DataFrame{}, dataframe.DataFrame{}, err
	}
	return train, test, nil
}
