package ghostfolio

// Sector is a sector weighting within a holding or symbol profile.
type Sector struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Country is a country weighting within a holding or symbol profile.
type Country struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Holding is a single position in the portfolio details response.
type Holding struct {
	Name                   string    `json:"name"`
	Symbol                 string    `json:"symbol"`
	Currency               string    `json:"currency"`
	AllocationInPercentage float64   `json:"allocationInPercentage"`
	Value                  float64   `json:"value"`
	Investment             float64   `json:"investment"`
	NetPerformance         float64   `json:"netPerformance"`
	NetPerformancePercent  float64   `json:"netPerformancePercent"`
	Quantity               float64   `json:"quantity"`
	MarketPrice            float64   `json:"marketPrice"`
	Sectors                []Sector  `json:"sectors"`
	Countries              []Country `json:"countries"`
}

// DetailsAccount is the per-account summary embedded in portfolio details.
type DetailsAccount struct {
	Name                string  `json:"name"`
	Currency            string  `json:"currency"`
	Balance             float64 `json:"balance"`
	ValueInBaseCurrency float64 `json:"valueInBaseCurrency"`
}

// PortfolioDetails is the response of GET /api/v1/portfolio/details.
type PortfolioDetails struct {
	Holdings map[string]Holding        `json:"holdings"`
	Accounts map[string]DetailsAccount `json:"accounts"`
}

// PerformanceSummary holds the aggregate performance figures.
type PerformanceSummary struct {
	CurrentValue               float64 `json:"currentValue"`
	CurrentValueInBaseCurrency float64 `json:"currentValueInBaseCurrency"`
	Currency                   string  `json:"currency"`
	NetPerformance             float64 `json:"netPerformance"`
	NetPerformancePercentage   float64 `json:"netPerformancePercentage"`
	TotalInvestment            float64 `json:"totalInvestment"`
}

// Performance is the response of GET /api/v2/portfolio/performance.
type Performance struct {
	Performance PerformanceSummary `json:"performance"`
}

// SymbolProfileRef is the embedded symbol profile on an activity.
type SymbolProfileRef struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// AccountRef is the embedded account on an activity.
type AccountRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Activity is a single order/transaction record.
type Activity struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Symbol        string            `json:"symbol"`
	Currency      string            `json:"currency"`
	Quantity      float64           `json:"quantity"`
	UnitPrice     float64           `json:"unitPrice"`
	Fee           float64           `json:"fee"`
	Date          string            `json:"date"`
	SymbolProfile *SymbolProfileRef `json:"SymbolProfile"`
	Account       *AccountRef       `json:"Account"`
}

// DisplaySymbol returns the activity's symbol, preferring the embedded profile.
func (a *Activity) DisplaySymbol() string {
	if a.SymbolProfile != nil && a.SymbolProfile.Symbol != "" {
		return a.SymbolProfile.Symbol
	}
	return a.Symbol
}

// DisplayCurrency returns the activity's currency, preferring the embedded profile.
func (a *Activity) DisplayCurrency() string {
	if a.SymbolProfile != nil && a.SymbolProfile.Currency != "" {
		return a.SymbolProfile.Currency
	}
	return a.Currency
}

// Activities is the response of GET /api/v1/order.
type Activities struct {
	Activities []Activity `json:"activities"`
	Count      int        `json:"count"`
}

// TransactionParams filters the transaction listing.
type TransactionParams struct {
	Accounts     string
	AssetClasses string
	Tags         string
	Skip         int
	Take         int
}

// OrderRequest is the payload for POST /api/v1/order.
type OrderRequest struct {
	Symbol     string  `json:"symbol"`
	Type       string  `json:"type"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	Currency   string  `json:"currency"`
	Date       string  `json:"date"`
	Fee        float64 `json:"fee"`
	DataSource string  `json:"dataSource"`
	AccountID  string  `json:"accountId,omitempty"`
}

// LookupItem is one entry in a symbol search result.
type LookupItem struct {
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	DataSource string `json:"dataSource"`
	Currency   string `json:"currency"`
}

// LookupResult is the response of GET /api/v1/symbol/lookup.
type LookupResult struct {
	Items []LookupItem `json:"items"`
}

// SymbolProfile is the response of GET /api/v1/symbol/{dataSource}/{symbol}.
type SymbolProfile struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Currency      string    `json:"currency"`
	DataSource    string    `json:"dataSource"`
	AssetClass    string    `json:"assetClass"`
	AssetSubClass string    `json:"assetSubClass"`
	MarketPrice   float64   `json:"marketPrice"`
	Sectors       []Sector  `json:"sectors"`
	Countries     []Country `json:"countries"`
}

// ReportRule is one evaluated rule in the portfolio X-Ray report.
type ReportRule struct {
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	Value    string `json:"value"`
}

// Report is the response of GET /api/v1/portfolio/report.
type Report struct {
	Rules map[string][]ReportRule `json:"rules"`
}

// BenchmarkPerformance holds the change-from-high figures of a benchmark.
type BenchmarkPerformance struct {
	PerformancePercent *float64 `json:"performancePercent"`
}

// Benchmark is one entry in the benchmarks listing.
type Benchmark struct {
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	MarketCondition string `json:"marketCondition"`
	Trend50d        string `json:"trend50d"`
	Trend200d       string `json:"trend200d"`
	Performances    struct {
		AllTimeHigh BenchmarkPerformance `json:"allTimeHigh"`
	} `json:"performances"`
}

// DividendEntry is one grouped dividend payment.
type DividendEntry struct {
	Date       string  `json:"date"`
	Investment float64 `json:"investment"`
	Currency   string  `json:"currency"`
}

// Dividends is the response of GET /api/v1/portfolio/dividends.
type Dividends struct {
	Dividends []DividendEntry `json:"dividends"`
}

// Account is one entry in the accounts listing.
type Account struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Currency string  `json:"currency"`
	Balance  float64 `json:"balance"`
	Value    float64 `json:"value"`
	Platform *struct {
		Name string `json:"name"`
	} `json:"Platform"`
}

// Accounts is the response of GET /api/v1/account.
type Accounts struct {
	Accounts   []Account `json:"accounts"`
	TotalValue float64   `json:"totalValueInBaseCurrency"`
}
