package models

type ReportFilters struct {
	StartDate string
	EndDate   string
}

type SalesReport struct {
	Period struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	} `json:"period"`
	Summary struct {
		TotalLeads     int     `json:"totalLeads"`
		ConvertedLeads int     `json:"convertedLeads"`
		ConversionRate string  `json:"conversionRate"`
		TotalDeals     int     `json:"totalDeals"`
		ApprovedDeals  int     `json:"approvedDeals"`
		TotalRevenue   float64 `json:"totalRevenue"`
	} `json:"summary"`
	TopProducts []ReportProduct `json:"topProducts"`
}

type ReportProduct struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Sold      int     `json:"sold"`
	Revenue   float64 `json:"revenue"`
}
