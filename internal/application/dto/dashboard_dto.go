package dto

// AdminDashboardResponse contadores del panel interno (GET /admin/dashboard).
type AdminDashboardResponse struct {
	TotalCompanies   int `json:"total_empresas"`
	TrialCompanies   int `json:"empresas_teste"`
	ActiveUsers      int `json:"usuarios_ativos"`
	TotalPlans       int `json:"total_planos"`
	PendingCompanies int `json:"empresas_pendentes"`
}

// CustomerDashboardResponse resumen del panel del cliente (GET /dashboard).
type CustomerDashboardResponse struct {
	CompanyName       string           `json:"empresa_nome"`
	InProgress        int              `json:"editais_em_andamento"`
	DisputesToday     int              `json:"disputas_hoje"`
	DeadlinesThisWeek int              `json:"prazos_proximos"`
	Finished          int              `json:"editais_finalizados"`
	Upcoming          []TenderResponse `json:"proximas_disputas"`
}
