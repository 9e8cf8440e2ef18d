package dto

// BonusResponse represents the API response for a claimed signup bonus
type BonusResponse struct {
	Success    bool   `json:"success"`
	NewBalance string `json:"newBalance"`
	Message    string `json:"message"`
}

// HealthResponse reports store reachability
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	KeepAlive string `json:"keepAlive,omitempty"`
}
