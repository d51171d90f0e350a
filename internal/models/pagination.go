package models

type PaginatedResponse struct {
	Results  any `json:"results"`
	Count    int `json:"count"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}
