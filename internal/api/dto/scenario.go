package dto

type ScenarioListResponse struct {
	Scenarios []string `json:"scenarios"`
}
