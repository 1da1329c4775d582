package dto

type PlanRequest struct {
	Scenario string `json:"scenario"`
}

type DeliveryResponse struct {
	DroneID  int     `json:"drone_id"`
	DepotID  int     `json:"depot_id"`
	DestID   int     `json:"dest_id"`
	Quantity float64 `json:"quantity"`
	UnitCost float64 `json:"unit_cost"`
	Cost     float64 `json:"cost"`
}

type PlanResponse struct {
	PlanID     string             `json:"plan_id"`
	Scenario   string             `json:"scenario"`
	Status     string             `json:"status"`
	TotalCost  float64            `json:"total_cost"`
	Objective  float64            `json:"objective"`
	Warnings   []string           `json:"warnings,omitempty"`
	Deliveries []DeliveryResponse `json:"deliveries"`
}
