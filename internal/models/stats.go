package models

// Stats is the aggregated dashboard summary.
type Stats struct {
	TotalProduction int `json:"totalProduction"`
	AvgWorkTime     int `json:"avgWorkTime"`
	TotalDowntime   int `json:"totalDowntime"`
	EmergencyCount  int `json:"emergencyCount"`
	WorkingMachines int `json:"workingMachines"`
	TotalMachines   int `json:"totalMachines"`
	Efficiency      int `json:"efficiency"`
}
