// Package models defines data models for machines, production programs and dashboard statistics.
package models

// MachineStatus represents the current operating state of a cutting machine.
type MachineStatus string

const (
	// MachineWorking indicates the machine is cutting.
	MachineWorking MachineStatus = "working"
	// MachineIdle indicates the machine is powered but not cutting.
	MachineIdle MachineStatus = "idle"
	// MachineEmergency indicates the machine is stopped by an emergency.
	MachineEmergency MachineStatus = "emergency"
)

// Machine represents a physical cutting unit and its accumulated time counters in minutes.
type Machine struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Status        MachineStatus `json:"status"`
	WorkTime      int           `json:"work_time"`
	IdleTime      int           `json:"idle_time"`
	EmergencyTime int           `json:"emergency_time"`
}
