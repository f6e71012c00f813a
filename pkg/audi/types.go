package audi

import (
	"context"
	"time"
)

// Credentials is the resolved credential bundle for one session.
// It is immutable once resolved; the auth session owns it for the
// lifetime of the process.
type Credentials struct {
	Username string
	Password string
	Country  string
	SPIN     string
	APILevel int
}

// HasSPIN reports whether a security PIN was configured.
func (c Credentials) HasSPIN() bool {
	return c.SPIN != ""
}

// ActionStatus is the tri-state result of a vehicle action call.
type ActionStatus string

const (
	// ActionAccepted means the service accepted and executed the action.
	ActionAccepted ActionStatus = "accepted"

	// ActionRejected means the service refused or failed to execute the action.
	ActionRejected ActionStatus = "rejected"

	// ActionDisabled means the action is policy-blocked for this vehicle.
	// This is a valid, reportable state, not a failure. Currently only the
	// data refresh action can report it.
	ActionDisabled ActionStatus = "disabled"
)

// Vehicle action names understood by the service.
const (
	ActionLock               = "lock"
	ActionUnlock             = "unlock"
	ActionClimateStart       = "climate-start"
	ActionClimateStop        = "climate-stop"
	ActionChargeStart        = "charge-start"
	ActionSetChargeTarget    = "set-charge-target"
	ActionSetChargingMode    = "set-charging-mode"
	ActionPreheaterStart     = "preheater-start"
	ActionPreheaterStop      = "preheater-stop"
	ActionWindowHeatingStart = "window-heating-start"
	ActionWindowHeatingStop  = "window-heating-stop"
	ActionRefreshData        = "refresh-data"
)

// Charging modes accepted by ActionSetChargingMode.
const (
	ChargingModeManual = "manual"
	ChargingModeTimer  = "timer"
)

// Client is the narrow surface of the vehicle cloud service consumed by the
// core. Implementations own HTTP transport, request signing and response
// parsing; callers own retry policy.
type Client interface {
	// AttemptLogin performs a single login handshake. It returns false for a
	// rejected login and an error for transport or service faults; throttle
	// conditions surface as a *ServiceError with KindThrottled.
	AttemptLogin(ctx context.Context, username, password, country string) (bool, error)

	// ExecuteAction invokes a named action against a vehicle.
	ExecuteAction(ctx context.Context, vin, action string, params map[string]any) (ActionStatus, error)

	// Vehicles retrieves the vehicles registered to the account.
	Vehicles(ctx context.Context) ([]Vehicle, error)

	// VehicleStatus retrieves the current status snapshot of one vehicle.
	VehicleStatus(ctx context.Context, vin string) (*VehicleStatus, error)

	// TripData retrieves the recorded trip statistics of one vehicle.
	TripData(ctx context.Context, vin string) ([]Trip, error)
}

// Vehicle identifies one vehicle of the account.
type Vehicle struct {
	VIN       string `json:"vin"`
	CSID      string `json:"csid"`
	Title     string `json:"title"`
	Model     string `json:"model"`
	ModelYear int    `json:"modelYear"`
}

// VehicleStatus is a snapshot of the vehicle telemetry the CLI renders.
// Nil pointer fields mean the attribute is not supported by the vehicle.
type VehicleStatus struct {
	VIN       string     `json:"vin"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`

	Mileage *int `json:"mileage,omitempty"` // km
	Range   *int `json:"range,omitempty"`   // km

	TankLevel     *int `json:"tankLevel,omitempty"`     // percent
	StateOfCharge *int `json:"stateOfCharge,omitempty"` // percent

	ChargingState          *string `json:"chargingState,omitempty"`
	RemainingChargeMinutes *int    `json:"remainingChargeMinutes,omitempty"`

	ClimatisationState *string  `json:"climatisationState,omitempty"`
	OutdoorTemperature *float64 `json:"outdoorTemperature,omitempty"` // Celsius

	DoorsTrunkStatus *string `json:"doorsTrunkStatus,omitempty"`
	AnyWindowOpen    *bool   `json:"anyWindowOpen,omitempty"`

	ServiceDueDays *int `json:"serviceDueDays,omitempty"`
	ServiceDueKM   *int `json:"serviceDueKm,omitempty"`
	OilLevel       *int `json:"oilLevel,omitempty"` // percent

	Position *Position `json:"position,omitempty"`
}

// Position is the last reported vehicle position.
type Position struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// TripKind distinguishes the four trip statistics buckets the service keeps.
type TripKind string

const (
	TripShortTermCurrent TripKind = "short-term-current"
	TripShortTermReset   TripKind = "short-term-reset"
	TripLongTermCurrent  TripKind = "long-term-current"
	TripLongTermReset    TripKind = "long-term-reset"
)

// Trip holds one trip statistics record.
type Trip struct {
	Kind TripKind `json:"kind"`

	TripID       string     `json:"tripId,omitempty"`
	Mileage      *int       `json:"mileage,omitempty"`      // km
	StartMileage *int       `json:"startMileage,omitempty"` // km
	AverageSpeed *float64   `json:"averageSpeed,omitempty"` // km/h
	TravelTime   *int       `json:"travelTime,omitempty"`   // minutes
	Timestamp    *time.Time `json:"timestamp,omitempty"`

	AverageFuelConsumption     *float64 `json:"averageFuelConsumption,omitempty"`     // L/100km
	AverageElectricConsumption *float64 `json:"averageElectricConsumption,omitempty"` // kWh/100km
	ZeroEmissionDistance       *int     `json:"zeroEmissionDistance,omitempty"`       // km
}
