package audictl

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gosuri/uitable"

	"github.com/openiov/audictl/pkg/audi"
)

// printJSON renders any value as indented JSON for --raw output.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderVehicles prints the vehicle summary table.
func renderVehicles(w io.Writer, vehicles []audi.Vehicle) error {
	table := uitable.New()
	table.MaxColWidth = 60

	table.AddRow("VIN", "TITLE", "MODEL", "YEAR", "CSID")
	for _, v := range vehicles {
		year := ""
		if v.ModelYear > 0 {
			year = fmt.Sprintf("%d", v.ModelYear)
		}
		table.AddRow(v.VIN, v.Title, v.Model, year, v.CSID)
	}

	_, err := fmt.Fprintln(w, table)
	return err
}

// renderStatus prints the supported attributes of a status snapshot.
// Unsupported attributes (nil fields) are omitted entirely.
func renderStatus(w io.Writer, s *audi.VehicleStatus) error {
	table := uitable.New()
	table.MaxColWidth = 60

	if s.UpdatedAt != nil {
		table.AddRow("Last Update", s.UpdatedAt.Format(time.RFC3339))
	}
	if s.Mileage != nil {
		table.AddRow("Mileage", fmt.Sprintf("%d km", *s.Mileage))
	}
	if s.Range != nil {
		table.AddRow("Range", fmt.Sprintf("%d km", *s.Range))
	}
	if s.TankLevel != nil {
		table.AddRow("Fuel Level", fmt.Sprintf("%d%%", *s.TankLevel))
	}
	if s.StateOfCharge != nil {
		table.AddRow("Battery Charge", fmt.Sprintf("%d%%", *s.StateOfCharge))
	}
	if s.ChargingState != nil {
		table.AddRow("Charging State", *s.ChargingState)
	}
	if s.RemainingChargeMinutes != nil {
		table.AddRow("Remaining Charge Time", fmt.Sprintf("%d min", *s.RemainingChargeMinutes))
	}
	if s.ClimatisationState != nil {
		table.AddRow("Climate State", *s.ClimatisationState)
	}
	if s.OutdoorTemperature != nil {
		table.AddRow("Outdoor Temperature", fmt.Sprintf("%.1f°C", *s.OutdoorTemperature))
	}
	if s.DoorsTrunkStatus != nil {
		table.AddRow("Doors/Trunk", *s.DoorsTrunkStatus)
	}
	if s.AnyWindowOpen != nil {
		table.AddRow("Windows Open", fmt.Sprintf("%t", *s.AnyWindowOpen))
	}
	if s.ServiceDueDays != nil {
		table.AddRow("Service Due", fmt.Sprintf("%d days", *s.ServiceDueDays))
	}
	if s.ServiceDueKM != nil {
		table.AddRow("Service Due", fmt.Sprintf("%d km", *s.ServiceDueKM))
	}
	if s.OilLevel != nil {
		table.AddRow("Oil Level", fmt.Sprintf("%d%%", *s.OilLevel))
	}
	if s.Position != nil {
		table.AddRow("Position", fmt.Sprintf("%.6f, %.6f", s.Position.Latitude, s.Position.Longitude))
		if s.Position.Timestamp != nil {
			table.AddRow("Position Time", s.Position.Timestamp.Format(time.RFC3339))
		}
	}

	_, err := fmt.Fprintln(w, table)
	return err
}

// renderTrips prints one table row per trip record.
func renderTrips(w io.Writer, trips []audi.Trip) error {
	table := uitable.New()
	table.MaxColWidth = 40

	table.AddRow("KIND", "MILEAGE", "AVG SPEED", "TRAVEL TIME", "FUEL", "ELECTRIC", "TIMESTAMP")
	for _, t := range trips {
		table.AddRow(
			string(t.Kind),
			fmtIntUnit(t.Mileage, "km"),
			fmtFloatUnit(t.AverageSpeed, "km/h"),
			fmtIntUnit(t.TravelTime, "min"),
			fmtFloatUnit(t.AverageFuelConsumption, "L/100km"),
			fmtFloatUnit(t.AverageElectricConsumption, "kWh/100km"),
			fmtTime(t.Timestamp),
		)
	}

	_, err := fmt.Fprintln(w, table)
	return err
}

func fmtIntUnit(v *int, unit string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d %s", *v, unit)
}

func fmtFloatUnit(v *float64, unit string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f %s", *v, unit)
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.RFC3339)
}
