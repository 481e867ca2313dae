package simresults

// Driver is a person driving for a Participant.
type Driver struct {
	name     string
	driverID string
	team     string
}

func (d *Driver) Name() string {
	return d.name
}

// DriverID is the platform account id of the driver (the Steam GUID for Assetto Corsa).
// It is empty when the log did not record one.
func (d *Driver) DriverID() string {
	return d.driverID
}

func (d *Driver) Team() string {
	return d.team
}
