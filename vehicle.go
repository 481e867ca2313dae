package simresults

// Vehicle is a car model, named by the slug the server uses for it (e.g. "tatuusfa1").
type Vehicle struct {
	name string
}

func (v *Vehicle) Name() string {
	return v.name
}
