package respond

// ServiceOffering is one card on the services page.
type ServiceOffering struct {
	Title       string
	Description string
	Icon        string // Font Awesome class
}

// ServiceCatalog groups offerings by practice.
type ServiceCatalog struct {
	ITSolutions  []ServiceOffering
	IoTSolutions []ServiceOffering
	AISolutions  []ServiceOffering
}

// InternshipPosition is one open position on the internships page.
type InternshipPosition struct {
	Title        string
	Domain       string
	Duration     string
	Description  string
	Requirements []string
}
