// Package content holds the marketing copy shown on the public pages.
package content

import "ecotech_server/internal/dto/respond"

type contentService struct {
	catalog   respond.ServiceCatalog
	positions []respond.InternshipPosition
}

// NewContentService returns the built-in catalog.
func NewContentService() *contentService {
	return &contentService{catalog: serviceCatalog, positions: internshipPositions}
}

func (s *contentService) Services() respond.ServiceCatalog { return s.catalog }

func (s *contentService) Internships() []respond.InternshipPosition { return s.positions }

var serviceCatalog = respond.ServiceCatalog{
	ITSolutions: []respond.ServiceOffering{
		{Title: "Web Development", Description: "Custom web applications using modern frameworks like Flask, Django, React, and Vue.js", Icon: "fas fa-globe"},
		{Title: "Mobile App Development", Description: "Native and cross-platform mobile applications for iOS and Android", Icon: "fas fa-mobile-alt"},
		{Title: "Cloud Solutions", Description: "AWS, Azure, and Google Cloud infrastructure setup and management", Icon: "fas fa-cloud"},
		{Title: "Database Management", Description: "Database design, optimization, and management for scalable applications", Icon: "fas fa-database"},
	},
	IoTSolutions: []respond.ServiceOffering{
		{Title: "Smart Home Systems", Description: "Automated home solutions with sensor integration and mobile control", Icon: "fas fa-home"},
		{Title: "Industrial IoT", Description: "Manufacturing and industrial automation with real-time monitoring", Icon: "fas fa-industry"},
		{Title: "Environmental Monitoring", Description: "Air quality, weather, and environmental data collection systems", Icon: "fas fa-leaf"},
		{Title: "Asset Tracking", Description: "GPS and RFID-based tracking solutions for inventory and logistics", Icon: "fas fa-map-marker-alt"},
	},
	AISolutions: []respond.ServiceOffering{
		{Title: "Machine Learning Models", Description: "Custom ML models for prediction, classification, and recommendation systems", Icon: "fas fa-brain"},
		{Title: "Computer Vision", Description: "Image recognition, object detection, and video analysis solutions", Icon: "fas fa-eye"},
		{Title: "Natural Language Processing", Description: "Text analysis, chatbots, and language understanding applications", Icon: "fas fa-comments"},
		{Title: "Data Analytics", Description: "Business intelligence and data visualization for informed decision making", Icon: "fas fa-chart-line"},
	},
}

var internshipPositions = []respond.InternshipPosition{
	{
		Title:        "Full Stack Development Intern",
		Domain:       "IT Solutions",
		Duration:     "3-6 months",
		Description:  "Work on web applications using Python Flask, React, and modern databases",
		Requirements: []string{"Python/JavaScript knowledge", "Basic web development skills", "Git version control"},
	},
	{
		Title:        "IoT Development Intern",
		Domain:       "IoT Development",
		Duration:     "4-6 months",
		Description:  "Develop IoT solutions using Arduino, Raspberry Pi, and cloud platforms",
		Requirements: []string{"Electronics basics", "Programming skills (Python/C++)", "Interest in hardware"},
	},
	{
		Title:        "AI/ML Research Intern",
		Domain:       "AI & Machine Learning",
		Duration:     "3-6 months",
		Description:  "Work on machine learning projects and AI model development",
		Requirements: []string{"Python programming", "Mathematics/Statistics background", "ML frameworks knowledge"},
	},
	{
		Title:        "Data Science Intern",
		Domain:       "Data Science",
		Duration:     "3-4 months",
		Description:  "Analyze data, create visualizations, and build predictive models",
		Requirements: []string{"Python/R programming", "Statistics knowledge", "Data visualization skills"},
	},
}
