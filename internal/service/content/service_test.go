package content

import (
	"testing"

	"ecotech_server/internal/model"
)

func TestCatalog(t *testing.T) {
	svc := NewContentService()
	c := svc.Services()
	if len(c.ITSolutions) != 4 || len(c.IoTSolutions) != 4 || len(c.AISolutions) != 4 {
		t.Fatalf("unexpected catalog sizes")
	}
	for _, p := range svc.Internships() {
		if !model.IsValidDomain(p.Domain) {
			t.Fatalf("position %q has unknown domain %q", p.Title, p.Domain)
		}
		if len(p.Requirements) == 0 {
			t.Fatalf("position %q has no requirements", p.Title)
		}
	}
}
