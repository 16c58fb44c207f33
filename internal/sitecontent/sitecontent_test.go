package sitecontent

import "testing"

func TestLoadEmbeddedContent(t *testing.T) {
	site, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if site.Brand.WhatsApp != "60122681879" {
		t.Fatalf("unexpected whatsapp number %q", site.Brand.WhatsApp)
	}
	if len(site.Services) == 0 || len(site.Testimonials) == 0 || len(site.Timeline) == 0 {
		t.Fatalf("expected embedded lists to be populated: %+v", site)
	}
	if site.Services[0].Price != 1500 {
		t.Fatalf("expected bridal price 1500, got %v", site.Services[0].Price)
	}
}

func TestParseRejectsMissingBrand(t *testing.T) {
	if _, err := Parse([]byte("hero:\n  headline: hi\n")); err == nil {
		t.Fatal("expected missing brand to fail")
	}
	if _, err := Parse([]byte("brand: [unclosed")); err == nil {
		t.Fatal("expected invalid yaml to fail")
	}
}
