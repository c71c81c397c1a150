package service

import "testing"

func TestSlugValidation(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"north", true},
		{"north-campus-2", true},
		{"", false},
		{"-north", false},
		{"north-", false},
		{"North", false},
		{"north campus", false},
		{"nörth", false},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			got := checkVar("tenant_slug", tt.slug, "slug")
			if tt.valid && got != nil {
				t.Errorf("expected %q to be valid, got %q", tt.slug, got.Description)
			}
			if !tt.valid && got == nil {
				t.Errorf("expected %q to be rejected", tt.slug)
			}
		})
	}

	if v := checkVar("tenant_slug", "-bad", "slug"); v != nil && v.Field != "tenant_slug" {
		t.Errorf("field: expected tenant_slug, got %s", v.Field)
	}
}

func TestNewValidatorRegistersSlug(t *testing.T) {
	v := newValidator()
	if err := v.Var("north", "slug"); err != nil {
		t.Errorf("slug tag not registered: %v", err)
	}
}
