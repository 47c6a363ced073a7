package naming

import "testing"

func TestNormalizeURLPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/", ""},
		{"", ""},
		{"blog", "/blog"},
		{"/blog/", "/blog"},
		{"  /blog/wiki/ ", "/blog/wiki"},
	}
	for _, tt := range tests {
		if got := NormalizeURLPath(tt.in); got != tt.want {
			t.Errorf("NormalizeURLPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateDomainName(t *testing.T) {
	valid := []string{"example.com", "www.example.com", "*.example.com", "a-b.example.co"}
	for _, name := range valid {
		if err := ValidateDomainName(name); err != nil {
			t.Errorf("ValidateDomainName(%q) = %v, want nil", name, err)
		}
	}
	invalid := []string{"", "com", "-bad.example.com", "exa mple.com", "*.*.example.com"}
	for _, name := range invalid {
		if err := ValidateDomainName(name); err == nil {
			t.Errorf("ValidateDomainName(%q) = nil, want error", name)
		}
	}
}

func TestValidateZoneInterval(t *testing.T) {
	for _, v := range []string{"", "3600", "1d", "2h", "4w"} {
		if err := ValidateZoneInterval(v); err != nil {
			t.Errorf("ValidateZoneInterval(%q) = %v, want nil", v, err)
		}
	}
	for _, v := range []string{"1x", "d", "-1"} {
		if err := ValidateZoneInterval(v); err == nil {
			t.Errorf("ValidateZoneInterval(%q) = nil, want error", v)
		}
	}
}
