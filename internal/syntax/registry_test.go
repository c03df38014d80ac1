package syntax

import "testing"

func TestGetByAlias(t *testing.T) {
	t.Parallel()
	cases := []struct {
		tag  string
		want string
	}{
		{"go", "Go"},
		{"GOLANG", "Go"},
		{"py", "Python"},
		{"ts", "JavaScript"},
		{"yml", "YAML"},
	}
	for _, tc := range cases {
		lang := Get(tc.tag)
		if lang == nil {
			t.Errorf("Get(%q) = nil", tc.tag)
			continue
		}
		if lang.Name != tc.want {
			t.Errorf("Get(%q) = %s, want %s", tc.tag, lang.Name, tc.want)
		}
	}
}

func TestGetUnknownTagIsNil(t *testing.T) {
	t.Parallel()
	if lang := Get("cobol"); lang != nil {
		t.Errorf("Get(cobol) = %s, want nil", lang.Name)
	}
}

func TestGetForTitle(t *testing.T) {
	t.Parallel()
	if lang := GetForTitle("src/main.rs"); lang == nil || lang.Name != "Rust" {
		t.Errorf("GetForTitle(src/main.rs) = %v, want Rust", lang)
	}
	if lang := GetForTitle("README"); lang != nil {
		t.Errorf("GetForTitle(README) = %s, want nil", lang.Name)
	}
}
