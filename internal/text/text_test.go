package text

import "testing"

func TestFormatTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"game-of-life", "Game Of Life"},
		{"terminal_mail_client", "Terminal Mail Client"},
		{"mixed-style_name", "Mixed Style Name"},
		{"already Spaced", "Already Spaced"},
		{"single", "Single"},
		{"--leading-and-trailing--", "Leading And Trailing"},
		{"double__underscore", "Double Underscore"},
		{"", ""},
		{"---", ""},
	}

	for _, c := range cases {
		if got := FormatTitle(c.in); got != c.want {
			t.Errorf("FormatTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEscapeFilter(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"C++", `C\+\+`},
		{"Go", "Go"},
		{".NET", `\.NET`},
		{"Regex (advanced)", `Regex \(advanced\)`},
		{"a/b", `a\/b`},
		{`back\slash`, `back\\slash`},
		{"", ""},
	}

	for _, c := range cases {
		if got := EscapeFilter(c.in); got != c.want {
			t.Errorf("EscapeFilter(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// Escaped labels must compile and match only their own literal text.
func TestFilterPatternRoundTrip(t *testing.T) {
	labels := []string{"C++", "C#", ".NET", "Go", "Shell (bash)", "F*"}

	for _, label := range labels {
		re, err := FilterPattern(label)
		if err != nil {
			t.Fatalf("FilterPattern(%q): %v", label, err)
		}
		if !re.MatchString(label) {
			t.Errorf("pattern for %q does not match the label itself", label)
		}
	}

	re, err := FilterPattern("C++")
	if err != nil {
		t.Fatal(err)
	}
	if re.MatchString("CXX") || re.MatchString("C") {
		t.Error("escaped C++ pattern matched text it should not")
	}
	if !re.MatchString("c++") {
		t.Error("filter patterns should be case-insensitive")
	}
}
