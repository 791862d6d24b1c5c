package posts

import "testing"

func TestNormalizeAuthor(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"GrimmHost", "grimmhost"},
		{"u/GrimmHost", "grimmhost"},
		{"/u/GrimmHost", "grimmhost"},
		{"  u/GrimmHost  ", "grimmhost"},
		{"", ""},
	}

	for _, c := range cases {
		if got := NormalizeAuthor(c.in); got != c.want {
			t.Errorf("NormalizeAuthor(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMatchesAuthor(t *testing.T) {
	if !matchesAuthor("anyone", "") {
		t.Error("empty filter should pass every author")
	}
	if !matchesAuthor("/u/GrimmHost", "grimmhost") {
		t.Error("prefixed upstream author should match lowercase filter")
	}
	if matchesAuthor("someoneelse", "grimmhost") {
		t.Error("different authors should not match")
	}
}

func TestMatchesFlair(t *testing.T) {
	if !matchesFlair("anything", "") {
		t.Error("empty filter should pass every flair")
	}
	if !matchesFlair("Official Blog Post", "official blog") {
		t.Error("substring match should be case-insensitive")
	}
	if matchesFlair("Fan Art", "Official Blog") {
		t.Error("unrelated flair should not match")
	}
	if matchesFlair("", "Official Blog") {
		t.Error("empty flair should not satisfy a filter")
	}
}
