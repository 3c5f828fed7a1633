package books

import "testing"

func TestSplitAuthorName(t *testing.T) {
	cases := []struct {
		entry     string
		firstName string
		lastName  string
	}{
		{"Jane Doe", "Jane", "Doe"},
		{"Madonna", "Madonna", ""},
		{"Gabriel Garcia Marquez", "Gabriel", "Garcia Marquez"},
		{"  Jane   Doe  ", "Jane", "Doe"},
		{"", "", ""},
	}

	for _, tc := range cases {
		firstName, lastName := splitAuthorName(tc.entry)
		if firstName != tc.firstName || lastName != tc.lastName {
			t.Fatalf("splitAuthorName(%q) = (%q, %q), want (%q, %q)",
				tc.entry, firstName, lastName, tc.firstName, tc.lastName)
		}
	}
}
