package utils_test

import (
	"testing"

	"huddle/src-server/utils"
)

func TestCleanupString(t *testing.T) {
	for input, want := range map[string]string{
		"  weekly sync.  ":    "Weekly Sync",
		"standup":             "Standup",
		"lunch   with   bob.": "Lunch With Bob",
		"":                    "",
	} {
		if got := utils.CleanupString(input); got != want {
			t.Errorf("CleanupString(%q) = %q, want %q", input, got, want)
		}
	}
}
