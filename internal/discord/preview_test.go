package discord

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		content string
		want    []string
	}{
		{"Reliability first. #maintenance #CMRP tips inside", []string{"#maintenance", "#CMRP"}},
		{"No tags here", nil},
		{"#one#two and #three_3", []string{"#one", "#two", "#three_3"}},
	}
	for _, tt := range tests {
		if got := extractHashtags(tt.content); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("extractHashtags(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected unchanged string, got %q", got)
	}
	got := truncate("a long preview string", 10)
	if got != "a long ..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	if len(got) != 10 {
		t.Fatalf("expected length 10, got %d", len(got))
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	got := truncate(strings.Repeat("é", 10), 5)
	if got != "éé..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}

	// A multibyte string whose character count fits stays untouched even
	// though its byte length exceeds max.
	s := strings.Repeat("é", 8)
	if got := truncate(s, 10); got != s {
		t.Fatalf("expected unchanged string, got %q", got)
	}
}

func TestCustomIDRoundTrip(t *testing.T) {
	id := customID(actionApprove, "d1")
	action, draftID, ok := parseCustomID(id)
	if !ok {
		t.Fatalf("parseCustomID(%q) failed", id)
	}
	if action != actionApprove || draftID != "d1" {
		t.Fatalf("got (%q, %q), want (%q, %q)", action, draftID, actionApprove, "d1")
	}

	if _, _, ok := parseCustomID("unrelated-button"); ok {
		t.Fatal("expected parse failure for foreign custom id")
	}
}
