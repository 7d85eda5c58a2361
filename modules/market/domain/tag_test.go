package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/anthol-dao/anthol-common/modules/market/domain"
)

func TestNewTag_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "simple", input: "furniture", want: "furniture"},
		{name: "lowercased", input: "Mid Century", want: "mid century"},
		{name: "whitespace collapsed", input: "  mid   century  ", want: "mid century"},
		{name: "underscore allowed", input: "hand_made", want: "hand_made"},
		{name: "digits allowed", input: "90s revival", want: "90s revival"},
		{name: "empty", input: "", wantErr: domain.ErrTagEmpty},
		{name: "whitespace only", input: "   \t ", wantErr: domain.ErrTagEmpty},
		{name: "too long", input: strings.Repeat("a", 49), wantErr: domain.ErrTagTooLong},
		{name: "at limit", input: strings.Repeat("a", 48), want: strings.Repeat("a", 48)},
		{name: "hyphen rejected", input: "mid-century", wantErr: domain.ErrTagInvalidCharacters},
		{name: "punctuation rejected", input: "sale!", wantErr: domain.ErrTagInvalidCharacters},
		{name: "at sign rejected", input: "chair@home", wantErr: domain.ErrTagInvalidCharacters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, err := domain.NewTag(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tag.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, tag.String())
			}
		})
	}
}

func TestTag_Display(t *testing.T) {
	tag, err := domain.NewTag("MID CENTURY modern")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tag.Display(); got != "Mid Century Modern" {
		t.Errorf("expected title case display, got %q", got)
	}
}

func TestTag_URL(t *testing.T) {
	tag, err := domain.NewTag("mid century modern")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tag.URL(); got != "mid-century-modern" {
		t.Errorf("expected hyphenated url form, got %q", got)
	}
}

func TestTag_RoundTripText(t *testing.T) {
	tag, err := domain.NewTag("Vintage Chairs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := tag.MarshalText()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(text) != "vintage chairs" {
		t.Errorf("expected lowercase storage form, got %q", text)
	}

	var decoded domain.Tag
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !decoded.Equals(tag) {
		t.Errorf("expected round trip to preserve tag, got %q", decoded)
	}
}
