package cookbook

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{" Chicken-Soup_42!! ", "Chicken Soup"},
		{"bEtty'S wAffLes", "Betty S Waffles"},
		{"Riz@z RISO00tto!", "Rizz Risotto"},
		{"alpHa-alFRedo", "Alpha Alfredo"},
		{"meatball", "Meatball"},
		{"  spaced\t\tout \n name ", "Spaced Out Name"},
		{"x", "X"},
		{"crème brûlée", "Crme Brle"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Rejected(t *testing.T) {
	for _, raw := range []string{"", "   ", "---___", "1234", "!!-_-!!", "日本"} {
		t.Run(raw, func(t *testing.T) {
			got, err := Normalize(raw)
			assert.ErrorIs(t, err, ErrInvalidName)
			assert.ErrorIs(t, err, ErrRejected)
			assert.Empty(t, got)
		})
	}
}

var normalizedPattern = regexp.MustCompile(`^[A-Z][a-z]*( [A-Z][a-z]*)*$`)

func TestNormalize_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.String().Draw(t, "raw")

		got, err := Normalize(raw)
		if err != nil {
			return
		}
		if !normalizedPattern.MatchString(got) {
			t.Fatalf("Normalize(%q) = %q, not title-cased words", raw, got)
		}

		again, err := Normalize(got)
		if err != nil || again != got {
			t.Fatalf("Normalize not idempotent: %q -> %q (%v)", got, again, err)
		}
	})
}
