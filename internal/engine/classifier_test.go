package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_DefaultBoundaries(t *testing.T) {
	tests := []struct {
		name string
		qty  int
		want string
	}{
		{"well below low", 0, DefaultColors.Low},
		{"just below low", 2, DefaultColors.Low},
		{"at low boundary", 3, DefaultColors.Medium},
		{"mid medium", 5, DefaultColors.Medium},
		{"at medium boundary", 7, DefaultColors.Medium},
		{"just above medium", 8, DefaultColors.High},
		{"well above medium", 100, DefaultColors.High},
		{"negative", -4, DefaultColors.Low},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.qty, DefaultThresholds, DefaultColors)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_CustomThresholds(t *testing.T) {
	th := Thresholds{Low: 10, Medium: 50}
	c := ColorScheme{Low: "L", Medium: "M", High: "H"}

	assert.Equal(t, "L", Classify(9, th, c))
	assert.Equal(t, "M", Classify(10, th, c))
	assert.Equal(t, "M", Classify(50, th, c))
	assert.Equal(t, "H", Classify(51, th, c))
}

func TestClassify_EqualThresholds(t *testing.T) {
	// Low == Medium collapses the medium tier to a single quantity.
	th := Thresholds{Low: 5, Medium: 5}
	c := ColorScheme{Low: "L", Medium: "M", High: "H"}

	assert.Equal(t, "L", Classify(4, th, c))
	assert.Equal(t, "M", Classify(5, th, c))
	assert.Equal(t, "H", Classify(6, th, c))
}
