package imaging

import "testing"

// newSolidBuffer builds a 3-byte-per-pixel buffer filled with one color,
// followed by a second color on the last pixel.
func newSolidBuffer(t *testing.T, w, h int, fill, last [3]uint8) Image {
	t.Helper()
	data := make([]byte, w*h*3)
	for i := 0; i < w*h; i++ {
		c := fill
		if i == w*h-1 {
			c = last
		}
		copy(data[i*3:], c[:])
	}
	img, err := NewImage(data, w, h, 3)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	return img
}

func TestSampler_ChannelThreshold(t *testing.T) {
	img := newSolidBuffer(t, 4, 1, [3]uint8{100, 100, 100}, [3]uint8{110, 95, 100})
	s := NewSampler(img, 0, 0, MetricChannel)

	tests := []struct {
		threshold int
		want      bool
	}{
		{0, false},
		{9, false},
		{10, true},
		{50, true},
	}
	for _, tt := range tests {
		if got := s.Matches(3, tt.threshold); got != tt.want {
			t.Errorf("Matches(3, %d) = %v, want %v", tt.threshold, got, tt.want)
		}
	}
	if !s.Matches(1, 0) {
		t.Error("identical pixel should match at threshold 0")
	}
}

func TestSampler_Lab(t *testing.T) {
	img := newSolidBuffer(t, 2, 1, [3]uint8{0, 0, 0}, [3]uint8{255, 255, 255})
	s := NewSampler(img, 0, 0, MetricLab)

	if !s.Matches(0, 0) {
		t.Error("seed should match itself at threshold 0")
	}
	if s.Matches(1, 50) {
		t.Error("white should not match black at threshold 50")
	}
	if !s.Matches(1, 101) {
		t.Error("white should match black once threshold exceeds the Lab distance")
	}
}

func TestSampler_Seed(t *testing.T) {
	img := newSolidBuffer(t, 2, 2, [3]uint8{1, 2, 3}, [3]uint8{9, 9, 9})
	seed := NewSampler(img, 1, 1, MetricChannel).Seed()
	if seed.R != 9 || seed.G != 9 || seed.B != 9 || seed.A != 255 {
		t.Errorf("Seed: got %+v, want {9 9 9 255}", seed)
	}
}

func TestNewSampler_OutOfBoundsPanics(t *testing.T) {
	img := newSolidBuffer(t, 2, 2, [3]uint8{}, [3]uint8{})
	defer func() {
		if recover() == nil {
			t.Error("expected panic for seed outside image")
		}
	}()
	NewSampler(img, 2, 0, MetricChannel)
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in      string
		want    Metric
		wantErr bool
	}{
		{"", MetricChannel, false},
		{"channel", MetricChannel, false},
		{"lab", MetricLab, false},
		{"hsv", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMetric(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMetric(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMetric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if MetricLab.String() != "lab" {
		t.Errorf("String: got %s, want lab", MetricLab.String())
	}
}
