package parsing

import "testing"

// TestNormalizeUploadDate tests parsing of extractor date formats.
func TestNormalizeUploadDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"ytdlp compact form", "20240115", "2024-01-15", false},
		{"rfc3339", "2024-01-15T10:30:00Z", "2024-01-15", false},
		{"already hyphenated", "2024-01-15", "2024-01-15", false},
		{"word date", "Jan 2, 2006", "2006-01-02", false},
		{"empty passes through", "", "", false},
		{"garbage", "not-a-date", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeUploadDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeUploadDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeUploadDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
