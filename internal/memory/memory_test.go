package memory

import (
	"runtime/debug"
	"testing"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"1073741824", 1 << 30, false},
		{"2GiB", 2 << 30, false},
		{"512MiB", 512 << 20, false},
		{"64KiB", 64 << 10, false},
		{"100B", 100, false},
		{" 1GiB ", 1 << 30, false},
		{"2gib", 2 << 30, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-5", 0, true},
		{"0", 0, true},
	}

	for _, tt := range tests {
		got, err := parseBytes(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseBytes(%q) expected error, got %d", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseBytes(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseBytes(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{100, "100 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1 << 20, "1.0 MiB"},
		{1 << 30, "1.0 GiB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.input); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestConfigureFromEnvExplicitLimit(t *testing.T) {
	prev := debug.SetMemoryLimit(-1)
	defer debug.SetMemoryLimit(prev)

	t.Setenv("GOMEMLIMIT", "")
	t.Setenv("MEMORY_LIMIT", "256MiB")

	result := ConfigureFromEnv()
	if result.Source != "MEMORY_LIMIT" {
		t.Fatalf("expected source MEMORY_LIMIT, got %q", result.Source)
	}
	if result.Limit != 256<<20 {
		t.Errorf("expected limit %d, got %d", 256<<20, result.Limit)
	}
	if got := debug.SetMemoryLimit(-1); got != 256<<20 {
		t.Errorf("runtime limit = %d, want %d", got, 256<<20)
	}
}

func TestConfigureFromEnvInvalidLimitFallsThrough(t *testing.T) {
	prev := debug.SetMemoryLimit(-1)
	defer debug.SetMemoryLimit(prev)

	t.Setenv("GOMEMLIMIT", "")
	t.Setenv("MEMORY_LIMIT", "not-a-number")

	result := ConfigureFromEnv()
	if result.Source == "MEMORY_LIMIT" {
		t.Errorf("invalid MEMORY_LIMIT should not be used, got source %q", result.Source)
	}
}

func TestConfigureFromEnvHonorsGOMEMLIMIT(t *testing.T) {
	prev := debug.SetMemoryLimit(-1)
	defer debug.SetMemoryLimit(prev)

	t.Setenv("GOMEMLIMIT", "1GiB")
	t.Setenv("MEMORY_LIMIT", "256MiB")

	result := ConfigureFromEnv()
	if result.Source != "GOMEMLIMIT" {
		t.Fatalf("expected source GOMEMLIMIT, got %q", result.Source)
	}
}
