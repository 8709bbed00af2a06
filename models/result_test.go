package models

import (
	"errors"
	"testing"
	"time"
)

func TestParseCodec(t *testing.T) {
	cases := []struct {
		in      string
		want    Codec
		wantErr bool
	}{
		{"x265", CodecX265, false},
		{"X265", CodecX265, false},
		{" jctvc ", CodecJCTVC, false},
		{"av1", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseCodec(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseCodec(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCodec(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseCodec(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSuccessResultFields(t *testing.T) {
	task := Task{InputPath: "/in/a.png", OutputPath: "/out/a.bpg"}
	r := SuccessResult(task, 10240, 5120, 2*time.Second)

	if r.Ratio != 0.5 {
		t.Errorf("Ratio = %v, want 0.5", r.Ratio)
	}
	if r.BytesSaved != 5120 {
		t.Errorf("BytesSaved = %d, want 5120", r.BytesSaved)
	}
	if r.Err != nil {
		t.Errorf("Err = %v, want nil", r.Err)
	}
	if !r.Succeeded() {
		t.Error("Succeeded() = false for a success result")
	}
}

func TestFailureResultFields(t *testing.T) {
	task := Task{InputPath: "/in/c.png", OutputPath: "/out/c.bpg"}
	cause := errors.New("encoder exited with status 1")
	r := FailureResult(task, 4096, time.Second, cause)

	if r.OutputSize != 0 {
		t.Errorf("OutputSize = %d, want 0", r.OutputSize)
	}
	if r.BytesSaved != -4096 {
		t.Errorf("BytesSaved = %d, want -4096", r.BytesSaved)
	}
	if r.Ratio < MaxPlausibleRatio {
		t.Errorf("Ratio = %v, want >= %v", r.Ratio, MaxPlausibleRatio)
	}
	if !errors.Is(r.Err, cause) {
		t.Errorf("Err = %v, want %v", r.Err, cause)
	}
	if r.Succeeded() {
		t.Error("Succeeded() = true for a failure result")
	}
}

func TestElapsedAlwaysPopulated(t *testing.T) {
	task := Task{InputPath: "/in/a.png", OutputPath: "/out/a.bpg"}

	s := SuccessResult(task, 100, 50, 3*time.Second)
	if s.Elapsed != 3*time.Second {
		t.Errorf("success Elapsed = %v, want 3s", s.Elapsed)
	}

	f := FailureResult(task, 100, 4*time.Second, errors.New("boom"))
	if f.Elapsed != 4*time.Second {
		t.Errorf("failure Elapsed = %v, want 4s", f.Elapsed)
	}
}
