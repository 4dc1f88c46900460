package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintVersion(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		build     string
		buildTime string
		want      []string
		notWant   []string
	}{
		{
			name:    "dev build",
			version: "dev",
			build:   "unknown",
			want:    []string{"filmpicker version dev", "Go version:", "OS/Arch:"},
			notWant: []string{"(build:"},
		},
		{
			name:      "release build",
			version:   "0.2.0",
			build:     "abc1234",
			buildTime: "2026-01-05_09:30:00",
			want:      []string{"filmpicker version 0.2.0", "(build: abc1234)", "[2026-01-05_09:30:00]"},
			notWant:   []string{"Commit:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origVersion, origBuild, origBuildTime := Version, Build, BuildTime
			defer func() {
				Version, Build, BuildTime = origVersion, origBuild, origBuildTime
			}()
			Version, Build, BuildTime = tt.version, tt.build, tt.buildTime

			var buf bytes.Buffer
			printVersion(&buf)
			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("expected %q in output:\n%s", s, out)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(out, s) {
					t.Errorf("did not expect %q in output:\n%s", s, out)
				}
			}
		})
	}
}
