package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	tests := []struct {
		name                              string
		version, commit                   string
		info                              debug.BuildInfo
		wantVersion, wantCommit, wantDate string
	}{
		{
			name:        "module version fills dev",
			version:     "dev",
			commit:      "none",
			info:        debug.BuildInfo{Main: debug.Module{Version: "v0.3.1"}, Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}, {Key: "vcs.time", Value: "2026-01-02T03:04:05Z"}}},
			wantVersion: "v0.3.1",
			wantCommit:  "abc",
			wantDate:    "2026-01-02T03:04:05Z",
		},
		{
			name:        "devel build keeps dev",
			version:     "dev",
			commit:      "none",
			info:        debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			wantVersion: "dev",
			wantCommit:  "none",
			wantDate:    "unknown",
		},
		{
			name:        "ldflags win",
			version:     "v1.0.0",
			commit:      "deadbeef",
			info:        debug.BuildInfo{Main: debug.Module{Version: "v0.3.1"}, Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}}},
			wantVersion: "v1.0.0",
			wantCommit:  "deadbeef",
			wantDate:    "unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, Date = tt.version, tt.commit, "unknown"
			fill(&tt.info)
			if Version != tt.wantVersion || Commit != tt.wantCommit || Date != tt.wantDate {
				t.Errorf("got %s/%s/%s, want %s/%s/%s", Version, Commit, Date, tt.wantVersion, tt.wantCommit, tt.wantDate)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.HasPrefix(String(), "version: "+Version) {
		t.Errorf("String() = %q", String())
	}
}
