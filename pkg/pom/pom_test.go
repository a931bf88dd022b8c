package pom

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
		wantMsg string
		deps    int
	}{
		{
			name: "valid",
			path: "testdata/pom.xml",
			deps: 3,
		},
		{
			name: "noDependencies",
			path: "testdata/no_dependencies.xml",
			deps: 0,
		},
		{
			name: "latin1",
			path: "testdata/latin1.xml",
			deps: 1,
		},
		{
			name:    "missing",
			path:    "testdata/does-not-exist.xml",
			wantErr: ErrDescriptorNotFound,
			wantMsg: "testdata/does-not-exist.xml",
		},
		{
			name:    "malformed",
			path:    "testdata/malformed.xml",
			wantErr: ErrMalformedDescriptor,
			wantMsg: "closed by </dependencies>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.path)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantMsg) {
					t.Errorf("Load() error = %q, want it to contain %q", err, tt.wantMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("Load() unexpected error = %v", err)
			}
			if len(got.DependencyList()) != tt.deps {
				t.Errorf("Load() got %d dependencies, want %d", len(got.DependencyList()), tt.deps)
			}
		})
	}
}

func TestLoadDefaultPath(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("")
	if !errors.Is(err, ErrDescriptorNotFound) {
		t.Fatalf("Load() error = %v, want %v", err, ErrDescriptorNotFound)
	}
	if !strings.Contains(err.Error(), "./pom.xml") {
		t.Errorf("Load() error = %q, want default path in message", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []Dependency
		wantErr bool
	}{
		{
			name: "firstBlockOnly",
			data: `<project>
  <dependencies>
    <dependency><groupId>a</groupId><artifactId>b</artifactId><version>1</version></dependency>
  </dependencies>
  <dependencies>
    <dependency><groupId>c</groupId><artifactId>d</artifactId><version>2</version></dependency>
  </dependencies>
</project>`,
			want: []Dependency{
				{GroupID: []string{"a"}, ArtifactID: []string{"b"}, Version: []string{"1"}},
			},
		},
		{
			name: "repeatedChildren",
			data: `<project><dependencies><dependency>
  <groupId>a</groupId><groupId>z</groupId><artifactId>b</artifactId>
</dependency></dependencies></project>`,
			want: []Dependency{
				{GroupID: []string{"a", "z"}, ArtifactID: []string{"b"}},
			},
		},
		{
			name: "emptyBlock",
			data: `<project><dependencies></dependencies></project>`,
			want: nil,
		},
		{
			name: "latin1",
			data: "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<project><dependencies><dependency>" +
				"<groupId>org.caf\xe9</groupId><artifactId>cr\xe8me</artifactId><version>1.0</version>" +
				"</dependency></dependencies></project>",
			want: []Dependency{
				{GroupID: []string{"org.café"}, ArtifactID: []string{"crème"}, Version: []string{"1.0"}},
			},
		},
		{
			name: "trailingCommentAndWhitespace",
			data: "<project><dependencies><dependency><groupId>a</groupId></dependency></dependencies></project>\n<!-- end -->\n",
			want: []Dependency{
				{GroupID: []string{"a"}},
			},
		},
		{
			name:    "strayEndTagAfterRoot",
			data:    `<project><dependencies><dependency><groupId>a</groupId></dependency></dependencies></project></oops>`,
			wantErr: true,
		},
		{
			name:    "secondRoot",
			data:    `<project></project><project></project>`,
			wantErr: true,
		},
		{
			name:    "unterminatedAfterRoot",
			data:    `<project></project><garbage`,
			wantErr: true,
		},
		{
			name:    "textAfterRoot",
			data:    `<project></project>trailing`,
			wantErr: true,
		},
		{
			name:    "wrongRoot",
			data:    `<settings><dependencies/></settings>`,
			wantErr: true,
		},
		{
			name:    "empty",
			data:    ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data))

			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrMalformedDescriptor) {
					t.Errorf("Parse() error = %v, want %v", err, ErrMalformedDescriptor)
				}
				return
			}

			if !reflect.DeepEqual(got.DependencyList(), tt.want) {
				t.Errorf("Parse() got = %+v, want %+v", got.DependencyList(), tt.want)
			}
		})
	}
}

func TestLoadFromTempDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pom.xml")

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("Load() error = %v, want message naming %s", err, path)
	}
}
