package pom

import (
	"errors"
	"reflect"
	"testing"
)

func TestDependencyCoordinate(t *testing.T) {
	type args struct {
		dep  Dependency
		opts ExtractOptions
	}

	tests := []struct {
		name    string
		args    args
		want    Coordinate
		wantGAV string
	}{
		{
			name: "complete",
			args: args{dep: Dependency{
				GroupID:    []string{"org.apache.logging.log4j"},
				ArtifactID: []string{"log4j-core"},
				Version:    []string{"2.14.1"},
			}},
			want: Coordinate{
				GroupID:    "org.apache.logging.log4j",
				ArtifactID: "log4j-core",
				Version:    "2.14.1",
			},
			wantGAV: "org.apache.logging.log4j:log4j-core:2.14.1",
		},
		{
			name: "missingVersion",
			args: args{dep: Dependency{
				GroupID:    []string{"junit"},
				ArtifactID: []string{"junit"},
			}},
			want: Coordinate{
				GroupID:    "junit",
				ArtifactID: "junit",
				Version:    "N/A",
				Missing:    VersionField,
			},
			wantGAV: "junit:junit:N/A",
		},
		{
			name: "allMissingCustomSentinel",
			args: args{
				dep:  Dependency{},
				opts: ExtractOptions{Sentinel: "unknown"},
			},
			want: Coordinate{
				GroupID:    "unknown",
				ArtifactID: "unknown",
				Version:    "unknown",
				Missing:    GroupField | ArtifactField | VersionField,
			},
			wantGAV: "unknown:unknown:unknown",
		},
		{
			name: "emptyElementIsPresent",
			args: args{dep: Dependency{
				GroupID:    []string{"g"},
				ArtifactID: []string{"a"},
				Version:    []string{""},
			}},
			want:    Coordinate{GroupID: "g", ArtifactID: "a", Version: ""},
			wantGAV: "g:a:",
		},
		{
			name: "firstValueWins",
			args: args{dep: Dependency{
				GroupID:    []string{" g1 ", "g2"},
				ArtifactID: []string{"a"},
				Version:    []string{"1.0", "2.0"},
			}},
			want:    Coordinate{GroupID: "g1", ArtifactID: "a", Version: "1.0"},
			wantGAV: "g1:a:1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.args.dep.Coordinate(tt.args.opts)

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Coordinate() got = %+v, want %+v", got, tt.want)
			}
			if got.GAV() != tt.wantGAV {
				t.Errorf("GAV() got = %s, want %s", got.GAV(), tt.wantGAV)
			}
		})
	}
}

func TestProjectCoordinates(t *testing.T) {
	p, err := Load("testdata/pom.xml")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts ExtractOptions
		want []string
	}{
		{
			name: "literal",
			want: []string{
				"org.apache.logging.log4j:log4j-core:${log4j.version}",
				"org.springframework:spring-core:${spring.version}",
				"junit:junit:N/A",
			},
		},
		{
			name: "interpolated",
			opts: ExtractOptions{Interpolate: true},
			want: []string{
				"org.apache.logging.log4j:log4j-core:2.14.1",
				"org.springframework:spring-core:5.3.20",
				"junit:junit:N/A",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords, err := p.Coordinates(tt.opts)
			if err != nil {
				t.Fatalf("Coordinates() error = %v", err)
			}

			got := []string{}
			for _, c := range coords {
				got = append(got, c.GAV())
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Coordinates() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectCoordinatesEmpty(t *testing.T) {
	for _, data := range []string{
		`<project/>`,
		`<project><dependencies/></project>`,
		`<project><dependencyManagement><dependencies><dependency><groupId>g</groupId></dependency></dependencies></dependencyManagement></project>`,
	} {
		p, err := Parse([]byte(data))
		if err != nil {
			t.Fatal(err)
		}

		if _, err := p.Coordinates(ExtractOptions{}); !errors.Is(err, ErrNoDependencies) {
			t.Errorf("Coordinates(%s) error = %v, want %v", data, err, ErrNoDependencies)
		}
	}
}

func TestInterpolate(t *testing.T) {
	p, err := Parse([]byte(`<project>
  <groupId>com.example</groupId>
  <version>3.1.0</version>
  <properties>
    <base>1.2</base>
    <full>${base}.3</full>
    <loop>${loop}</loop>
  </properties>
</project>`))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{in: "${full}", want: "1.2.3"},
		{in: "${project.version}", want: "3.1.0"},
		{in: "${project.groupId}-${base}", want: "com.example-1.2"},
		{in: "${missing}", want: "${missing}"},
		{in: "${loop}", want: "${loop}"},
		{in: "plain", want: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := p.Interpolate(tt.in); got != tt.want {
				t.Errorf("Interpolate() got = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFieldString(t *testing.T) {
	if got := (GroupField | VersionField).String(); got != "groupId,version" {
		t.Errorf("String() got = %s", got)
	}
	if got := Field(0).String(); got != "" {
		t.Errorf("String() got = %s", got)
	}
}
