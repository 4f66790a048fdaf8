package plugin

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/corral-labs/corral/internal/catalog"
)

type awsTask struct{ region string }

type gcpTask struct{ project string }

// registerTestPlugin registers a loader and removes it when the test ends.
func registerTestPlugin(t *testing.T, name string, p Plugin) {
	t.Helper()
	Register(name, p)
	t.Cleanup(func() { Unregister(name) })
}

func writeMetadata(t *testing.T, dir, name string) {
	t.Helper()
	content := "name: " + name + "\nversion: \"1.0.0\"\nauthor: Test Author\n"
	if err := os.WriteFile(filepath.Join(dir, "plugin.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanPackagesRecordsClasses(t *testing.T) {
	dir := t.TempDir()
	writeMetadata(t, dir, "corral-plugin-aws")

	registerTestPlugin(t, "corral-plugin-aws", Plugin{
		Modules: []Module{{
			Name: "tasks",
			Classes: map[string]reflect.Type{
				"AwsTask":  reflect.TypeOf(&awsTask{}),
				"helper":   reflect.TypeOf(&gcpTask{}), // unexported name, skipped
				"_Ignored": reflect.TypeOf(&gcpTask{}),
			},
		}},
	})

	cat := NewCatalog()
	s := NewScanner(cat, catalog.New())

	source := StaticSource{{Name: "corral-plugin-aws", Dir: dir}}
	if err := s.ScanPackages(source); err != nil {
		t.Fatalf("ScanPackages: %v", err)
	}

	classes := cat.Classes["corral-plugin-aws"]
	if len(classes) != 1 {
		t.Fatalf("recorded %d classes, want 1 (exported only): %v", len(classes), classes)
	}
	if classes["AwsTask"] != reflect.TypeOf(&awsTask{}) {
		t.Error("AwsTask type not recorded")
	}

	meta := cat.Metadata["corral-plugin-aws"]
	if meta == nil || meta.Author != "Test Author" {
		t.Errorf("metadata not attached: %+v", meta)
	}
}

func TestScanPackagesMissingMetadataIsNonFatal(t *testing.T) {
	registerTestPlugin(t, "corral-plugin-bare", Plugin{
		Modules: []Module{{
			Name:    "tasks",
			Classes: map[string]reflect.Type{"BareTask": reflect.TypeOf(&awsTask{})},
		}},
	})

	cat := NewCatalog()
	s := NewScanner(cat, catalog.New())

	source := StaticSource{{Name: "corral-plugin-bare", Dir: t.TempDir()}}
	if err := s.ScanPackages(source); err != nil {
		t.Fatalf("ScanPackages: %v", err)
	}

	if cat.Classes["corral-plugin-bare"]["BareTask"] == nil {
		t.Error("class not recorded when metadata is missing")
	}
	if cat.Metadata["corral-plugin-bare"] != nil {
		t.Error("metadata recorded despite missing sidecar")
	}
}

func TestScanPackagesSkipsPackagesWithoutLoader(t *testing.T) {
	cat := NewCatalog()
	s := NewScanner(cat, catalog.New())

	source := StaticSource{{Name: "corral-plugin-unloadable", Dir: t.TempDir()}}
	if err := s.ScanPackages(source); err != nil {
		t.Fatalf("ScanPackages should skip silently, got: %v", err)
	}
	if len(cat.Classes) != 0 {
		t.Errorf("Classes = %v, want empty", cat.Classes)
	}
}

func TestScanPackagesIdempotent(t *testing.T) {
	setupCalls := 0
	registerTestPlugin(t, "corral-plugin-once", Plugin{
		Setup: func(reg *catalog.Registry) { setupCalls++ },
		Modules: []Module{{
			Name:    "tasks",
			Classes: map[string]reflect.Type{"OnceTask": reflect.TypeOf(&awsTask{})},
		}},
	})

	cat := NewCatalog()
	s := NewScanner(cat, catalog.New())
	source := StaticSource{{Name: "corral-plugin-once"}}

	for i := 0; i < 3; i++ {
		if err := s.ScanPackages(source); err != nil {
			t.Fatalf("ScanPackages: %v", err)
		}
	}

	if setupCalls != 1 {
		t.Errorf("Setup ran %d times, want 1 (re-scan skips loaded packages)", setupCalls)
	}
}

func TestScanPackagesRunsSetupEntryPoint(t *testing.T) {
	registerTestPlugin(t, "corral-plugin-reg", Plugin{
		Setup: func(reg *catalog.Registry) {
			reg.Add("task", "aws", reflect.TypeOf(&awsTask{}), nil, []string{"cloud"})
		},
	})

	reg := catalog.New()
	s := NewScanner(NewCatalog(), reg)

	if err := s.ScanPackages(StaticSource{{Name: "corral-plugin-reg"}}); err != nil {
		t.Fatalf("ScanPackages: %v", err)
	}

	if !reg.Has("task", "aws") {
		t.Error("entry point did not self-register into the registry")
	}
}

func TestScanPathRecordsInstances(t *testing.T) {
	a, b := &awsTask{region: "us-east-1"}, &awsTask{region: "eu-west-1"}
	registerTestPlugin(t, "corral-plugin-instances", Plugin{
		Modules: []Module{
			{
				Name: "tasks",
				Objects: []Object{
					{Name: "Primary", Value: a},
					{Name: "Secondary", Value: b},
					{Name: "hidden", Value: &gcpTask{}}, // unexported, skipped
				},
			},
			{
				Name:    "_init",
				Objects: []Object{{Name: "Skipped", Value: &gcpTask{}}},
			},
		},
	})

	cat := NewCatalog()
	s := NewScanner(cat, catalog.New())

	path := filepath.Join(t.TempDir(), "corral-plugin-instances")
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
	if err := s.ScanPath(path); err != nil {
		t.Fatalf("ScanPath: %v", err)
	}

	got := cat.Instantiated["corral-plugin-instances"]["tasks"]
	if len(got) != 2 {
		t.Fatalf("recorded %d instances, want 2: %v", len(got), got)
	}
	if got[0] != any(a) || got[1] != any(b) {
		t.Error("instance order not preserved")
	}
	if len(cat.Instantiated["corral-plugin-instances"]) != 1 {
		t.Error("underscore-prefixed module was not skipped")
	}
}

func TestScanPathIdempotent(t *testing.T) {
	registerTestPlugin(t, "corral-plugin-repeat", Plugin{
		Modules: []Module{{
			Name:    "tasks",
			Objects: []Object{{Name: "One", Value: &awsTask{}}},
		}},
	})

	cat := NewCatalog()
	s := NewScanner(cat, catalog.New())

	path := filepath.Join(t.TempDir(), "corral-plugin-repeat")
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := s.ScanPath(path); err != nil {
			t.Fatalf("ScanPath: %v", err)
		}
	}

	if got := cat.Instantiated["corral-plugin-repeat"]["tasks"]; len(got) != 1 {
		t.Errorf("recorded %d instances after re-scan, want 1", len(got))
	}
}

func TestPrefixSource(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"corral-plugin-aws", "corral-plugin-gcp", "unrelated", ".hidden"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}
	// A prefix-matching plain file must not count as a package.
	if err := os.WriteFile(filepath.Join(root, "corral-plugin-file"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	pkgs, err := PrefixSource{Root: root, Prefix: "corral-plugin-"}.Packages()
	if err != nil {
		t.Fatalf("Packages: %v", err)
	}

	if len(pkgs) != 2 {
		t.Fatalf("found %d packages, want 2: %v", len(pkgs), pkgs)
	}
	if pkgs[0].Name != "corral-plugin-aws" || pkgs[1].Name != "corral-plugin-gcp" {
		t.Errorf("packages = %v", pkgs)
	}
}

func TestPrefixSourceMissingRoot(t *testing.T) {
	pkgs, err := PrefixSource{Root: filepath.Join(t.TempDir(), "nope"), Prefix: "x-"}.Packages()
	if err != nil {
		t.Fatalf("missing root should not error: %v", err)
	}
	if len(pkgs) != 0 {
		t.Errorf("found %d packages, want 0", len(pkgs))
	}
}
