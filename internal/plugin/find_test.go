package plugin

import (
	"reflect"
	"testing"
)

type collector interface{ Collect() }

type diskCollector struct{ label string }

func (d *diskCollector) Collect() {}

type netCollector struct{ label string }

func buildCatalog() *Catalog {
	cat := NewCatalog()
	cat.addClass("package1", "DiskCollector", reflect.TypeOf(&diskCollector{}))
	cat.addClass("package1", "NetCollector", reflect.TypeOf(&netCollector{}))
	cat.addClass("package2", "DiskCollector", reflect.TypeOf(&diskCollector{}))
	cat.addInstance("package1", "collectors", &diskCollector{label: "primary"})
	cat.addInstance("package2", "collectors", &netCollector{label: "edge"})
	return cat
}

func TestFindClassesByNameAndPackage(t *testing.T) {
	cat := buildCatalog()

	result := cat.FindClasses(ClassQuery{ClassName: "DiskCollector", PackageName: "package1"}, ReturnClasses)
	if len(result) != 1 {
		t.Fatalf("got %d results, want 1", len(result))
	}
	if result[0] != any(reflect.TypeOf(&diskCollector{})) {
		t.Errorf("result = %v, want *diskCollector type", result[0])
	}
}

func TestFindClassesFirstMatchByDefault(t *testing.T) {
	cat := buildCatalog()

	// DiskCollector exists in two packages; default returns only the first.
	result := cat.FindClasses(ClassQuery{ClassName: "DiskCollector"}, ReturnClasses)
	if len(result) != 1 {
		t.Errorf("got %d results, want 1 (first match)", len(result))
	}

	result = cat.FindClasses(ClassQuery{ClassName: "DiskCollector", All: true}, ReturnClasses)
	if len(result) != 2 {
		t.Errorf("got %d results, want 2 with All", len(result))
	}
}

func TestFindClassesMissReturnsNil(t *testing.T) {
	cat := buildCatalog()

	if result := cat.FindClasses(ClassQuery{ClassName: "NoSuchClass"}, ReturnClasses); result != nil {
		t.Errorf("miss returned %v, want nil", result)
	}
	if result := cat.FindClasses(ClassQuery{ClassName: "DiskCollector", PackageName: "package9"}, ReturnBoth); result != nil {
		t.Errorf("miss returned %v, want nil", result)
	}
}

func TestFindClassesSubclassOf(t *testing.T) {
	cat := buildCatalog()
	iface := reflect.TypeOf((*collector)(nil)).Elem()

	// Only *diskCollector implements collector.
	result := cat.FindClasses(ClassQuery{SubclassOf: iface, All: true}, ReturnClasses)
	if len(result) != 2 {
		t.Fatalf("got %d results, want 2 (DiskCollector in both packages)", len(result))
	}
	for _, r := range result {
		if r != any(reflect.TypeOf(&diskCollector{})) {
			t.Errorf("unexpected match %v", r)
		}
	}
}

func TestFindClassesInstanceOf(t *testing.T) {
	cat := buildCatalog()
	iface := reflect.TypeOf((*collector)(nil)).Elem()

	result := cat.FindClasses(ClassQuery{InstanceOf: iface, All: true}, ReturnInstantiated)
	if len(result) != 1 {
		t.Fatalf("got %d results, want 1 instance", len(result))
	}
	if _, ok := result[0].(*diskCollector); !ok {
		t.Errorf("result = %T, want *diskCollector", result[0])
	}
}

func TestFindClassesInstantiatedByName(t *testing.T) {
	cat := buildCatalog()

	result := cat.FindClasses(ClassQuery{ClassName: "netCollector"}, ReturnInstantiated)
	if len(result) != 1 {
		t.Fatalf("got %d results, want 1", len(result))
	}
	inst, ok := result[0].(*netCollector)
	if !ok || inst.label != "edge" {
		t.Errorf("result = %#v, want edge netCollector", result[0])
	}
}

func TestFindClassesBothReturnsDefinitionAndInstance(t *testing.T) {
	cat := NewCatalog()
	cat.addClass("pkg", "diskCollector", reflect.TypeOf(&diskCollector{}))
	cat.addInstance("pkg", "collectors", &diskCollector{label: "live"})

	result := cat.FindClasses(ClassQuery{ClassName: "diskCollector"}, ReturnBoth)
	if len(result) != 2 {
		t.Fatalf("got %d results, want exactly 2 (one class, one instance)", len(result))
	}

	var sawType, sawInstance bool
	for _, r := range result {
		switch r.(type) {
		case reflect.Type:
			sawType = true
		case *diskCollector:
			sawInstance = true
		}
	}
	if !sawType || !sawInstance {
		t.Errorf("results = %v, want one type and one instance", result)
	}
}
