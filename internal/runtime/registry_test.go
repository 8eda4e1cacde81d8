package runtime

import (
	"fmt"
	"testing"
)

func TestRegistryCreateGetRemove(t *testing.T) {
	r := NewRegistry()
	inst, err := r.Create("alpha")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inst.Context == nil || inst.Assets == nil || inst.Executor == nil {
		t.Error("instance created without its owned collaborators")
	}

	got, ok := r.Get("alpha")
	if !ok || got != inst {
		t.Error("Get did not return the created instance")
	}

	if !r.Remove("alpha") {
		t.Error("Remove returned false")
	}
	if _, ok := r.Get("alpha"); ok {
		t.Error("instance still present after Remove")
	}
	if r.Remove("alpha") {
		t.Error("second Remove succeeded")
	}
}

func TestRegistryDuplicateName(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create("x"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Create("x"); err == nil {
		t.Error("duplicate name accepted")
	}
}

func TestRegistryCapacity(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < MaxInstances; i++ {
		if _, err := r.Create(fmt.Sprintf("i%d", i)); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}
	if _, err := r.Create("overflow"); err == nil {
		t.Error("registry accepted more than MaxInstances")
	}
	if r.Len() != MaxInstances {
		t.Errorf("Len = %d", r.Len())
	}
}

func TestRegistryListOrder(t *testing.T) {
	r := NewRegistry()
	names := []string{"c", "a", "b"}
	for _, n := range names {
		r.Create(n)
	}
	got := r.List()
	for i, n := range names {
		if got[i] != n {
			t.Errorf("List[%d] = %s, want %s (creation order)", i, got[i], n)
		}
	}
}

func TestGeneratedInstanceNames(t *testing.T) {
	a := NewInstance("")
	b := NewInstance("")
	if a.Name == "" || a.Name == b.Name {
		t.Errorf("generated names not unique: %q %q", a.Name, b.Name)
	}
}
