package diagram

import "testing"

func orderedNames(d *Diagram) []string {
	classes := d.OrderedClasses()
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.Name
	}
	return names
}

func TestOrderedClassesDependenciesFirst(t *testing.T) {
	d := New(DefaultDirection)
	d.AddClass(ClassNode{Name: "B"})
	d.AddClass(ClassNode{Name: "A"})
	d.AddRelationship(RelationshipEdge{From: "B", To: "A", Relation: Inheritance})

	got := orderedNames(d)
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("order = %v, want [A B]", got)
	}
}

func TestOrderedClassesCompositionDependency(t *testing.T) {
	d := New(DefaultDirection)
	d.AddClass(ClassNode{Name: "Car"})
	d.AddClass(ClassNode{Name: "Engine"})
	d.AddComposition(CompositionEdge{Container: "Car", Contained: "Engine"})

	got := orderedNames(d)
	if len(got) != 2 || got[0] != "Engine" || got[1] != "Car" {
		t.Errorf("order = %v, want [Engine Car]", got)
	}
}

func TestOrderedClassesLexicographicTieBreak(t *testing.T) {
	d := New(DefaultDirection)
	for _, name := range []string{"zebra", "apple", "mango"} {
		d.AddClass(ClassNode{Name: name})
	}

	got := orderedNames(d)
	want := []string{"apple", "mango", "zebra"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestOrderedClassesDuplicateKeepsFirst(t *testing.T) {
	d := New(DefaultDirection)
	d.AddClass(ClassNode{Name: "Thing", Attributes: []Attribute{{Name: "first", TypeAnnotation: "int"}}})
	d.AddClass(ClassNode{Name: "Thing", Attributes: []Attribute{{Name: "second", TypeAnnotation: "str"}}})

	classes := d.OrderedClasses()
	if len(classes) != 1 {
		t.Fatalf("got %d classes, want 1", len(classes))
	}
	if len(classes[0].Attributes) != 1 || classes[0].Attributes[0].Name != "first" {
		t.Errorf("kept attributes = %v, want the first insertion", classes[0].Attributes)
	}
}

func TestOrderedClassesCycleTerminates(t *testing.T) {
	d := New(DefaultDirection)
	d.AddClass(ClassNode{Name: "A"})
	d.AddClass(ClassNode{Name: "B"})
	d.AddRelationship(RelationshipEdge{From: "A", To: "B", Relation: Inheritance})
	d.AddRelationship(RelationshipEdge{From: "B", To: "A", Relation: Inheritance})

	got := orderedNames(d)
	if len(got) != 2 {
		t.Fatalf("order = %v, want both classes exactly once", got)
	}
}

func TestOrderedClassesExternalTargetsFiltered(t *testing.T) {
	d := New(DefaultDirection)
	d.AddClass(ClassNode{Name: "Model"})
	d.AddRelationship(RelationshipEdge{From: "Model", To: "pydantic.BaseModel", Relation: Inheritance})

	got := orderedNames(d)
	if len(got) != 1 || got[0] != "Model" {
		t.Errorf("order = %v, want [Model]", got)
	}
}

func TestMerge(t *testing.T) {
	a := New(DefaultDirection)
	a.AddClass(ClassNode{Name: "A"})
	a.AddRelationship(RelationshipEdge{From: "A", To: "Base", Relation: Inheritance})

	b := New(DefaultDirection)
	b.AddClass(ClassNode{Name: "B"})
	b.AddComposition(CompositionEdge{Container: "B", Contained: "A"})

	a.Merge(b)
	if len(a.Classes) != 2 || len(a.Relationships) != 1 || len(a.Compositions) != 1 {
		t.Errorf("merged diagram = %+v", a)
	}
}

func TestParseDirection(t *testing.T) {
	for input, want := range map[string]Direction{
		"TB": DirTB, "lr": DirLR, "Bt": DirBT, "RL": DirRL,
	} {
		got, err := ParseDirection(input)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q) = %v, %v, want %v", input, got, err, want)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection accepted an invalid direction")
	}
}
