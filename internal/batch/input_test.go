package batch

import (
	"errors"
	"strings"
	"testing"
)

func TestParseNameListSkipsBlanksAndTrims(t *testing.T) {
	input := "M31\n\n NGC 1 \n\t\n"

	tasks, err := ParseNameList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseNameList: %v", err)
	}

	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Object != "M31" || tasks[0].Key != "M31.jpg" {
		t.Errorf("task 0: %+v", tasks[0])
	}
	if tasks[1].Object != "NGC 1" || tasks[1].Key != "NGC 1.jpg" {
		t.Errorf("task 1: %+v", tasks[1])
	}
	if tasks[0].HasCoords {
		t.Error("name-list tasks must not carry coordinates")
	}
}

func TestParseNameListEmpty(t *testing.T) {
	tasks, err := ParseNameList(strings.NewReader("\n\n"))
	if err != nil {
		t.Fatalf("ParseNameList: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want 0", len(tasks))
	}
}

func TestParseTableComma(t *testing.T) {
	input := "obj,ra,dec\nXYZ,10.5,20.3\nABC,11.0,-5.25\n"

	tasks, err := ParseTable(strings.NewReader(input), false)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}

	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	first := tasks[0]
	if first.Object != "XYZ" || first.RA != 10.5 || first.Dec != 20.3 {
		t.Errorf("task 0: %+v", first)
	}
	if !first.HasCoords {
		t.Error("table tasks must carry coordinates")
	}
	if first.HasSize {
		t.Error("size must not be set when not requested")
	}
	if tasks[1].Dec != -5.25 {
		t.Errorf("task 1 dec: %v", tasks[1].Dec)
	}
}

func TestParseTableWhitespace(t *testing.T) {
	input := "name\tra2000\tdec2000\nA1\t1.0\t2.0\n"

	tasks, err := ParseTable(strings.NewReader(input), false)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Object != "A1" || tasks[0].RA != 1.0 {
		t.Errorf("tasks: %+v", tasks)
	}
}

func TestParseTableSynthesizesIdentifiers(t *testing.T) {
	input := "ra,dec\n1.0,2.0\n3.0,4.0\n5.0,6.0\n"

	tasks, err := ParseTable(strings.NewReader(input), false)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}

	want := []string{"1", "2", "3"}
	for i, w := range want {
		if tasks[i].Object != w {
			t.Errorf("task %d identifier: got %q, want %q", i, tasks[i].Object, w)
		}
		if tasks[i].Key != w+".jpg" {
			t.Errorf("task %d key: got %q", i, tasks[i].Key)
		}
	}
}

func TestParseTableSizeColumn(t *testing.T) {
	input := "obj,ra,dec,size\nXYZ,10.0,20.0,30.0\n"

	tasks, err := ParseTable(strings.NewReader(input), true)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	if !tasks[0].HasSize || tasks[0].Size != 30.0 {
		t.Errorf("task: %+v", tasks[0])
	}
}

func TestParseTableMissingCoordinateColumns(t *testing.T) {
	input := "obj,x,y\nXYZ,1,2\n"

	_, err := ParseTable(strings.NewReader(input), false)
	if !errors.Is(err, ErrMissingRA) {
		t.Errorf("got %v, want ErrMissingRA", err)
	}
}

func TestParseTableMissingDec(t *testing.T) {
	input := "obj,ra,y\nXYZ,1,2\n"

	_, err := ParseTable(strings.NewReader(input), false)
	if !errors.Is(err, ErrMissingDec) {
		t.Errorf("got %v, want ErrMissingDec", err)
	}
}

func TestParseTableMissingSizeColumn(t *testing.T) {
	input := "obj,ra,dec\nXYZ,1,2\n"

	_, err := ParseTable(strings.NewReader(input), true)
	if !errors.Is(err, ErrMissingSize) {
		t.Errorf("got %v, want ErrMissingSize", err)
	}
}

func TestParseTableCaseSensitivePrefixes(t *testing.T) {
	// "RA" does not match the lowercase "ra" prefix.
	input := "obj,RA,dec\nXYZ,1,2\n"

	_, err := ParseTable(strings.NewReader(input), false)
	if !errors.Is(err, ErrMissingRA) {
		t.Errorf("got %v, want ErrMissingRA for uppercase header", err)
	}
}

func TestParseTableIdentifierPrefixOrder(t *testing.T) {
	// "obj" wins over "target" regardless of column position.
	input := "target,ra,dec,object\nT1,1.0,2.0,O1\n"

	tasks, err := ParseTable(strings.NewReader(input), false)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	if tasks[0].Object != "O1" {
		t.Errorf("identifier: got %q, want %q", tasks[0].Object, "O1")
	}
}

func TestParseTableBadFloat(t *testing.T) {
	input := "ra,dec\nnot-a-number,2.0\n"

	if _, err := ParseTable(strings.NewReader(input), false); err == nil {
		t.Error("expected error for unparsable coordinate")
	}
}

func TestParseTableEmpty(t *testing.T) {
	_, err := ParseTable(strings.NewReader(""), false)
	if !errors.Is(err, ErrEmptyTable) {
		t.Errorf("got %v, want ErrEmptyTable", err)
	}
}
