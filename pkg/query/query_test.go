package query_test

import (
	"testing"

	"github.com/gridsight/gridsight/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func testProjection() *query.ProjectionMap {
	return query.
		NewProjectionMap("public", "detections", "d").
		Project("id", "ID").
		Project("inspection_number", "InspectionNumber").
		Project("class_name", "ClassName").
		Project("created_at", "CreatedAt")
}

func TestBuildNoConditions(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).Build()

	want := "SELECT d.id, d.inspection_number, d.class_name, d.created_at FROM public.detections d"
	if sql != want {
		t.Errorf("sql:\n got %s\nwant %s", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args: got %v, want empty", args)
	}
}

func TestBuildWithConditionsAndSort(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true}).
		WhereEquals("InspectionNumber", "INS-001").
		WhereContains("ClassName", ptr("rust")).
		Build()

	want := "SELECT d.id, d.inspection_number, d.class_name, d.created_at " +
		"FROM public.detections d " +
		"WHERE d.inspection_number = $1 AND d.class_name ILIKE $2 " +
		"ORDER BY d.created_at DESC"
	if sql != want {
		t.Errorf("sql:\n got %s\nwant %s", sql, want)
	}
	if len(args) != 2 {
		t.Fatalf("args: got %d, want 2", len(args))
	}
	if args[1] != "%rust%" {
		t.Errorf("contains arg: got %v", args[1])
	}
}

func TestBuildCount(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection()).
		WhereEquals("InspectionNumber", "INS-001").
		BuildCount()

	want := "SELECT COUNT(*) FROM public.detections d WHERE d.inspection_number = $1"
	if sql != want {
		t.Errorf("sql: got %s", sql)
	}
	if len(args) != 1 {
		t.Errorf("args: got %d, want 1", len(args))
	}
}

func TestBuildPage(t *testing.T) {
	sql, _ := query.
		NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true}).
		BuildPage(3, 20)

	want := "SELECT d.id, d.inspection_number, d.class_name, d.created_at " +
		"FROM public.detections d " +
		"ORDER BY d.created_at DESC LIMIT 20 OFFSET 40"
	if sql != want {
		t.Errorf("sql:\n got %s\nwant %s", sql, want)
	}
}

func TestBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("ID", "abc")

	want := "SELECT d.id, d.inspection_number, d.class_name, d.created_at " +
		"FROM public.detections d WHERE d.id = $1"
	if sql != want {
		t.Errorf("sql: got %s", sql)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("args: got %v", args)
	}
}

func TestWhereSearch(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection()).
		WhereSearch(ptr("corrosion"), "ClassName", "InspectionNumber").
		Build()

	want := "SELECT d.id, d.inspection_number, d.class_name, d.created_at " +
		"FROM public.detections d " +
		"WHERE (d.class_name ILIKE $1 OR d.inspection_number ILIKE $2)"
	if sql != want {
		t.Errorf("sql:\n got %s\nwant %s", sql, want)
	}
	if len(args) != 2 {
		t.Errorf("args: got %d, want 2", len(args))
	}
}

func TestNilFiltersIgnored(t *testing.T) {
	var name *string
	sql, args := query.
		NewBuilder(testProjection()).
		WhereContains("ClassName", name).
		WhereEquals("InspectionNumber", nil).
		Build()

	want := "SELECT d.id, d.inspection_number, d.class_name, d.created_at FROM public.detections d"
	if sql != want {
		t.Errorf("sql: got %s", sql)
	}
	if len(args) != 0 {
		t.Errorf("args: got %v, want empty", args)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "region", []query.SortField{{Field: "region"}}},
		{
			"mixed",
			"region,-createdAt",
			[]query.SortField{
				{Field: "region"},
				{Field: "createdAt", Descending: true},
			},
		},
		{"whitespace", " region , -createdAt ", []query.SortField{
			{Field: "region"},
			{Field: "createdAt", Descending: true},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("len: got %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("field[%d]: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
