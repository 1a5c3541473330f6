package rewrite

import "testing"

func TestSQLiteMinMaxQuery(t *testing.T) {
	got := SQLite{}.MinMaxQuery("select * from t", "id")
	want := "SELECT CAST(MIN(id) AS INTEGER), CAST(MAX(id) AS INTEGER) FROM (select * from t) as query_inner"
	if got != want {
		t.Errorf("MinMaxQuery() = %q, want %q", got, want)
	}
}

func TestSQLiteWrapQueryWithBounds(t *testing.T) {
	got := SQLite{}.WrapQueryWithBounds("select * from t", "id", Bound{Start: 5, Stop: 15, IsLast: true})
	want := "select * from (select * from t) as query_inner where id >= 5 and id <= 15"
	if got != want {
		t.Errorf("WrapQueryWithBounds() = %q, want %q", got, want)
	}
}

func TestSQLiteMergeCountQueries(t *testing.T) {
	got := SQLite{}.MergeCountQueries([]string{"select 1;", "select 2"})
	want := "SELECT (SELECT COUNT(*) FROM (select 1) AS t0) +\n       (SELECT COUNT(*) FROM (select 2) AS t1);"
	if got != want {
		t.Errorf("MergeCountQueries() = %q, want %q", got, want)
	}
}
