package session

import "testing"

func TestInsertRecordsPreservesOrder(t *testing.T) {
	model := NewDataModel()

	if err := model.InsertRecords(0, []Record{
		{"city": "Ljubljana"},
		{"city": "Zagreb"},
	}); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	if err := model.InsertRecords(1, []Record{{"city": "Kranj"}}); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	records := model.Records()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	expected := []string{"Ljubljana", "Kranj", "Zagreb"}
	for i, city := range expected {
		if records[i]["city"] != city {
			t.Fatalf("expected record %d to be %q, got %v", i, city, records[i])
		}
	}
}

func TestInsertRecordsRejectsOutOfRangePosition(t *testing.T) {
	model := NewDataModel()

	if err := model.InsertRecords(1, []Record{{"city": "Ljubljana"}}); err == nil {
		t.Fatalf("expected insert past the end of an empty model to fail")
	}
	if model.Len() != 0 {
		t.Fatalf("expected rejected insert to leave the model empty, got %d records", model.Len())
	}
}

func TestInsertRecordsCopiesCallerRecords(t *testing.T) {
	model := NewDataModel()
	record := Record{"city": "Ljubljana"}

	if err := model.InsertRecords(0, []Record{record}); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	record["city"] = "mutated"

	stored, ok := model.Record(0)
	if !ok {
		t.Fatalf("expected a stored record")
	}
	if stored["city"] != "Ljubljana" {
		t.Fatalf("expected stored record to be isolated from the caller, got %v", stored)
	}
}

func TestInsertRecordsToleratesMismatchedFieldSets(t *testing.T) {
	model := NewDataModel()

	if err := model.InsertRecords(0, []Record{
		{"city": "Ljubljana"},
		{"town": "Kranj"},
	}); err != nil {
		t.Fatalf("expected mismatched field sets to be tolerated, got %v", err)
	}
	if model.Len() != 2 {
		t.Fatalf("expected both records to be stored, got %d", model.Len())
	}
	if fields := model.Fields(); len(fields) != 1 || fields[0] != "city" {
		t.Fatalf("expected the first record to define the field set, got %v", fields)
	}
}

func TestReplaceAllKeepsIdentityAndNotifies(t *testing.T) {
	model := NewDataModel()
	notifications := 0
	model.Subscribe(func() { notifications++ })

	if err := model.InsertRecords(0, []Record{{"city": "Ljubljana"}}); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	if err := model.ReplaceAll([]Record{{"city": "Zagreb"}, {"city": "Split"}}); err != nil {
		t.Fatalf("unexpected replace error: %v", err)
	}

	if model.Len() != 2 {
		t.Fatalf("expected replaced model to hold 2 records, got %d", model.Len())
	}
	record, _ := model.Record(0)
	if record["city"] != "Zagreb" {
		t.Fatalf("expected replaced contents, got %v", record)
	}
	if notifications != 2 {
		t.Fatalf("expected one notification per mutation, got %d", notifications)
	}
}

func TestClearResetsFieldSet(t *testing.T) {
	model := NewDataModel()

	if err := model.InsertRecords(0, []Record{{"city": "Ljubljana"}}); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	model.Clear()
	if err := model.InsertRecords(0, []Record{{"town": "Kranj"}}); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	if fields := model.Fields(); len(fields) != 1 || fields[0] != "town" {
		t.Fatalf("expected cleared model to adopt the new field set, got %v", fields)
	}
}

func TestObserversNotifiedInRegistrationOrder(t *testing.T) {
	model := NewDataModel()
	var order []string
	model.Subscribe(func() { order = append(order, "first") })
	model.Subscribe(func() { order = append(order, "second") })

	if err := model.InsertRecords(0, []Record{{"city": "Ljubljana"}}); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("expected deterministic observer order, got %v", order)
	}
}
