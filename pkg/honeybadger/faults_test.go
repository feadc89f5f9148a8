package honeybadger

import (
	"context"
	"net/http"
	"testing"
)

func TestListFaults_QueryParams(t *testing.T) {
	client, rec := recordingClient(t, http.StatusOK, `{"results":[]}`)

	opts := FaultListOptions{Query: "-is:resolved", Limit: 10, Order: "frequent"}
	if _, err := client.ListFaults(context.Background(), 5, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Method != http.MethodGet || rec.Path != "/projects/5/faults" {
		t.Errorf("request = %s %s, want GET /projects/5/faults", rec.Method, rec.Path)
	}
	if rec.Query["q"] != "-is:resolved" {
		t.Errorf("q = %q", rec.Query["q"])
	}
	if rec.Query["limit"] != "10" {
		t.Errorf("limit = %q", rec.Query["limit"])
	}
	if rec.Query["order"] != "frequent" {
		t.Errorf("order = %q", rec.Query["order"])
	}
	if len(rec.Body) != 0 {
		t.Errorf("list request must not carry a body, got %s", rec.Body)
	}
}

func TestListFaults_OmitsZeroOptions(t *testing.T) {
	client, rec := recordingClient(t, http.StatusOK, `{"results":[]}`)

	if _, err := client.ListFaults(context.Background(), 5, FaultListOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Query) != 0 {
		t.Errorf("expected no query params, got %v", rec.Query)
	}
}

func TestGetFault_Path(t *testing.T) {
	client, rec := recordingClient(t, http.StatusOK, `{"id":88}`)

	if _, err := client.GetFault(context.Background(), 5, 88); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Method != http.MethodGet || rec.Path != "/projects/5/faults/88" {
		t.Errorf("request = %s %s, want GET /projects/5/faults/88", rec.Method, rec.Path)
	}
}

func TestFaultSummary_Query(t *testing.T) {
	client, rec := recordingClient(t, http.StatusOK, `{"resolved":3,"unresolved":12}`)

	if _, err := client.FaultSummary(context.Background(), 5, "environment:production"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Path != "/projects/5/faults/summary" {
		t.Errorf("path = %s, want /projects/5/faults/summary", rec.Path)
	}
	if rec.Query["q"] != "environment:production" {
		t.Errorf("q = %q", rec.Query["q"])
	}
}

func TestUpdateFault_ResolvedBodyIsExact(t *testing.T) {
	client, rec := recordingClient(t, http.StatusOK, `{}`)

	if _, err := client.UpdateFault(context.Background(), 5, 88, FaultParams{Resolved: ptr(true)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Method != http.MethodPut || rec.Path != "/projects/5/faults/88" {
		t.Errorf("request = %s %s, want PUT /projects/5/faults/88", rec.Method, rec.Path)
	}
	if string(rec.Body) != `{"fault":{"resolved":true}}` {
		t.Errorf("body = %s, want {\"fault\":{\"resolved\":true}}", rec.Body)
	}
}

func TestUpdateFault_FalseIsStillSent(t *testing.T) {
	client, rec := recordingClient(t, http.StatusOK, `{}`)

	if _, err := client.UpdateFault(context.Background(), 5, 88, FaultParams{Ignored: ptr(false)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(rec.Body) != `{"fault":{"ignored":false}}` {
		t.Errorf("body = %s, want {\"fault\":{\"ignored\":false}}", rec.Body)
	}
}

func TestUpdateFault_UnsetFieldsOmitted(t *testing.T) {
	client, rec := recordingClient(t, http.StatusOK, `{}`)

	params := FaultParams{Resolved: ptr(true), AssigneeID: ptr(301)}
	if _, err := client.UpdateFault(context.Background(), 5, 88, params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fault := decodeBody(t, rec.Body)["fault"].(map[string]any)
	if len(fault) != 2 {
		t.Errorf("expected two fields, got %v", fault)
	}
	if fault["resolved"] != true {
		t.Errorf("resolved = %v", fault["resolved"])
	}
	if fault["assignee_id"] != float64(301) {
		t.Errorf("assignee_id = %v", fault["assignee_id"])
	}
	if _, present := fault["ignored"]; present {
		t.Error("ignored was not set and must be omitted")
	}
}

func TestDeleteFault_MethodAndPath(t *testing.T) {
	client, rec := recordingClient(t, http.StatusNoContent, "")

	got, err := client.DeleteFault(context.Background(), 5, 88)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Method != http.MethodDelete || rec.Path != "/projects/5/faults/88" {
		t.Errorf("request = %s %s, want DELETE /projects/5/faults/88", rec.Method, rec.Path)
	}
	if string(got) != `{"status":"success"}` {
		t.Errorf("expected synthetic ack, got %s", got)
	}
}

func TestFaultOccurrences_Period(t *testing.T) {
	client, rec := recordingClient(t, http.StatusOK, `{}`)

	if _, err := client.FaultOccurrences(context.Background(), 5, 88, "day"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Path != "/projects/5/faults/88/occurrences" {
		t.Errorf("path = %s", rec.Path)
	}
	if rec.Query["period"] != "day" {
		t.Errorf("period = %q, want day", rec.Query["period"])
	}
}

func TestFaultNotices_TimeWindow(t *testing.T) {
	client, rec := recordingClient(t, http.StatusOK, `{"results":[]}`)

	opts := NoticeListOptions{CreatedAfter: 1700000000, CreatedBefore: 1700003600, Limit: 5}
	if _, err := client.FaultNotices(context.Background(), 5, 88, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Path != "/projects/5/faults/88/notices" {
		t.Errorf("path = %s", rec.Path)
	}
	if rec.Query["created_after"] != "1700000000" {
		t.Errorf("created_after = %q", rec.Query["created_after"])
	}
	if rec.Query["created_before"] != "1700003600" {
		t.Errorf("created_before = %q", rec.Query["created_before"])
	}
	if rec.Query["limit"] != "5" {
		t.Errorf("limit = %q", rec.Query["limit"])
	}
}

func TestFaultNotices_ZeroOptionsOmitted(t *testing.T) {
	client, rec := recordingClient(t, http.StatusOK, `{"results":[]}`)

	if _, err := client.FaultNotices(context.Background(), 5, 88, NoticeListOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Query) != 0 {
		t.Errorf("expected no query params, got %v", rec.Query)
	}
}

func TestPauseFault_TimeWindowWinsOverCount(t *testing.T) {
	client, rec := recordingClient(t, http.StatusOK, `{}`)

	if _, err := client.PauseFault(context.Background(), 5, 88, "hour", 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Method != http.MethodPost || rec.Path != "/projects/5/faults/88/pause" {
		t.Errorf("request = %s %s, want POST /projects/5/faults/88/pause", rec.Method, rec.Path)
	}
	if string(rec.Body) != `{"time":"hour"}` {
		t.Errorf("body = %s, want {\"time\":\"hour\"}", rec.Body)
	}
}

func TestPauseFault_CountOnly(t *testing.T) {
	client, rec := recordingClient(t, http.StatusOK, `{}`)

	if _, err := client.PauseFault(context.Background(), 5, 88, "", 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(rec.Body) != `{"count":1000}` {
		t.Errorf("body = %s, want {\"count\":1000}", rec.Body)
	}
}

func TestPauseFault_RequiresWindowOrCount(t *testing.T) {
	client, rec := recordingClient(t, http.StatusOK, `{}`)

	_, err := client.PauseFault(context.Background(), 5, 88, "", 0)
	if err == nil {
		t.Fatal("expected error when neither window nor count is given")
	}
	if rec.Hits != 0 {
		t.Errorf("expected no request to be issued, got %d", rec.Hits)
	}
}

func TestUnpauseFault_Path(t *testing.T) {
	client, rec := recordingClient(t, http.StatusCreated, "")

	got, err := client.UnpauseFault(context.Background(), 5, 88)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Method != http.MethodPost || rec.Path != "/projects/5/faults/88/unpause" {
		t.Errorf("request = %s %s, want POST /projects/5/faults/88/unpause", rec.Method, rec.Path)
	}
	if string(got) != `{"status":"success"}` {
		t.Errorf("expected synthetic ack, got %s", got)
	}
}

func TestResolveFaults_BulkQuery(t *testing.T) {
	client, rec := recordingClient(t, http.StatusOK, `{}`)

	if _, err := client.ResolveFaults(context.Background(), 5, "environment:production -is:resolved"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Method != http.MethodPost || rec.Path != "/projects/5/faults/resolve" {
		t.Errorf("request = %s %s, want POST /projects/5/faults/resolve", rec.Method, rec.Path)
	}
	if rec.Query["q"] != "environment:production -is:resolved" {
		t.Errorf("q = %q", rec.Query["q"])
	}
	if len(rec.Body) != 0 {
		t.Errorf("bulk resolve must not carry a body, got %s", rec.Body)
	}
}

func TestResolveFaults_AllFaults(t *testing.T) {
	client, rec := recordingClient(t, http.StatusOK, `{}`)

	if _, err := client.ResolveFaults(context.Background(), 5, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := rec.Query["q"]; present {
		t.Error("empty q must be omitted")
	}
}
