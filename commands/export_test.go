package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func TestExportClear(t *testing.T) {
	var path string
	var ranges []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var rq sheets.BatchClearValuesRequest

		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			t.Errorf("Error decoding request (%v)", err)
		}

		ranges = rq.Ranges

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"spreadsheetId":"1Bxi"}`))
	}))

	defer srv.Close()

	google, err := sheets.NewService(context.Background(), option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("Unexpected error creating Sheets client (%v)", err)
	}

	cmd := Export{area: "'Csiga'!A1:ZZ"}

	if err := cmd.clear(context.Background(), google, "1Bxi"); err != nil {
		t.Fatalf("Unexpected error returned from clear (%v)", err)
	}

	if path != "/v4/spreadsheets/1Bxi/values:batchClear" {
		t.Errorf("Incorrect request path\n   expected: %v\n   got:      %v", "/v4/spreadsheets/1Bxi/values:batchClear", path)
	}

	if !reflect.DeepEqual(ranges, []string{"'Csiga'!A1:ZZ"}) {
		t.Errorf("Incorrect ranges\n   expected: %v\n   got:      %v", []string{"'Csiga'!A1:ZZ"}, ranges)
	}
}

func TestExportClearWithError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"forbidden"}}`, http.StatusForbidden)
	}))

	defer srv.Close()

	google, err := sheets.NewService(context.Background(), option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("Unexpected error creating Sheets client (%v)", err)
	}

	cmd := Export{area: "'Csiga'!A1:ZZ"}

	err = cmd.clear(context.Background(), google, "1Bxi")
	if err == nil {
		t.Fatalf("Expected error clearing range")
	}

	if !strings.Contains(err.Error(), "error clearing range 'Csiga'!A1:ZZ") {
		t.Errorf("Incorrect error - got:%v", err)
	}
}
