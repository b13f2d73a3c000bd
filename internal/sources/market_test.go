package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSheetID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://docs.google.com/spreadsheets/d/abc123/edit#gid=0", "abc123", false},
		{"https://docs.google.com/spreadsheets/d/abc123/", "abc123", false},
		{"https://docs.google.com/spreadsheets/d/abc123", "abc123", false},
		{"abc123", "abc123", false},
		{"https://example.com/nothing", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := SheetID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("SheetID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("SheetID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarketSheetClient_CSVURL(t *testing.T) {
	c := NewMarketSheetClient(MarketSheetConfig{DefaultSheet: "https://docs.google.com/spreadsheets/d/SHEET/"})

	got, err := c.CSVURL("", "")
	if err != nil {
		t.Fatalf("CSVURL: %v", err)
	}
	want := "https://docs.google.com/spreadsheets/d/SHEET/gviz/tq?sheet=SF&tqx=out%3Acsv"
	if got != want {
		t.Errorf("CSVURL = %q, want %q", got, want)
	}

	got, _ = c.CSVURL("OTHER", "1QB")
	want = "https://docs.google.com/spreadsheets/d/OTHER/gviz/tq?sheet=1QB&tqx=out%3Acsv"
	if got != want {
		t.Errorf("CSVURL override = %q, want %q", got, want)
	}
}

func TestMarketSheetClient_Market(t *testing.T) {
	var gotTab string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/spreadsheets/d/SHEET/gviz/tq" {
			http.NotFound(w, r)
			return
		}
		gotTab = r.URL.Query().Get("sheet")
		w.Write([]byte("\"Name\",\"Value\",\"SFValue\"\n\"Josh Allen\",\"7000\",\"9900\"\n"))
	}))
	defer srv.Close()

	c := NewMarketSheetClient(MarketSheetConfig{BaseURL: srv.URL, DefaultSheet: "SHEET", HTTPClient: srv.Client()})
	entries, err := c.Market(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Market: %v", err)
	}
	if gotTab != DefaultMarketTab {
		t.Errorf("tab = %q, want %q", gotTab, DefaultMarketTab)
	}
	if len(entries) != 1 || entries[0].SFValue != 9900 {
		t.Errorf("entries = %+v", entries)
	}

	if _, err := c.Market(context.Background(), "MISSING", ""); err == nil {
		t.Error("expected error for missing sheet")
	}
}
