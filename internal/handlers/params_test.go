package handlers

import (
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestCsvParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/requests?statuses=pending,%20accepted,&provider_ids=1,x,3", nil)

	if got := csvParam(r, "statuses"); !reflect.DeepEqual(got, []string{"pending", "accepted"}) {
		t.Fatalf("statuses = %v", got)
	}
	if got := csvIntParam(r, "provider_ids"); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("provider_ids = %v", got)
	}
	if got := csvParam(r, "missing"); got != nil {
		t.Fatalf("missing param should be nil, got %v", got)
	}
}
