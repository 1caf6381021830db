package models

import (
	"encoding/json"
	"testing"
)

func TestBookingPaid_FalseIsDistinctFromUnset(t *testing.T) {
	var explicit Booking
	if err := json.Unmarshal([]byte(`{"tour_id":1,"user_id":2,"price":497,"paid":false}`), &explicit); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if explicit.Paid == nil || *explicit.Paid {
		t.Error("explicit paid:false lost, would take the column default")
	}

	var omitted Booking
	if err := json.Unmarshal([]byte(`{"tour_id":1,"user_id":2,"price":497}`), &omitted); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if omitted.Paid != nil {
		t.Error("omitted paid should stay unset for the column default")
	}
}
