package domain

import (
	"encoding/json"
	"testing"
)

func TestParseIntent(t *testing.T) {
	tests := map[string]Intent{
		"GreetingIntent":       IntentGreeting,
		"BankingInquiryIntent": IntentBankingInquiry,
		"TransferMoneyIntent":  IntentTransferMoney,
		"FallbackIntent":       IntentFallback,
		"greetingintent":       IntentUnknown,
		"":                     IntentUnknown,
	}
	for name, want := range tests {
		if got := ParseIntent(name); got != want {
			t.Errorf("ParseIntent(%q): expected %v, got %v", name, want, got)
		}
	}
	if IntentUnknown.String() != "Unknown" {
		t.Errorf("expected 'Unknown', got %q", IntentUnknown.String())
	}
}

func TestSlotsGet(t *testing.T) {
	slots := Slots{
		"filled": {Value: &SlotValue{InterpretedValue: "checking"}},
		"empty":  {Value: &SlotValue{}},
		"nilval": {},
		"nil":    nil,
	}

	if v, ok := slots.Get("filled"); !ok || v != "checking" {
		t.Errorf("expected 'checking', got %q ok=%v", v, ok)
	}
	for _, name := range []string{"empty", "nilval", "nil", "absent"} {
		if _, ok := slots.Get(name); ok {
			t.Errorf("expected slot %q to be unfilled", name)
		}
	}

	var none Slots
	if _, ok := none.Get("x"); ok {
		t.Error("expected nil Slots to report unfilled")
	}
}

func TestRequestDecode(t *testing.T) {
	body := `{
		"intentName": "TransferMoneyIntent",
		"userId": "user-001",
		"confirmationState": "Confirmed",
		"sessionAttributes": {"userName": "Alex"},
		"slots": {
			"fromAccountType": {"value": {"interpretedValue": "checking"}},
			"toAccountType": null
		}
	}`

	var req Request
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("failed to decode request: %v", err)
	}
	if ParseIntent(req.IntentName) != IntentTransferMoney {
		t.Errorf("unexpected intent %q", req.IntentName)
	}
	if req.ConfirmationState != ConfirmationConfirmed {
		t.Errorf("unexpected confirmation state %q", req.ConfirmationState)
	}
	if v, _ := req.Slots.Get("fromAccountType"); v != "checking" {
		t.Errorf("expected fromAccountType 'checking', got %q", v)
	}
	if _, ok := req.Slots.Get("toAccountType"); ok {
		t.Error("expected toAccountType unfilled")
	}
}

func TestResponseEncode_DelegateOmitsIntentState(t *testing.T) {
	resp := Response{
		DialogAction:      DialogActionDelegate,
		IntentName:        "TransferMoneyIntent",
		SessionAttributes: map[string]string{},
		Messages:          []Message{},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if _, ok := raw["intentState"]; ok {
		t.Errorf("expected intentState omitted, got %s", data)
	}
	if _, ok := raw["sessionAttributes"]; !ok {
		t.Errorf("expected sessionAttributes present, got %s", data)
	}
}
