package domain

// Intent is the closed set of intents the assistant understands.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentGreeting
	IntentBankingInquiry
	IntentTransferMoney
	IntentFallback
)

var intentNames = map[string]Intent{
	"GreetingIntent":       IntentGreeting,
	"BankingInquiryIntent": IntentBankingInquiry,
	"TransferMoneyIntent":  IntentTransferMoney,
	"FallbackIntent":       IntentFallback,
}

// ParseIntent maps a wire intent name to an Intent. Unrecognised names map to
// IntentUnknown.
func ParseIntent(name string) Intent {
	if i, ok := intentNames[name]; ok {
		return i
	}
	return IntentUnknown
}

func (i Intent) String() string {
	switch i {
	case IntentGreeting:
		return "GreetingIntent"
	case IntentBankingInquiry:
		return "BankingInquiryIntent"
	case IntentTransferMoney:
		return "TransferMoneyIntent"
	case IntentFallback:
		return "FallbackIntent"
	default:
		return "Unknown"
	}
}

type ConfirmationState string

const (
	ConfirmationNone      ConfirmationState = "None"
	ConfirmationConfirmed ConfirmationState = "Confirmed"
	ConfirmationDenied    ConfirmationState = "Denied"
)

type DialogAction string

const (
	DialogActionClose    DialogAction = "Close"
	DialogActionDelegate DialogAction = "Delegate"
)

type IntentState string

const (
	IntentStateFulfilled IntentState = "Fulfilled"
	IntentStateFailed    IntentState = "Failed"
)

const ContentTypePlainText = "PlainText"

type SlotValue struct {
	InterpretedValue string `json:"interpretedValue"`
	OriginalValue    string `json:"originalValue,omitempty"`
}

type Slot struct {
	Value *SlotValue `json:"value"`
}

// Slots holds the values extracted upstream. A nil entry means the slot is
// known to the intent but not yet filled.
type Slots map[string]*Slot

// Get returns the interpreted value of a filled slot.
func (s Slots) Get(name string) (string, bool) {
	slot, ok := s[name]
	if !ok || slot == nil || slot.Value == nil || slot.Value.InterpretedValue == "" {
		return "", false
	}
	return slot.Value.InterpretedValue, true
}

// Request is one user turn as produced by the language understanding layer.
type Request struct {
	IntentName        string            `json:"intentName"`
	Slots             Slots             `json:"slots"`
	SessionAttributes map[string]string `json:"sessionAttributes"`
	ConfirmationState ConfirmationState `json:"confirmationState"`
	UserID            string            `json:"userId"`
}

type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Response is the reply for one turn. IntentState is set only when
// DialogAction is Close; Slots is set only when DialogAction is Delegate.
type Response struct {
	DialogAction      DialogAction      `json:"dialogAction"`
	IntentState       IntentState       `json:"intentState,omitempty"`
	IntentName        string            `json:"intentName,omitempty"`
	Slots             Slots             `json:"slots,omitempty"`
	SessionAttributes map[string]string `json:"sessionAttributes"`
	Messages          []Message         `json:"messages"`
}

// Content returns the first message text, or "" when the reply is silent.
func (r *Response) Content() string {
	if r == nil || len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[0].Content
}
