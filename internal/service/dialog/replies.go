package dialog

import (
	"github.com/seu-repo/bankbot/internal/domain"
)

const (
	msgAuthFailed       = "Authentication failed. Please try again later."
	msgGenericGreeting  = "Hello! How can I help you with your banking needs today?"
	msgNamedGreeting    = "Hello, %s! How can I help you with your banking needs today?"
	msgBalance          = "Your %s account balance is %s."
	msgNoSuchAccount    = "You do not have a %s account."
	msgOperation        = "You requested to %s your %s account"
	msgOperationAmount  = " for the amount of $%s."
	msgTransferDone     = "Successfully transferred %s from your %s to your %s account."
	msgInsufficient     = "Insufficient funds to complete the transfer."
	msgTransferDenied   = "Okay, I have cancelled the transaction."
	msgMalformedAmount  = "I couldn't understand the transfer amount. Please provide a valid amount."
	msgFallback         = "Sorry, I didn't understand that. Please try rephrasing your request."
	msgDefault          = "Thanks for your message! How can I assist you?"
	msgTemporaryFailure = "Sorry, something went wrong while processing your request. Please try again later."
)

const (
	slotAccountType      = "account_type"
	slotBankingOperation = "banking_operation"
	slotAmount           = "amount"
	slotFromAccountType  = "fromAccountType"
	slotToAccountType    = "toAccountType"
	slotTransferAmount   = "transferAmount"

	attrAccountType = "account_type"
	attrUserName    = "userName"

	operationBalance = "balance"
)

func closeTurn(state domain.IntentState, attrs map[string]string, content string) *domain.Response {
	return &domain.Response{
		DialogAction:      domain.DialogActionClose,
		IntentState:       state,
		SessionAttributes: attrs,
		Messages:          messages(content),
	}
}

func fulfilled(attrs map[string]string, content string) *domain.Response {
	return closeTurn(domain.IntentStateFulfilled, attrs, content)
}

func failed(attrs map[string]string, content string) *domain.Response {
	return closeTurn(domain.IntentStateFailed, attrs, content)
}

// delegate hands the turn back to the upstream slot-filling / confirmation
// flow. It never carries an intent state.
func delegate(intentName string, slots domain.Slots, attrs map[string]string) *domain.Response {
	return &domain.Response{
		DialogAction:      domain.DialogActionDelegate,
		IntentName:        intentName,
		Slots:             slots,
		SessionAttributes: attrs,
		Messages:          []domain.Message{},
	}
}

func messages(content string) []domain.Message {
	if content == "" {
		return []domain.Message{}
	}
	return []domain.Message{{ContentType: domain.ContentTypePlainText, Content: content}}
}

// copyAttributes returns a copy of the incoming attributes so handlers can
// add keys without touching the caller's map.
func copyAttributes(in map[string]string) map[string]string {
	out := make(map[string]string, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
