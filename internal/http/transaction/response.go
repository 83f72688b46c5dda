package transaction

import (
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
)

type transactionResponse struct {
	*transaction.Transaction

	ItemCount int  `json:"itemCount"`
	WalkIn    bool `json:"walkIn"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		Transaction: tx,
		ItemCount:   tx.ItemCount(),
		WalkIn:      tx.IsWalkIn(),
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
