package worker

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/DvineConqueror/GroceryStorePOS/internal/infra"
	"github.com/DvineConqueror/GroceryStorePOS/internal/repository"
)

// ReceiptWorker renders receipt PDFs off the request path. The receipt
// endpoint regenerates on demand if the file is not there yet, so a dropped
// job costs a little latency, never a lost receipt.
type ReceiptWorker struct {
	txRepo      repository.TransactionRepository
	storeName   string
	storagePath string
}

func NewReceiptWorker(txRepo repository.TransactionRepository, storeName, storagePath string) *ReceiptWorker {
	return &ReceiptWorker{txRepo: txRepo, storeName: storeName, storagePath: storagePath}
}

func (w *ReceiptWorker) Handle(ctx context.Context, payload json.RawMessage) error {
	var p ReceiptPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return err
	}
	id, err := uuid.Parse(p.TransactionID)
	if err != nil {
		return err
	}

	tx, err := w.txRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	path, err := infra.GenerateReceiptPDF(tx, w.storeName, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("transaction_id", p.TransactionID).Str("path", path).Msg("receipt rendered")
	return nil
}

// EmailWorker sends notification mails (e.g. a new cashier awaiting
// approval).
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker { return &EmailWorker{mailer: mailer} }

func (w *EmailWorker) Handle(_ context.Context, payload json.RawMessage) error {
	var p EmailPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return err
	}
	if p.To == "" {
		log.Debug().Msg("email job without recipient dropped")
		return nil
	}
	return w.mailer.Send(p.To, p.Subject, p.Body)
}
