package notification

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/bank-ledger-service/internal/domain"
	"github.com/api-sage/bank-ledger-service/internal/logger"
)

// EmailSender is the transport behind the notifier. Production wires an
// SMTP sender; tests use a recording fake.
type EmailSender interface {
	SendEmail(to, subject, body string) error
}

type message struct {
	id      string
	to      string
	subject string
	body    string
}

// MailNotifier delivers customer emails from a bounded worker pool.
// Enqueueing never blocks the ledger: when the queue is full the
// message is dropped and the drop is logged. Delivery is at-most-once.
type MailNotifier struct {
	sender   EmailSender
	queue    chan message
	shutdown chan struct{}
	wg       sync.WaitGroup
}

func NewMailNotifier(sender EmailSender, workers int) *MailNotifier {
	if workers <= 0 {
		workers = 1
	}

	n := &MailNotifier{
		sender:   sender,
		queue:    make(chan message, 256),
		shutdown: make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		n.wg.Add(1)
		go n.worker(i)
	}

	return n
}

func (n *MailNotifier) NotifyTransaction(_ context.Context, email string, txType domain.TransactionType, amount decimal.Decimal, newBalance decimal.Decimal, accountNumber string) error {
	body := fmt.Sprintf(
		"Dear Customer,\n\n"+
			"A %s transaction has been processed on your account.\n\n"+
			"Transaction Details:\n"+
			"Transaction Type: %s\n"+
			"Amount: $%s\n"+
			"Account Number: %s\n"+
			"Current Balance: $%s\n\n"+
			"Thank you for banking with us.\n\n"+
			"Best regards,\nThe Bank Team",
		strings.ToLower(string(txType)),
		string(txType),
		amount.StringFixed(2),
		accountNumber,
		newBalance.StringFixed(2),
	)

	return n.enqueue(message{
		id:      uuid.NewString(),
		to:      email,
		subject: "Transaction Notification",
		body:    body,
	})
}

func (n *MailNotifier) NotifyAccountCreated(_ context.Context, email string, fullName string, accountNumber string, balance decimal.Decimal) error {
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Congratulations! Your account has been successfully created.\n\n"+
			"Your account details are as follows:\n"+
			"Account Number: %s\n"+
			"Current Balance: $%s\n\n"+
			"Thank you for choosing our bank.\n\n"+
			"Best regards,\nThe Bank Team",
		fullName,
		accountNumber,
		balance.StringFixed(2),
	)

	return n.enqueue(message{
		id:      uuid.NewString(),
		to:      email,
		subject: "Congratulations! Your Account has been Created",
		body:    body,
	})
}

func (n *MailNotifier) enqueue(msg message) error {
	select {
	case n.queue <- msg:
		logger.Info("notification queued", logger.Fields{
			"messageId": msg.id,
			"subject":   msg.subject,
		})
		return nil
	default:
		logger.Error("notification queue full, message dropped", nil, logger.Fields{
			"messageId": msg.id,
			"subject":   msg.subject,
		})
		return fmt.Errorf("notification queue full")
	}
}

func (n *MailNotifier) worker(id int) {
	defer n.wg.Done()

	for {
		select {
		case msg := <-n.queue:
			if err := n.sender.SendEmail(msg.to, msg.subject, msg.body); err != nil {
				logger.Error("notification delivery failed", err, logger.Fields{
					"messageId": msg.id,
					"workerId":  id,
				})
				continue
			}
			logger.Info("notification delivered", logger.Fields{
				"messageId": msg.id,
				"workerId":  id,
			})
		case <-n.shutdown:
			return
		}
	}
}

func (n *MailNotifier) Shutdown(ctx context.Context) error {
	close(n.shutdown)

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
