package notification

import (
	"context"
	"sync"
	"time"
)

// Dispatcher отправляет уведомления в фоне
// Ошибки доставки только логируются и никогда не возвращаются вызывающему
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	log     Logger
	wg      sync.WaitGroup
}

func NewDispatcher(sender Sender, timeout time.Duration, log Logger) *Dispatcher {
	return &Dispatcher{sender: sender, timeout: timeout, log: log}
}

// Notify запускает доставку и сразу возвращает управление
// Контекст запроса отвязывается от отмены: ответ клиенту не должен обрывать отправку
func (d *Dispatcher) Notify(ctx context.Context, n Notification) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		if err := d.sender.Send(sendCtx, n); err != nil {
			d.log.Error("Notify: kind=%s user_id=%d booking_ref=%s: %v", n.Kind, n.UserID, n.Payload.BookingRef, err)
		}
	}()
}

// Wait дожидается отправки запущенных уведомлений (при остановке сервиса)
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
