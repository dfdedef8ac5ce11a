package notifier

import (
	"context"
	"time"

	"github.com/BabyGoatsInc/baby-goats-service/internal/config"
	"github.com/BabyGoatsInc/baby-goats-service/internal/logger"
	"github.com/BabyGoatsInc/baby-goats-service/internal/logic"
	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Dispatcher 通知投递器，轮询待发通知并并发投递
type Dispatcher struct {
	notificationLogic *logic.NotificationLogic
	pool              *ants.Pool
	interval          time.Duration
	batchSize         int
	ctx               context.Context
	cancel            context.CancelFunc
}

// NewDispatcher 创建通知投递器
func NewDispatcher(db *gorm.DB, cfg *config.Config) (*Dispatcher, error) {
	pool, err := ants.NewPool(cfg.Notifier.PoolSize)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		notificationLogic: logic.NewNotificationLogic(db),
		pool:              pool,
		interval:          time.Duration(cfg.Notifier.Interval) * time.Second,
		batchSize:         cfg.Notifier.BatchSize,
		ctx:               ctx,
		cancel:            cancel,
	}, nil
}

// Start 启动投递循环
func (d *Dispatcher) Start() {
	logger.Info("Starting notification dispatcher, interval %s, pool size %d",
		d.interval, d.pool.Cap())
	go d.dispatchLoop()
}

// Stop 停止投递循环
func (d *Dispatcher) Stop() {
	d.cancel()
	d.pool.Release()
	logger.Info("Notification dispatcher stopped")
}

// dispatchLoop 投递循环
func (d *Dispatcher) dispatchLoop() {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			logger.Info("Dispatch loop stopped")
			return
		case <-ticker.C:
			if err := d.dispatchPending(); err != nil {
				logger.Error("Error dispatching notifications: %v", err)
			}
		}
	}
}

// dispatchPending 投递一批待发通知
func (d *Dispatcher) dispatchPending() error {
	notifications, err := d.notificationLogic.FetchPending(d.batchSize)
	if err != nil {
		return err
	}
	if len(notifications) == 0 {
		return nil
	}

	logger.Debug("Dispatching %d pending notifications", len(notifications))

	for i := range notifications {
		notification := notifications[i]
		err := d.pool.Submit(func() {
			d.deliver(&notification)
		})
		if err != nil {
			logger.Error("Failed to submit notification %d to pool: %v", notification.Id, err)
		}
	}

	return nil
}

// deliver 投递单条通知并更新投递状态
func (d *Dispatcher) deliver(notification *model.NotificationModel) {
	// 站内通知落库即可见，这里记录投递动作，未来接入推送渠道
	logger.Info("Delivering notification %d type %s to user %d",
		notification.Id, notification.Type, notification.UserId)

	if err := d.notificationLogic.MarkDelivered(notification.Id, true); err != nil {
		logger.Error("Failed to mark notification %d delivered: %v", notification.Id, err)
	}
}
