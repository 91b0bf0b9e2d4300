package domain

import "time"

const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
)

// Notification event categories. Dispatch filters device tokens by the
// preference flag matching the category; anything else bypasses the
// filter.
const (
	NotificationTypeOffer   = "offer"
	NotificationTypeOrder   = "order"
	NotificationTypeCart    = "cart"
	NotificationTypeGeneral = "general"
)

type DeviceToken struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint64    `gorm:"column:user_id;not null;index:idx_device_tokens_user_active" json:"user_id"`
	Token      string    `gorm:"column:token;type:text;not null;uniqueIndex" json:"token"`
	Platform   string    `gorm:"column:platform;type:text;not null" json:"platform"`
	DeviceID   string    `gorm:"column:device_id;type:text" json:"device_id,omitempty"`
	DeviceName string    `gorm:"column:device_name;type:text" json:"device_name,omitempty"`
	IsActive   bool      `gorm:"column:is_active;default:true;index:idx_device_tokens_user_active" json:"is_active"`
	LastUsed   time.Time `gorm:"column:last_used" json:"last_used"`

	// Per-device notification preferences.
	Offers        bool `gorm:"column:offers;default:true" json:"offers"`
	OrderUpdates  bool `gorm:"column:order_updates;default:true" json:"order_updates"`
	CartReminders bool `gorm:"column:cart_reminders;default:true" json:"cart_reminders"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}

// AllowsType reports whether this device opted in to the given
// notification category.
func (t DeviceToken) AllowsType(notificationType string) bool {
	switch notificationType {
	case NotificationTypeOffer:
		return t.Offers
	case NotificationTypeOrder:
		return t.OrderUpdates
	case NotificationTypeCart:
		return t.CartReminders
	default:
		return true
	}
}
