package user

const (
	// RegisteredTopic 用户注册事件，由认证服务发出
	RegisteredTopic = "user_registered_events"
)

// RegisteredEvent 用户注册事件，至少投递一次，可能重复
type RegisteredEvent struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
